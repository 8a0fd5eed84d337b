package summarize

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentacademy/go-agents/model"
)

// fakeModel replies with scripted JSON per call, distinguishing chunk, full
// and merge calls by their system prompt.
type fakeModel struct {
	calls     int
	failAfter int // fail on call N (1-based); 0 means never
	requests  []*model.Request
}

func (f *fakeModel) Info() model.Info { return model.Info{Name: "fake"} }

func (f *fakeModel) GenerateContent(_ context.Context, req *model.Request) (*model.Response, error) {
	f.calls++
	f.requests = append(f.requests, req)
	if f.failAfter > 0 && f.calls >= f.failAfter {
		return &model.Response{
			Error: &model.ResponseError{Message: "model unavailable", Type: model.ErrorTypeAPIError},
		}, nil
	}

	system := req.Messages[0].Content
	var kind string
	switch {
	case strings.Contains(system, "ONE CHUNK"):
		kind = "chunk"
	case strings.Contains(system, "chunk summaries"):
		kind = "merge"
	default:
		kind = "full"
	}
	content := fmt.Sprintf(`{"summary":"%s summary %d","key_takeaways":["%s takeaway"]}`,
		kind, f.calls, kind)
	return &model.Response{
		Choices: []model.Choice{{Message: model.NewAssistantMessage(content)}},
	}, nil
}

func TestSummarizeShortText(t *testing.T) {
	fake := &fakeModel{}
	a := New(fake)

	out := a.Summarize(context.Background(), Input{Text: "a short article"})
	assert.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, "full summary 1", out.Summary)
	assert.Equal(t, len("a short article"), out.OriginalContentSize)
	// One call, no chunking.
	assert.Equal(t, 1, fake.calls)
}

func TestSummarizeLongText(t *testing.T) {
	fake := &fakeModel{}
	a := New(fake, WithChunkSize(100), WithChunkOverlap(10))

	text := strings.Repeat("x", 250) // 3 chunks at size 100, overlap 10
	out := a.Summarize(context.Background(), Input{Text: text})
	require.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, 250, out.OriginalContentSize)

	// 3 chunk calls plus 1 merge call.
	require.Equal(t, 4, fake.calls)
	assert.Contains(t, out.Summary, "merge summary")

	// The merge input joins chunk summaries with numbered separators.
	mergeUser := fake.requests[3].Messages[1].Content
	assert.Contains(t, mergeUser, "--- Chunk 1 of 3 ---")
	assert.Contains(t, mergeUser, "--- Chunk 3 of 3 ---")
	assert.Contains(t, mergeUser, "chunk summary 1")
}

func TestSummarizeFailure(t *testing.T) {
	fake := &fakeModel{failAfter: 1}
	a := New(fake)

	out := a.Summarize(context.Background(), Input{Text: "some text"})
	assert.Equal(t, StatusFailed, out.Status)
	assert.Contains(t, out.Summary, "Summarization failed")
	assert.Contains(t, out.Summary, "model unavailable")
	assert.Empty(t, out.KeyTakeaways)
	assert.Equal(t, len("some text"), out.OriginalContentSize)
}

func TestSummarizeChunkFailureMidway(t *testing.T) {
	fake := &fakeModel{failAfter: 2}
	a := New(fake, WithChunkSize(100), WithChunkOverlap(10))

	out := a.Summarize(context.Background(), Input{Text: strings.Repeat("x", 250)})
	assert.Equal(t, StatusFailed, out.Status)
	assert.Contains(t, out.Summary, "chunk 2 of 3")
}

func TestSummarizeInvalidChunkConfig(t *testing.T) {
	fake := &fakeModel{}
	a := New(fake, WithChunkSize(100), WithChunkOverlap(100))

	out := a.Summarize(context.Background(), Input{Text: strings.Repeat("x", 250)})
	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, 0, fake.calls)
}

func TestAgentInfoAndTools(t *testing.T) {
	a := New(&fakeModel{})
	assert.Equal(t, "summarize", a.Info().Name)
	require.Len(t, a.Tools(), 2)
	assert.Equal(t, "summarize", a.Tools()[0].Declaration().Name)
	assert.Equal(t, "merge_summaries", a.Tools()[1].Declaration().Name)
}
