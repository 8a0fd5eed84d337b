// Package summarize provides an agent that summarizes text of any length.
//
// Short text goes through a single summarize call. Long text is split into
// overlapping chunks, each chunk is summarized separately, and the chunk
// summaries are merged into one final summary:
//
//	SHORT text --> summarize tool --> Output
//	LONG  text --> chunk --> summarize tool x N --> merge tool --> Output
package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentacademy/go-agents/agent"
	"github.com/agentacademy/go-agents/internal/chunk"
	"github.com/agentacademy/go-agents/log"
	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/tool"
	"github.com/agentacademy/go-agents/tool/summarize"
)

// Defaults for the sliding-window splitter. 3000 chars is roughly 750
// tokens, safely under common context windows with the system prompt
// included; the overlap keeps context across chunk boundaries.
const (
	DefaultChunkSize    = 3000
	DefaultChunkOverlap = 200
)

// Status reports whether summarization succeeded.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Input to the summarize agent.
type Input struct {
	// Text to summarize. Any length is accepted.
	Text string `json:"text"`
}

// Output is the structured result of a summarize run. On failure, Status is
// StatusFailed and Summary carries the error description.
type Output struct {
	Summary             string   `json:"summary"`
	KeyTakeaways        []string `json:"key_takeaways"`
	Status              Status   `json:"status"`
	OriginalContentSize int      `json:"original_content_size"`
}

// Option configures the agent.
type Option func(*Agent)

// WithChunkSize sets the maximum characters per chunk.
func WithChunkSize(size int) Option {
	return func(a *Agent) {
		a.chunkSize = size
	}
}

// WithChunkOverlap sets the characters shared between consecutive chunks.
func WithChunkOverlap(overlap int) Option {
	return func(a *Agent) {
		a.chunkOverlap = overlap
	}
}

// WithTokenCounter sets the counter used to report token estimates for the
// input text.
func WithTokenCounter(counter model.TokenCounter) Option {
	return func(a *Agent) {
		a.counter = counter
	}
}

// Agent summarizes text, chunking automatically when necessary.
type Agent struct {
	chunkSize     int
	chunkOverlap  int
	counter       model.TokenCounter
	summarizeTool tool.CallableTool
	mergeTool     tool.CallableTool
}

// New creates a summarize agent using m for both chunk summaries and the
// final merge.
func New(m model.Model, opts ...Option) *Agent {
	a := &Agent{
		chunkSize:     DefaultChunkSize,
		chunkOverlap:  DefaultChunkOverlap,
		counter:       model.NewSimpleTokenCounter(),
		summarizeTool: summarize.New(m),
		mergeTool:     summarize.NewMerge(m),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Info implements agent.Agent.
func (a *Agent) Info() agent.Info {
	return agent.Info{
		Name:        "summarize",
		Description: "Summarizes text of any length via chunked map-merge summarization.",
	}
}

// Tools implements agent.Agent.
func (a *Agent) Tools() []tool.Tool {
	return []tool.Tool{a.summarizeTool, a.mergeTool}
}

// Summarize produces a summary of input.Text. Failures never panic or
// propagate as errors; they come back as Status StatusFailed with the error
// description in Summary.
func (a *Agent) Summarize(ctx context.Context, input Input) Output {
	originalSize := len([]rune(input.Text))
	if tokens, err := a.counter.CountTokens(ctx, model.NewUserMessage(input.Text)); err == nil {
		log.Debugf("summarize: input is %d chars, ~%d tokens", originalSize, tokens)
	}

	result, err := a.run(ctx, input.Text, originalSize)
	if err != nil {
		return Output{
			Summary:             fmt.Sprintf("Summarization failed: %v", err),
			KeyTakeaways:        []string{},
			Status:              StatusFailed,
			OriginalContentSize: originalSize,
		}
	}
	return Output{
		Summary:             result.Summary,
		KeyTakeaways:        result.KeyTakeaways,
		Status:              StatusSuccess,
		OriginalContentSize: originalSize,
	}
}

func (a *Agent) run(ctx context.Context, text string, size int) (summarize.Output, error) {
	if size > a.chunkSize {
		return a.summarizeChunked(ctx, text)
	}
	return a.callSummarize(ctx, summarize.Input{Text: text})
}

// summarizeChunked splits the text, summarizes each chunk, then merges all
// chunk summaries into one final summary.
func (a *Agent) summarizeChunked(ctx context.Context, text string) (summarize.Output, error) {
	chunks, err := chunk.Split(text, a.chunkSize, a.chunkOverlap)
	if err != nil {
		return summarize.Output{}, err
	}
	log.Infof("summarize: splitting into %d chunks (size=%d, overlap=%d)",
		len(chunks), a.chunkSize, a.chunkOverlap)

	chunkSummaries := make([]string, 0, len(chunks))
	for i, c := range chunks {
		result, err := a.callSummarize(ctx, summarize.Input{Text: c, IsChunk: true})
		if err != nil {
			return summarize.Output{}, fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
		chunkSummaries = append(chunkSummaries,
			fmt.Sprintf("--- Chunk %d of %d ---\n%s", i+1, len(chunks), result.Summary))
	}

	combined := strings.Join(chunkSummaries, "\n\n")
	return a.callTool(ctx, a.mergeTool, summarize.Input{Text: combined})
}

func (a *Agent) callSummarize(ctx context.Context, input summarize.Input) (summarize.Output, error) {
	return a.callTool(ctx, a.summarizeTool, input)
}

func (a *Agent) callTool(ctx context.Context, t tool.CallableTool, input summarize.Input) (summarize.Output, error) {
	args, err := json.Marshal(input)
	if err != nil {
		return summarize.Output{}, fmt.Errorf("encode tool input: %w", err)
	}
	result, err := t.Call(ctx, args)
	if err != nil {
		return summarize.Output{}, err
	}
	out, ok := result.(summarize.Output)
	if !ok {
		return summarize.Output{}, fmt.Errorf("unexpected tool result type %T", result)
	}
	return out, nil
}
