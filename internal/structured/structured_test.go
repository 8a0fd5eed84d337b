package structured

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/tool"
)

// fakeModel returns a scripted response or error.
type fakeModel struct {
	response *model.Response
	err      error
	lastReq  *model.Request
}

func (f *fakeModel) Info() model.Info { return model.Info{Name: "fake"} }

func (f *fakeModel) GenerateContent(_ context.Context, req *model.Request) (*model.Response, error) {
	f.lastReq = req
	return f.response, f.err
}

func textResponse(content string) *model.Response {
	return &model.Response{
		Choices: []model.Choice{{Message: model.NewAssistantMessage(content)}},
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain json untouched", `{"summary":"ok"}`, `{"summary":"ok"}`},
		{"json fence", "```json\n{\"summary\":\"ok\"}\n```", `{"summary":"ok"}`},
		{"bare fence", "```\n{\"summary\":\"ok\"}\n```", `{"summary":"ok"}`},
		{"fence with whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"empty content", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.content))
		})
	}
}

func TestSchemaMap(t *testing.T) {
	m, err := SchemaMap(&tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"summary": {Type: "string"},
		},
		Required: []string{"summary"},
	})
	require.NoError(t, err)
	assert.Equal(t, "object", m["type"])
	assert.Contains(t, m, "properties")
}

func TestCallJSON(t *testing.T) {
	fake := &fakeModel{response: textResponse("```json\n{\"summary\":\"done\"}\n```")}

	var out struct {
		Summary string `json:"summary"`
	}
	err := CallJSON(context.Background(), fake, "system", "user", "summary",
		map[string]any{"type": "object"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "done", out.Summary)

	// Request carried the schema and both messages.
	require.NotNil(t, fake.lastReq)
	require.Len(t, fake.lastReq.Messages, 2)
	assert.Equal(t, model.RoleSystem, fake.lastReq.Messages[0].Role)
	require.NotNil(t, fake.lastReq.StructuredOutput)
	assert.Equal(t, "summary", fake.lastReq.StructuredOutput.JSONSchema.Name)
}

func TestCallJSONErrors(t *testing.T) {
	var out map[string]any

	transport := &fakeModel{err: errors.New("connection refused")}
	err := CallJSON(context.Background(), transport, "s", "u", "x", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	apiErr := &fakeModel{response: &model.Response{
		Error: &model.ResponseError{Message: "rate limited", Type: model.ErrorTypeAPIError},
	}}
	err = CallJSON(context.Background(), apiErr, "s", "u", "x", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")

	empty := &fakeModel{response: textResponse("")}
	err = CallJSON(context.Background(), empty, "s", "u", "x", nil, &out)
	require.Error(t, err)

	garbage := &fakeModel{response: textResponse("not json at all")}
	err = CallJSON(context.Background(), garbage, "s", "u", "x", nil, &out)
	require.Error(t, err)
}
