package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseContent(t *testing.T) {
	var nilRsp *Response
	assert.Equal(t, "", nilRsp.Content())

	rsp := &Response{}
	assert.Equal(t, "", rsp.Content())

	rsp.Choices = []Choice{{Message: NewAssistantMessage("done")}}
	assert.Equal(t, "done", rsp.Content())
}

func TestResponseToolCalls(t *testing.T) {
	rsp := &Response{
		Choices: []Choice{{
			Message: Message{
				Role: RoleAssistant,
				ToolCalls: []ToolCall{
					{ID: "call_1", Type: "function", Function: FunctionDefinitionParam{Name: "save_profile"}},
				},
			},
		}},
	}
	assert.True(t, rsp.IsToolCallResponse())
	require.Len(t, rsp.ToolCalls(), 1)
	assert.Equal(t, "save_profile", rsp.ToolCalls()[0].Function.Name)

	empty := &Response{Choices: []Choice{{Message: NewAssistantMessage("hi")}}}
	assert.False(t, empty.IsToolCallResponse())
	assert.Empty(t, empty.ToolCalls())
}

func TestResponseClone(t *testing.T) {
	assert.Nil(t, (*Response)(nil).Clone())

	code := "429"
	rsp := &Response{
		ID:      "rsp-1",
		Model:   "gpt-4o-mini",
		Choices: []Choice{{Message: NewAssistantMessage("ok")}},
		Usage:   &Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		Error:   &ResponseError{Message: "rate limited", Type: ErrorTypeAPIError, Code: &code},
	}

	clone := rsp.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, rsp.ID, clone.ID)
	assert.Equal(t, rsp.Usage.TotalTokens, clone.Usage.TotalTokens)
	assert.Equal(t, rsp.Error.Message, clone.Error.Message)

	// Mutating the clone must not touch the original.
	clone.Choices[0].Message.Content = "changed"
	clone.Usage.TotalTokens = 0
	assert.Equal(t, "ok", rsp.Choices[0].Message.Content)
	assert.Equal(t, 15, rsp.Usage.TotalTokens)
}
