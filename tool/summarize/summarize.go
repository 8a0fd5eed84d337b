// Package summarize provides atomic summarization tools. The summarize
// agent calls them once per chunk and once for the final merge.
package summarize

import (
	"context"
	"fmt"

	"github.com/agentacademy/go-agents/internal/structured"
	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/tool"
	"github.com/agentacademy/go-agents/tool/function"
)

const chunkPrompt = `You are a precise summarization assistant.
You will receive ONE CHUNK from a larger document.
Your job is to:
1. Write a concise summary of this chunk only.
2. Extract up to 5 key takeaways from this chunk.
Keep your response focused on what is in this chunk alone.`

const fullPrompt = `You are a precise summarization assistant.
You will receive a complete piece of text.
Your job is to:
1. Write a concise, coherent summary.
2. Extract up to 7 key takeaways - the most important insights a reader should remember.
Be objective and thorough.`

const mergePrompt = `You are a precise summarization assistant.
You will receive several chunk summaries that together cover a large document.
Your job is to:
1. Write a single, unified, coherent summary of the entire document.
2. Extract up to 7 key takeaways - the most important insights from the whole document.
Do not mention that the text was split into chunks.`

// Input is one summarization request.
type Input struct {
	Text string `json:"text" description:"The text to summarize."`
	// IsChunk marks text that is one chunk of a larger document, which
	// switches the tool to chunk-focused instructions.
	IsChunk bool `json:"is_chunk,omitempty" description:"True when this text is one chunk of a larger document."`
}

// Output is the structured result of one summarization call.
type Output struct {
	Summary      string   `json:"summary" description:"Concise summary of the input text."`
	KeyTakeaways []string `json:"key_takeaways" description:"Bullet-point key takeaways extracted from the text."`
}

func outputSchema() (map[string]any, error) {
	return structured.SchemaMap(&tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"summary":       {Type: "string"},
			"key_takeaways": {Type: "array", Items: &tool.Schema{Type: "string"}},
		},
		Required:             []string{"summary", "key_takeaways"},
		AdditionalProperties: false,
	})
}

// New creates the summarize tool. The model is passed in so the tool stays
// stateless and reusable.
func New(m model.Model) *function.FunctionTool[Input, Output] {
	return function.New(
		func(ctx context.Context, input Input) (Output, error) {
			system := fullPrompt
			if input.IsChunk {
				system = chunkPrompt
			}
			return complete(ctx, m, system, input.Text)
		},
		function.WithName("summarize"),
		function.WithDescription("Summarize a piece of text and extract its key takeaways."),
	)
}

// NewMerge creates the merge tool, which folds several chunk summaries into
// one final summary. It shares the summarize input/output shapes but applies
// a dedicated merge prompt.
func NewMerge(m model.Model) *function.FunctionTool[Input, Output] {
	return function.New(
		func(ctx context.Context, input Input) (Output, error) {
			return complete(ctx, m, mergePrompt, input.Text)
		},
		function.WithName("merge_summaries"),
		function.WithDescription("Merge several chunk summaries into one unified summary."),
	)
}

func complete(ctx context.Context, m model.Model, system, text string) (Output, error) {
	schema, err := outputSchema()
	if err != nil {
		return Output{}, fmt.Errorf("build summary schema: %w", err)
	}
	var out Output
	if err := structured.CallJSON(ctx, m, system, text, "summary", schema, &out); err != nil {
		return Output{}, err
	}
	return out, nil
}
