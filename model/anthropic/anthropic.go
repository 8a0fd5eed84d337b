// Package anthropic provides an Anthropic (Claude) model implementation.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/agentacademy/go-agents/internal/structured"
	"github.com/agentacademy/go-agents/log"
	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/tool"
)

// defaultMaxTokens is used when the request does not set a token budget.
// The Anthropic API requires max_tokens on every request.
const defaultMaxTokens = 4096

// options contains configuration options for creating a Model.
type options struct {
	// APIKey for the Anthropic client. When empty the SDK falls back to the
	// ANTHROPIC_API_KEY environment variable.
	APIKey string
	// BaseURL overrides the API endpoint.
	BaseURL string
	// AnthropicOptions are request options passed to the underlying client.
	AnthropicOptions []anthropicopt.RequestOption
}

// Option is a function that configures an Anthropic model.
type Option func(*options)

// WithAPIKey sets the API key for the Anthropic client.
func WithAPIKey(key string) Option {
	return func(opts *options) {
		opts.APIKey = key
	}
}

// WithBaseURL sets the base URL for the Anthropic client.
func WithBaseURL(url string) Option {
	return func(opts *options) {
		opts.BaseURL = url
	}
}

// WithAnthropicOptions sets request options for the underlying client.
func WithAnthropicOptions(anthropicOpts ...anthropicopt.RequestOption) Option {
	return func(opts *options) {
		opts.AnthropicOptions = append(opts.AnthropicOptions, anthropicOpts...)
	}
}

// Model implements the model.Model interface for Anthropic's Claude models.
//
// Claude has no native response_format parameter, so structured output is
// implemented by appending a JSON-schema instruction to the last user
// message and stripping accidental markdown fences from the reply.
type Model struct {
	client anthropicsdk.Client
	name   string
}

// New creates a new Anthropic model.
func New(name string, opts ...Option) *Model {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var clientOpts []anthropicopt.RequestOption
	if o.APIKey != "" {
		clientOpts = append(clientOpts, anthropicopt.WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		clientOpts = append(clientOpts, anthropicopt.WithBaseURL(o.BaseURL))
	}
	clientOpts = append(clientOpts, o.AnthropicOptions...)

	return &Model{
		client: anthropicsdk.NewClient(clientOpts...),
		name:   name,
	}
}

// Info implements the model.Model interface.
func (m *Model) Info() model.Info {
	return model.Info{
		Name: m.name,
	}
}

// GenerateContent implements the model.Model interface.
func (m *Model) GenerateContent(
	ctx context.Context,
	request *model.Request,
) (*model.Response, error) {
	if request == nil {
		return nil, errors.New("request cannot be nil")
	}

	messages := request.Messages
	if request.StructuredOutput != nil && request.StructuredOutput.JSONSchema != nil {
		messages = appendSchemaInstruction(messages, request.StructuredOutput.JSONSchema)
	}

	maxTokens := defaultMaxTokens
	if request.MaxTokens != nil {
		maxTokens = *request.MaxTokens
	}

	params := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(m.name),
		MaxTokens: int64(maxTokens),
		System:    convertSystemMessages(messages),
		Messages:  convertMessages(messages),
		Tools:     convertTools(request.Tools),
	}
	if request.Temperature != nil {
		params.Temperature = anthropicsdk.Float(*request.Temperature)
	}
	if request.TopP != nil {
		params.TopP = anthropicsdk.Float(*request.TopP)
	}
	if len(request.Stop) > 0 {
		params.StopSequences = request.Stop
	}

	message, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return &model.Response{
			Object: model.ObjectTypeError,
			Error: &model.ResponseError{
				Message: err.Error(),
				Type:    model.ErrorTypeAPIError,
			},
			Timestamp: time.Now(),
		}, nil
	}

	return m.convertResponse(message, request.StructuredOutput != nil), nil
}

// appendSchemaInstruction appends a JSON-only instruction to the last user
// message so the model replies with a schema-conforming record.
func appendSchemaInstruction(messages []model.Message, js *model.JSONSchemaSpec) []model.Message {
	schemaBytes, err := json.MarshalIndent(js.Schema, "", "  ")
	if err != nil {
		log.Errorf("failed to marshal structured output schema %s: %v", js.Name, err)
		return messages
	}
	instruction := fmt.Sprintf(
		"\n\nRespond ONLY with valid JSON that matches this schema:\n%s\n"+
			"Do not include any explanation or markdown code fences.", schemaBytes)

	augmented := make([]model.Message, len(messages))
	copy(augmented, messages)
	for i := len(augmented) - 1; i >= 0; i-- {
		if augmented[i].Role == model.RoleUser {
			augmented[i].Content += instruction
			break
		}
	}
	return augmented
}

// convertSystemMessages collects system messages into the system prompt.
// Anthropic carries the system prompt outside the message list.
func convertSystemMessages(messages []model.Message) []anthropicsdk.TextBlockParam {
	var system []anthropicsdk.TextBlockParam
	for _, msg := range messages {
		if msg.Role == model.RoleSystem && msg.Content != "" {
			system = append(system, anthropicsdk.TextBlockParam{Text: msg.Content})
		}
	}
	return system
}

// convertMessages converts our Message format to Anthropic's format.
func convertMessages(messages []model.Message) []anthropicsdk.MessageParam {
	var result []anthropicsdk.MessageParam
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			// Handled by convertSystemMessages.
		case model.RoleAssistant:
			var blocks []anthropicsdk.ContentBlockParamUnion
			if msg.Content != "" {
				blocks = append(blocks, anthropicsdk.NewTextBlock(msg.Content))
			}
			for _, toolCall := range msg.ToolCalls {
				blocks = append(blocks, anthropicsdk.ContentBlockParamUnion{
					OfToolUse: &anthropicsdk.ToolUseBlockParam{
						ID:    toolCall.ID,
						Name:  toolCall.Function.Name,
						Input: json.RawMessage(toolCall.Function.Arguments),
					},
				})
			}
			if len(blocks) == 0 {
				continue
			}
			result = append(result, anthropicsdk.MessageParam{
				Role:    anthropicsdk.MessageParamRoleAssistant,
				Content: blocks,
			})
		case model.RoleTool:
			// Tool results travel as user-turn content blocks.
			result = append(result, anthropicsdk.MessageParam{
				Role: anthropicsdk.MessageParamRoleUser,
				Content: []anthropicsdk.ContentBlockParamUnion{
					{
						OfToolResult: &anthropicsdk.ToolResultBlockParam{
							ToolUseID: msg.ToolID,
							Content: []anthropicsdk.ToolResultBlockParamContentUnion{
								{OfText: &anthropicsdk.TextBlockParam{Text: msg.Content}},
							},
							IsError: anthropicsdk.Bool(false),
						},
					},
				},
			})
		default:
			result = append(result, anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(msg.Content)))
		}
	}
	return result
}

// convertTools converts tool declarations to Anthropic tool params.
func convertTools(tools map[string]tool.Tool) []anthropicsdk.ToolUnionParam {
	var result []anthropicsdk.ToolUnionParam
	for _, t := range tools {
		declaration := t.Declaration()
		inputSchema := anthropicsdk.ToolInputSchemaParam{}
		if declaration.InputSchema != nil {
			inputSchema.Properties = declaration.InputSchema.Properties
			inputSchema.Required = declaration.InputSchema.Required
		}
		result = append(result, anthropicsdk.ToolUnionParam{
			OfTool: &anthropicsdk.ToolParam{
				Name:        declaration.Name,
				Description: anthropicsdk.String(declaration.Description),
				InputSchema: inputSchema,
			},
		})
	}
	return result
}

// convertResponse converts an Anthropic message to our response format.
func (m *Model) convertResponse(message *anthropicsdk.Message, wantJSON bool) *model.Response {
	response := &model.Response{
		ID:        message.ID,
		Object:    model.ObjectTypeChatCompletion,
		Model:     string(message.Model),
		Timestamp: time.Now(),
	}

	assistant := model.Message{Role: model.RoleAssistant}
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropicsdk.TextBlock:
			assistant.Content += variant.Text
		case anthropicsdk.ToolUseBlock:
			assistant.ToolCalls = append(assistant.ToolCalls, model.ToolCall{
				ID:   variant.ID,
				Type: "function",
				Function: model.FunctionDefinitionParam{
					Name:      variant.Name,
					Arguments: []byte(variant.Input),
				},
			})
		}
	}
	if wantJSON {
		assistant.Content = structured.StripFences(assistant.Content)
	}

	finishReason := convertStopReason(message.StopReason)
	response.Choices = []model.Choice{{
		Index:        0,
		Message:      assistant,
		FinishReason: &finishReason,
	}}

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		response.Usage = &model.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		}
	}
	return response
}

func convertStopReason(reason anthropicsdk.StopReason) string {
	switch reason {
	case anthropicsdk.StopReasonToolUse:
		return "tool_calls"
	case anthropicsdk.StopReasonMaxTokens:
		return "length"
	default:
		return "stop"
	}
}
