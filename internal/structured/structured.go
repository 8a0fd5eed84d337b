// Package structured helps tools request schema-conforming JSON replies
// from a model and decode them into typed records.
package structured

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/tool"
)

// SchemaMap converts a tool.Schema into the generic map form expected by
// provider JSON-schema parameters.
func SchemaMap(s *tool.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	return m, nil
}

// CallJSON sends a system + user message pair with a structured-output
// schema and decodes the model's JSON reply into out. API-level failures
// reported via Response.Error are returned as errors.
func CallJSON(
	ctx context.Context,
	m model.Model,
	system, user string,
	schemaName string,
	schema map[string]any,
	out any,
) error {
	request := &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(system),
			model.NewUserMessage(user),
		},
		StructuredOutput: &model.StructuredOutput{
			Type: model.StructuredOutputJSONSchema,
			JSONSchema: &model.JSONSchemaSpec{
				Name:   schemaName,
				Schema: schema,
				Strict: true,
			},
		},
	}

	response, err := m.GenerateContent(ctx, request)
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}
	if response.Error != nil {
		return fmt.Errorf("model returned error: %s", response.Error.Message)
	}

	content := StripFences(response.Content())
	if content == "" {
		return fmt.Errorf("model returned empty content for %s", schemaName)
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decode %s reply: %w", schemaName, err)
	}
	return nil
}

// StripFences removes a wrapping markdown code fence from a model reply.
// Models occasionally wrap JSON in ```json fences despite instructions.
func StripFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return content
	}
	// Drop the opening fence line and the closing fence.
	if idx := strings.Index(trimmed, "\n"); idx != -1 {
		trimmed = trimmed[idx+1:]
	} else {
		return content
	}
	if idx := strings.LastIndex(trimmed, "```"); idx != -1 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
