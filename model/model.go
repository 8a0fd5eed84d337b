// Package model provides interfaces for working with LLMs.
package model

import "context"

// Model is the interface for all language models.
//
// Error Handling Strategy:
// This interface uses a dual-layer error handling approach:
//
// 1. Function-level errors (returned as `error`):
//   - System-level failures that prevent communication
//   - Examples: nil request, network issues, invalid parameters
//
// 2. Response-level errors (Response.Error field):
//   - API-level errors returned by the model service
//   - Examples: API rate limits, content filtering, model errors
//
// Usage pattern:
//
//	response, err := model.GenerateContent(ctx, request)
//	if err != nil {
//	    // Handle system-level errors (cannot communicate).
//	    return fmt.Errorf("failed to generate content: %w", err)
//	}
//	if response.Error != nil {
//	    // Handle API-level errors (communication succeeded, but API returned error).
//	    return fmt.Errorf("API error: %s", response.Error.Message)
//	}
type Model interface {
	// GenerateContent generates content from the given request.
	// The call blocks until the model replies or fails.
	GenerateContent(ctx context.Context, request *Request) (*Response, error)

	// Info returns basic information about the model.
	Info() Info
}

// Info contains basic information about a Model.
type Info struct {
	Name string
}
