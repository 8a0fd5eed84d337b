// Package session provides conversation history storage for agents.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/agentacademy/go-agents/model"
)

var (
	// ErrAppNameRequired is returned when a session key has no app name.
	ErrAppNameRequired = errors.New("appName is required")
	// ErrUserIDRequired is returned when a session key has no user id.
	ErrUserIDRequired = errors.New("userID is required")
	// ErrSessionNotFound is returned when the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
)

// Key identifies a session. SessionID may be empty on creation, in which
// case the service assigns one.
type Key struct {
	AppName   string
	UserID    string
	SessionID string
}

// CheckSessionKey validates a session key's app and user parts.
func (k Key) CheckSessionKey() error {
	if k.AppName == "" {
		return ErrAppNameRequired
	}
	if k.UserID == "" {
		return ErrUserIDRequired
	}
	return nil
}

// Session holds the message history of one conversation.
type Session struct {
	ID        string          `json:"id"`
	AppName   string          `json:"appName"`
	UserID    string          `json:"userID"`
	Messages  []model.Message `json:"messages"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Service is the interface that all session services must implement.
type Service interface {
	// CreateSession creates a new session. An empty key.SessionID is
	// replaced with a generated id.
	CreateSession(ctx context.Context, key Key) (*Session, error)

	// GetSession gets a session. Returns ErrSessionNotFound when absent.
	GetSession(ctx context.Context, key Key) (*Session, error)

	// DeleteSession deletes a session. Deleting an absent session is a no-op.
	DeleteSession(ctx context.Context, key Key) error

	// AppendMessages appends messages to a session's history.
	AppendMessages(ctx context.Context, key Key, messages ...model.Message) error
}
