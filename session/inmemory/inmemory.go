// Package inmemory provides an in-memory session service.
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/session"
)

// Service keeps sessions in a mutex-guarded map. Suitable for examples and
// tests; history is lost when the process exits.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewService creates an in-memory session service.
func NewService() *Service {
	return &Service{
		sessions: make(map[string]*session.Session),
	}
}

func mapKey(key session.Key) string {
	return fmt.Sprintf("%s/%s/%s", key.AppName, key.UserID, key.SessionID)
}

// CreateSession implements session.Service.
func (s *Service) CreateSession(_ context.Context, key session.Key) (*session.Session, error) {
	if err := key.CheckSessionKey(); err != nil {
		return nil, err
	}
	if key.SessionID == "" {
		key.SessionID = uuid.New().String()
	}

	now := time.Now()
	sess := &session.Session{
		ID:        key.SessionID,
		AppName:   key.AppName,
		UserID:    key.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[mapKey(key)] = sess
	return copySession(sess), nil
}

// GetSession implements session.Service.
func (s *Service) GetSession(_ context.Context, key session.Key) (*session.Session, error) {
	if err := key.CheckSessionKey(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[mapKey(key)]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return copySession(sess), nil
}

// DeleteSession implements session.Service.
func (s *Service) DeleteSession(_ context.Context, key session.Key) error {
	if err := key.CheckSessionKey(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, mapKey(key))
	return nil
}

// AppendMessages implements session.Service.
func (s *Service) AppendMessages(_ context.Context, key session.Key, messages ...model.Message) error {
	if err := key.CheckSessionKey(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[mapKey(key)]
	if !ok {
		return session.ErrSessionNotFound
	}
	sess.Messages = append(sess.Messages, messages...)
	sess.UpdatedAt = time.Now()
	return nil
}

// copySession returns a copy so callers cannot mutate stored state.
func copySession(sess *session.Session) *session.Session {
	clone := *sess
	clone.Messages = make([]model.Message, len(sess.Messages))
	copy(clone.Messages, sess.Messages)
	return &clone
}
