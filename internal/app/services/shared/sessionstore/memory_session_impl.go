package sessionstore

import (
	"context"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/utils"
	"sync"
)

// MemoryBrowserSession keeps sessions in process memory. It is used when
// SESSION_DRIVER=memory and by tests across the app.
type MemoryBrowserSession struct {
	mu       sync.Mutex
	sessions map[string]map[string]string
}

func NewMemoryBrowserSession() *MemoryBrowserSession {
	return &MemoryBrowserSession{sessions: make(map[string]map[string]string)}
}

func (s *MemoryBrowserSession) Get(ctx context.Context, key string) (string, bool, error) {
	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		return "", false, exceptions.ErrSessionMissing(nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	value, found := s.sessions[sessionID][key]
	return value, found, nil
}

func (s *MemoryBrowserSession) Set(ctx context.Context, key, value string) error {
	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		return exceptions.ErrSessionMissing(nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[sessionID] == nil {
		s.sessions[sessionID] = make(map[string]string)
	}
	s.sessions[sessionID][key] = value
	return nil
}

func (s *MemoryBrowserSession) Clear(ctx context.Context) error {
	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		return exceptions.ErrSessionMissing(nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

var _ contracts.BrowserSession = (*MemoryBrowserSession)(nil)
