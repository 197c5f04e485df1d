package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/utils"
)

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore is the in-process session adapter for tests and dev runs.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]memoryEntry{},
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memoryEntry{userID: userID, expiresAt: s.now().Add(TTL)}
	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (uint, error) {
	if token == "" {
		return 0, apperrors.ErrUnauthorized
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[token]
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return 0, apperrors.ErrUnauthorized
	}
	entry.expiresAt = s.now().Add(TTL)
	s.sessions[token] = entry
	return entry.userID, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
