package session

import (
	"context"
	"sync"
)

// MemoryTokenStore keeps tokens for the life of the process.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens Tokens
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Load(ctx context.Context) (Tokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens, nil
}

func (m *MemoryTokenStore) Save(ctx context.Context, tokens Tokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = tokens
	return nil
}

func (m *MemoryTokenStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = Tokens{}
	return nil
}
