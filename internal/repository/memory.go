package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/errors"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

var _ DraftRepository = (*MemoryDraftRepository)(nil)

// MemoryDraftRepository keeps drafts in process memory. Drafts are deep
// copied on the way in and out so callers never share line slices.
type MemoryDraftRepository struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

func NewMemoryDraftRepository() *MemoryDraftRepository {
	return &MemoryDraftRepository{drafts: make(map[string][]byte)}
}

func (m *MemoryDraftRepository) Create(ctx context.Context, draft *models.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.drafts[draft.ID] = data
	m.mu.Unlock()
	return nil
}

// Update replaces an existing draft. The existence check and the write happen
// under one lock so a concurrent Delete is never undone.
func (m *MemoryDraftRepository) Update(ctx context.Context, draft *models.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[draft.ID]; !ok {
		return errors.ErrNotFound
	}
	m.drafts[draft.ID] = data
	return nil
}

func (m *MemoryDraftRepository) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	m.mu.RLock()
	data, ok := m.drafts[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.ErrNotFound
	}

	var draft models.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (m *MemoryDraftRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[id]; !ok {
		return errors.ErrNotFound
	}
	delete(m.drafts, id)
	return nil
}

func (m *MemoryDraftRepository) ListByTerminal(ctx context.Context, terminalID string) ([]*models.Draft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	drafts := make([]*models.Draft, 0)
	for _, data := range m.drafts {
		var draft models.Draft
		if err := json.Unmarshal(data, &draft); err != nil {
			return nil, err
		}
		if draft.TerminalID == terminalID {
			drafts = append(drafts, &draft)
		}
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
	})
	return drafts, nil
}
