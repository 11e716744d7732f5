package repository

import (
	"context"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

var _ DraftRepository = (*CachedDraftRepository)(nil)

// CachedDraftRepository reads through a DraftCache in front of a
// DraftRepository. Cache failures are logged and fall back to the store.
type CachedDraftRepository struct {
	store  DraftRepository
	cache  DraftCache
	logger *logging.LoggerV2
}

func NewCachedDraftRepository(store DraftRepository, cache DraftCache) *CachedDraftRepository {
	return &CachedDraftRepository{
		store:  store,
		cache:  cache,
		logger: logging.NewLoggerV2("draft-repository"),
	}
}

func (r *CachedDraftRepository) Create(ctx context.Context, draft *models.Draft) error {
	if err := r.store.Create(ctx, draft); err != nil {
		return err
	}
	r.fill(ctx, draft)
	return nil
}

func (r *CachedDraftRepository) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	if cached, err := r.cache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	draft, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.fill(ctx, draft)
	return draft, nil
}

func (r *CachedDraftRepository) Update(ctx context.Context, draft *models.Draft) error {
	if err := r.store.Update(ctx, draft); err != nil {
		return err
	}
	r.fill(ctx, draft)
	return nil
}

func (r *CachedDraftRepository) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.logger.Warn("Failed to evict draft", logging.Fields{"draft_id": id, "error": err.Error()})
	}
	return r.store.Delete(ctx, id)
}

func (r *CachedDraftRepository) ListByTerminal(ctx context.Context, terminalID string) ([]*models.Draft, error) {
	return r.store.ListByTerminal(ctx, terminalID)
}

func (r *CachedDraftRepository) fill(ctx context.Context, draft *models.Draft) {
	if err := r.cache.Set(ctx, draft); err != nil {
		r.logger.Warn("Failed to cache draft", logging.Fields{"draft_id": draft.ID, "error": err.Error()})
	}
}
