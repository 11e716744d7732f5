package repository

import (
	"context"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

// DraftRepository persists drafts between terminal restarts.
type DraftRepository interface {
	Create(ctx context.Context, draft *models.Draft) error
	GetByID(ctx context.Context, id string) (*models.Draft, error)
	Update(ctx context.Context, draft *models.Draft) error
	Delete(ctx context.Context, id string) error
	ListByTerminal(ctx context.Context, terminalID string) ([]*models.Draft, error)
}

// DraftCache defines caching operations for drafts.
type DraftCache interface {
	Get(ctx context.Context, id string) (*models.Draft, error)
	Set(ctx context.Context, draft *models.Draft) error
	Delete(ctx context.Context, id string) error
}
