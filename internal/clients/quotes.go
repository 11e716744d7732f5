package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

const quotesPath = "/quotes/"

func (c *APIClient) ListQuotes(ctx context.Context, query url.Values) ([]models.Quote, error) {
	return getList[models.Quote](ctx, c, quotesPath, query)
}

func (c *APIClient) GetQuote(ctx context.Context, id int64) (*models.Quote, error) {
	return getOne[models.Quote](ctx, c, entityPath(quotesPath, id), nil)
}

func (c *APIClient) CreateQuote(ctx context.Context, req *models.CreateQuoteRequest) (*models.Quote, error) {
	return sendJSON[models.Quote](ctx, c, http.MethodPost, quotesPath, req)
}

func (c *APIClient) UpdateQuote(ctx context.Context, id int64, req *models.CreateQuoteRequest) (*models.Quote, error) {
	return sendJSON[models.Quote](ctx, c, http.MethodPut, entityPath(quotesPath, id), req)
}

func (c *APIClient) DeleteQuote(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, entityPath(quotesPath, id), nil, nil, nil)
}

func (c *APIClient) SendQuote(ctx context.Context, id int64) (*models.Quote, error) {
	return c.quoteAction(ctx, id, "send")
}

func (c *APIClient) AcceptQuote(ctx context.Context, id int64) (*models.Quote, error) {
	return c.quoteAction(ctx, id, "accept")
}

func (c *APIClient) RejectQuote(ctx context.Context, id int64) (*models.Quote, error) {
	return c.quoteAction(ctx, id, "reject")
}

func (c *APIClient) quoteAction(ctx context.Context, id int64, action string) (*models.Quote, error) {
	return sendJSON[models.Quote](ctx, c, http.MethodPost, entityPath(quotesPath, id)+action+"/", nil)
}
