package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

const (
	salesPath    = "/sales/"
	invoicesPath = "/sales/invoices/"
)

func (c *APIClient) ListSales(ctx context.Context, query url.Values) ([]models.Sale, error) {
	return getList[models.Sale](ctx, c, salesPath, query)
}

func (c *APIClient) GetSale(ctx context.Context, id int64) (*models.Sale, error) {
	return getOne[models.Sale](ctx, c, entityPath(salesPath, id), nil)
}

func (c *APIClient) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {
	return sendJSON[models.Sale](ctx, c, http.MethodPost, salesPath, req)
}

func (c *APIClient) CancelSale(ctx context.Context, id int64) (*models.Sale, error) {
	return sendJSON[models.Sale](ctx, c, http.MethodPost, entityPath(salesPath, id)+"cancel/", nil)
}

func (c *APIClient) ListInvoices(ctx context.Context, query url.Values) ([]models.Invoice, error) {
	return getList[models.Invoice](ctx, c, invoicesPath, query)
}
