package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

const (
	customersPath = "/clients/"
	suppliersPath = "/clients/suppliers/"
)

func (c *APIClient) ListCustomers(ctx context.Context, query url.Values) ([]models.Client, error) {
	return getList[models.Client](ctx, c, customersPath, query)
}

func (c *APIClient) GetCustomer(ctx context.Context, id int64) (*models.Client, error) {
	return getOne[models.Client](ctx, c, entityPath(customersPath, id), nil)
}

func (c *APIClient) CreateCustomer(ctx context.Context, cl *models.Client) (*models.Client, error) {
	return sendJSON[models.Client](ctx, c, http.MethodPost, customersPath, cl)
}

func (c *APIClient) UpdateCustomer(ctx context.Context, id int64, cl *models.Client) (*models.Client, error) {
	return sendJSON[models.Client](ctx, c, http.MethodPut, entityPath(customersPath, id), cl)
}

func (c *APIClient) DeleteCustomer(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, entityPath(customersPath, id), nil, nil, nil)
}

func (c *APIClient) ListSuppliers(ctx context.Context, query url.Values) ([]models.Supplier, error) {
	return getList[models.Supplier](ctx, c, suppliersPath, query)
}

func (c *APIClient) GetSupplier(ctx context.Context, id int64) (*models.Supplier, error) {
	return getOne[models.Supplier](ctx, c, entityPath(suppliersPath, id), nil)
}

func (c *APIClient) CreateSupplier(ctx context.Context, s *models.Supplier) (*models.Supplier, error) {
	return sendJSON[models.Supplier](ctx, c, http.MethodPost, suppliersPath, s)
}

func (c *APIClient) UpdateSupplier(ctx context.Context, id int64, s *models.Supplier) (*models.Supplier, error) {
	return sendJSON[models.Supplier](ctx, c, http.MethodPut, entityPath(suppliersPath, id), s)
}

func (c *APIClient) DeleteSupplier(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, entityPath(suppliersPath, id), nil, nil, nil)
}
