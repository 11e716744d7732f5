package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

const (
	productsPath   = "/products/"
	categoriesPath = "/products/categories/"
)

func (c *APIClient) ListProducts(ctx context.Context, query url.Values) ([]models.Product, error) {
	return getList[models.Product](ctx, c, productsPath, query)
}

func (c *APIClient) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return getOne[models.Product](ctx, c, entityPath(productsPath, id), nil)
}

func (c *APIClient) GetProductByBarcode(ctx context.Context, code string) (*models.Product, error) {
	return getOne[models.Product](ctx, c, productsPath+"by_barcode/", url.Values{"code": {code}})
}

func (c *APIClient) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	return sendJSON[models.Product](ctx, c, http.MethodPost, productsPath, p)
}

func (c *APIClient) UpdateProduct(ctx context.Context, id int64, p *models.Product) (*models.Product, error) {
	return sendJSON[models.Product](ctx, c, http.MethodPut, entityPath(productsPath, id), p)
}

func (c *APIClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, entityPath(productsPath, id), nil, nil, nil)
}

func (c *APIClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	return getList[models.Category](ctx, c, categoriesPath, nil)
}

func (c *APIClient) CreateCategory(ctx context.Context, cat *models.Category) (*models.Category, error) {
	return sendJSON[models.Category](ctx, c, http.MethodPost, categoriesPath, cat)
}
