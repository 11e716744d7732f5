package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

const inventoryPath = "/inventory/"

func (c *APIClient) ListInventory(ctx context.Context, query url.Values) ([]models.InventoryItem, error) {
	return getList[models.InventoryItem](ctx, c, inventoryPath, query)
}

func (c *APIClient) GetInventory(ctx context.Context, id int64) (*models.InventoryItem, error) {
	return getOne[models.InventoryItem](ctx, c, entityPath(inventoryPath, id), nil)
}

func (c *APIClient) AdjustInventory(ctx context.Context, id int64, adj models.InventoryAdjustment) (*models.InventoryItem, error) {
	return sendJSON[models.InventoryItem](ctx, c, http.MethodPost, entityPath(inventoryPath, id)+"adjust/", adj)
}

func (c *APIClient) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	return getList[models.InventoryItem](ctx, c, inventoryPath+"low_stock/", nil)
}

func (c *APIClient) Movements(ctx context.Context) ([]models.InventoryMovement, error) {
	return getList[models.InventoryMovement](ctx, c, inventoryPath+"movements/", nil)
}
