package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

const usersPath = "/users/"

func (c *APIClient) ListUsers(ctx context.Context, query url.Values) ([]models.User, error) {
	return getList[models.User](ctx, c, usersPath, query)
}

func (c *APIClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return getOne[models.User](ctx, c, entityPath(usersPath, id), nil)
}

// CreateUser accepts a map so the password field can travel alongside the profile.
func (c *APIClient) CreateUser(ctx context.Context, data map[string]interface{}) (*models.User, error) {
	return sendJSON[models.User](ctx, c, http.MethodPost, usersPath, data)
}

func (c *APIClient) UpdateUser(ctx context.Context, id int64, data map[string]interface{}) (*models.User, error) {
	return sendJSON[models.User](ctx, c, http.MethodPut, entityPath(usersPath, id), data)
}

func (c *APIClient) DeleteUser(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, entityPath(usersPath, id), nil, nil, nil)
}
