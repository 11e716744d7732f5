package clients

import (
	"context"
	"net/http"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/session"
)

// Login exchanges credentials for a token pair and stores it in the session.
func (c *APIClient) Login(ctx context.Context, username, password string) error {
	c.logger.Debug("Logging in", logging.Fields{"username": username})

	var pair models.TokenPair
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.Do(ctx, http.MethodPost, loginPath, req, nil, &pair); err != nil {
		c.logger.Error("Login failed", logging.Fields{
			"username": username,
			"error":    err.Error(),
		})
		return err
	}

	if err := c.session.SetTokens(ctx, session.Tokens{Access: pair.Access, Refresh: pair.Refresh}); err != nil {
		return err
	}

	c.logger.Info("Logged in", logging.Fields{"username": username})
	return nil
}

// Logout forgets both tokens. Unlike an expired session it does not redirect.
func (c *APIClient) Logout(ctx context.Context) error {
	c.logger.Info("Logging out")
	return c.session.ClearTokens(ctx)
}

// Me returns the profile of the logged-in operator.
func (c *APIClient) Me(ctx context.Context) (*models.User, error) {
	return getOne[models.User](ctx, c, "/users/me/", nil)
}

func (c *APIClient) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	return sendJSON[models.User](ctx, c, http.MethodPut, "/users/update_profile/", user)
}

func (c *APIClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.Do(ctx, http.MethodPost, "/users/change_password/", req, nil, nil)
}

// AppConfig fetches the backend's public configuration.
func (c *APIClient) AppConfig(ctx context.Context) (*models.AppConfig, error) {
	return getOne[models.AppConfig](ctx, c, "/config/", nil)
}
