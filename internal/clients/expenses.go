package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

const expensesPath = "/expenses/"

func (c *APIClient) ListExpenses(ctx context.Context, query url.Values) ([]models.Expense, error) {
	return getList[models.Expense](ctx, c, expensesPath, query)
}

func (c *APIClient) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	return getOne[models.Expense](ctx, c, entityPath(expensesPath, id), nil)
}

func (c *APIClient) CreateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	return sendJSON[models.Expense](ctx, c, http.MethodPost, expensesPath, e)
}

func (c *APIClient) UpdateExpense(ctx context.Context, id int64, e *models.Expense) (*models.Expense, error) {
	return sendJSON[models.Expense](ctx, c, http.MethodPut, entityPath(expensesPath, id), e)
}

func (c *APIClient) DeleteExpense(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, entityPath(expensesPath, id), nil, nil, nil)
}

func (c *APIClient) ListExpenseCategories(ctx context.Context) ([]models.ExpenseCategory, error) {
	return getList[models.ExpenseCategory](ctx, c, expensesPath+"categories/", nil)
}
