package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

const reportsPath = "/reports/"

func (c *APIClient) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	return getOne[models.Dashboard](ctx, c, reportsPath+"dashboard/", nil)
}

func (c *APIClient) SalesChart(ctx context.Context, days int) ([]models.SalesPoint, error) {
	return getList[models.SalesPoint](ctx, c, reportsPath+"sales-chart/", daysQuery(days))
}

func (c *APIClient) SalesByCategory(ctx context.Context, days int) ([]models.CategorySales, error) {
	return getList[models.CategorySales](ctx, c, reportsPath+"sales-by-category/", daysQuery(days))
}

func (c *APIClient) TopProducts(ctx context.Context, days, limit int) ([]models.TopProduct, error) {
	q := daysQuery(days)
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	return getList[models.TopProduct](ctx, c, reportsPath+"top-products/", q)
}

func (c *APIClient) SalesBySeller(ctx context.Context, days int) ([]models.SellerSales, error) {
	return getList[models.SellerSales](ctx, c, reportsPath+"sales-by-seller/", daysQuery(days))
}

func (c *APIClient) InventoryReport(ctx context.Context) (models.Report, error) {
	var raw models.Report
	err := c.Do(ctx, http.MethodGet, reportsPath+"inventory/", nil, nil, &raw)
	return raw, err
}

func (c *APIClient) MonthlyComparison(ctx context.Context, months int) (*models.MonthlyComparison, error) {
	q := url.Values{}
	if months > 0 {
		q.Set("months", fmt.Sprint(months))
	}
	return getOne[models.MonthlyComparison](ctx, c, reportsPath+"monthly-comparison/", q)
}

func (c *APIClient) Accounting(ctx context.Context, query url.Values) (models.Report, error) {
	var raw models.Report
	err := c.Do(ctx, http.MethodGet, reportsPath+"accounting/", nil, query, &raw)
	return raw, err
}
