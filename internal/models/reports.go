package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type PeriodTotal struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type Dashboard struct {
	SalesToday     PeriodTotal     `json:"sales_today"`
	SalesMonth     PeriodTotal     `json:"sales_month"`
	ExpensesMonth  decimal.Decimal `json:"expenses_month"`
	ProfitMonth    decimal.Decimal `json:"profit_month"`
	LowStockCount  int             `json:"low_stock_count"`
	ActiveClients  int             `json:"active_clients"`
	ActiveProducts int             `json:"active_products"`
	PendingQuotes  int             `json:"pending_quotes"`
}

type SalesPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type CategorySales struct {
	Category string          `json:"category_name"`
	Total    decimal.Decimal `json:"total"`
	Quantity int             `json:"quantity"`
}

type TopProduct struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductSKU   string          `json:"product_sku"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type SellerSales struct {
	SellerID   int64           `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	AvgSale    decimal.Decimal `json:"avg_sale"`
}

type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count,omitempty"`
}

type MonthlyComparison struct {
	Sales    []MonthTotal `json:"sales"`
	Expenses []MonthTotal `json:"expenses"`
}

// Report is used for report endpoints whose shape the terminal only relays.
type Report = json.RawMessage

// AppConfig mirrors the backend's public /config/ document.
type AppConfig struct {
	Name           string          `json:"name"`
	Version        string          `json:"version"`
	TaxRate        decimal.Decimal `json:"igv_rate"`
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currency_symbol"`
	CompanyName    string          `json:"company_name,omitempty"`
}
