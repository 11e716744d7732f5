package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Barcode      string          `json:"barcode,omitempty"`
	CategoryID   *int64          `json:"category,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	ApplyTax     bool            `json:"apply_igv"`
	Stock        int             `json:"stock,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at,omitempty"`
}

type InventoryItem struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	MinStock    int       `json:"min_stock"`
	Location    string    `json:"location,omitempty"`
	IsLowStock  bool      `json:"is_low_stock"`
	LastUpdated time.Time `json:"last_updated,omitempty"`
}

type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

type InventoryAdjustment struct {
	MovementType MovementType `json:"movement_type"`
	Quantity     int          `json:"quantity"`
	Reason       string       `json:"reason,omitempty"`
}

type InventoryMovement struct {
	ID           int64        `json:"id"`
	ProductName  string       `json:"product_name"`
	MovementType MovementType `json:"movement_type"`
	Quantity     int          `json:"quantity"`
	Reason       string       `json:"reason"`
	UserName     string       `json:"user_name"`
	CreatedAt    time.Time    `json:"created_at"`
}
