package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCredit   PaymentMethod = "credit"
)

type InvoiceType string

const (
	InvoiceBoleta    InvoiceType = "boleta"
	InvoiceFactura   InvoiceType = "factura"
	InvoiceNotaVenta InvoiceType = "nota_venta"
)

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// ItemRequest is one line of a sale or quote creation payload.
type ItemRequest struct {
	Product     int64           `json:"product"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description string          `json:"description,omitempty"`
}

type CreateSaleRequest struct {
	Client        *int64        `json:"client"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	InvoiceType   InvoiceType   `json:"invoice_type"`
	Notes         string        `json:"notes,omitempty"`
	Items         []ItemRequest `json:"items"`
}

type CreateQuoteRequest struct {
	Client     *int64        `json:"client"`
	ValidUntil *string       `json:"valid_until"`
	Notes      string        `json:"notes"`
	Terms      string        `json:"terms"`
	Items      []ItemRequest `json:"items"`
}

type DocumentItem struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"igv"`
	Total       decimal.Decimal `json:"total"`
}

type Invoice struct {
	ID          int64       `json:"id"`
	SaleID      int64       `json:"sale"`
	InvoiceType InvoiceType `json:"invoice_type"`
	TypeDisplay string      `json:"invoice_type_display,omitempty"`
	Series      string      `json:"series"`
	Number      string      `json:"number"`
	IssuedAt    time.Time   `json:"issued_at,omitempty"`
}

type Sale struct {
	ID            int64           `json:"id"`
	ClientName    string          `json:"client_name,omitempty"`
	SellerName    string          `json:"seller_name,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"igv"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        SaleStatus      `json:"status"`
	Items         []DocumentItem  `json:"items,omitempty"`
	Invoice       *Invoice        `json:"invoice,omitempty"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

type Quote struct {
	ID          int64           `json:"id"`
	QuoteNumber string          `json:"quote_number"`
	ClientName  string          `json:"client_name,omitempty"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"igv"`
	Total       decimal.Decimal `json:"total"`
	Status      QuoteStatus     `json:"status"`
	ValidUntil  *string         `json:"valid_until,omitempty"`
	Items       []DocumentItem  `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}
