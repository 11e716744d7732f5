package models

import "time"

// DraftKind is the document a draft becomes on checkout.
type DraftKind string

const (
	DraftSale  DraftKind = "sale"
	DraftQuote DraftKind = "quote"
)

// Draft is an in-progress sale cart or quote held by the terminal until checkout.
type Draft struct {
	ID            string        `json:"id"`
	TerminalID    string        `json:"terminal_id"`
	Kind          DraftKind     `json:"kind"`
	Lines         []LineItem    `json:"lines"`
	ClientID      *int64        `json:"client_id,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	InvoiceType   InvoiceType   `json:"invoice_type,omitempty"`
	ValidUntil    *string       `json:"valid_until,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Terms         string        `json:"terms,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// DraftView is a draft together with its computed totals.
type DraftView struct {
	*Draft
	Totals Totals `json:"totals"`
}

type CreateDraftRequest struct {
	Kind          DraftKind     `json:"kind"`
	ClientID      *int64        `json:"client_id,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	InvoiceType   InvoiceType   `json:"invoice_type,omitempty"`
	ValidUntil    *string       `json:"valid_until,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Terms         string        `json:"terms,omitempty"`
}

// CheckoutResult is what a checked out draft turned into on the backend.
type CheckoutResult struct {
	DraftID string    `json:"draft_id"`
	Kind    DraftKind `json:"kind"`
	Totals  Totals    `json:"totals"`
	Sale    *Sale     `json:"sale,omitempty"`
	Quote   *Quote    `json:"quote,omitempty"`
}
