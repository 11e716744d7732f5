package service

import (
	"fmt"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/errors"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

// ValidateLineItem checks a line before it is sent to the backend.
func ValidateLineItem(line models.LineItem) error {
	if line.ProductID <= 0 {
		return errors.NewValidationError("lines", "product ID is required for line")
	}

	if line.Quantity <= 0 {
		return errors.NewValidationError("lines", fmt.Sprintf("quantity of product %d must be positive", line.ProductID))
	}

	if line.UnitPrice.IsNegative() {
		return errors.NewValidationError("lines", fmt.Sprintf("unit price of product %d cannot be negative", line.ProductID))
	}

	if !line.UnitPrice.Equal(line.UnitPrice.Round(2)) {
		return errors.NewValidationError("lines", fmt.Sprintf("unit price of product %d must be in whole cents", line.ProductID))
	}

	return nil
}

// ValidateCreateDraftRequest validates the header fields of a new draft.
func ValidateCreateDraftRequest(req *models.CreateDraftRequest) error {
	switch req.Kind {
	case models.DraftSale, models.DraftQuote:
	default:
		return errors.NewValidationError("kind", "kind must be sale or quote")
	}

	if req.PaymentMethod != "" && !isValidPaymentMethod(req.PaymentMethod) {
		return errors.NewValidationError("payment_method", "payment method must be cash, card, transfer or credit")
	}

	if req.InvoiceType != "" && !isValidInvoiceType(req.InvoiceType) {
		return errors.NewValidationError("invoice_type", "invoice type must be boleta, factura or nota_venta")
	}

	return nil
}

// ValidateCheckout checks a draft is complete enough to become a sale or quote.
func ValidateCheckout(draft *models.Draft) error {
	if len(draft.Lines) == 0 {
		return errors.NewValidationError("lines", "at least one line is required")
	}

	for _, line := range draft.Lines {
		if err := ValidateLineItem(line); err != nil {
			return err
		}
	}

	if draft.Kind == models.DraftSale {
		// Credit sales and facturas are issued against a known client.
		if draft.PaymentMethod == models.PaymentCredit && draft.ClientID == nil {
			return errors.NewValidationError("client_id", "credit sales require a client")
		}
		if draft.InvoiceType == models.InvoiceFactura && draft.ClientID == nil {
			return errors.NewValidationError("client_id", "a factura requires a client")
		}
	}

	return nil
}

func isValidPaymentMethod(m models.PaymentMethod) bool {
	switch m {
	case models.PaymentCash, models.PaymentCard, models.PaymentTransfer, models.PaymentCredit:
		return true
	}
	return false
}

func isValidInvoiceType(t models.InvoiceType) bool {
	switch t {
	case models.InvoiceBoleta, models.InvoiceFactura, models.InvoiceNotaVenta:
		return true
	}
	return false
}
