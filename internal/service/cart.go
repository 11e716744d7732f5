package service

import (
	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

// CatalogItem is the part of a product a cart line is built from.
type CatalogItem struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	ApplyTax bool
}

// CatalogItemFromProduct adapts a backend product.
func CatalogItemFromProduct(p *models.Product) CatalogItem {
	return CatalogItem{ID: p.ID, Name: p.Name, Price: p.Price, ApplyTax: p.ApplyTax}
}

// AddOrIncrement bumps the quantity of the line for item, or appends a new
// line with quantity 1 at the item's price. The input slice is not modified.
func AddOrIncrement(lines []models.LineItem, item CatalogItem) []models.LineItem {
	out := make([]models.LineItem, len(lines), len(lines)+1)
	copy(out, lines)

	for i := range out {
		if out[i].ProductID == item.ID {
			out[i].Quantity++
			return out
		}
	}

	return append(out, models.LineItem{
		ProductID:     item.ID,
		Name:          item.Name,
		UnitPrice:     item.Price,
		Quantity:      1,
		TaxApplicable: item.ApplyTax,
	})
}

// SetQuantity sets the quantity of a line. A quantity of zero or less removes
// the line; this is the only way lines leave a cart.
func SetQuantity(lines []models.LineItem, productID int64, quantity int) []models.LineItem {
	out := make([]models.LineItem, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == productID {
			if quantity <= 0 {
				continue
			}
			line.Quantity = quantity
		}
		out = append(out, line)
	}
	return out
}

// FindLine returns the line for productID, if present.
func FindLine(lines []models.LineItem, productID int64) (models.LineItem, bool) {
	for _, line := range lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return models.LineItem{}, false
}
