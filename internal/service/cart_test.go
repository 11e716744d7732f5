package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

func TestAddOrIncrement_SameItemTwice(t *testing.T) {
	item := CatalogItem{ID: 7, Name: "Lapicero", Price: dec("1.50"), ApplyTax: true}

	lines := AddOrIncrement(nil, item)
	lines = AddOrIncrement(lines, item)

	require.Len(t, lines, 1)
	assert.Equal(t, int64(7), lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].TaxApplicable)
}

func TestAddOrIncrement_DoesNotMutateInput(t *testing.T) {
	item := CatalogItem{ID: 7, Name: "Lapicero", Price: dec("1.50")}
	before := []models.LineItem{{ProductID: 7, Quantity: 1, UnitPrice: dec("1.50")}}

	after := AddOrIncrement(before, item)

	assert.Equal(t, 1, before[0].Quantity)
	assert.Equal(t, 2, after[0].Quantity)
}

func TestAddOrIncrement_KeepsLinePrice(t *testing.T) {
	lines := []models.LineItem{{ProductID: 7, Quantity: 1, UnitPrice: dec("1.50")}}

	lines = AddOrIncrement(lines, CatalogItem{ID: 7, Price: dec("2.00")})

	assert.True(t, lines[0].UnitPrice.Equal(dec("1.50")))
}

func TestSetQuantity(t *testing.T) {
	lines := []models.LineItem{
		line(1, "10", 1, true),
		line(2, "20", 3, false),
		line(3, "30", 2, true),
	}

	tests := []struct {
		name      string
		productID int64
		quantity  int
		wantIDs   []int64
		wantQty   map[int64]int
	}{
		{"zero removes", 2, 0, []int64{1, 3}, map[int64]int{1: 1, 3: 2}},
		{"negative removes", 1, -4, []int64{2, 3}, map[int64]int{2: 3, 3: 2}},
		{"positive sets", 3, 9, []int64{1, 2, 3}, map[int64]int{1: 1, 2: 3, 3: 9}},
		{"unknown id is a no-op", 42, 5, []int64{1, 2, 3}, map[int64]int{1: 1, 2: 3, 3: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SetQuantity(lines, tt.productID, tt.quantity)

			ids := make([]int64, 0, len(got))
			for _, l := range got {
				ids = append(ids, l.ProductID)
				assert.Equal(t, tt.wantQty[l.ProductID], l.Quantity)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	assert.Len(t, lines, 3, "input must not be modified")
}

func TestFindLine(t *testing.T) {
	lines := []models.LineItem{line(1, "10", 1, true)}

	got, ok := FindLine(lines, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(1), got.ProductID)

	_, ok = FindLine(lines, 2)
	assert.False(t, ok)
}
