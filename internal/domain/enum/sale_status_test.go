package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    SaleStatus
		to      SaleStatus
		allowed bool
	}{
		{"cart to pending", SaleStatusCart, SaleStatusPending, true},
		{"cart to completed", SaleStatusCart, SaleStatusCompleted, false},
		{"cart to cancelled", SaleStatusCart, SaleStatusCancelled, false},
		{"pending to completed", SaleStatusPending, SaleStatusCompleted, true},
		{"pending to cancelled", SaleStatusPending, SaleStatusCancelled, true},
		{"pending back to cart", SaleStatusPending, SaleStatusCart, false},
		{"completed to cancelled", SaleStatusCompleted, SaleStatusCancelled, true},
		{"completed back to pending", SaleStatusCompleted, SaleStatusPending, false},
		{"cancelled is terminal", SaleStatusCancelled, SaleStatusPending, false},
		{"cancelled to completed", SaleStatusCancelled, SaleStatusCompleted, false},
		{"no self transition", SaleStatusPending, SaleStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseSaleStatus(t *testing.T) {
	for _, status := range []SaleStatus{SaleStatusCart, SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled} {
		parsed, ok := ParseSaleStatus(status.String())
		assert.True(t, ok)
		assert.Equal(t, status, parsed)
	}

	_, ok := ParseSaleStatus("SHIPPED")
	assert.False(t, ok)

	// Lowercase names are not accepted
	_, ok = ParseSaleStatus("pending")
	assert.False(t, ok)
}

func TestSaleStatusIsValid(t *testing.T) {
	assert.True(t, SaleStatusCart.IsValid())
	assert.True(t, SaleStatusCancelled.IsValid())
	assert.False(t, SaleStatus(-1).IsValid())
	assert.False(t, SaleStatus(4).IsValid())
}
