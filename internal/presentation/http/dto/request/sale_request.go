package request

import "github.com/google/uuid"

// CartItemRequest adds a product to the cart
type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1"`
}

// CartQuantityRequest sets a cart line's quantity
type CartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest confirms the cart as a sale
type CheckoutRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

// UpdateSaleStatusRequest moves a sale to a new status
type UpdateSaleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BulkStatusRequest sets a status on multiple sales
type BulkStatusRequest struct {
	IDs    []uuid.UUID `json:"ids"`
	Status string      `json:"status" binding:"required"`
}
