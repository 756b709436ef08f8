package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        string     `json:"name" binding:"required,min=2,max=255"`
	Description *string    `json:"description"`
	Price       float64    `json:"price" binding:"min=0"`
	CostPrice   float64    `json:"cost_price" binding:"min=0"`
	Stock       int        `json:"stock" binding:"min=0"`
	Image       *string    `json:"image"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price" binding:"omitempty,min=0"`
	CostPrice   *float64   `json:"cost_price" binding:"omitempty,min=0"`
	Stock       *int       `json:"stock" binding:"omitempty,min=0"`
	Active      *bool      `json:"active"`
	Image       *string    `json:"image"`
}

// CreateCategoryRequest represents a category creation or update request
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Description *string `json:"description"`
}

// BulkIDsRequest carries the id list for bulk operations
type BulkIDsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}
