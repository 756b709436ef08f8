package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"github.com/svergara/heladeria-api/pkg/pagination"
)

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination     *pagination.PaginationParams
	Status         *enum.SaleStatus
	CustomerID     *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string // "date" or "total"
	SortOrder      string
	SkipUserFilter bool // If true, returns all operators' sales (admin views)
}

// SaleItemFilterParams narrows a product's sale-line history
type SaleItemFilterParams struct {
	Pagination  *pagination.PaginationParams
	Status      *enum.SaleStatus
	MinQuantity *int
	MaxQuantity *int
	MinRevenue  *int64 // cents
	MaxRevenue  *int64 // cents
}

// ProductSalesStats summarizes a product's sale-line history
type ProductSalesStats struct {
	UnitsSold        int64 `json:"units_sold"`
	Revenue          int64 `json:"revenue"`           // cents, COMPLETED only
	PendingUnits     int64 `json:"pending_units"`
	PendingRevenue   int64 `json:"pending_revenue"`   // cents
	PotentialRevenue int64 `json:"potential_revenue"` // cents, revenue + pending
}

// MonthlyUnitsRow is one month of a product's unit sales
type MonthlyUnitsRow struct {
	Month string `json:"month"` // "2006-01"
	Units int64  `json:"units"`
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
	// Delete physically removes the sale and, by cascade, its items
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteBatch removes multiple sales and returns how many were deleted
	DeleteBatch(ctx context.Context, ids []uuid.UUID) (int64, error)
	// UpdateStatusBatch sets the status on multiple sales at once
	UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status enum.SaleStatus) (int64, error)
	List(ctx context.Context, userID uuid.UUID, params *SaleFilterParams) ([]entity.Sale, int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// GetOrCreateCart returns the operator's open CART sale, creating it when
	// absent. Uniqueness is enforced by a partial unique index on
	// (user_id) WHERE status = CART; a concurrent create loses the race and
	// re-reads the winner's row.
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*entity.Sale, error)

	// Cart line operations
	AddOrIncrementItem(ctx context.Context, saleID, productID uuid.UUID, quantity int) (*entity.SaleItem, error)
	UpdateItemQuantity(ctx context.Context, saleID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, saleID, productID uuid.UUID) error
	ClearItems(ctx context.Context, saleID uuid.UUID) error
	GetItems(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error)
	// UpdateItems persists snapshot prices written at checkout
	UpdateItems(ctx context.Context, items []entity.SaleItem) error

	// Product sale-line history (admin product detail)
	ListItemsByProduct(ctx context.Context, productID uuid.UUID, params *SaleItemFilterParams) ([]entity.SaleItem, int64, error)
	ProductStats(ctx context.Context, productID uuid.UUID) (*ProductSalesStats, error)
	ProductMonthlyUnits(ctx context.Context, productID uuid.UUID) ([]MonthlyUnitsRow, error)
}
