package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/enum"
)

// SalesFilter scopes analytics aggregates. Statuses must be non-empty;
// ProductIDs empty means all products.
type SalesFilter struct {
	Statuses   []enum.SaleStatus
	ProductIDs []uuid.UUID
}

// ProductUnitsResult is one product's unit total within a window, ordered by
// units descending with product ID ascending as the tie-break.
type ProductUnitsResult struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Units     int64     `json:"units"`
}

// AnalyticsRepository aggregates sale data for reports. All windows are
// half-open: from inclusive, to exclusive.
type AnalyticsRepository interface {
	// UnitsAndRevenue returns total units and revenue (cents) in the window.
	// Revenue uses the captured unit price, falling back to the product's
	// current price for lines without a snapshot.
	UnitsAndRevenue(ctx context.Context, from, to time.Time, filter SalesFilter) (units int64, revenue int64, err error)
	// CountSales counts sale headers in the window
	CountSales(ctx context.Context, from, to time.Time, filter SalesFilter) (int64, error)
	// CountDistinctCustomers counts distinct non-null customers in the window
	CountDistinctCustomers(ctx context.Context, from, to time.Time, filter SalesFilter) (int64, error)
	// MarginRevenue returns revenue and margin (cents) over lines carrying both
	// price and cost snapshots; lines missing either are excluded from both sums
	MarginRevenue(ctx context.Context, from, to time.Time, filter SalesFilter) (revenue int64, margin int64, err error)
	// UnitsByProduct returns per-product unit totals, most sold first
	UnitsByProduct(ctx context.Context, from, to time.Time, filter SalesFilter) ([]ProductUnitsResult, error)
}
