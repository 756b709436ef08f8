package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/pkg/pagination"
)

// StockFilter narrows product listings by stock presence
type StockFilter int

const (
	StockFilterAll StockFilter = iota
	StockFilterInStock
	StockFilterOutOfStock
)

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	Stock      StockFilter
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}

// ProductStockCounts summarizes catalog stock availability
type ProductStockCounts struct {
	Total      int64
	InStock    int64
	OutOfStock int64
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteBatch removes multiple products and returns how many were deleted
	DeleteBatch(ctx context.Context, ids []uuid.UUID) (int64, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListActive(ctx context.Context) ([]entity.Product, error)
	StockCounts(ctx context.Context) (*ProductStockCounts, error)
	// AtomicDecrementBatch decrements stock for multiple products in one
	// transaction, guarded by quantity checks. Returns the IDs that failed due
	// to insufficient stock; any failure rolls back the whole batch.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch restores stock for multiple products (cancellations)
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns categories matching search along with their product counts
	List(ctx context.Context, search string) ([]CategoryWithCount, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// CategoryWithCount pairs a category with the number of products assigned to it
type CategoryWithCount struct {
	entity.Category
	ProductCount int64 `json:"product_count"`
}
