package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/repository"
	"github.com/svergara/heladeria-api/pkg/apperror"
	"github.com/svergara/heladeria-api/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	saleRepo     repository.SaleRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	saleRepo repository.SaleRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		saleRepo:     saleRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name        string
	Description *string
	Price       float64
	CostPrice   float64
	Stock       int
	CategoryID  *uuid.UUID
	Image       *string
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	CostPrice   *float64
	Stock       *int
	Active      *bool
	CategoryID  *uuid.UUID
	Image       *string
}

// ProductSalesDetail bundles a product's sale-line history with its stats
type ProductSalesDetail struct {
	Product      *entity.Product                              `json:"product"`
	Stats        *repository.ProductSalesStats                `json:"stats"`
	MonthlyUnits []repository.MonthlyUnitsRow                 `json:"monthly_units"`
	Items        *pagination.PaginatedResult[entity.SaleItem] `json:"items"`
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Stock:       input.Stock,
		Active:      true,
		CategoryID:  input.CategoryID,
		Image:       input.Image,
	}
	product.SetPriceFromDecimal(input.Price)
	product.SetCostPriceFromDecimal(input.CostPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct applies a partial update to a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.CostPrice != nil {
		product.SetCostPriceFromDecimal(*input.CostPrice)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// BulkDelete removes multiple products. An empty id list is an explicit
// failure, not a silent no-op.
func (s *ProductService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.NewBadRequestError("No products selected")
	}
	return s.productRepo.DeleteBatch(ctx, ids)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListActiveProducts returns the active catalog for the POS screen
func (s *ProductService) ListActiveProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListActive(ctx)
}

// StockCounts summarizes catalog stock availability
func (s *ProductService) StockCounts(ctx context.Context) (*repository.ProductStockCounts, error) {
	return s.productRepo.StockCounts(ctx)
}

// GetProductSales returns a product's sale-line history with stats and a
// per-month units series
func (s *ProductService) GetProductSales(ctx context.Context, productID uuid.UUID, params *repository.SaleItemFilterParams) (*ProductSalesDetail, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	stats, err := s.saleRepo.ProductStats(ctx, productID)
	if err != nil {
		return nil, err
	}

	monthly, err := s.saleRepo.ProductMonthlyUnits(ctx, productID)
	if err != nil {
		return nil, err
	}

	items, total, err := s.saleRepo.ListItemsByProduct(ctx, productID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return &ProductSalesDetail{
		Product:      product,
		Stats:        stats,
		MonthlyUnits: monthly,
		Items:        pagination.NewPaginatedResult(items, pag),
	}, nil
}
