package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"github.com/svergara/heladeria-api/internal/domain/repository"
	"github.com/svergara/heladeria-api/pkg/apperror"
	"github.com/svergara/heladeria-api/pkg/pagination"
)

// SaleService handles sales history operations
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// GetSale retrieves a sale with its line items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering, sorted by date or computed total
func (s *SaleService) ListSales(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// UpdateStatus moves a sale to a new status, checked against the transition
// table. Cancelling restores stock.
func (s *SaleService) UpdateStatus(ctx context.Context, id uuid.UUID, target enum.SaleStatus) (*entity.Sale, error) {
	if !target.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown sale status")
	}

	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	if !sale.Status.CanTransitionTo(target) {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Cannot transition sale from %s to %s", sale.Status, target))
	}

	if target == enum.SaleStatusCancelled {
		if err := s.restoreStock(ctx, sale); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, id)
}

// Cancel cancels a sale and restores stock
func (s *SaleService) Cancel(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return s.UpdateStatus(ctx, id, enum.SaleStatusCancelled)
}

// BulkDelete physically removes sales and their line items. An empty id list
// is an explicit failure, not a silent no-op.
func (s *SaleService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.NewBadRequestError("No sales selected")
	}
	return s.saleRepo.DeleteBatch(ctx, ids)
}

// BulkUpdateStatus sets the status on multiple sales. Only PENDING and
// COMPLETED are valid bulk targets; an empty id list is an explicit failure.
func (s *SaleService) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, target enum.SaleStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.NewBadRequestError("No sales selected")
	}
	if target != enum.SaleStatusPending && target != enum.SaleStatusCompleted {
		return 0, apperror.NewBadRequestError("Bulk status change only supports PENDING or COMPLETED")
	}
	return s.saleRepo.UpdateStatusBatch(ctx, ids, target)
}

func (s *SaleService) restoreStock(ctx context.Context, sale *entity.Sale) error {
	stockIncrements := make(map[uuid.UUID]int, len(sale.Items))
	for i := range sale.Items {
		stockIncrements[sale.Items[i].ProductID] = sale.Items[i].Quantity
	}
	return s.productRepo.AtomicIncrementBatch(ctx, stockIncrements)
}
