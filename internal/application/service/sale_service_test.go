package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/enum"
)

func seedSale(saleRepo *mockSaleRepo, status enum.SaleStatus, items ...entity.SaleItem) *entity.Sale {
	sale := &entity.Sale{ID: uuid.New(), UserID: uuid.New(), Status: status}
	saleRepo.sales[sale.ID] = sale
	for i := range items {
		items[i].SaleID = sale.ID
	}
	saleRepo.items[sale.ID] = items
	return sale
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	saleRepo := newMockSaleRepo()
	productRepo := newMockProductRepo()
	svc := NewSaleService(saleRepo, productRepo)

	pending := seedSale(saleRepo, enum.SaleStatusPending)

	updated, err := svc.UpdateStatus(context.Background(), pending.ID, enum.SaleStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCompleted, updated.Status)

	// Completed cannot go back to pending
	_, err = svc.UpdateStatus(context.Background(), pending.ID, enum.SaleStatusPending)
	assert.Error(t, err)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	saleRepo := newMockSaleRepo()
	svc := NewSaleService(saleRepo, newMockProductRepo())
	pending := seedSale(saleRepo, enum.SaleStatusPending)

	_, err := svc.UpdateStatus(context.Background(), pending.ID, enum.SaleStatus(9))
	assert.Error(t, err)
}

func TestUpdateStatusUnknownSale(t *testing.T) {
	svc := NewSaleService(newMockSaleRepo(), newMockProductRepo())

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enum.SaleStatusCompleted)
	assert.Error(t, err)
}

func TestCancelRestoresStock(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 5)
	saleRepo := newMockSaleRepo()
	productRepo := newMockProductRepo(cone)
	svc := NewSaleService(saleRepo, productRepo)

	pending := seedSale(saleRepo, enum.SaleStatusPending, entity.SaleItem{
		ID:        uuid.New(),
		ProductID: cone.ID,
		Quantity:  3,
	})

	cancelled, err := svc.Cancel(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCancelled, cancelled.Status)

	require.Len(t, productRepo.increments, 1)
	assert.Equal(t, 3, productRepo.increments[0][cone.ID])
	assert.Equal(t, 8, cone.Stock)
}

func TestCancelCompletedSaleRestoresStock(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 5)
	saleRepo := newMockSaleRepo()
	productRepo := newMockProductRepo(cone)
	svc := NewSaleService(saleRepo, productRepo)

	completed := seedSale(saleRepo, enum.SaleStatusCompleted, entity.SaleItem{
		ID:        uuid.New(),
		ProductID: cone.ID,
		Quantity:  2,
	})

	_, err := svc.Cancel(context.Background(), completed.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, cone.Stock)
}

func TestCancelCancelledSaleFails(t *testing.T) {
	saleRepo := newMockSaleRepo()
	productRepo := newMockProductRepo()
	svc := NewSaleService(saleRepo, productRepo)

	cancelled := seedSale(saleRepo, enum.SaleStatusCancelled)

	_, err := svc.Cancel(context.Background(), cancelled.ID)
	require.Error(t, err)

	// No double restore
	assert.Empty(t, productRepo.increments)
}

func TestBulkDeleteEmptySelectionFails(t *testing.T) {
	svc := NewSaleService(newMockSaleRepo(), newMockProductRepo())

	_, err := svc.BulkDelete(context.Background(), nil)
	assert.Error(t, err)
}

func TestBulkDeleteRemovesSales(t *testing.T) {
	saleRepo := newMockSaleRepo()
	svc := NewSaleService(saleRepo, newMockProductRepo())

	a := seedSale(saleRepo, enum.SaleStatusCompleted)
	b := seedSale(saleRepo, enum.SaleStatusPending)

	deleted, err := svc.BulkDelete(context.Background(), []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestBulkUpdateStatusRestrictsTargets(t *testing.T) {
	saleRepo := newMockSaleRepo()
	svc := NewSaleService(saleRepo, newMockProductRepo())
	a := seedSale(saleRepo, enum.SaleStatusPending)

	_, err := svc.BulkUpdateStatus(context.Background(), []uuid.UUID{a.ID}, enum.SaleStatusCancelled)
	assert.Error(t, err)

	_, err = svc.BulkUpdateStatus(context.Background(), []uuid.UUID{a.ID}, enum.SaleStatusCart)
	assert.Error(t, err)

	updated, err := svc.BulkUpdateStatus(context.Background(), []uuid.UUID{a.ID}, enum.SaleStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
}

func TestBulkUpdateStatusEmptySelectionFails(t *testing.T) {
	svc := NewSaleService(newMockSaleRepo(), newMockProductRepo())

	_, err := svc.BulkUpdateStatus(context.Background(), nil, enum.SaleStatusCompleted)
	assert.Error(t, err)
}
