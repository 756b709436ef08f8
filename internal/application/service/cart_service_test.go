package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/enum"
)

func newCartFixture(products ...*entity.Product) (*CartService, *mockSaleRepo, *mockProductRepo, *mockCustomerRepo, *mockReceiptSender) {
	saleRepo := newMockSaleRepo()
	productRepo := newMockProductRepo(products...)
	customerRepo := newMockCustomerRepo()
	receipts := &mockReceiptSender{}
	svc := NewCartService(saleRepo, productRepo, customerRepo, receipts)
	return svc, saleRepo, productRepo, customerRepo, receipts
}

func activeProduct(name string, priceCents, costCents int64, stock int) *entity.Product {
	return &entity.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     priceCents,
		CostPrice: costCents,
		Stock:     stock,
		Active:    true,
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 50)
	svc, _, _, _, _ := newCartFixture(cone)
	userID := uuid.New()

	cart, err := svc.AddItem(context.Background(), userID, cone.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, err = svc.AddItem(context.Background(), userID, cone.ID, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	retired := activeProduct("Descontinuado", 1000, 400, 10)
	retired.Active = false
	svc, _, _, _, _ := newCartFixture(retired)

	_, err := svc.AddItem(context.Background(), uuid.New(), retired.ID, 1)
	assert.Error(t, err)
}

func TestAddItemFloorsQuantityAtOne(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 50)
	svc, _, _, _, _ := newCartFixture(cone)

	cart, err := svc.AddItem(context.Background(), uuid.New(), cone.ID, -4)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCheckoutEmptyCartFails(t *testing.T) {
	svc, _, _, _, _ := newCartFixture()

	_, err := svc.Checkout(context.Background(), uuid.New(), nil)
	assert.Error(t, err)
}

func TestCheckoutSnapshotsPricesAndDecrementsStock(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 10)
	svc, saleRepo, productRepo, _, _ := newCartFixture(cone)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, cone.ID, 3)
	require.NoError(t, err)

	sale, err := svc.Checkout(context.Background(), userID, nil)
	require.NoError(t, err)

	assert.Equal(t, enum.SaleStatusPending, sale.Status)
	assert.False(t, sale.SaleDate.IsZero())

	require.Len(t, sale.Items, 1)
	require.NotNil(t, sale.Items[0].UnitPrice)
	require.NotNil(t, sale.Items[0].UnitCost)
	assert.Equal(t, int64(1500), *sale.Items[0].UnitPrice)
	assert.Equal(t, int64(600), *sale.Items[0].UnitCost)

	assert.Equal(t, 7, cone.Stock)
	require.Len(t, productRepo.decrements, 1)
	assert.Empty(t, productRepo.increments)
	assert.Empty(t, saleRepo.statusUpdates)
}

func TestCheckoutInsufficientStockFailsWholeCart(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 1)
	svc, _, productRepo, _, _ := newCartFixture(cone)
	productRepo.failStock = []uuid.UUID{cone.ID}
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, cone.ID, 5)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), userID, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cucurucho")

	// Nothing was decremented, nothing needs restoring
	assert.Empty(t, productRepo.decrements)
	assert.Empty(t, productRepo.increments)
}

func TestCheckoutRestoresStockWhenPersistFails(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 10)
	svc, saleRepo, productRepo, _, _ := newCartFixture(cone)
	saleRepo.updateItemsErr = errors.New("connection reset")
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, cone.ID, 4)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), userID, nil)
	require.Error(t, err)

	// The decrement happened and was compensated
	require.Len(t, productRepo.decrements, 1)
	require.Len(t, productRepo.increments, 1)
	assert.Equal(t, 10, cone.Stock)
}

func TestCheckoutSendsReceiptWhenOptedIn(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 10)
	svc, _, _, customerRepo, receipts := newCartFixture(cone)

	customer := &entity.Customer{
		ID:               uuid.New(),
		FirstName:        "Ana",
		LastName:         "Reyes",
		Email:            "ana@example.com",
		SendReceiptEmail: true,
	}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	userID := uuid.New()
	_, err := svc.AddItem(context.Background(), userID, cone.ID, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), userID, &customer.ID)
	require.NoError(t, err)

	require.Len(t, receipts.sent, 1)
	assert.Equal(t, "ana@example.com", receipts.sent[0])
}

func TestCheckoutReceiptFailureDoesNotFailSale(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 10)
	svc, _, _, customerRepo, receipts := newCartFixture(cone)
	receipts.err = errors.New("smtp down")

	customer := &entity.Customer{
		ID:               uuid.New(),
		FirstName:        "Ana",
		Email:            "ana@example.com",
		SendReceiptEmail: true,
	}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	userID := uuid.New()
	_, err := svc.AddItem(context.Background(), userID, cone.ID, 1)
	require.NoError(t, err)

	sale, err := svc.Checkout(context.Background(), userID, &customer.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusPending, sale.Status)
}

func TestCheckoutSkipsReceiptWhenOptedOut(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 10)
	svc, _, _, customerRepo, receipts := newCartFixture(cone)

	customer := &entity.Customer{
		ID:               uuid.New(),
		FirstName:        "Ana",
		Email:            "ana@example.com",
		SendReceiptEmail: false,
	}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	userID := uuid.New()
	_, err := svc.AddItem(context.Background(), userID, cone.ID, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), userID, &customer.ID)
	require.NoError(t, err)
	assert.Empty(t, receipts.sent)
}

func TestCheckoutUnknownCustomerFails(t *testing.T) {
	cone := activeProduct("Cucurucho", 1500, 600, 10)
	svc, _, _, _, _ := newCartFixture(cone)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, cone.ID, 1)
	require.NoError(t, err)

	unknown := uuid.New()
	_, err = svc.Checkout(context.Background(), userID, &unknown)
	assert.Error(t, err)
}
