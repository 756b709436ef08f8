package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"github.com/svergara/heladeria-api/internal/domain/repository"
	"github.com/svergara/heladeria-api/pkg/apperror"
	"github.com/svergara/heladeria-api/pkg/email"
)

// ReceiptSender sends sale receipt emails
type ReceiptSender interface {
	SendSaleReceipt(toEmail string, data email.ReceiptData) error
}

// CartService handles the operator's open cart and checkout
type CartService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	receipts     ReceiptSender
}

// NewCartService creates a new cart service
func NewCartService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	receipts ReceiptSender,
) *CartService {
	return &CartService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		receipts:     receipts,
	}
}

// GetCart returns the operator's open cart, creating it on first use
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Sale, error) {
	return s.saleRepo.GetOrCreateCart(ctx, userID)
}

// AddItem adds a product to the cart, incrementing the quantity when the
// product is already in it
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.Sale, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !product.Active {
		return nil, apperror.NewBadRequestError("Product is not available")
	}

	cart, err := s.saleRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.saleRepo.AddOrIncrementItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, cart.ID)
}

// UpdateItemQuantity sets a cart line's quantity, with 1 as the floor
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.Sale, error) {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.saleRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.UpdateItemQuantity(ctx, cart.ID, productID, quantity); err != nil {
		return nil, apperror.NewNotFoundError("Cart item")
	}

	return s.saleRepo.GetWithItems(ctx, cart.ID)
}

// RemoveItem removes a product line from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*entity.Sale, error) {
	cart, err := s.saleRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, apperror.NewNotFoundError("Cart item")
	}

	return s.saleRepo.GetWithItems(ctx, cart.ID)
}

// ClearCart removes every line from the cart
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.saleRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.saleRepo.ClearItems(ctx, cart.ID)
}

// Checkout confirms the cart: snapshots prices, decrements stock atomically,
// and transitions the sale to PENDING. Stock is restored if persisting the
// sale fails after the decrement.
func (s *CartService) Checkout(ctx context.Context, userID uuid.UUID, customerID *uuid.UUID) (*entity.Sale, error) {
	cart, err := s.saleRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.saleRepo.GetItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	var customer *entity.Customer
	if customerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(items))
	for i := range items {
		productIDs[i] = items[i].ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Snapshot prices and prepare stock decrements
	stockDecrements := make(map[uuid.UUID]int, len(items))
	for i := range items {
		product, exists := productMap[items[i].ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", items[i].ProductID))
		}

		price := product.Price
		cost := product.CostPrice
		items[i].UnitPrice = &price
		items[i].UnitCost = &cost

		stockDecrements[product.ID] = items[i].Quantity
	}

	// Atomically decrement stock - if any product has insufficient stock,
	// the entire operation fails
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewAppError(400, fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	if err := s.saleRepo.UpdateItems(ctx, items); err != nil {
		// Stock was already decremented - restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	cart.CustomerID = customerID
	cart.SaleDate = time.Now()
	cart.Status = enum.SaleStatusPending
	if err := s.saleRepo.Update(ctx, cart); err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	sale, err := s.saleRepo.GetWithItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	if customer != nil && customer.SendReceiptEmail && customer.Email != "" {
		s.sendReceipt(customer, sale)
	}

	return sale, nil
}

// sendReceipt emails the sale receipt. Failures are logged, not surfaced; a
// confirmed sale never fails because the mail server is down.
func (s *CartService) sendReceipt(customer *entity.Customer, sale *entity.Sale) {
	lines := make([]email.ReceiptLine, 0, len(sale.Items))
	for i := range sale.Items {
		item := &sale.Items[i]
		lines = append(lines, email.ReceiptLine{
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   float64(item.EffectiveUnitPrice()) / 100,
			Subtotal:    float64(item.Subtotal()) / 100,
		})
	}

	data := email.ReceiptData{
		CustomerName: customer.FullName(),
		SaleID:       sale.ID.String(),
		SaleDate:     sale.SaleDate,
		Lines:        lines,
		Total:        sale.GetTotalDecimal(),
	}

	if err := s.receipts.SendSaleReceipt(customer.Email, data); err != nil {
		log.Printf("Warning: failed to send receipt for sale %s: %v", sale.ID, err)
	}
}
