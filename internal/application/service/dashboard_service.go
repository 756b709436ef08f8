package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"github.com/svergara/heladeria-api/internal/domain/repository"
)

// DashboardService provides the POS home screen counters
type DashboardService struct {
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	analyticsRepo repository.AnalyticsRepository,
) *DashboardService {
	return &DashboardService{
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		analyticsRepo: analyticsRepo,
	}
}

// DashboardStats represents the POS home screen counters
type DashboardStats struct {
	MySales        int64   `json:"my_sales"`
	TotalCustomers int64   `json:"total_customers"`
	TotalProducts  int64   `json:"total_products"`
	InStock        int64   `json:"in_stock"`
	OutOfStock     int64   `json:"out_of_stock"`
	TotalStock     int64   `json:"total_stock"`
	LifetimeSales  float64 `json:"lifetime_sales"`
	MonthlySales   float64 `json:"monthly_sales"`
	CartTotal      float64 `json:"cart_total"`
	CartItems      int     `json:"cart_items"`
}

// GetDashboardStats returns the operator's home screen counters
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}

	mySales, err := s.saleRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.MySales = mySales

	customerCount, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = customerCount

	stockCounts, err := s.productRepo.StockCounts(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = stockCounts.Total
	stats.InStock = stockCounts.InStock
	stats.OutOfStock = stockCounts.OutOfStock

	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		stats.TotalStock += int64(products[i].Stock)
	}

	// Lifetime and month-to-date revenue over completed sales
	completed := repository.SalesFilter{Statuses: []enum.SaleStatus{enum.SaleStatusCompleted}}
	now := time.Now()
	epoch := time.Date(2000, 1, 1, 0, 0, 0, 0, now.Location())
	horizon := now.AddDate(0, 0, 1)

	_, lifetime, err := s.analyticsRepo.UnitsAndRevenue(ctx, epoch, horizon, completed)
	if err != nil {
		return nil, err
	}
	stats.LifetimeSales = float64(lifetime) / 100

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	_, monthly, err := s.analyticsRepo.UnitsAndRevenue(ctx, startOfMonth, horizon, completed)
	if err != nil {
		return nil, err
	}
	stats.MonthlySales = float64(monthly) / 100

	cart, err := s.saleRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.CartTotal = cart.GetTotalDecimal()
	for i := range cart.Items {
		stats.CartItems += cart.Items[i].Quantity
	}

	return stats, nil
}
