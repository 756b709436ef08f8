package repository

import (
	"context"
	"time"

	domainRepo "github.com/svergara/heladeria-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// itemScope builds the sale_items query scoped to the window and filter.
// Revenue expressions use the captured unit price with the product's current
// price as the fallback for lines without a snapshot.
func (r *analyticsRepository) itemScope(ctx context.Context, from, to time.Time, filter domainRepo.SalesFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Table("sale_items si").
		Joins("JOIN sales s ON s.id = si.sale_id").
		Joins("JOIN products p ON p.id = si.product_id").
		Where("s.sale_date >= ? AND s.sale_date < ?", from, to).
		Where("s.status IN ?", filter.Statuses)

	if len(filter.ProductIDs) > 0 {
		query = query.Where("si.product_id IN ?", filter.ProductIDs)
	}

	return query
}

// saleScope builds the sales query scoped to the window and filter. When the
// filter names products, only sales containing at least one of them count.
func (r *analyticsRepository) saleScope(ctx context.Context, from, to time.Time, filter domainRepo.SalesFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Table("sales s").
		Where("s.sale_date >= ? AND s.sale_date < ?", from, to).
		Where("s.status IN ?", filter.Statuses)

	if len(filter.ProductIDs) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM sale_items si WHERE si.sale_id = s.id AND si.product_id IN ?)",
			filter.ProductIDs)
	}

	return query
}

func (r *analyticsRepository) UnitsAndRevenue(ctx context.Context, from, to time.Time, filter domainRepo.SalesFilter) (int64, int64, error) {
	var result struct {
		Units   int64
		Revenue int64
	}

	err := r.itemScope(ctx, from, to, filter).
		Select("COALESCE(SUM(si.quantity), 0) as units, COALESCE(SUM(si.quantity * COALESCE(si.unit_price, p.price)), 0) as revenue").
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}

	return result.Units, result.Revenue, nil
}

func (r *analyticsRepository) CountSales(ctx context.Context, from, to time.Time, filter domainRepo.SalesFilter) (int64, error) {
	var count int64
	err := r.saleScope(ctx, from, to, filter).
		Select("COUNT(*)").
		Scan(&count).Error
	return count, err
}

func (r *analyticsRepository) CountDistinctCustomers(ctx context.Context, from, to time.Time, filter domainRepo.SalesFilter) (int64, error) {
	var count int64
	err := r.saleScope(ctx, from, to, filter).
		Where("s.customer_id IS NOT NULL").
		Select("COUNT(DISTINCT s.customer_id)").
		Scan(&count).Error
	return count, err
}

// MarginRevenue sums revenue and margin over lines carrying both price and
// cost snapshots. Lines missing either snapshot are excluded from both sums
// so the pair stays comparable.
func (r *analyticsRepository) MarginRevenue(ctx context.Context, from, to time.Time, filter domainRepo.SalesFilter) (int64, int64, error) {
	var result struct {
		Revenue int64
		Margin  int64
	}

	err := r.itemScope(ctx, from, to, filter).
		Where("si.unit_price IS NOT NULL AND si.unit_cost IS NOT NULL").
		Select("COALESCE(SUM(si.quantity * si.unit_price), 0) as revenue, COALESCE(SUM(si.quantity * (si.unit_price - si.unit_cost)), 0) as margin").
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}

	return result.Revenue, result.Margin, nil
}

func (r *analyticsRepository) UnitsByProduct(ctx context.Context, from, to time.Time, filter domainRepo.SalesFilter) ([]domainRepo.ProductUnitsResult, error) {
	var results []domainRepo.ProductUnitsResult

	err := r.itemScope(ctx, from, to, filter).
		Select("si.product_id as product_id, p.name as name, COALESCE(SUM(si.quantity), 0) as units").
		Group("si.product_id, p.name").
		Order("units DESC, product_id ASC").
		Scan(&results).Error

	return results, err
}
