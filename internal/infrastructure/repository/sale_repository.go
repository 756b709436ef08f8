package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	domainRepo "github.com/svergara/heladeria-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// saleTotalExpr computes a sale's total from its lines using the captured unit
// price, falling back to the product's current price for lines without a
// snapshot. Used for total-based sorting.
const saleTotalExpr = `(SELECT COALESCE(SUM(si.quantity * COALESCE(si.unit_price, p.price)), 0)
	FROM sale_items si
	JOIN products p ON p.id = si.product_id
	WHERE si.sale_id = sales.id)`

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *saleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.SaleItem{}, "sale_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Sale{}, "id = ?", id).Error
	})
}

// DeleteBatch removes multiple sales with their items and reports how many
// sale headers went away
func (r *saleRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.SaleItem{}, "sale_id IN ?", ids).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Sale{}, "id IN ?", ids)
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

func (r *saleRepository) UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status enum.SaleStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id IN ?", ids).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *saleRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else {
		// The open cart is scratch state, not history
		query = query.Where("status <> ?", enum.SaleStatusCart)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("sale_date < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}
	orderClause := "sale_date " + sortOrder
	if params.SortBy == "total" {
		orderClause = saleTotalExpr + " " + sortOrder
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Items.Product").
		Order(orderClause).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("user_id = ? AND status <> ?", userID, enum.SaleStatusCart).
		Count(&total).Error
	return total, err
}

// GetOrCreateCart returns the operator's open cart, creating it when absent.
// The partial unique index on (user_id) WHERE status = 0 makes the create
// racy-safe: a concurrent insert conflicts, affects no rows, and the winner's
// cart is re-read.
func (r *saleRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*entity.Sale, error) {
	var cart entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&cart, "user_id = ? AND status = ?", userID, enum.SaleStatusCart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = entity.Sale{
		UserID: userID,
		Status: enum.SaleStatusCart,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&cart)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race, fetch the winner's cart
		err = r.db.WithContext(ctx).
			Preload("Items.Product").
			First(&cart, "user_id = ? AND status = ?", userID, enum.SaleStatusCart).Error
		if err != nil {
			return nil, err
		}
	}
	return &cart, nil
}

// AddOrIncrementItem adds a product line to the sale, incrementing the
// quantity when the product is already in it
func (r *saleRepository) AddOrIncrementItem(ctx context.Context, saleID, productID uuid.UUID, quantity int) (*entity.SaleItem, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.SaleItem{}).
			Where("sale_id = ? AND product_id = ?", saleID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			item := entity.SaleItem{
				SaleID:    saleID,
				ProductID: productID,
				Quantity:  quantity,
			}
			return tx.Create(&item).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var item entity.SaleItem
	err = r.db.WithContext(ctx).
		Preload("Product").
		First(&item, "sale_id = ? AND product_id = ?", saleID, productID).Error
	return &item, err
}

func (r *saleRepository) UpdateItemQuantity(ctx context.Context, saleID, productID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Where("sale_id = ? AND product_id = ?", saleID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepository) RemoveItem(ctx context.Context, saleID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&entity.SaleItem{}, "sale_id = ? AND product_id = ?", saleID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepository) ClearItems(ctx context.Context, saleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.SaleItem{}, "sale_id = ?", saleID).Error
}

func (r *saleRepository) GetItems(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	var items []entity.SaleItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// UpdateItems persists snapshot prices written at checkout
func (r *saleRepository) UpdateItems(ctx context.Context, items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Model(&entity.SaleItem{}).
				Where("id = ?", items[i].ID).
				Updates(map[string]interface{}{
					"unit_price": items[i].UnitPrice,
					"unit_cost":  items[i].UnitCost,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *saleRepository) ListItemsByProduct(ctx context.Context, productID uuid.UUID, params *domainRepo.SaleItemFilterParams) ([]entity.SaleItem, int64, error) {
	var items []entity.SaleItem
	var total int64

	revenueExpr := "sale_items.quantity * COALESCE(sale_items.unit_price, products.price)"

	query := r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Where("sale_items.product_id = ?", productID).
		Where("sales.status <> ?", enum.SaleStatusCart)

	if params.Status != nil {
		query = query.Where("sales.status = ?", *params.Status)
	}
	if params.MinQuantity != nil {
		query = query.Where("sale_items.quantity >= ?", *params.MinQuantity)
	}
	if params.MaxQuantity != nil {
		query = query.Where("sale_items.quantity <= ?", *params.MaxQuantity)
	}
	if params.MinRevenue != nil {
		query = query.Where(revenueExpr+" >= ?", *params.MinRevenue)
	}
	if params.MaxRevenue != nil {
		query = query.Where(revenueExpr+" <= ?", *params.MaxRevenue)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Sale").
		Preload("Sale.Customer").
		Preload("Product").
		Order("sales.sale_date DESC").
		Find(&items).Error

	return items, total, err
}

func (r *saleRepository) ProductStats(ctx context.Context, productID uuid.UUID) (*domainRepo.ProductSalesStats, error) {
	var stats domainRepo.ProductSalesStats

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(si.quantity) FILTER (WHERE s.status = ?), 0) as units_sold,
			COALESCE(SUM(si.quantity * COALESCE(si.unit_price, p.price)) FILTER (WHERE s.status = ?), 0) as revenue,
			COALESCE(SUM(si.quantity) FILTER (WHERE s.status = ?), 0) as pending_units,
			COALESCE(SUM(si.quantity * COALESCE(si.unit_price, p.price)) FILTER (WHERE s.status = ?), 0) as pending_revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE si.product_id = ?
	`, enum.SaleStatusCompleted, enum.SaleStatusCompleted,
		enum.SaleStatusPending, enum.SaleStatusPending,
		productID).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	stats.PotentialRevenue = stats.Revenue + stats.PendingRevenue
	return &stats, nil
}

func (r *saleRepository) ProductMonthlyUnits(ctx context.Context, productID uuid.UUID) ([]domainRepo.MonthlyUnitsRow, error) {
	var rows []domainRepo.MonthlyUnitsRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			to_char(date_trunc('month', s.sale_date), 'YYYY-MM') as month,
			COALESCE(SUM(si.quantity), 0) as units
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE si.product_id = ? AND s.status = ?
		GROUP BY 1
		ORDER BY 1 ASC
	`, productID, enum.SaleStatusCompleted).Scan(&rows).Error

	return rows, err
}
