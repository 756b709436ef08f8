package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a transaction header. A CART-status sale is the operator's
// mutable scratch state (at most one per operator, enforced by a partial unique
// index); once it leaves CART it is historical and only changes status.
// Sales are hard-deleted, and only through the explicit bulk-delete operation.
type Sale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Status     enum.SaleStatus `gorm:"default:0;index" json:"status"`
	SaleDate   time.Time       `gorm:"not null;index" json:"sale_date"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SaleDate.IsZero() {
		s.SaleDate = time.Now()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// Total sums the subtotals of the loaded line items, in cents
func (s *Sale) Total() int64 {
	var total int64
	for i := range s.Items {
		total += s.Items[i].Subtotal()
	}
	return total
}

// GetTotalDecimal returns the total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.Total()) / 100
}

// MarshalJSON includes the computed total alongside the sale fields
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(s),
		Total: s.GetTotalDecimal(),
	})
}

// SaleItem is one product line within a sale. UnitPrice and UnitCost are
// captured at checkout; a nil snapshot falls back to the product's current
// price wherever revenue is computed.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	UnitPrice *int64    `json:"-"` // Snapshot in cents, nil until checkout
	UnitCost  *int64    `json:"-"` // Snapshot in cents, nil until checkout
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// EffectiveUnitPrice returns the captured unit price, or the product's current
// price when no snapshot exists. Requires the Product association to be loaded
// for the fallback case.
func (si *SaleItem) EffectiveUnitPrice() int64 {
	if si.UnitPrice != nil {
		return *si.UnitPrice
	}
	return si.Product.Price
}

// Subtotal returns quantity x effective unit price, in cents
func (si *SaleItem) Subtotal() int64 {
	return int64(si.Quantity) * si.EffectiveUnitPrice()
}

// Margin returns quantity x (unit price - unit cost) in cents. The second
// return is false when the cost snapshot is missing and no margin can be
// computed.
func (si *SaleItem) Margin() (int64, bool) {
	if si.UnitCost == nil {
		return 0, false
	}
	return int64(si.Quantity) * (si.EffectiveUnitPrice() - *si.UnitCost), true
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	out := &struct {
		Alias
		UnitPrice *float64 `json:"unit_price,omitempty"`
		UnitCost  *float64 `json:"unit_cost,omitempty"`
		Subtotal  float64  `json:"subtotal"`
	}{
		Alias:    Alias(si),
		Subtotal: float64(si.Subtotal()) / 100,
	}
	if si.UnitPrice != nil {
		price := float64(*si.UnitPrice) / 100
		out.UnitPrice = &price
	}
	if si.UnitCost != nil {
		cost := float64(*si.UnitCost) / 100
		out.UnitCost = &cost
	}
	return json.Marshal(out)
}
