package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer types
const (
	CustomerTypePerson  = "PERSON"
	CustomerTypeCompany = "COMPANY"
)

// Preferred sale document kinds
const (
	DocumentReceipt = "RECEIPT"
	DocumentInvoice = "INVOICE"
)

// Customer represents a registered buyer. Customers outlive sales: deleting one
// leaves its past sales with a null customer reference.
type Customer struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TaxID             string         `gorm:"size:12;unique;not null;column:tax_id" json:"tax_id"`
	FirstName         string         `gorm:"size:30;not null" json:"first_name"`
	LastName          string         `gorm:"size:50;not null" json:"last_name"`
	Type              string         `gorm:"size:10;default:'PERSON'" json:"type"`
	Address           string         `gorm:"size:100" json:"address"`
	Country           string         `gorm:"size:50;default:'Chile'" json:"country"`
	Region            string         `gorm:"size:50" json:"region"`
	City              string         `gorm:"size:50" json:"city"`
	Phone             string         `gorm:"size:14" json:"phone"`
	Email             string         `gorm:"size:255;unique;not null" json:"email"`
	PreferredLanguage string         `gorm:"size:5;default:'es'" json:"preferred_language"`
	PreferredDocument string         `gorm:"size:10;default:'RECEIPT'" json:"preferred_document"`
	SendReceiptEmail  bool           `gorm:"default:true" json:"send_receipt_email"`
	AcceptsPromos     bool           `gorm:"default:false" json:"accepts_promos"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sales []Sale `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
