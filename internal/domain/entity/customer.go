package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Customer represents a store customer who may buy on credit
type Customer struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Name        string              `gorm:"size:100;not null" json:"name"`
	Surname     string              `gorm:"size:100" json:"surname"`
	TaxID       string              `gorm:"size:12;uniqueIndex;not null" json:"tax_id"`
	Phone       string              `gorm:"size:20" json:"phone"`
	Address     string              `gorm:"type:text" json:"address"`
	Email       *string             `gorm:"size:255" json:"email,omitempty"`
	CreditLimit decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0" json:"credit_limit"`
	Debt        decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0" json:"debt"`
	Status      enum.CustomerStatus `gorm:"not null;default:0" json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// Relationships
	Sales    []Sale    `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Payments []Payment `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
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

// FullName joins name and surname
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.Name + " " + c.Surname)
}

// AvailableCredit is the credit limit minus the current debt
func (c *Customer) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.Debt)
}
