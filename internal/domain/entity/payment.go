package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is an amount paid by a customer against their credit debt
type Payment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	BoletaRef  string          `gorm:"size:10" json:"boleta_ref,omitempty"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaidAt     time.Time       `gorm:"not null;index" json:"paid_at"`
	CreatedAt  time.Time       `json:"created_at"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
