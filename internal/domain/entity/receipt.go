package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receipt records the goods received against a purchase order.
// An order has at most one receipt.
type Receipt struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	ReceivedAt time.Time `gorm:"not null" json:"received_at"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Order *PurchaseOrder `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"order,omitempty"`
	Lines []ReceiptLine  `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceivedQuantities maps product to received quantity
func (r *Receipt) ReceivedQuantities() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(r.Lines))
	for _, l := range r.Lines {
		out[l.ProductID] += l.Quantity
	}
	return out
}

// ReceiptLine is the quantity of one product received
type ReceiptLine struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity > 0" json:"quantity"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt line
func (l *ReceiptLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptLine model
func (ReceiptLine) TableName() string {
	return "receipt_lines"
}
