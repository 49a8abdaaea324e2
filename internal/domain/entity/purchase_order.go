package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseOrder is a restocking order placed with a single supplier
type PurchaseOrder struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID  uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by_id"`
	OrderedAt   time.Time `gorm:"not null;index" json:"ordered_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Supplier  *Supplier           `gorm:"foreignKey:SupplierID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"supplier,omitempty"`
	CreatedBy *User               `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"created_by,omitempty"`
	Lines     []PurchaseOrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
	Receipt   *Receipt            `gorm:"foreignKey:OrderID" json:"receipt,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase order
func (o *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// Total sums the line subtotals
func (o *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].Subtotal())
	}
	return total
}

// HasReceipt reports whether goods for this order were received.
// Only meaningful when Receipt was preloaded.
func (o *PurchaseOrder) HasReceipt() bool {
	return o.Receipt != nil
}

// OrderedQuantities maps product to ordered quantity
func (o *PurchaseOrder) OrderedQuantities() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(o.Lines))
	for _, l := range o.Lines {
		out[l.ProductID] += l.Quantity
	}
	return out
}

// PurchaseOrderLine is one product line of a purchase order
type PurchaseOrderLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order line
func (l *PurchaseOrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrderLine model
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// Subtotal is quantity times unit price
func (l *PurchaseOrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
