package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// BoletaNumberLength is the width of the zero-padded sale document number
const BoletaNumberLength = 10

// Sale is a counter sale identified by its boleta number
type Sale struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BoletaNumber string            `gorm:"size:10;uniqueIndex;not null" json:"boleta_number"`
	CustomerID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"customer_id"`
	SellerID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"seller_id"`
	PaymentType  enum.PaymentType  `gorm:"not null;default:0" json:"payment_type"`
	Total        decimal.Decimal   `gorm:"type:numeric(12,2);not null;default:0" json:"total"`
	CreditStatus enum.CreditStatus `gorm:"not null;default:0;index" json:"credit_status"`
	SoldAt       time.Time         `gorm:"not null;index" json:"sold_at"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Seller   *User      `gorm:"foreignKey:SellerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"seller,omitempty"`
	Lines    []SaleLine `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// LinesTotal sums the line subtotals
func (s *Sale) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Lines {
		total = total.Add(s.Lines[i].Subtotal)
	}
	return total
}

// SaleLine is one product line of a sale
type SaleLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale line
func (l *SaleLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the subtotal in step with quantity and unit price
func (l *SaleLine) BeforeSave(tx *gorm.DB) error {
	l.ComputeSubtotal()
	return nil
}

// ComputeSubtotal sets Subtotal = Quantity x UnitPrice
func (l *SaleLine) ComputeSubtotal() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TableName returns the table name for the SaleLine model
func (SaleLine) TableName() string {
	return "sale_lines"
}
