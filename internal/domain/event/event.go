// Package event carries domain events between ledgers. Handlers subscribed on
// a Bus run synchronously inside the caller's transaction; a Publisher
// forwards committed events to other processes.
package event

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Name identifies an event type
type Name string

const (
	NameSaleRegistered Name = "sale.registered"
	NamePaymentApplied Name = "payment.applied"
	NameDebtSettled    Name = "debt.settled"
	NameReceiptCreated Name = "receipt.created"
)

// Event is anything that can be dispatched on the bus
type Event interface {
	EventName() Name
}

// SaleRegistered is raised after a sale and its lines were stored
type SaleRegistered struct {
	SaleID       uuid.UUID       `json:"sale_id"`
	BoletaNumber string          `json:"boleta_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	SellerID     uuid.UUID       `json:"seller_id"`
	PaymentType  string          `json:"payment_type"`
	Total        decimal.Decimal `json:"total"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

func (SaleRegistered) EventName() Name { return NameSaleRegistered }

// PaymentApplied is raised after a payment reduced a customer's debt
type PaymentApplied struct {
	PaymentID  uuid.UUID       `json:"payment_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	DebtAfter  decimal.Decimal `json:"debt_after"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (PaymentApplied) EventName() Name { return NamePaymentApplied }

// DebtSettled is raised when a payment brings a customer's debt to zero
type DebtSettled struct {
	CustomerID uuid.UUID `json:"customer_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (DebtSettled) EventName() Name { return NameDebtSettled }

// ReceiptCreated is raised after goods for a purchase order were received
type ReceiptCreated struct {
	ReceiptID  uuid.UUID `json:"receipt_id"`
	OrderID    uuid.UUID `json:"order_id"`
	Units      int       `json:"units"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (ReceiptCreated) EventName() Name { return NameReceiptCreated }

// Handler reacts to an event. Returning an error aborts the dispatch and,
// when dispatched inside a transaction, rolls it back.
type Handler func(ctx context.Context, e Event) error

// Bus is an in-process, synchronous event dispatcher
type Bus struct {
	mu       sync.RWMutex
	handlers map[Name][]Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[Name][]Handler)}
}

// Subscribe registers h for events named name
func (b *Bus) Subscribe(name Name, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Dispatch runs every handler for e in subscription order
func (b *Bus) Dispatch(ctx context.Context, e Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[e.EventName()]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Publisher forwards committed events outside the process
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
