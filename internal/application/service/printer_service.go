package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/printer"
)

// PrinterService formats sale tickets and product labels and sends them to
// the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	header      entity.TicketHeader
	printerType string
	charWidth   int
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	header entity.TicketHeader,
	printerType string,
	charWidth int,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		header:      header,
		printerType: printerType,
		charWidth:   charWidth,
	}
}

// PrinterStatus returns the current printer status information
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.Connected(ctx),
		Type:       s.printerType,
	}
}

// PrintSale prints the ticket of a sale. The ticket is returned even when
// printing fails so callers can still show it.
func (s *PrinterService) PrintSale(ctx context.Context, actor Actor, saleID uuid.UUID) (*entity.Ticket, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale, err = visibleSale(actor, sale); err != nil {
		return nil, err
	}

	ticket := BuildTicket(s.header, sale)
	if err := s.printer.Print(ctx, FormatTicket(ticket, s.charWidth)); err != nil {
		log.Error().Err(err).Str("boleta", sale.BoletaNumber).Msg("ticket print failed")
		return ticket, fmt.Errorf("failed to print ticket: %w", err)
	}
	return ticket, nil
}

// PrintProductLabel prints copies of the barcode label of a product
func (s *PrinterService) PrintProductLabel(ctx context.Context, productID uuid.UUID, copies int) (*entity.ProductLabel, error) {
	if copies < 1 || copies > 100 {
		return nil, apperror.NewInvalidInputError("copies", "must be between 1 and 100")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	label := &entity.ProductLabel{
		Code:  product.Code,
		Name:  product.Name,
		Price: FormatMoney(product.SalePrice),
	}
	if err := s.printer.Print(ctx, FormatLabel(label, s.charWidth, copies)); err != nil {
		log.Error().Err(err).Str("product_code", product.Code).Msg("label print failed")
		return label, fmt.Errorf("failed to print label: %w", err)
	}
	return label, nil
}

// BuildTicket lays out a sale for printing
func BuildTicket(header entity.TicketHeader, sale *entity.Sale) *entity.Ticket {
	ticket := &entity.Ticket{
		Header:       header,
		BoletaNumber: sale.BoletaNumber,
		Date:         sale.SoldAt.Format("02-01-2006 15:04"),
		PaymentType:  sale.PaymentType.String(),
		Total:        FormatMoney(sale.Total),
		Items:        make([]entity.TicketItem, 0, len(sale.Lines)),
	}
	if sale.Seller != nil {
		ticket.Seller = sale.Seller.FullName()
	}
	if sale.Customer != nil {
		ticket.Customer = sale.Customer.FullName()
	}

	for _, l := range sale.Lines {
		item := entity.TicketItem{
			Name:      "Producto",
			Quantity:  l.Quantity,
			UnitPrice: FormatMoney(l.UnitPrice),
			Total:     FormatMoney(l.Subtotal),
		}
		if l.Product != nil {
			item.Name = l.Product.Name
		}
		ticket.Items = append(ticket.Items, item)
	}
	return ticket
}

// FormatTicket converts a ticket into ESC/POS bytes
func FormatTicket(t *entity.Ticket, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.SizeDouble).
		Line(t.Header.StoreName).
		Size(printer.SizeNormal).
		Bold(false)
	if t.Header.Address != "" {
		doc.Line(t.Header.Address)
	}
	if t.Header.Phone != "" {
		doc.Line(t.Header.Phone)
	}
	if t.Header.TaxID != "" {
		doc.Linef("RUT: %s", t.Header.TaxID)
	}

	doc.Align(printer.AlignLeft).
		Rule('-').
		Columns("Boleta:", t.BoletaNumber).
		Columns("Fecha:", t.Date).
		Columns("Pago:", strings.ToUpper(t.PaymentType))
	if t.Seller != "" {
		doc.Columns("Vendedor:", t.Seller)
	}
	if t.Customer != "" {
		doc.Columns("Cliente:", t.Customer)
	}
	doc.Rule('-')

	for _, item := range t.Items {
		doc.Item(item.Quantity, item.Name, item.Total)
		if item.Quantity > 1 {
			doc.Linef("  @ %s c/u", item.UnitPrice)
		}
	}

	doc.Rule('-').
		Bold(true).
		Columns("TOTAL:", t.Total).
		Bold(false).
		Rule('-').
		Align(printer.AlignCenter).
		Line("Gracias por su compra").
		Align(printer.AlignLeft).
		Feed(3).
		Cut()

	return doc.Bytes()
}

// FormatLabel converts a product label into ESC/POS bytes, one cut per copy
func FormatLabel(l *entity.ProductLabel, width, copies int) []byte {
	doc := printer.NewDocument(width)
	for i := 0; i < copies; i++ {
		doc.Align(printer.AlignCenter).
			Bold(true).
			Line(l.Name).
			Bold(false).
			Barcode128(l.Code).
			Size(printer.SizeWide).
			Line(l.Price).
			Size(printer.SizeNormal).
			Feed(2).
			Cut()
	}
	return doc.Bytes()
}

// FormatMoney renders an amount in pesos with dot thousand separators,
// e.g. 2400 as "$2.400". Cents are shown only when present.
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	digits := whole.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := sign + "$" + b.String()
	if frac := d.Sub(whole); !frac.IsZero() {
		out += fmt.Sprintf(",%02d", frac.Shift(2).Round(0).IntPart())
	}
	return out
}
