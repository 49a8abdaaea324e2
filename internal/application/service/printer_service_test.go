package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
)

type capturePrinter struct {
	jobs [][]byte
	err  error
}

func (p *capturePrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *capturePrinter) Connected(context.Context) bool { return p.err == nil }

func TestPrintSaleTicket(t *testing.T) {
	s := newSaleSetup(t)
	sale, err := s.sell(enum.PaymentTypeCredit, 2400, line(s.cola, 2))
	require.NoError(t, err)

	dev := &capturePrinter{}
	header := entity.TicketHeader{StoreName: "Almacen Yuyitos", TaxID: "76.123.456-7"}
	printer := service.NewPrinterService(dev, memSales{s.store}, memProducts{s.store}, header, "network", 32)

	ticket, err := printer.PrintSale(s.ctx, service.Actor{UserID: s.seller}, sale.ID)
	require.NoError(t, err)

	assert.Equal(t, "0000000001", ticket.BoletaNumber)
	assert.Equal(t, "$2.400", ticket.Total)
	assert.Equal(t, "Ana", ticket.Customer)
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, "Coca-Cola 1.5L", ticket.Items[0].Name)
	assert.Equal(t, "$1.200", ticket.Items[0].UnitPrice)

	require.Len(t, dev.jobs, 1)
	assert.True(t, bytes.Contains(dev.jobs[0], []byte("0000000001")))
	assert.True(t, bytes.Contains(dev.jobs[0], []byte("RUT: 76.123.456-7")))

	_, err = printer.PrintSale(s.ctx, service.Actor{UserID: uuid.New()}, sale.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestPrintFailureStillReturnsTicket(t *testing.T) {
	s := newSaleSetup(t)
	sale, err := s.sell(enum.PaymentTypeCash, 1200, line(s.cola, 1))
	require.NoError(t, err)

	dev := &capturePrinter{err: errors.New("paper out")}
	printer := service.NewPrinterService(dev, memSales{s.store}, memProducts{s.store}, entity.TicketHeader{StoreName: "Yuyitos"}, "usb", 32)

	ticket, err := printer.PrintSale(s.ctx, service.Actor{Admin: true}, sale.ID)
	assert.Error(t, err)
	require.NotNil(t, ticket)
	assert.Equal(t, sale.BoletaNumber, ticket.BoletaNumber)
	assert.False(t, printer.GetStatus(s.ctx).Connected)
}

func TestPrintProductLabel(t *testing.T) {
	s := newSaleSetup(t)
	dev := &capturePrinter{}
	printer := service.NewPrinterService(dev, memSales{s.store}, memProducts{s.store}, entity.TicketHeader{}, "none", 32)

	label, err := printer.PrintProductLabel(s.ctx, s.cola.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, s.cola.Code, label.Code)
	assert.Equal(t, "$1.200", label.Price)
	require.Len(t, dev.jobs, 1)
	assert.Equal(t, 2, bytes.Count(dev.jobs[0], []byte("{B"+s.cola.Code)))
	assert.False(t, printer.GetStatus(s.ctx).Configured)

	_, err = printer.PrintProductLabel(s.ctx, s.cola.ID, 0)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	_, err = printer.PrintProductLabel(s.ctx, uuid.New(), 1)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0", service.FormatMoney(decimal.Zero))
	assert.Equal(t, "$990", service.FormatMoney(dec(990)))
	assert.Equal(t, "$1.234.567", service.FormatMoney(dec(1234567)))
	assert.Equal(t, "$1.200,05", service.FormatMoney(decimal.RequireFromString("1200.05")))
	assert.Equal(t, "-$2.400", service.FormatMoney(dec(-2400)))
}
