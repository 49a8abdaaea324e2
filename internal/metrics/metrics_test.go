package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBusinessCounters(t *testing.T) {
	m := New("yuyitos", prometheus.NewRegistry())

	m.SaleRegistered("credit", 2400)
	m.SaleRegistered("credit", 100)
	m.PaymentApplied(true)
	m.PaymentApplied(false)
	m.SaleRejectedForStock()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.SalesTotal.WithLabelValues("credit")))
	assert.Equal(t, float64(2500), testutil.ToFloat64(m.SalesAmount.WithLabelValues("credit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.PaymentsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DebtsSettled))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StockRejections))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SaleRegistered("cash", 1)
		m.PaymentApplied(true)
		m.ReceiptCreated()
		m.PublishFailed("sale.registered")
	})
}
