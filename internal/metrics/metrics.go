// Package metrics exposes Prometheus collectors for HTTP traffic and store activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	SalesTotal          *prometheus.CounterVec
	SalesAmount         *prometheus.CounterVec
	PaymentsTotal       prometheus.Counter
	DebtsSettled        prometheus.Counter
	ReceiptsTotal       prometheus.Counter
	StockRejections     prometheus.Counter
	EventPublishFailure *prometheus.CounterVec
}

// New creates the collectors and registers them on reg
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		SalesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_total",
			Help:      "Registered sales by payment type.",
		}, []string{"payment_type"}),
		SalesAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_amount_total",
			Help:      "Declared sale totals by payment type.",
		}, []string{"payment_type"}),
		PaymentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credit_payments_total",
			Help:      "Payments applied to customer debt.",
		}),
		DebtsSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credit_debts_settled_total",
			Help:      "Payments that brought a customer's debt to zero.",
		}),
		ReceiptsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goods_receipts_total",
			Help:      "Goods receipts registered against purchase orders.",
		}),
		StockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_rejected_insufficient_stock_total",
			Help:      "Sales rejected because a line exceeded stock.",
		}),
		EventPublishFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Domain events that could not be published.",
		}, []string{"event"}),
	}

	reg.MustRegister(
		m.HTTPRequests, m.HTTPDuration,
		m.SalesTotal, m.SalesAmount,
		m.PaymentsTotal, m.DebtsSettled,
		m.ReceiptsTotal, m.StockRejections,
		m.EventPublishFailure,
	)
	return m
}

func (m *Metrics) SaleRegistered(paymentType string, amount float64) {
	if m == nil {
		return
	}
	m.SalesTotal.WithLabelValues(paymentType).Inc()
	m.SalesAmount.WithLabelValues(paymentType).Add(amount)
}

func (m *Metrics) SaleRejectedForStock() {
	if m == nil {
		return
	}
	m.StockRejections.Inc()
}

func (m *Metrics) PaymentApplied(settled bool) {
	if m == nil {
		return
	}
	m.PaymentsTotal.Inc()
	if settled {
		m.DebtsSettled.Inc()
	}
}

func (m *Metrics) ReceiptCreated() {
	if m == nil {
		return
	}
	m.ReceiptsTotal.Inc()
}

func (m *Metrics) PublishFailed(eventName string) {
	if m == nil {
		return
	}
	m.EventPublishFailure.WithLabelValues(eventName).Inc()
}
