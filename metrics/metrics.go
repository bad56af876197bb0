package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess          = "success"
	OutcomeQuoteUnavailable = "quote_unavailable"
	OutcomeInvalidInput     = "invalid_input"
	OutcomeTransportError   = "transport_error"
)

// ConversionMetrics groups the counters kept by the conversion service.
type ConversionMetrics struct {
	ConversionsTotal   *prometheus.CounterVec
	QuoteFetchDuration prometheus.Histogram
	QuoteFetchErrors   prometheus.Counter
	LastQuote          prometheus.Gauge
}

func NewConversionMetrics(reg prometheus.Registerer) *ConversionMetrics {
	factory := promauto.With(reg)

	return &ConversionMetrics{
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_total",
				Help: "Number of conversion attempts by payment type and outcome",
			},
			[]string{"payment_type", "outcome"},
		),

		QuoteFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quote_fetch_duration_seconds",
				Help:    "Time spent fetching the quote from the remote API",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
		),

		QuoteFetchErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quote_fetch_errors_total",
				Help: "Number of quote requests that failed at the transport level",
			},
		),

		LastQuote: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "quote_last_ask",
				Help: "Last ask price returned by the quote API",
			},
		),
	}
}

// Nop returns metrics registered nowhere, for callers that do not export them.
func Nop() *ConversionMetrics {
	return NewConversionMetrics(prometheus.NewRegistry())
}

func (m *ConversionMetrics) Conversion(paymentType, outcome string) {
	if m == nil {
		return
	}

	m.ConversionsTotal.WithLabelValues(paymentType, outcome).Inc()
}

func (m *ConversionMetrics) QuoteFetched(seconds, ask float64, err error) {
	if m == nil {
		return
	}

	m.QuoteFetchDuration.Observe(seconds)

	if err != nil {
		m.QuoteFetchErrors.Inc()
		return
	}

	m.LastQuote.Set(ask)
}
