package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// LineQuoteTotal counts line quote outcomes by requested offer type.
	LineQuoteTotal *prometheus.CounterVec
	// CartQuoteTotal counts whole-cart quote outcomes.
	CartQuoteTotal *prometheus.CounterVec
	// CartQuoteItems records how many entries each priced cart carried.
	CartQuoteItems prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers the pricing domain
// collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		LineQuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_quotes_total",
			Help:      "Count of line quote outcomes by offer type.",
		}, []string{"offer_type", "result"})
		CartQuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_quotes_total",
			Help:      "Count of cart quote outcomes.",
		}, []string{"result"})
		CartQuoteItems = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cart_quote_items",
			Help:      "Number of entries per priced cart.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		})

		mustRegisterCollector(reg, LineQuoteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				LineQuoteTotal = v
			}
		})
		mustRegisterCollector(reg, CartQuoteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartQuoteTotal = v
			}
		})
		mustRegisterCollector(reg, CartQuoteItems, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				CartQuoteItems = v
			}
		})
	})
}

// IncLineQuote records a line quote outcome. Safe before registration.
func IncLineQuote(offerType, result string) {
	if LineQuoteTotal != nil {
		LineQuoteTotal.WithLabelValues(offerType, result).Inc()
	}
}

// IncCartQuote records a cart quote outcome. Safe before registration.
func IncCartQuote(result string) {
	if CartQuoteTotal != nil {
		CartQuoteTotal.WithLabelValues(result).Inc()
	}
}

// ObserveCartItems records the size of a priced cart. Safe before
// registration.
func ObserveCartItems(n int) {
	if CartQuoteItems != nil {
		CartQuoteItems.Observe(float64(n))
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register metric: %w", err))
	}
}
