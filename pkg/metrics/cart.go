package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutations and promo outcomes.
type CartMetrics struct {
	mutations    *prometheus.CounterVec
	promoResults *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	promoResults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_promo_results_total",
		Help: "Promo code applications by result.",
	}, []string{"result"})
	reg.MustRegister(mutations, promoResults)
	return &CartMetrics{
		mutations:    mutations,
		promoResults: promoResults,
	}
}

// IncMutation increments the mutation counter for the named operation.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncPromoResult increments the promo result counter.
func (c *CartMetrics) IncPromoResult(result string) {
	if c == nil || c.promoResults == nil {
		return
	}
	c.promoResults.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
