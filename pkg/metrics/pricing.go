package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the personalized menu endpoint
	QuoteMenuLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_quote_menu_latency_seconds",
		Help:    "Latency of the personalized menu pricing handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of price resolutions served
	PriceResolutionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_resolutions_total",
		Help: "Total number of price resolutions served",
	})

	// Resolutions that fell back to the default tier (user never scored)
	PriceDefaultTierTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_default_tier_total",
		Help: "Price resolutions that fell back to the default tier",
	})
)

func Init() {
	prometheus.MustRegister(
		QuoteMenuLatency,
		PriceResolutionsTotal,
		PriceDefaultTierTotal,
	)
}
