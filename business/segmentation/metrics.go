package segmentation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "segmentation_pipeline_runs_total",
			Help: "Count of segmentation pipeline runs by status.",
		},
		[]string{"status"},
	)

	PipelineTiersWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "segmentation_pipeline_tiers_written_total",
			Help: "Total number of price tier rows written by pipeline runs.",
		},
	)

	PipelineMerchantsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "segmentation_pipeline_merchants_skipped_total",
			Help: "Merchants skipped for having fewer than two scored users.",
		},
	)

	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "segmentation_pipeline_duration_seconds",
			Help:    "Wall time of full pipeline runs.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		PipelineRunsTotal,
		PipelineTiersWritten,
		PipelineMerchantsSkipped,
		PipelineDuration,
	)
}
