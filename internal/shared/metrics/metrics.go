package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exported by the service.
var Registry = prometheus.NewRegistry()

var (
	assessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_assessments_total",
			Help: "Total complaints scored, by priority",
		},
		[]string{"priority"},
	)

	assessmentFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_assessment_failures_total",
			Help: "Total complaints rejected or failed, by kind",
		},
		[]string{"kind"},
	)

	priorityScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_priority_score",
			Help:    "Raw priority score per assessment",
			Buckets: []float64{0, 2, 5, 10, 15, 20, 30, 50},
		},
	)

	confidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_confidence",
			Help:    "Confidence per assessment",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)

	assessmentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_assessment_duration_seconds",
			Help:    "Scoring duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)
)

func init() {
	Registry.MustRegister(
		assessmentsTotal,
		assessmentFailuresTotal,
		priorityScore,
		confidence,
		assessmentDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveAssessment records a completed assessment.
func ObserveAssessment(priority string, score int, conf float64, elapsed time.Duration) {
	assessmentsTotal.WithLabelValues(priority).Inc()
	priorityScore.Observe(float64(score))
	confidence.Observe(conf)
	assessmentDuration.Observe(elapsed.Seconds())
}

// IncAssessmentFailed increments the failure counter for kind.
func IncAssessmentFailed(kind string) {
	assessmentFailuresTotal.WithLabelValues(kind).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry}))
}
