package metrics

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics exposes counters/histograms for the lead pipeline.
type PipelineMetrics struct {
	extractionTotal *prometheus.CounterVec
	submissionTotal *prometheus.CounterVec
	stageLatency    *prometheus.HistogramVec
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		extractionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadpipe",
			Subsystem: "pipeline",
			Name:      "extraction_total",
			Help:      "Total extraction attempts by outcome",
		}, []string{"outcome"}),
		submissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadpipe",
			Subsystem: "pipeline",
			Name:      "submission_total",
			Help:      "Total CRM submissions by object type and outcome",
		}, []string{"object_type", "outcome"}),
		stageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadpipe",
			Subsystem: "pipeline",
			Name:      "stage_latency_seconds",
			Help:      "Latency of each pipeline stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.extractionTotal, m.submissionTotal, m.stageLatency)
	return m
}

func (m *PipelineMetrics) ObserveExtraction(outcome string) {
	if m == nil {
		return
	}
	m.extractionTotal.WithLabelValues(outcome).Inc()
}

func (m *PipelineMetrics) ObserveSubmission(objectType, outcome string) {
	if m == nil {
		return
	}
	m.submissionTotal.WithLabelValues(objectType, outcome).Inc()
}

func (m *PipelineMetrics) ObserveStageLatency(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.stageLatency.WithLabelValues(stage).Observe(seconds)
}
