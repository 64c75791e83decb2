// Package metrics exposes Prometheus instrumentation for the transcription
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder counts pipeline outcomes and observes latencies. A nil Recorder
// is valid and records nothing, so tests can leave it out.
type Recorder struct {
	transcriptionsTotal  *prometheus.CounterVec
	transcriptionSeconds *prometheus.HistogramVec
	enhancementsTotal    *prometheus.CounterVec
	enhancementSeconds   prometheus.Histogram
	uploadedBytes        prometheus.Counter
	audioDurationSeconds prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		transcriptionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whisperui",
			Name:      "transcriptions_total",
			Help:      "Transcription attempts by model and outcome.",
		}, []string{"model", "outcome"}),
		transcriptionSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "whisperui",
			Name:      "transcription_duration_seconds",
			Help:      "Wall-clock time spent in the recognition engine.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"model"}),
		enhancementsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whisperui",
			Name:      "enhancements_total",
			Help:      "LLM enhancement attempts by outcome.",
		}, []string{"outcome"}),
		enhancementSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "whisperui",
			Name:      "enhancement_duration_seconds",
			Help:      "Wall-clock time spent in the LLM.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		uploadedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "whisperui",
			Name:      "uploaded_bytes_total",
			Help:      "Total bytes of accepted audio uploads.",
		}),
		audioDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "whisperui",
			Name:      "audio_duration_seconds",
			Help:      "Measured duration of accepted audio uploads.",
			Buckets:   []float64{1, 5, 10, 15, 20, 25, 30},
		}),
	}
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// ObserveTranscription records one engine run.
func (r *Recorder) ObserveTranscription(model string, seconds float64, err error) {
	if r == nil {
		return
	}
	r.transcriptionsTotal.WithLabelValues(model, outcome(err)).Inc()
	if err == nil {
		r.transcriptionSeconds.WithLabelValues(model).Observe(seconds)
	}
}

// ObserveEnhancement records one LLM run.
func (r *Recorder) ObserveEnhancement(seconds float64, err error) {
	if r == nil {
		return
	}
	r.enhancementsTotal.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		r.enhancementSeconds.Observe(seconds)
	}
}

// ObserveUpload records one accepted upload.
func (r *Recorder) ObserveUpload(sizeBytes int64, durationSeconds float64) {
	if r == nil {
		return
	}
	r.uploadedBytes.Add(float64(sizeBytes))
	r.audioDurationSeconds.Observe(durationSeconds)
}
