// Package metrics counts what a batch run did. Counters live on a private
// registry and are dumped in the Prometheus textfile format at the end of a
// run, since the CLI is too short-lived to be scraped.
package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Registry *prometheus.Registry

	LessonsWritten   *prometheus.CounterVec
	HashMismatches   *prometheus.CounterVec
	ItemsSkipped     *prometheus.CounterVec
	ExercisesDropped prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		LessonsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dwlg_lessons_written_total",
			Help: "Lessons written to a split file",
		}, []string{"split"}),
		HashMismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dwlg_hash_mismatches_total",
			Help: "Lessons whose content hash differs from the manifest",
		}, []string{"split"}),
		ItemsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dwlg_items_skipped_total",
			Help: "Raw inquiries without a mapped item kind",
		}, []string{"inquiry_type", "selection_type"}),
		ExercisesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dwlg_exercises_dropped_total",
			Help: "Exercises dropped because no item was kept",
		}),
	}
	m.Registry.MustRegister(m.LessonsWritten, m.HashMismatches, m.ItemsSkipped, m.ExercisesDropped)
	return m
}

// The helpers below accept a nil receiver so callers can run without metrics.

func (m *Metrics) LessonWritten(split string) {
	if m != nil {
		m.LessonsWritten.WithLabelValues(split).Inc()
	}
}

func (m *Metrics) HashMismatch(split string) {
	if m != nil {
		m.HashMismatches.WithLabelValues(split).Inc()
	}
}

func (m *Metrics) ItemSkipped(inquiryType, selectionType string) {
	if m != nil {
		m.ItemsSkipped.WithLabelValues(inquiryType, selectionType).Inc()
	}
}

func (m *Metrics) ExerciseDropped() {
	if m != nil {
		m.ExercisesDropped.Inc()
	}
}

// WriteTextfile writes all counters to path for the node exporter textfile
// collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
