// Package metrics records run statistics as Prometheus metrics.
// Runs are short-lived, so metrics are written once as a node-exporter
// textfile rather than served.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/feargalr/Daedalus/internal/pkg/epitope"
	"github.com/feargalr/Daedalus/internal/pkg/logger"
)

const namespace = "acmatch"

// Recorder holds the metrics of a single run.
type Recorder struct {
	registry *prometheus.Registry

	epitopes       *prometheus.CounterVec
	uniquePeptides prometheus.Gauge
	states         prometheus.Gauge
	buildDuration  prometheus.Gauge
	proteins       prometheus.Counter
	residues       prometheus.Counter
	hits           prometheus.Counter
	scanDuration   prometheus.Histogram
	runInfo        *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		epitopes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "epitopes_total",
				Help:      "Epitope records read, by outcome",
			},
			[]string{"outcome"},
		),
		uniquePeptides: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unique_peptides",
			Help:      "Distinct peptides loaded into the automaton",
		}),
		states: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "automaton_states",
			Help:      "Number of automaton states",
		}),
		buildDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Time spent loading epitopes and building the automaton",
		}),
		proteins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proteins_scanned_total",
			Help:      "Protein sequences scanned",
		}),
		residues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "residues_scanned_total",
			Help:      "Residues scanned across all proteins",
		}),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Match rows produced",
		}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "protein_scan_duration_seconds",
			Help:      "Time spent scanning a single protein",
			Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
		runInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "run_info",
				Help:      "Run metadata",
			},
			[]string{"run_id", "version"},
		),
	}

	r.registry.MustRegister(
		r.epitopes,
		r.uniquePeptides,
		r.states,
		r.buildDuration,
		r.proteins,
		r.residues,
		r.hits,
		r.scanDuration,
		r.runInfo,
	)
	return r
}

// SetRunInfo records the run identifier and binary version.
func (r *Recorder) SetRunInfo(runID, version string) {
	r.runInfo.WithLabelValues(runID, version).Set(1)
}

// RecordEpitopes records the outcome of the epitope load.
func (r *Recorder) RecordEpitopes(stats epitope.Stats) {
	r.epitopes.WithLabelValues("kept").Add(float64(stats.Kept))
	r.epitopes.WithLabelValues("dropped").Add(float64(stats.Total - stats.Kept))
	r.uniquePeptides.Set(float64(stats.Unique))
	r.states.Set(float64(stats.States))
	r.buildDuration.Set(stats.Duration.Seconds())
}

// ObserveProtein records one scanned protein. Safe for concurrent use.
func (r *Recorder) ObserveProtein(length, hits int, elapsed time.Duration) {
	r.proteins.Inc()
	r.residues.Add(float64(length))
	r.hits.Add(float64(hits))
	r.scanDuration.Observe(elapsed.Seconds())
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	logger.Debug("Metrics written", "path", path)
	return nil
}
