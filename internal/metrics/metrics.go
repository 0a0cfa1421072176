package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FilesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modscan_files_scanned_total",
		Help: "Total number of mod files read from disk.",
	})

	FilesUnparsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modscan_files_unparsed_total",
		Help: "Total number of files no registered parser accepted.",
	})

	ParserSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modscan_parser_selections_total",
		Help: "Number of files dispatched to each parser.",
	}, []string{"parser"})

	ParserCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modscan_parser_collisions_total",
		Help: "Number of files accepted by more than one parser of the winning rank.",
	})

	DefinitionsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modscan_definitions_total",
		Help: "Definitions produced, by value type.",
	}, []string{"value_type"})

	ParseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "modscan_parse_seconds",
		Help:    "Time spent reading and parsing a single file.",
		Buckets: prometheus.DefBuckets,
	})

	ConflictsFound = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "modscan_conflicts",
		Help: "Definitions provided by more than one mod in the last run.",
	})
)

// WriteFile dumps the default registry in the text exposition format, for node_exporter's textfile collector.
func WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}
