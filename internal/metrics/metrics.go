// Package metrics counts what one export run did, in Prometheus form.
//
// A Run owns its own registry, so nothing leaks into the global default one, and it can be dumped
// in text exposition format for the node-exporter textfile collector.  Every method is safe to
// call on a nil *Run, which is what callers get when metrics are switched off.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Link lookup outcomes.
const (
	LookupHit   = "hit"
	LookupFetch = "fetch"
	LookupError = "error"
)

type Run struct {
	registry *prometheus.Registry

	PagesExported prometheus.Counter
	PagesFailed   prometheus.Counter
	LinkLookups   *prometheus.CounterVec
	IndexFiles    prometheus.Counter
}

func NewRun() *Run {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Run{
		registry: reg,

		PagesExported: factory.NewCounter(prometheus.CounterOpts{
			Name: "notion_mdx_pages_exported_total",
			Help: "Pages converted and written to disk",
		}),
		PagesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "notion_mdx_pages_failed_total",
			Help: "Pages that could not be converted or written",
		}),
		LinkLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notion_mdx_link_lookups_total",
			Help: "Internal link lookups, by outcome",
		}, []string{"result"}),
		IndexFiles: factory.NewCounter(prometheus.CounterOpts{
			Name: "notion_mdx_index_files_total",
			Help: "Directory index files written",
		}),
	}
}

func (r *Run) PageExported() {
	if r == nil {
		return
	}
	r.PagesExported.Inc()
}

func (r *Run) PageFailed() {
	if r == nil {
		return
	}
	r.PagesFailed.Inc()
}

func (r *Run) LinkLookup(result string) {
	if r == nil {
		return
	}
	r.LinkLookups.WithLabelValues(result).Inc()
}

func (r *Run) IndexWritten() {
	if r == nil {
		return
	}
	r.IndexFiles.Inc()
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (r *Run) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes every metric to path, atomically.
func (r *Run) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: couldn't write %s: %w", path, err)
	}
	return nil
}
