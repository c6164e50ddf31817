// Package metrics provides Prometheus metrics for the plant catalog
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for one catalog instance
type Metrics struct {
	registry *prometheus.Registry

	// Operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Dataset metrics
	DatasetRows         prometheus.Gauge
	DatasetIDCollisions prometheus.Gauge
	DatasetLoadSeconds  prometheus.Gauge

	// Filter metrics
	FilterRecomputationsTotal prometheus.Counter
	FilterCacheHitsTotal      prometheus.Counter
	FilterMatchingRows        prometheus.Gauge

	// Search metrics
	SearchQueriesTotal prometheus.Counter
	SearchResultsTotal prometheus.Counter

	// Selection metrics
	SelectionOpsTotal           *prometheus.CounterVec
	SelectionStoreFailuresTotal *prometheus.CounterVec
	SelectedRows                prometheus.Gauge

	// Detail and chart metrics
	DetailLookupsTotal *prometheus.CounterVec
	ChartRowsTotal     *prometheus.CounterVec
}

// NewMetrics creates all catalog metrics on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg)
	m.registry = reg
	return m
}

// NewMetricsWith registers all catalog metrics on the given registerer
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	return newMetrics(reg)
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{}

	m.OperationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"operation", "status"},
	)

	m.OperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_operation_duration_seconds",
			Help:    "Duration of catalog operations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	m.DatasetRows = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_dataset_rows",
			Help: "Number of rows in the loaded dataset",
		},
	)

	m.DatasetIDCollisions = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_dataset_id_collisions",
			Help: "Number of ids shared by more than one row",
		},
	)

	m.DatasetLoadSeconds = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_dataset_load_seconds",
			Help: "Time taken by the last dataset load",
		},
	)

	m.FilterRecomputationsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_filter_recomputations_total",
			Help: "Total number of filter result recomputations",
		},
	)

	m.FilterCacheHitsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_filter_cache_hits_total",
			Help: "Total number of filter results served from cache",
		},
	)

	m.FilterMatchingRows = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_filter_matching_rows",
			Help: "Rows matching the current filter state",
		},
	)

	m.SearchQueriesTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_search_queries_total",
			Help: "Total number of search queries",
		},
	)

	m.SearchResultsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_search_results_total",
			Help: "Total number of search results returned",
		},
	)

	m.SelectionOpsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_selection_operations_total",
			Help: "Total number of selection operations",
		},
		[]string{"operation", "status"},
	)

	m.SelectionStoreFailuresTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_selection_store_failures_total",
			Help: "Durable selection store failures by operation",
		},
		[]string{"operation"},
	)

	m.SelectedRows = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_selected_rows",
			Help: "Number of currently selected rows",
		},
	)

	m.DetailLookupsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_detail_lookups_total",
			Help: "Total number of detail projections by status",
		},
		[]string{"status"},
	)

	m.ChartRowsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_chart_rows_total",
			Help: "Total number of chart rows rendered by chart kind",
		},
		[]string{"kind"},
	)

	return m
}

// Registry returns the private registry, or nil when metrics were
// registered on an external registerer
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperation records a catalog operation with its status
func (m *Metrics) RecordOperation(operation string, status string, duration time.Duration) {
	m.OperationsTotal.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDatasetStats updates dataset statistics
func (m *Metrics) UpdateDatasetStats(rows int, collisions int, loadTime time.Duration) {
	m.DatasetRows.Set(float64(rows))
	m.DatasetIDCollisions.Set(float64(collisions))
	m.DatasetLoadSeconds.Set(loadTime.Seconds())
}

// RecordFilterStats adds filter engine counters accumulated since the last call
func (m *Metrics) RecordFilterStats(recomputations, cacheHits uint64, matching int) {
	m.FilterRecomputationsTotal.Add(float64(recomputations))
	m.FilterCacheHitsTotal.Add(float64(cacheHits))
	m.FilterMatchingRows.Set(float64(matching))
}

// RecordSearch records a search query and its result count
func (m *Metrics) RecordSearch(results int) {
	m.SearchQueriesTotal.Inc()
	m.SearchResultsTotal.Add(float64(results))
}

// RecordSelection records a selection operation and the resulting selection size
func (m *Metrics) RecordSelection(operation string, status string, selected int) {
	m.SelectionOpsTotal.WithLabelValues(operation, status).Inc()
	m.SelectedRows.Set(float64(selected))
}

// RecordStoreFailure records a durable store failure
func (m *Metrics) RecordStoreFailure(operation string) {
	m.SelectionStoreFailuresTotal.WithLabelValues(operation).Inc()
}

// RecordDetail records a detail projection
func (m *Metrics) RecordDetail(status string) {
	m.DetailLookupsTotal.WithLabelValues(status).Inc()
}

// RecordChart records the rows rendered into a chart
func (m *Metrics) RecordChart(kind string, rows int) {
	m.ChartRowsTotal.WithLabelValues(kind).Add(float64(rows))
}

// WriteTextfile writes the private registry in the node exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	if m.registry == nil {
		return ErrNoRegistry
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
