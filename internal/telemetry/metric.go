package telemetry

import (
	"time"

	"orgchart/config"
	"orgchart/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric struct
type Metric struct {
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
	HttpSuccessTotal    *prometheus.CounterVec
	HttpFailTotal       *prometheus.CounterVec
	TreeBuildDuration   prometheus.Histogram
	TreeNodes           prometheus.Gauge
	TreeExcluded        prometheus.Gauge
	TreeRebuildTotal    *prometheus.CounterVec
	config              *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	prefix := config.App.Name + "_"
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + string(core.MetricHttpRequestDuration),
				Help:    "API request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		HttpSuccessTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricHttpSuccessTotal),
				Help: "Successful API responses",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricHttpFailTotal),
				Help: "Failed API responses",
			},
			labelNames(core.MetricLabelReason),
		),
		TreeBuildDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    prefix + string(core.MetricTreeBuildDuration),
				Help:    "Org chart load + build duration (seconds)",
				Buckets: buckets,
			},
		),
		TreeNodes: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + string(core.MetricTreeNodes),
				Help: "Nodes in the current org chart",
			},
		),
		TreeExcluded: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + string(core.MetricTreeExcluded),
				Help: "Roster records not reachable from any root",
			},
		),
		TreeRebuildTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricTreeRebuildTotal),
				Help: "Org chart rebuilds by roster source and outcome",
			},
			labelNames(core.MetricLabelSource, core.MetricLabelStatus),
		),
	}
}

// ObserveBuild 記錄一次重建結果；指標未啟用時不做事
func (m *Metric) ObserveBuild(source core.RosterSource, status string, nodes, excluded int, duration time.Duration) {
	if m == nil || m.TreeRebuildTotal == nil {
		return
	}
	m.TreeRebuildTotal.WithLabelValues(string(source), status).Inc()
	if status != "ok" {
		return
	}
	m.TreeBuildDuration.Observe(duration.Seconds())
	m.TreeNodes.Set(float64(nodes))
	m.TreeExcluded.Set(float64(excluded))
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
