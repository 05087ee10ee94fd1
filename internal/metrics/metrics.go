package metrics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Namespace prefixes every metric this package registers.
const Namespace = "gcpinventory_"

const (
	CloudServiceTypeLabel = "cloud_service_type"
	StatusLabel           = "status"
	MethodLabel           = "method"
)

var (
	CollectedResourcesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcpinventory_collected_resources_total",
		Help: "Counter for resources yielded by collectors",
	}, []string{CloudServiceTypeLabel})

	CollectionRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcpinventory_collection_runs_total",
		Help: "Counter for finished collection runs",
	}, []string{CloudServiceTypeLabel, StatusLabel})

	CollectionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gcpinventory_collection_duration_seconds",
		Help:    "Wall-clock duration of collection runs",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{CloudServiceTypeLabel})

	ConnectorCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcpinventory_connector_calls_total",
		Help: "Counter for Compute Engine list calls",
	}, []string{MethodLabel})
)

func IncCollected(cloudServiceType string) {
	CollectedResourcesTotal.WithLabelValues(cloudServiceType).Inc()
}

func IncConnectorCall(method string) {
	ConnectorCallsTotal.WithLabelValues(method).Inc()
}

// ObserveCollection records the outcome and duration of one run.
func ObserveCollection(cloudServiceType string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	CollectionRunsTotal.WithLabelValues(cloudServiceType, status).Inc()
	CollectionDuration.WithLabelValues(cloudServiceType).Observe(time.Since(start).Seconds())
}

// WriteText writes the metric families of g whose names start with prefix in
// the Prometheus text format. An empty prefix writes everything.
func WriteText(w io.Writer, g prometheus.Gatherer, prefix string) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if !hasPrefix(mf, prefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func hasPrefix(mf *dto.MetricFamily, prefix string) bool {
	return strings.HasPrefix(mf.GetName(), prefix)
}

// WriteTextfile writes this tool's metrics from the default registry to path
// for a node_exporter textfile collector. Runtime collectors are left out since
// node_exporter exports its own. The file is replaced atomically.
func WriteTextfile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteText(tmp, prometheus.DefaultGatherer, Namespace); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close metrics file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename metrics file: %w", err)
	}
	return nil
}
