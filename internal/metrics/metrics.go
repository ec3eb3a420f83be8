// Package metrics provides Prometheus metrics for leasezone.
//
// A hook invocation is short-lived, so nothing is served over HTTP. Instead
// the registry is written to a node_exporter textfile at the end of every run
// and the values describe that run.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "leasezone"

// Publish results.
const (
	ResultSuccess   = "success"
	ResultError     = "error"
	ResultDryRun    = "dry_run"
	ResultUnchanged = "unchanged"
)

var (
	// BuildInfo exposes version information.
	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "build_info",
			Help:      "Build information about leasezone.",
		},
		[]string{"version", "go_version"},
	)

	// HookRunsTotal counts hook invocations by action and result.
	HookRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "hook_runs_total",
			Help:      "Hook invocations by action and result.",
		},
		[]string{"action", "result"},
	)

	// LeasesTotal counts leases read from the environment.
	LeasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "leases_total",
			Help:      "Leases read from the hook environment, by whether they were applied.",
		},
		[]string{"result"},
	)

	// RecordsTotal counts zone records touched, by zone and outcome.
	RecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "records_total",
			Help:      "Zone records rewritten, dropped or appended.",
		},
		[]string{"zone", "outcome"},
	)

	// ZoneSerial is the serial of the last published zone file.
	ZoneSerial = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "zone_serial",
			Help:      "Serial number of the last published zone file.",
		},
		[]string{"zone"},
	)

	// PublishesTotal counts zone publish attempts by zone and result.
	PublishesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "publishes_total",
			Help:      "Zone publish attempts by zone and result.",
		},
		[]string{"zone", "result"},
	)

	// LockWaitSeconds is the time spent waiting for the zone lock.
	LockWaitSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "lock_wait_seconds",
			Help:      "Time spent waiting for the zone update lock.",
		},
	)

	// RunDuration tracks how long a hook invocation takes.
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a hook invocation.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// LastRunTimestamp is the Unix time the last run finished.
	LastRunTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last hook invocation finished.",
		},
	)
)

// Registry holds every leasezone metric. It does not include the Go runtime
// collectors, which are meaningless for a process that lives milliseconds.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		BuildInfo,
		HookRunsTotal,
		LeasesTotal,
		RecordsTotal,
		ZoneSerial,
		PublishesTotal,
		LockWaitSeconds,
		RunDuration,
		LastRunTimestamp,
	)
}

// SetBuildInfo sets the build info metric.
func SetBuildInfo(version, goVersion string) {
	BuildInfo.WithLabelValues(version, goVersion).Set(1)
}

// RecordZone records the record outcomes of reconciling one zone.
func RecordZone(zone string, rewritten, dropped, appended int) {
	RecordsTotal.WithLabelValues(zone, "rewritten").Add(float64(rewritten))
	RecordsTotal.WithLabelValues(zone, "dropped").Add(float64(dropped))
	RecordsTotal.WithLabelValues(zone, "appended").Add(float64(appended))
}

// RecordPublish records what happened to a reconciled zone. The serial gauge
// only moves when a new zone file was actually put in place.
func RecordPublish(zone, result string, serial uint32, serialFound bool) {
	PublishesTotal.WithLabelValues(zone, result).Inc()
	if result == ResultSuccess && serialFound {
		ZoneSerial.WithLabelValues(zone).Set(float64(serial))
	}
}

// RecordRun records the end of a hook invocation.
func RecordRun(action, result string, duration time.Duration) {
	HookRunsTotal.WithLabelValues(action, result).Inc()
	RunDuration.Observe(duration.Seconds())
	LastRunTimestamp.SetToCurrentTime()
}

// WriteTextfile atomically writes the registry to path in the text
// exposition format read by node_exporter's textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
