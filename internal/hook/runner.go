// Package hook implements one invocation of the Kea run_script hook: it reads
// the leases for the action, rewrites the forward and reverse zones and
// publishes the ones that changed.
package hook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"time"

	"gitlab.bluewillows.net/root/leasezone/internal/metrics"
	"gitlab.bluewillows.net/root/leasezone/internal/publisher"
	"gitlab.bluewillows.net/root/leasezone/pkg/lease"
	"gitlab.bluewillows.net/root/leasezone/pkg/zonefile"
)

// Hook actions handled by the runner. Kea passes the action as the first
// argument of the script.
const (
	ActionRenew     = "lease4_renew"
	ActionRecover   = "lease4_recover"
	ActionCommitted = "leases4_committed"
)

// ActionDemo is the action name recorded for a run without an action.
const ActionDemo = "demo"

// Demonstration binding applied when the hook is run without an action.
const (
	demoHost    = "frodo"
	demoAddress = "192.168.11.26"
)

// Zone results reported per zone.
const (
	ZonePublished = "published"
	ZoneUnchanged = "unchanged"
	ZoneSkipped   = "skipped"
	ZoneDryRun    = "dry_run"
	ZoneFailed    = "failed"
)

// Publisher replaces zone files and exposes the file system they live on.
type Publisher interface {
	Publish(ctx context.Context, zone publisher.Zone, lines []string) error
	FileSystem() publisher.FileSystem
	DryRun() bool
}

// Zones names the two zone files the hook maintains.
type Zones struct {
	Forward publisher.Zone
	Reverse publisher.Zone
}

// ZoneReport is the outcome for one zone.
type ZoneReport struct {
	Name      string
	Result    string
	Serial    uint32
	Rewritten int
	Dropped   int
	Appended  int
	Err       error
}

// Report summarizes one hook invocation.
type Report struct {
	Action    string
	Ignored   bool
	Leases    int
	Applied   int
	Zones     []ZoneReport
	StartTime time.Time
	EndTime   time.Time
}

// Duration returns how long the run took.
func (r *Report) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// Failed reports whether any zone failed to publish.
func (r *Report) Failed() bool {
	for _, z := range r.Zones {
		if z.Err != nil {
			return true
		}
	}
	return false
}

// Runner handles hook actions.
type Runner struct {
	publisher Publisher
	zones     Zones
	reader    *lease.Reader
	builder   *lease.Builder
	logger    *slog.Logger
}

// Option is a functional option for configuring the Runner.
type Option func(*Runner)

// WithReader sets the lease reader.
func WithReader(reader *lease.Reader) Option {
	return func(r *Runner) {
		if reader != nil {
			r.reader = reader
		}
	}
}

// WithBuilder sets the update builder.
func WithBuilder(builder *lease.Builder) Option {
	return func(r *Runner) {
		if builder != nil {
			r.builder = builder
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Runner publishing zones through pub.
func New(pub Publisher, zones Zones, opts ...Option) *Runner {
	r := &Runner{
		publisher: pub,
		zones:     zones,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.reader == nil {
		r.reader = lease.NewReader(lease.WithReaderLogger(r.logger))
	}
	if r.builder == nil {
		r.builder = lease.NewBuilder(nil, "", lease.WithBuilderLogger(r.logger))
	}

	return r
}

// Run handles action. Unknown actions are logged and ignored. An unreadable
// zone file, a corrupt serial or an unreadable committed batch is returned as
// an error; a failed publish is logged and recorded in the report only.
func (r *Runner) Run(ctx context.Context, action string) (*Report, error) {
	report := &Report{Action: action, StartTime: time.Now()}
	defer func() { report.EndTime = time.Now() }()

	var batch *lease.Batch

	switch action {
	case ActionRenew, ActionRecover:
		leases := r.reader.Renewed()
		report.Leases = len(leases)
		batch = r.builder.Build(leases)

	case ActionCommitted:
		leases, err := r.reader.Committed()
		if err != nil {
			return report, fmt.Errorf("reading committed leases: %w", err)
		}
		report.Leases = len(leases)
		batch = r.builder.Build(leases)

	case "":
		report.Action = ActionDemo
		r.logger.Info("no action specified, running demonstration update",
			slog.String("host", demoHost),
			slog.String("address", demoAddress),
		)
		batch = demoBatch()
		report.Leases = 1

	default:
		r.logger.Info("action ignored", slog.String("action", action))
		report.Ignored = true
		return report, nil
	}

	report.Applied = len(batch.Bindings)
	metrics.LeasesTotal.WithLabelValues("applied").Add(float64(report.Applied))
	if skipped := report.Leases - report.Applied; skipped > 0 {
		metrics.LeasesTotal.WithLabelValues("skipped").Add(float64(skipped))
	}

	if batch.Empty() {
		r.logger.Info("no usable leases", slog.String("action", report.Action))
		return report, nil
	}

	zones := []struct {
		zone    publisher.Zone
		updates *zonefile.Updates
		rrType  zonefile.RecordType
	}{
		{r.zones.Forward, batch.Forward, zonefile.TypeA},
		{r.zones.Reverse, batch.Reverse, zonefile.TypePTR},
	}

	for _, z := range zones {
		zr, err := r.updateZone(ctx, z.zone, z.updates, z.rrType)
		report.Zones = append(report.Zones, zr)
		if err != nil {
			return report, err
		}
	}

	r.logger.Info("hook run complete",
		slog.String("action", report.Action),
		slog.Int("leases", report.Leases),
		slog.Int("applied", report.Applied),
		slog.Bool("failed", report.Failed()),
	)

	return report, nil
}

func (r *Runner) updateZone(ctx context.Context, zone publisher.Zone, updates *zonefile.Updates, rrType zonefile.RecordType) (ZoneReport, error) {
	zr := ZoneReport{Name: zone.Name}
	logger := r.logger.With(slog.String("zone", zone.Name), slog.String("path", zone.Path))

	if updates.Len() == 0 {
		logger.Debug("no updates for zone")
		zr.Result = ZoneSkipped
		return zr, nil
	}

	res, err := zonefile.ReadZoneFile(r.publisher.FileSystem(), zone.Path, updates, rrType)
	if err != nil {
		zr.Result = ZoneFailed
		zr.Err = err
		if errors.Is(err, zonefile.ErrCorruptZoneFile) {
			return zr, err
		}
		return zr, fmt.Errorf("updating %s zone: %w", zone.Name, err)
	}

	zr.Serial = res.OldSerial
	zr.Rewritten = res.Rewritten
	zr.Dropped = res.Dropped
	zr.Appended = res.Appended
	metrics.RecordZone(zone.Name, res.Rewritten, res.Dropped, res.Appended)

	logger.Debug("zone reconciled",
		slog.Bool("changed", res.Changed),
		slog.Int("rewritten", res.Rewritten),
		slog.Int("dropped", res.Dropped),
		slog.Int("appended", res.Appended),
	)

	if !res.Changed {
		logger.Info("zone unchanged, not publishing")
		zr.Result = ZoneUnchanged
		metrics.RecordPublish(zone.Name, metrics.ResultUnchanged, res.NewSerial, res.SerialFound)
		return zr, nil
	}

	if !res.SerialFound {
		logger.Warn("zone has no serial line, secondaries will not see the change")
	}

	if err := r.publisher.Publish(ctx, zone, res.Lines); err != nil {
		logger.Error("publishing zone failed", slog.String("error", err.Error()))
		zr.Result = ZoneFailed
		zr.Err = err
		metrics.RecordPublish(zone.Name, metrics.ResultError, res.NewSerial, res.SerialFound)
		return zr, nil
	}

	if r.publisher.DryRun() {
		zr.Result = ZoneDryRun
		metrics.RecordPublish(zone.Name, metrics.ResultDryRun, res.NewSerial, res.SerialFound)
		return zr, nil
	}

	logger.Info("zone published",
		slog.Uint64("old_serial", uint64(res.OldSerial)),
		slog.Uint64("serial", uint64(res.NewSerial)),
	)
	zr.Result = ZonePublished
	zr.Serial = res.NewSerial
	metrics.RecordPublish(zone.Name, metrics.ResultSuccess, res.NewSerial, res.SerialFound)

	return zr, nil
}

func demoBatch() *lease.Batch {
	batch := &lease.Batch{
		Forward: zonefile.NewUpdates(),
		Reverse: zonefile.NewUpdates(),
	}
	batch.Forward.Set(demoHost, demoAddress)
	batch.Bindings = append(batch.Bindings, lease.Binding{
		Host:    demoHost,
		Address: netip.MustParseAddr(demoAddress),
	})
	return batch
}
