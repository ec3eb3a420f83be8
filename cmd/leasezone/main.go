// leasezone is a Kea DHCPv4 run_script hook that keeps NSD forward and reverse
// zone files in step with the leases Kea hands out. Kea runs it once per lease
// event with the action as the first argument and the lease in the
// environment.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"gitlab.bluewillows.net/root/leasezone/internal/config"
	"gitlab.bluewillows.net/root/leasezone/internal/hook"
	"gitlab.bluewillows.net/root/leasezone/internal/lock"
	"gitlab.bluewillows.net/root/leasezone/internal/logging"
	"gitlab.bluewillows.net/root/leasezone/internal/metrics"
	"gitlab.bluewillows.net/root/leasezone/internal/publisher"
	"gitlab.bluewillows.net/root/leasezone/pkg/lease"
	"gitlab.bluewillows.net/root/leasezone/pkg/sshutil"
)

// Version and BuildDate are set via ldflags during build.
// Example: -ldflags="-X main.Version=v1.0.0 -X main.BuildDate=2026-01-03"
var (
	Version   = "dev"
	BuildDate = "unknown"
)

// options are the parsed command line.
type options struct {
	configPath string
	logLevel   string
	dryRun     bool
	dryRunSet  bool
	version    bool
	action     string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}

func fatal(logger *slog.Logger, err error) error {
	logger.Error("fatal error", slog.String("error", err.Error()))
	return err
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := &options{}

	flags := pflag.NewFlagSet("leasezone", pflag.ContinueOnError)
	flags.SetOutput(output)
	flags.Usage = func() {
		_, _ = fmt.Fprintf(output, "Usage: leasezone [flags] [lease4_renew|lease4_recover|leases4_committed]\n\n")
		flags.PrintDefaults()
	}
	flags.StringVarP(&opts.configPath, "config", "c", config.GetConfigFilePath(), "path to a YAML or TOML config file (env: LEASEZONE_CONFIG)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override: debug, info, warn, error")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "log zone changes without writing them or reloading")
	flags.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	opts.dryRunSet = flags.Changed("dry-run")
	if flags.NArg() > 0 {
		opts.action = flags.Arg(0)
	}

	return opts, nil
}

// run logs a fatal error itself, through the configured sinks once they
// exist, and returns it for the exit code.
func run(args []string, stdout io.Writer) (err error) {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fatal(slog.Default(), err)
	}

	if opts.version {
		_, _ = fmt.Fprintf(stdout, "leasezone %s (built %s, %s)\n", Version, BuildDate, runtime.Version())
		return nil
	}

	overrides := config.Overrides{LogLevel: opts.logLevel}
	if opts.dryRunSet {
		overrides.DryRun = &opts.dryRun
	}

	cfg, err := config.Load(opts.configPath, overrides)
	if err != nil {
		return fatal(slog.Default(), fmt.Errorf("loading configuration: %w", err))
	}

	logger, err := logging.New(cfg.Logging, stdout)
	if err != nil {
		return fatal(slog.Default(), fmt.Errorf("setting up logging: %w", err))
	}
	defer func() {
		if err != nil {
			_ = fatal(logger.Logger, err)
		}
		_ = logger.Close()
	}()
	slog.SetDefault(logger.Logger)

	metrics.SetBuildInfo(Version, runtime.Version())

	logger.Debug("leasezone starting",
		slog.String("version", Version),
		slog.String("build_date", BuildDate),
		slog.String("action", opts.action),
		slog.Bool("dry_run", cfg.DryRun),
		slog.Bool("remote", cfg.Remote != nil),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	report, err := execute(ctx, cfg, opts.action, logger.Logger)

	result := runResult(report, err, cfg.DryRun)
	action := opts.action
	if report != nil {
		action = report.Action
	}
	metrics.RecordRun(action, result, time.Since(start))

	if cfg.MetricsTextfile != "" {
		if werr := metrics.WriteTextfile(cfg.MetricsTextfile); werr != nil {
			logger.Warn("failed to write metrics", slog.String("error", werr.Error()))
		}
	}

	return err
}

// execute runs action with the zone lock held.
func execute(ctx context.Context, cfg *config.Config, action string, logger *slog.Logger) (*hook.Report, error) {
	waitStart := time.Now()
	zoneLock, err := lock.Acquire(ctx, cfg.Lock.File, cfg.Lock.Timeout, lock.WithLogger(logger))
	metrics.LockWaitSeconds.Set(time.Since(waitStart).Seconds())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := zoneLock.Release(); err != nil {
			logger.Warn("failed to release zone lock", slog.String("error", err.Error()))
		}
	}()

	pub, cleanup, err := newPublisher(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	reader := lease.NewReader(lease.WithReaderLogger(logger))
	builder := lease.NewBuilder(lease.NewCleaner(cfg.StaticHosts), cfg.Domain,
		lease.WithReverseLabels(cfg.ReverseLabels),
		lease.WithBuilderLogger(logger),
	)

	zones := hook.Zones{
		Forward: publisher.Zone{Name: "forward", Path: cfg.Forward.Path, Origin: cfg.Forward.Origin},
		Reverse: publisher.Zone{Name: "reverse", Path: cfg.Reverse.Path, Origin: cfg.Reverse.Origin},
	}

	runner := hook.New(pub, zones,
		hook.WithReader(reader),
		hook.WithBuilder(builder),
		hook.WithLogger(logger),
	)

	return runner.Run(ctx, action)
}

// newPublisher returns a publisher on the local disk, or on the remote host
// over SFTP when one is configured. cleanup closes the remote connection.
func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*publisher.Publisher, func(), error) {
	opts := []publisher.Option{
		publisher.WithLogger(logger),
		publisher.WithDryRun(cfg.DryRun),
	}

	if cfg.Remote == nil {
		return publisher.New(cfg.ReloadCommand, opts...), func() {}, nil
	}

	client, err := sshutil.NewClient(sshConfig(cfg.Remote), sshutil.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("creating ssh client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("connecting to %s: %w", cfg.Remote.Host, err)
	}

	sftpFS := sshutil.NewSFTPFileSystem(client, sshutil.WithSFTPLogger(logger))
	if err := sftpFS.Connect(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("starting sftp session on %s: %w", cfg.Remote.Host, err)
	}

	cleanup := func() {
		if err := sftpFS.Close(); err != nil {
			logger.Debug("closing sftp session", slog.String("error", err.Error()))
		}
		if err := client.Close(); err != nil {
			logger.Debug("closing ssh connection", slog.String("error", err.Error()))
		}
	}

	opts = append(opts,
		publisher.WithFileSystem(sftpFS),
		publisher.WithCommandRunner(sshutil.NewSSHCommandRunner(client, sshutil.WithCommandLogger(logger))),
	)

	return publisher.New(cfg.ReloadCommand, opts...), cleanup, nil
}

func sshConfig(r *config.RemoteConfig) *sshutil.Config {
	return &sshutil.Config{
		Host:                  r.Host,
		Port:                  r.Port,
		User:                  r.User,
		KeyFile:               r.KeyFile,
		KeyData:               r.KeyData,
		KeyPassphrase:         r.KeyPassphrase,
		Password:              r.Password,
		KnownHostsFile:        r.KnownHosts,
		InsecureIgnoreHostKey: r.InsecureIgnoreHostKey,
		Timeout:               r.Timeout,
	}
}

func runResult(report *hook.Report, err error, dryRun bool) string {
	switch {
	case err != nil, report == nil, report.Failed():
		return metrics.ResultError
	case report.Ignored:
		return metrics.ResultUnchanged
	case dryRun:
		return metrics.ResultDryRun
	default:
		return metrics.ResultSuccess
	}
}
