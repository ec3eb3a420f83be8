// Package publisher replaces zone files and tells the name server to reload.
//
// A new zone body is written next to the live file as <path>.new, the live
// file is kept as <path>.old, and <path>.new is renamed over it. The same
// sequence works on the local disk and over SFTP.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gitlab.bluewillows.net/root/leasezone/pkg/zonefile"
)

// DefaultPerm is used for a zone file that does not exist yet.
const DefaultPerm os.FileMode = 0o644

// Publish steps, reported in PublishError.
const (
	StepCheck  = "check"
	StepWrite  = "write"
	StepRotate = "rotate"
	StepRename = "rename"
	StepReload = "reload"
)

// PublishError reports which step of publishing a zone failed.
type PublishError struct {
	Path string
	Step string
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing %s: %s: %v", e.Path, e.Step, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// Zone names a zone file to publish.
type Zone struct {
	Name   string // forward or reverse, for logs and metrics
	Path   string
	Origin string // enables the pre-publish parse check when set
}

// Publisher writes zone files through a FileSystem and reloads the server
// through a CommandRunner.
type Publisher struct {
	fs            FileSystem
	runner        CommandRunner
	reloadCommand string
	dryRun        bool
	logger        *slog.Logger
}

// Option is a functional option for configuring the Publisher.
type Option func(*Publisher)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithFileSystem sets the file system holding the zone files.
func WithFileSystem(fs FileSystem) Option {
	return func(p *Publisher) {
		if fs != nil {
			p.fs = fs
		}
	}
}

// WithCommandRunner sets the runner for the reload command.
func WithCommandRunner(runner CommandRunner) Option {
	return func(p *Publisher) {
		if runner != nil {
			p.runner = runner
		}
	}
}

// WithDryRun makes Publish log what it would do without touching anything.
func WithDryRun(dryRun bool) Option {
	return func(p *Publisher) {
		p.dryRun = dryRun
	}
}

// New creates a Publisher running reloadCommand after each replaced zone.
// It defaults to the local disk and shell.
func New(reloadCommand string, opts ...Option) *Publisher {
	p := &Publisher{
		fs:            OSFileSystem{},
		reloadCommand: reloadCommand,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.runner == nil {
		p.runner = ShellRunner{Logger: p.logger}
	}

	return p
}

// FileSystem returns the file system zones are read from and written to.
func (p *Publisher) FileSystem() FileSystem {
	return p.fs
}

// DryRun reports whether the publisher only logs.
func (p *Publisher) DryRun() bool {
	return p.dryRun
}

// Publish replaces the zone file with lines and reloads the name server.
// A missing live file or .old backup is not an error.
func (p *Publisher) Publish(ctx context.Context, zone Zone, lines []string) error {
	logger := p.logger.With(slog.String("zone", zone.Name), slog.String("path", zone.Path))

	if zone.Origin != "" {
		n, err := zonefile.Check(lines, zone.Origin)
		if err != nil {
			return &PublishError{Path: zone.Path, Step: StepCheck, Err: err}
		}
		logger.Debug("zone parses cleanly", slog.Int("records", n))
	}

	data := zonefile.Format(lines)

	if p.dryRun {
		logger.Info("dry run: would publish zone",
			slog.Int("lines", len(lines)),
			slog.Int("bytes", len(data)),
			slog.String("reload_command", p.reloadCommand),
		)
		for _, line := range lines {
			logger.Debug("dry run", slog.String("line", line))
		}
		return nil
	}

	newPath := zone.Path + ".new"
	oldPath := zone.Path + ".old"

	perm := DefaultPerm
	if info, err := p.fs.Stat(zone.Path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := p.removeIfExists(newPath); err != nil {
		return &PublishError{Path: zone.Path, Step: StepWrite, Err: err}
	}
	if err := p.fs.WriteFile(newPath, data, perm); err != nil {
		return &PublishError{Path: zone.Path, Step: StepWrite, Err: err}
	}

	if err := p.removeIfExists(oldPath); err != nil {
		return &PublishError{Path: zone.Path, Step: StepRotate, Err: err}
	}
	if err := p.fs.Rename(zone.Path, oldPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &PublishError{Path: zone.Path, Step: StepRotate, Err: err}
	}

	if err := p.fs.Rename(newPath, zone.Path); err != nil {
		return &PublishError{Path: zone.Path, Step: StepRename, Err: err}
	}

	logger.Info("zone file replaced", slog.Int("bytes", len(data)))

	if err := p.runner.Run(ctx, p.reloadCommand); err != nil {
		return &PublishError{Path: zone.Path, Step: StepReload, Err: err}
	}

	logger.Debug("name server reloaded", slog.String("command", p.reloadCommand))

	return nil
}

func (p *Publisher) removeIfExists(path string) error {
	if err := p.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
