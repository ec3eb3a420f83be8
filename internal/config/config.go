// Package config handles loading and validation of leasezone configuration.
//
// Settings come from three layers, later layers winning: built-in defaults,
// an optional YAML or TOML file, and LEASEZONE_* environment variables.
// Command-line flags are applied on top by the caller.
package config

import "time"

// Configuration defaults. They match a stock Kea and NSD installation serving
// home.arpa.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
	DefaultDomain        = "home.arpa"
	DefaultReverseLabels = 1
	DefaultForwardZone   = "/var/lib/nsd/home.arpa.forward"
	DefaultReverseZone   = "/var/lib/nsd/home.arpa.reverse"
	DefaultReloadCommand = "/usr/sbin/nsd-control reload"
	DefaultLockFile      = "/run/kea/zone_update.lock"
	DefaultRemotePort    = 22
	DefaultRemoteTimeout = 30 * time.Second
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "LEASEZONE_"

// Config holds the runtime configuration of one hook invocation.
type Config struct {
	Logging LoggingConfig

	// Domain is appended to host names in PTR values.
	Domain string

	// ReverseLabels is how many leading in-addr.arpa labels name a PTR record
	// inside the reverse zone: 1 for a /24 zone, 2 for a /16.
	ReverseLabels int

	Forward ZoneConfig
	Reverse ZoneConfig

	// ReloadCommand is run through the shell after a zone file is replaced.
	ReloadCommand string

	Lock LockConfig

	// StaticHosts names clients that send no hostname, keyed by hardware address.
	StaticHosts map[string]string

	// Remote is set when the zone files live on another host.
	Remote *RemoteConfig

	// MetricsTextfile is a node_exporter textfile path; empty disables metrics.
	MetricsTextfile string

	DryRun bool
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Syslog     bool
	File       string // rotated log file, empty for none
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ZoneConfig locates one zone file.
type ZoneConfig struct {
	Path string

	// Origin enables a parse check of the rewritten zone before it is
	// published. Empty skips the check.
	Origin string
}

// LockConfig holds the update lock settings.
type LockConfig struct {
	File string

	// Timeout bounds the wait for the lock. Zero waits forever.
	Timeout time.Duration
}

// RemoteConfig holds SSH settings for a remote NSD host.
type RemoteConfig struct {
	Host                  string
	Port                  int
	User                  string
	KeyFile               string
	KeyData               string
	KeyPassphrase         string
	Password              string
	KnownHosts            string
	InsecureIgnoreHostKey bool
	Timeout               time.Duration
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
		Domain:        DefaultDomain,
		ReverseLabels: DefaultReverseLabels,
		Forward:       ZoneConfig{Path: DefaultForwardZone},
		Reverse:       ZoneConfig{Path: DefaultReverseZone},
		ReloadCommand: DefaultReloadCommand,
		Lock:          LockConfig{File: DefaultLockFile},
		StaticHosts:   map[string]string{},
	}
}

// remote returns c.Remote, creating it with defaults when unset.
func (c *Config) remote() *RemoteConfig {
	if c.Remote == nil {
		c.Remote = &RemoteConfig{
			Port:    DefaultRemotePort,
			Timeout: DefaultRemoteTimeout,
		}
	}
	return c.Remote
}
