package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the configuration file structure.
// This mirrors the runtime Config but uses file-friendly types.
type FileConfig struct {
	Logging       *FileLoggingConfig `yaml:"logging,omitempty" toml:"logging"`
	Domain        string             `yaml:"domain,omitempty" toml:"domain"`
	ReverseLabels int                `yaml:"reverse_labels,omitempty" toml:"reverse_labels"`
	Zones         *FileZonesConfig   `yaml:"zones,omitempty" toml:"zones"`
	ReloadCommand string             `yaml:"reload_command,omitempty" toml:"reload_command"`
	Lock          *FileLockConfig    `yaml:"lock,omitempty" toml:"lock"`
	StaticHosts   map[string]string  `yaml:"static_hosts,omitempty" toml:"static_hosts"`
	Remote        *FileRemoteConfig  `yaml:"remote,omitempty" toml:"remote"`
	Metrics       *FileMetricsConfig `yaml:"metrics,omitempty" toml:"metrics"`
	DryRun        *bool              `yaml:"dry_run,omitempty" toml:"dry_run"` // Pointer to distinguish unset from false
}

// FileLoggingConfig holds logging settings.
type FileLoggingConfig struct {
	Level      string `yaml:"level,omitempty" toml:"level"`   // debug, info, warn, error
	Format     string `yaml:"format,omitempty" toml:"format"` // json, text
	Syslog     *bool  `yaml:"syslog,omitempty" toml:"syslog"`
	File       string `yaml:"file,omitempty" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups,omitempty" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty" toml:"max_age_days"`
}

// FileZonesConfig holds both zone file locations.
type FileZonesConfig struct {
	Forward *FileZoneConfig `yaml:"forward,omitempty" toml:"forward"`
	Reverse *FileZoneConfig `yaml:"reverse,omitempty" toml:"reverse"`
}

// FileZoneConfig locates one zone file.
type FileZoneConfig struct {
	Path   string `yaml:"path,omitempty" toml:"path"`
	Origin string `yaml:"origin,omitempty" toml:"origin"`
}

// FileLockConfig holds update lock settings.
type FileLockConfig struct {
	File    string `yaml:"file,omitempty" toml:"file"`
	Timeout string `yaml:"timeout,omitempty" toml:"timeout"` // Go duration format (e.g., "30s")
}

// FileRemoteConfig holds SSH settings for a remote NSD host.
type FileRemoteConfig struct {
	Host                  string `yaml:"host,omitempty" toml:"host"`
	Port                  int    `yaml:"port,omitempty" toml:"port"`
	User                  string `yaml:"user,omitempty" toml:"user"`
	KeyFile               string `yaml:"key_file,omitempty" toml:"key_file"`
	KnownHosts            string `yaml:"known_hosts,omitempty" toml:"known_hosts"`
	InsecureIgnoreHostKey *bool  `yaml:"insecure_ignore_host_key,omitempty" toml:"insecure_ignore_host_key"`
	Timeout               string `yaml:"timeout,omitempty" toml:"timeout"`
}

// FileMetricsConfig holds metrics settings.
type FileMetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty" toml:"textfile"`
}

// envVarPattern matches ${VAR} or ${VAR:-default} syntax.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// InterpolateEnvVars replaces ${VAR} patterns with environment variable values.
// Supports ${VAR:-default} syntax for default values.
func InterpolateEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultValue := ""
		if len(groups) >= 3 {
			defaultValue = groups[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// interpolateEnvVars interpolates environment variables in all string fields
// of the config structure.
func (c *FileConfig) interpolateEnvVars() {
	if c.Logging != nil {
		c.Logging.Level = InterpolateEnvVars(c.Logging.Level)
		c.Logging.Format = InterpolateEnvVars(c.Logging.Format)
		c.Logging.File = InterpolateEnvVars(c.Logging.File)
	}

	c.Domain = InterpolateEnvVars(c.Domain)
	c.ReloadCommand = InterpolateEnvVars(c.ReloadCommand)

	if c.Zones != nil {
		for _, z := range []*FileZoneConfig{c.Zones.Forward, c.Zones.Reverse} {
			if z != nil {
				z.Path = InterpolateEnvVars(z.Path)
				z.Origin = InterpolateEnvVars(z.Origin)
			}
		}
	}

	if c.Lock != nil {
		c.Lock.File = InterpolateEnvVars(c.Lock.File)
		c.Lock.Timeout = InterpolateEnvVars(c.Lock.Timeout)
	}

	for k, v := range c.StaticHosts {
		c.StaticHosts[k] = InterpolateEnvVars(v)
	}

	if c.Remote != nil {
		c.Remote.Host = InterpolateEnvVars(c.Remote.Host)
		c.Remote.User = InterpolateEnvVars(c.Remote.User)
		c.Remote.KeyFile = InterpolateEnvVars(c.Remote.KeyFile)
		c.Remote.KnownHosts = InterpolateEnvVars(c.Remote.KnownHosts)
		c.Remote.Timeout = InterpolateEnvVars(c.Remote.Timeout)
	}

	if c.Metrics != nil {
		c.Metrics.Textfile = InterpolateEnvVars(c.Metrics.Textfile)
	}
}

// LoadFile reads and parses a configuration file. Files ending in .toml are
// parsed as TOML, everything else as YAML.
// Environment variables in ${VAR} format are interpolated.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config: %w", err)
		}
	}

	cfg.interpolateEnvVars()

	return &cfg, nil
}

// applyTo copies every value set in the file onto cfg.
// Returns a list of errors for values that cannot be converted.
func (c *FileConfig) applyTo(cfg *Config) []string {
	var errs []string

	if l := c.Logging; l != nil {
		if l.Level != "" {
			cfg.Logging.Level = strings.ToLower(l.Level)
		}
		if l.Format != "" {
			cfg.Logging.Format = strings.ToLower(l.Format)
		}
		if l.Syslog != nil {
			cfg.Logging.Syslog = *l.Syslog
		}
		if l.File != "" {
			cfg.Logging.File = l.File
		}
		if l.MaxSizeMB != 0 {
			cfg.Logging.MaxSizeMB = l.MaxSizeMB
		}
		if l.MaxBackups != 0 {
			cfg.Logging.MaxBackups = l.MaxBackups
		}
		if l.MaxAgeDays != 0 {
			cfg.Logging.MaxAgeDays = l.MaxAgeDays
		}
	}

	if c.Domain != "" {
		cfg.Domain = c.Domain
	}
	if c.ReverseLabels != 0 {
		cfg.ReverseLabels = c.ReverseLabels
	}

	if c.Zones != nil {
		applyZone(&cfg.Forward, c.Zones.Forward)
		applyZone(&cfg.Reverse, c.Zones.Reverse)
	}

	if c.ReloadCommand != "" {
		cfg.ReloadCommand = c.ReloadCommand
	}

	if c.Lock != nil {
		if c.Lock.File != "" {
			cfg.Lock.File = c.Lock.File
		}
		if c.Lock.Timeout != "" {
			if d, err := time.ParseDuration(c.Lock.Timeout); err == nil {
				cfg.Lock.Timeout = d
			} else {
				errs = append(errs, fmt.Sprintf("lock.timeout: invalid duration %q (use format like 30s, 1m)", c.Lock.Timeout))
			}
		}
	}

	for hw, name := range c.StaticHosts {
		cfg.StaticHosts[hw] = name
	}

	if r := c.Remote; r != nil && r.Host != "" {
		remote := cfg.remote()
		remote.Host = r.Host
		if r.Port != 0 {
			remote.Port = r.Port
		}
		if r.User != "" {
			remote.User = r.User
		}
		if r.KeyFile != "" {
			remote.KeyFile = r.KeyFile
		}
		if r.KnownHosts != "" {
			remote.KnownHosts = r.KnownHosts
		}
		if r.InsecureIgnoreHostKey != nil {
			remote.InsecureIgnoreHostKey = *r.InsecureIgnoreHostKey
		}
		if r.Timeout != "" {
			if d, err := time.ParseDuration(r.Timeout); err == nil {
				remote.Timeout = d
			} else {
				errs = append(errs, fmt.Sprintf("remote.timeout: invalid duration %q (use format like 30s, 1m)", r.Timeout))
			}
		}
	}

	if c.Metrics != nil && c.Metrics.Textfile != "" {
		cfg.MetricsTextfile = c.Metrics.Textfile
	}

	if c.DryRun != nil {
		cfg.DryRun = *c.DryRun
	}

	return errs
}

func applyZone(dst *ZoneConfig, src *FileZoneConfig) {
	if src == nil {
		return
	}
	if src.Path != "" {
		dst.Path = src.Path
	}
	if src.Origin != "" {
		dst.Origin = src.Origin
	}
}

// GetConfigFilePath returns the config file path from the environment.
// Returns empty string if no config file is specified.
func GetConfigFilePath() string {
	return getEnv(EnvPrefix + "CONFIG")
}
