package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Overrides carries command-line settings, which win over every other layer.
type Overrides struct {
	LogLevel string
	DryRun   *bool
}

// Load builds the runtime configuration from defaults, the file at path (if
// any), LEASEZONE_* environment variables and overrides, in that order.
// All problems are collected and returned together as a *ValidationError.
func Load(path string, overrides Overrides) (*Config, error) {
	cfg := Default()
	var errs []string

	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, &ValidationError{Errors: []string{"config file: " + err.Error()}}
		}
		slog.Debug("loaded configuration from file", slog.String("path", path))
		errs = append(errs, fileCfg.applyTo(cfg)...)
	}

	errs = append(errs, applyEnv(cfg)...)

	if overrides.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(overrides.LogLevel)
	}
	if overrides.DryRun != nil {
		cfg.DryRun = *overrides.DryRun
	}

	errs = append(errs, validateConfig(cfg)...)

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return cfg, nil
}

// applyEnv merges environment variable overrides into cfg.
// Environment variables always take precedence over file config.
func applyEnv(cfg *Config) []string {
	var errs []string

	if v := getEnv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := getEnv(EnvPrefix + "LOG_FORMAT"); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := getEnv(EnvPrefix + "LOG_SYSLOG"); v != "" {
		cfg.Logging.Syslog = parseBool(v, cfg.Logging.Syslog)
	}
	if v := getEnv(EnvPrefix + "LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}

	if v := getEnv(EnvPrefix + "DOMAIN"); v != "" {
		cfg.Domain = v
	}
	if v := getEnv(EnvPrefix + "REVERSE_LABELS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ReverseLabels = n
		} else {
			errs = append(errs, fmt.Sprintf("%sREVERSE_LABELS: invalid integer %q", EnvPrefix, v))
		}
	}

	if v := getEnv(EnvPrefix + "FORWARD_ZONE"); v != "" {
		cfg.Forward.Path = v
	}
	if v := getEnv(EnvPrefix + "FORWARD_ORIGIN"); v != "" {
		cfg.Forward.Origin = v
	}
	if v := getEnv(EnvPrefix + "REVERSE_ZONE"); v != "" {
		cfg.Reverse.Path = v
	}
	if v := getEnv(EnvPrefix + "REVERSE_ORIGIN"); v != "" {
		cfg.Reverse.Origin = v
	}

	if v := getEnv(EnvPrefix + "RELOAD_COMMAND"); v != "" {
		cfg.ReloadCommand = v
	}

	if v := getEnv(EnvPrefix + "LOCK_FILE"); v != "" {
		cfg.Lock.File = v
	}
	if v := getEnv(EnvPrefix + "LOCK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Lock.Timeout = d
		} else {
			errs = append(errs, fmt.Sprintf("%sLOCK_TIMEOUT: invalid duration %q (use format like 30s, 1m)", EnvPrefix, v))
		}
	}

	errs = append(errs, applyRemoteEnv(cfg)...)

	if v := getEnv(EnvPrefix + "METRICS_TEXTFILE"); v != "" {
		cfg.MetricsTextfile = v
	}

	if v := getEnv(EnvPrefix + "DRY_RUN"); v != "" {
		cfg.DryRun = parseBool(v, cfg.DryRun)
	}

	return errs
}

// applyRemoteEnv merges LEASEZONE_REMOTE_* variables. They only take effect
// when a remote host is configured by the file or by LEASEZONE_REMOTE_HOST.
func applyRemoteEnv(cfg *Config) []string {
	if v := getEnv(EnvPrefix + "REMOTE_HOST"); v != "" {
		cfg.remote().Host = v
	}
	if cfg.Remote == nil {
		return nil
	}

	var errs []string
	r := cfg.Remote

	if v := getEnv(EnvPrefix + "REMOTE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			r.Port = port
		} else {
			errs = append(errs, fmt.Sprintf("%sREMOTE_PORT: invalid integer %q", EnvPrefix, v))
		}
	}
	if v := getEnv(EnvPrefix + "REMOTE_USER"); v != "" {
		r.User = v
	}
	if v := getEnv(EnvPrefix + "REMOTE_KEY_FILE"); v != "" {
		r.KeyFile = v
	}
	if v := getEnvWithFileFallback("REMOTE_KEY_DATA"); v != "" {
		r.KeyData = v
	}
	if v := getEnvWithFileFallback("REMOTE_KEY_PASSPHRASE"); v != "" {
		r.KeyPassphrase = v
	}
	if v := getEnvWithFileFallback("REMOTE_PASSWORD"); v != "" {
		r.Password = v
	}
	if v := getEnv(EnvPrefix + "REMOTE_KNOWN_HOSTS"); v != "" {
		r.KnownHosts = v
	}
	if v := getEnv(EnvPrefix + "REMOTE_INSECURE_IGNORE_HOST_KEY"); v != "" {
		r.InsecureIgnoreHostKey = parseBool(v, r.InsecureIgnoreHostKey)
	}
	if v := getEnv(EnvPrefix + "REMOTE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			r.Timeout = d
		} else {
			errs = append(errs, fmt.Sprintf("%sREMOTE_TIMEOUT: invalid duration %q", EnvPrefix, v))
		}
	}

	return errs
}
