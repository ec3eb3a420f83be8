package config

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration error: %s", e.Errors[0])
	}
	return fmt.Sprintf("configuration errors:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validateConfig performs validation on the complete configuration.
// Returns a list of validation errors.
func validateConfig(cfg *Config) []string {
	var errs []string

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Sprintf("logging.level: invalid value %q (must be debug, info, warn, or error)", cfg.Logging.Level))
	}

	switch cfg.Logging.Format {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Sprintf("logging.format: invalid value %q (must be json or text)", cfg.Logging.Format))
	}

	if cfg.Logging.File != "" && (cfg.Logging.MaxSizeMB < 0 || cfg.Logging.MaxBackups < 0 || cfg.Logging.MaxAgeDays < 0) {
		errs = append(errs, "logging: max_size_mb, max_backups and max_age_days must be non-negative")
	}

	if cfg.Domain != "" {
		if _, ok := dns.IsDomainName(cfg.Domain); !ok {
			errs = append(errs, fmt.Sprintf("domain: invalid domain name %q", cfg.Domain))
		}
	}

	if cfg.ReverseLabels < 1 || cfg.ReverseLabels > 4 {
		errs = append(errs, fmt.Sprintf("reverse_labels: must be between 1 and 4, got %d", cfg.ReverseLabels))
	}

	errs = append(errs, validateZone("zones.forward", cfg.Forward)...)
	errs = append(errs, validateZone("zones.reverse", cfg.Reverse)...)
	if cfg.Forward.Path != "" && cfg.Forward.Path == cfg.Reverse.Path {
		errs = append(errs, fmt.Sprintf("zones: forward and reverse zones share the path %q", cfg.Forward.Path))
	}

	if strings.TrimSpace(cfg.ReloadCommand) == "" {
		errs = append(errs, "reload_command: is required")
	}

	if cfg.Lock.File == "" {
		errs = append(errs, "lock.file: is required")
	}
	if cfg.Lock.Timeout < 0 {
		errs = append(errs, "lock.timeout: must be non-negative")
	}

	if cfg.Remote != nil {
		errs = append(errs, validateRemote(cfg.Remote)...)
	}

	return errs
}

func validateZone(key string, z ZoneConfig) []string {
	var errs []string

	if z.Path == "" {
		errs = append(errs, key+".path: is required")
	}
	if z.Origin != "" {
		if _, ok := dns.IsDomainName(z.Origin); !ok {
			errs = append(errs, fmt.Sprintf("%s.origin: invalid domain name %q", key, z.Origin))
		}
	}

	return errs
}

func validateRemote(r *RemoteConfig) []string {
	var errs []string

	if r.Host == "" {
		errs = append(errs, "remote.host: is required")
	}
	if r.User == "" {
		errs = append(errs, "remote.user: is required")
	}
	if r.KeyFile == "" && r.KeyData == "" && r.Password == "" {
		errs = append(errs, "remote: at least one authentication method required (key_file, key_data, or password)")
	}
	if r.Port < 1 || r.Port > 65535 {
		errs = append(errs, fmt.Sprintf("remote.port: must be between 1 and 65535, got %d", r.Port))
	}
	if r.KnownHosts == "" && !r.InsecureIgnoreHostKey {
		errs = append(errs, "remote.known_hosts: is required unless insecure_ignore_host_key is set")
	}
	if r.Timeout < 0 {
		errs = append(errs, "remote.timeout: must be non-negative")
	}

	return errs
}
