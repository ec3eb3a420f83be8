package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidationError_Error(t *testing.T) {
	single := &ValidationError{Errors: []string{"domain: bad"}}
	if got := single.Error(); got != "configuration error: domain: bad" {
		t.Errorf("Error() = %q", got)
	}

	multi := &ValidationError{Errors: []string{"a", "b"}}
	if got := multi.Error(); got != "configuration errors:\n  - a\n  - b" {
		t.Errorf("Error() = %q", got)
	}
}

func validRemote() *RemoteConfig {
	return &RemoteConfig{
		Host:       "ns1.home.arpa",
		Port:       22,
		User:       "nsd",
		KeyFile:    "/etc/leasezone/id_ed25519",
		KnownHosts: "/etc/leasezone/known_hosts",
		Timeout:    time.Second,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "bad domain", mutate: func(c *Config) { c.Domain = "bad..domain" }, wantErr: "domain"},
		{name: "empty domain allowed", mutate: func(c *Config) { c.Domain = "" }},
		{name: "zero reverse labels", mutate: func(c *Config) { c.ReverseLabels = 0 }, wantErr: "reverse_labels"},
		{name: "five reverse labels", mutate: func(c *Config) { c.ReverseLabels = 5 }, wantErr: "reverse_labels"},
		{name: "no forward path", mutate: func(c *Config) { c.Forward.Path = "" }, wantErr: "zones.forward.path"},
		{name: "bad reverse origin", mutate: func(c *Config) { c.Reverse.Origin = "a..b" }, wantErr: "zones.reverse.origin"},
		{name: "shared path", mutate: func(c *Config) { c.Reverse.Path = c.Forward.Path }, wantErr: "share the path"},
		{name: "no reload command", mutate: func(c *Config) { c.ReloadCommand = "" }, wantErr: "reload_command"},
		{name: "no lock file", mutate: func(c *Config) { c.Lock.File = "" }, wantErr: "lock.file"},
		{name: "negative lock timeout", mutate: func(c *Config) { c.Lock.Timeout = -time.Second }, wantErr: "lock.timeout"},
		{name: "valid remote", mutate: func(c *Config) { c.Remote = validRemote() }},
		{
			name: "remote without auth",
			mutate: func(c *Config) {
				c.Remote = validRemote()
				c.Remote.KeyFile = ""
			},
			wantErr: "authentication method",
		},
		{
			name: "remote without known hosts",
			mutate: func(c *Config) {
				c.Remote = validRemote()
				c.Remote.KnownHosts = ""
			},
			wantErr: "remote.known_hosts",
		},
		{
			name: "remote insecure without known hosts",
			mutate: func(c *Config) {
				c.Remote = validRemote()
				c.Remote.KnownHosts = ""
				c.Remote.InsecureIgnoreHostKey = true
			},
		},
		{
			name: "remote bad port",
			mutate: func(c *Config) {
				c.Remote = validRemote()
				c.Remote.Port = 70000
			},
			wantErr: "remote.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := validateConfig(cfg)
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Errorf("validateConfig() = %v, want no errors", errs)
				}
				return
			}
			if len(errs) != 1 || !strings.Contains(errs[0], tt.wantErr) {
				t.Errorf("validateConfig() = %v, want one error containing %q", errs, tt.wantErr)
			}
		})
	}
}
