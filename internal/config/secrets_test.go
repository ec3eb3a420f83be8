package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnvOrFile_DirectValue(t *testing.T) {
	t.Setenv("TEST_LEASEZONE_TOKEN", "direct-token")
	t.Setenv("TEST_LEASEZONE_TOKEN_FILE", "")

	got := getEnvOrFile("TEST_LEASEZONE_TOKEN", "TEST_LEASEZONE_TOKEN_FILE")
	if got != "direct-token" {
		t.Errorf("getEnvOrFile() = %q, want %q", got, "direct-token")
	}
}

func TestGetEnvOrFile_FileTakesPrecedence(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(secretFile, []byte("file-secret\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEST_LEASEZONE_TOKEN", "direct-token")
	t.Setenv("TEST_LEASEZONE_TOKEN_FILE", secretFile)

	got := getEnvOrFile("TEST_LEASEZONE_TOKEN", "TEST_LEASEZONE_TOKEN_FILE")
	if got != "file-secret" {
		t.Errorf("getEnvOrFile() = %q, want %q (file content trimmed)", got, "file-secret")
	}
}

func TestGetEnvOrFile_MissingFileFallsBack(t *testing.T) {
	t.Setenv("TEST_LEASEZONE_TOKEN", "direct-token")
	t.Setenv("TEST_LEASEZONE_TOKEN_FILE", filepath.Join(t.TempDir(), "missing"))

	got := getEnvOrFile("TEST_LEASEZONE_TOKEN", "TEST_LEASEZONE_TOKEN_FILE")
	if got != "direct-token" {
		t.Errorf("getEnvOrFile() = %q, want fallback %q", got, "direct-token")
	}
}

func TestGetEnvWithFileFallback(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(secretFile, []byte("  hunter2  "), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEASEZONE_REMOTE_PASSWORD_FILE", secretFile)

	if got := getEnvWithFileFallback("REMOTE_PASSWORD"); got != "hunter2" {
		t.Errorf("getEnvWithFileFallback() = %q, want %q", got, "hunter2")
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input        string
		defaultValue bool
		want         bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"No", true, false},
		{"off", true, false},
		{" true ", false, true},
		{"maybe", true, true},
		{"maybe", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseBool(tt.input, tt.defaultValue); got != tt.want {
				t.Errorf("parseBool(%q, %v) = %v, want %v", tt.input, tt.defaultValue, got, tt.want)
			}
		})
	}
}
