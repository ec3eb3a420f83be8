package zonefile

import (
	"errors"
	"testing"
)

func TestUpdateSerial(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		want       string
		wantSerial bool
		wantErr    bool
	}{
		{
			name:       "plain serial",
			line:       "3600 ;Serial",
			want:       "3601 ;Serial",
			wantSerial: true,
		},
		{
			name:       "indented serial keeps indentation",
			line:       "\t\t2024010101 ;Serial",
			want:       "\t\t2024010102 ;Serial",
			wantSerial: true,
		},
		{
			name:       "tab between number and marker",
			line:       "  41\t;Serial",
			want:       "  42\t;Serial",
			wantSerial: true,
		},
		{
			name:       "marker without gap",
			line:       "7;Serial",
			want:       "8;Serial",
			wantSerial: true,
		},
		{
			name:       "trailing whitespace after marker",
			line:       "99 ;Serial  ",
			want:       "100 ;Serial",
			wantSerial: true,
		},
		{
			name:       "wraps at 32 bits",
			line:       "4294967295 ;Serial",
			want:       "0 ;Serial",
			wantSerial: true,
		},
		{
			name: "record line",
			line: "frodo\t\tIN\tA\t192.168.11.25",
			want: "frodo\t\tIN\tA\t192.168.11.25",
		},
		{
			name: "differently cased marker is not a serial",
			line: "3600 ; serial",
			want: "3600 ; serial",
		},
		{
			name: "empty line",
			line: "",
			want: "",
		},
		{
			name:       "non numeric serial",
			line:       "abc ;Serial",
			wantSerial: true,
			wantErr:    true,
		},
		{
			name:       "negative serial",
			line:       "-1 ;Serial",
			wantSerial: true,
			wantErr:    true,
		},
		{
			name:       "marker only",
			line:       ";Serial",
			wantSerial: true,
			wantErr:    true,
		},
		{
			name:       "serial beyond 32 bits",
			line:       "4294967296 ;Serial",
			wantSerial: true,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isSerial, err := UpdateSerial(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateSerial(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if isSerial != tt.wantSerial {
				t.Errorf("UpdateSerial(%q) isSerial = %v, want %v", tt.line, isSerial, tt.wantSerial)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrCorruptZoneFile) {
					t.Errorf("error %v does not match ErrCorruptZoneFile", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("UpdateSerial(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestCorruptZoneFileError(t *testing.T) {
	err := &CorruptZoneFileError{Path: "/var/lib/nsd/home.arpa.forward", Line: 3, Text: "x ;Serial", Reason: "bad"}

	want := `/var/lib/nsd/home.arpa.forward:3: corrupt zone file: bad: "x ;Serial"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !IsCorrupt(err) {
		t.Error("IsCorrupt() = false, want true")
	}
	if IsCorrupt(errors.New("other")) {
		t.Error("IsCorrupt(other) = true, want false")
	}

	anon := &CorruptZoneFileError{Text: "x", Reason: "bad"}
	if anon.Error() != `zone: corrupt zone file: bad: "x"` {
		t.Errorf("Error() = %q", anon.Error())
	}
}
