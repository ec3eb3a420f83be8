package zonefile

import "testing"

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   Record
		wantOK bool
	}{
		{
			name:   "A record with tabs",
			line:   "frodo\t\tIN\tA\t192.168.11.25",
			want:   Record{Name: "frodo", Type: TypeA, Value: "192.168.11.25"},
			wantOK: true,
		},
		{
			name:   "PTR record with spaces",
			line:   "11 IN PTR camera.home.arpa.",
			want:   Record{Name: "11", Type: TypePTR, Value: "camera.home.arpa."},
			wantOK: true,
		},
		{name: "too few tokens", line: "frodo IN A"},
		{name: "too many tokens", line: "frodo 300 IN A 192.168.11.25"},
		{name: "wrong class", line: "frodo CH A 192.168.11.25"},
		{name: "lower case class", line: "frodo in A 192.168.11.25"},
		{name: "unsupported type", line: "@ IN NS ns1.home.arpa."},
		{name: "AAAA is not handled", line: "frodo IN AAAA fd00::1"},
		{name: "directive", line: "$ORIGIN home.arpa."},
		{name: "empty", line: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRecord(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseRecord(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseRecord(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFormatRecord(t *testing.T) {
	got := FormatRecord("newhost", TypeA, "192.168.11.30")
	want := "newhost\t\tIN\tA\t192.168.11.30"
	if got != want {
		t.Errorf("FormatRecord() = %q, want %q", got, want)
	}
}

func TestUpdateRecord(t *testing.T) {
	updates := NewUpdates()
	updates.Set("frodo", "192.168.11.26")
	updates.Set("sam", "192.168.11.40")

	tests := []struct {
		name        string
		line        string
		done        []string
		want        string
		wantOutcome Outcome
		wantDone    bool
	}{
		{
			name:        "value changed is rewritten",
			line:        "frodo IN A 192.168.11.25",
			want:        "frodo\t\tIN\tA\t192.168.11.26",
			wantOutcome: Rewritten,
			wantDone:    true,
		},
		{
			name:        "value already correct is kept verbatim",
			line:        "sam   IN  A  192.168.11.40",
			want:        "sam   IN  A  192.168.11.40",
			wantOutcome: Kept,
			wantDone:    true,
		},
		{
			name:        "name already handled is dropped",
			line:        "frodo IN A 192.168.11.99",
			done:        []string{"frodo"},
			wantOutcome: Dropped,
			wantDone:    true,
		},
		{
			name:        "duplicate of an untouched name is dropped",
			line:        "camera IN A 192.168.11.50",
			done:        []string{"camera"},
			wantOutcome: Dropped,
			wantDone:    true,
		},
		{
			name:        "other name holding a reassigned value is dropped",
			line:        "pippin IN A 192.168.11.26",
			wantOutcome: Dropped,
			wantDone:    true,
		},
		{
			name:        "unrelated record is kept",
			line:        "camera IN A 192.168.11.50",
			want:        "camera IN A 192.168.11.50",
			wantOutcome: Kept,
			wantDone:    true,
		},
		{
			name:        "unrecognized line passes through",
			line:        "@ IN NS ns1.home.arpa.",
			want:        "@ IN NS ns1.home.arpa.",
			wantOutcome: Unrecognized,
		},
	}

	pending := updates.ValueSet()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(DoneSet)
			for _, n := range tt.done {
				done[n] = struct{}{}
			}

			got, outcome := UpdateRecord(tt.line, updates, pending, done)
			if outcome != tt.wantOutcome {
				t.Fatalf("outcome = %v, want %v", outcome, tt.wantOutcome)
			}
			if outcome != Dropped && got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}

			rec, _ := ParseRecord(tt.line)
			if done.Has(rec.Name) != tt.wantDone {
				t.Errorf("done.Has(%q) = %v, want %v", rec.Name, done.Has(rec.Name), tt.wantDone)
			}
		})
	}
}

func TestUpdateRecord_FirstOccurrenceWins(t *testing.T) {
	updates := NewUpdates()
	done := make(DoneSet)
	pending := updates.ValueSet()

	first, outcome := UpdateRecord("camera IN A 192.168.11.50", updates, pending, done)
	if outcome != Kept || first != "camera IN A 192.168.11.50" {
		t.Fatalf("first occurrence: %q %v", first, outcome)
	}

	_, outcome = UpdateRecord("camera IN A 192.168.11.51", updates, pending, done)
	if outcome != Dropped {
		t.Errorf("second occurrence outcome = %v, want %v", outcome, Dropped)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome     Outcome
		wantString  string
		wantChanged bool
	}{
		{Unrecognized, "unrecognized", false},
		{Kept, "kept", false},
		{Rewritten, "rewritten", true},
		{Dropped, "dropped", false},
	}

	for _, tt := range tests {
		t.Run(tt.wantString, func(t *testing.T) {
			if tt.outcome.String() != tt.wantString {
				t.Errorf("String() = %q, want %q", tt.outcome.String(), tt.wantString)
			}
			if tt.outcome.Changed() != tt.wantChanged {
				t.Errorf("Changed() = %v, want %v", tt.outcome.Changed(), tt.wantChanged)
			}
		})
	}
}
