package lease

import (
	"net/netip"
	"reflect"
	"testing"
)

func TestReverseName(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		labels  int
		want    string
		wantErr bool
	}{
		{name: "slash 24", addr: "192.168.11.26", labels: 1, want: "26"},
		{name: "slash 16", addr: "192.168.11.26", labels: 2, want: "26.11"},
		{name: "slash 8", addr: "10.1.2.3", labels: 3, want: "3.2.1"},
		{name: "full", addr: "10.1.2.3", labels: 4, want: "3.2.1.10"},
		{name: "zero labels", addr: "10.1.2.3", labels: 0, wantErr: true},
		{name: "too many labels", addr: "10.1.2.3", labels: 5, wantErr: true},
		{name: "ipv6", addr: "fd00::1", labels: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReverseName(netip.MustParseAddr(tt.addr), tt.labels)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReverseName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ReverseName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_Build(t *testing.T) {
	cleaner := NewCleaner(map[string]string{"24:46:c8:8b:bb:f1": "motoG7"})
	b := NewBuilder(cleaner, "home.arpa.", WithBuilderLogger(quietLogger()))

	batch := b.Build([]Lease{
		{Hostname: "frodo.home.arpa", Address: netip.MustParseAddr("192.168.11.26")},
		{HWAddr: "24:46:c8:8b:bb:f1", Address: netip.MustParseAddr("192.168.11.27")},
		{Hostname: "bad name", Address: netip.MustParseAddr("192.168.11.28")},
		{Address: netip.MustParseAddr("192.168.11.29")},
	})

	if got := batch.Forward.Names(); !reflect.DeepEqual(got, []string{"frodo", "motoG7"}) {
		t.Errorf("forward names = %v", got)
	}
	if v, _ := batch.Forward.Get("frodo"); v != "192.168.11.26" {
		t.Errorf("forward frodo = %q", v)
	}
	if got := batch.Reverse.Names(); !reflect.DeepEqual(got, []string{"26", "27"}) {
		t.Errorf("reverse names = %v", got)
	}
	if v, _ := batch.Reverse.Get("27"); v != "motoG7.home.arpa." {
		t.Errorf("reverse 27 = %q", v)
	}
	if len(batch.Bindings) != 2 || batch.Empty() {
		t.Errorf("bindings = %+v", batch.Bindings)
	}
}

func TestBuilder_ReverseLabels(t *testing.T) {
	b := NewBuilder(nil, "home.arpa", WithReverseLabels(2), WithBuilderLogger(quietLogger()))
	batch := b.Build([]Lease{{Hostname: "sam", Address: netip.MustParseAddr("192.168.11.40")}})

	if v, ok := batch.Reverse.Get("40.11"); !ok || v != "sam.home.arpa." {
		t.Errorf("reverse 40.11 = %q, %v", v, ok)
	}
}

func TestBuilder_SameHostTwice(t *testing.T) {
	b := NewBuilder(nil, "home.arpa", WithBuilderLogger(quietLogger()))
	batch := b.Build([]Lease{
		{Hostname: "frodo", Address: netip.MustParseAddr("192.168.11.25")},
		{Hostname: "frodo", Address: netip.MustParseAddr("192.168.11.26")},
	})

	if v, _ := batch.Forward.Get("frodo"); v != "192.168.11.26" {
		t.Errorf("forward frodo = %q, want last lease to win", v)
	}
	if batch.Reverse.Len() != 2 {
		t.Errorf("reverse has %d names, want 2", batch.Reverse.Len())
	}
}

func TestBuilder_FQDN(t *testing.T) {
	if got := NewBuilder(nil, "home.arpa").FQDN("frodo"); got != "frodo.home.arpa." {
		t.Errorf("FQDN() = %q", got)
	}
	if got := NewBuilder(nil, "").FQDN("frodo"); got != "frodo" {
		t.Errorf("FQDN() without domain = %q", got)
	}
}

func TestBatch_Empty(t *testing.T) {
	b := NewBuilder(nil, "home.arpa", WithBuilderLogger(quietLogger()))
	if !b.Build(nil).Empty() {
		t.Error("Build(nil).Empty() = false")
	}
}
