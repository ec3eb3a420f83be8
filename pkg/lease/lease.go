// Package lease turns Kea DHCPv4 run_script events into pending zone updates.
//
// Kea's run_script hook passes lease attributes as environment variables:
// LEASE4_ADDRESS, LEASE4_HOSTNAME and LEASE4_HWADDR for single lease events,
// and LEASES4_SIZE plus LEASES4_AT<i>_* for leases4_committed.
package lease

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
)

// Sentinel errors for lease parsing.
var (
	// ErrNoAddress is returned for a lease event without an address attribute.
	ErrNoAddress = errors.New("no IP address specified in lease")

	// ErrInvalidAddress is returned when the address is not an IPv4 address.
	ErrInvalidAddress = errors.New("invalid IPv4 address in lease")

	// ErrInvalidSize is returned when LEASES4_SIZE is missing or not a count.
	ErrInvalidSize = errors.New("invalid LEASES4_SIZE")
)

// Lease is the part of a DHCPv4 lease that ends up in DNS.
type Lease struct {
	Hostname string // as sent by the client, possibly empty or qualified
	Address  netip.Addr
	HWAddr   string
}

// LookupFunc looks up one lease attribute. os.LookupEnv is the production
// implementation.
type LookupFunc func(key string) (string, bool)

// Reader reads lease attributes for the supported hook actions.
type Reader struct {
	lookup LookupFunc
	logger *slog.Logger
}

// ReaderOption is a functional option for configuring the Reader.
type ReaderOption func(*Reader)

// WithLookup sets the attribute lookup (for testing).
func WithLookup(lookup LookupFunc) ReaderOption {
	return func(r *Reader) {
		if lookup != nil {
			r.lookup = lookup
		}
	}
}

// WithReaderLogger sets a custom logger.
func WithReaderLogger(logger *slog.Logger) ReaderOption {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReader creates a Reader over the process environment.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		lookup: os.LookupEnv,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Renewed reads the lease of a lease4_renew or lease4_recover event. A lease
// without a usable address is logged and yields no leases.
func (r *Reader) Renewed() []Lease {
	l, err := r.read("LEASE4_")
	if err != nil {
		r.logger.Warn("skipping lease", slog.String("error", err.Error()))
		return nil
	}
	return []Lease{l}
}

// Committed reads every lease of a leases4_committed event. Leases without a
// usable address are logged and skipped.
func (r *Reader) Committed() ([]Lease, error) {
	raw, _ := r.lookup("LEASES4_SIZE")
	size, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || size < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSize, raw)
	}

	leases := make([]Lease, 0, size)
	for i := 0; i < size; i++ {
		l, err := r.read(fmt.Sprintf("LEASES4_AT%d_", i))
		if err != nil {
			r.logger.Warn("skipping lease",
				slog.Int("index", i),
				slog.String("error", err.Error()),
			)
			continue
		}
		leases = append(leases, l)
	}

	return leases, nil
}

func (r *Reader) read(prefix string) (Lease, error) {
	hostname, _ := r.lookup(prefix + "HOSTNAME")
	hwAddr, _ := r.lookup(prefix + "HWADDR")

	raw, ok := r.lookup(prefix + "ADDRESS")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return Lease{}, fmt.Errorf("%w (hostname %q, hwaddr %q)", ErrNoAddress, hostname, hwAddr)
	}

	addr, err := netip.ParseAddr(raw)
	if err != nil || !addr.Is4() {
		return Lease{}, fmt.Errorf("%w: %q", ErrInvalidAddress, raw)
	}

	return Lease{
		Hostname: strings.TrimSpace(hostname),
		Address:  addr,
		HWAddr:   strings.TrimSpace(hwAddr),
	}, nil
}
