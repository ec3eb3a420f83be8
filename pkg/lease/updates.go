package lease

import (
	"fmt"
	"log/slog"
	"net/netip"
	"strings"

	"github.com/miekg/dns"

	"gitlab.bluewillows.net/root/leasezone/pkg/zonefile"
)

// Binding is one hostname to address assignment derived from a lease.
type Binding struct {
	Host    string
	Address netip.Addr
}

// Batch holds the pending updates for both zones of one hook invocation.
type Batch struct {
	Forward  *zonefile.Updates
	Reverse  *zonefile.Updates
	Bindings []Binding
}

// Empty reports whether no lease produced a binding.
func (b *Batch) Empty() bool {
	return len(b.Bindings) == 0
}

// Builder derives forward and reverse updates from leases.
type Builder struct {
	cleaner       *Cleaner
	domain        string
	reverseLabels int
	logger        *slog.Logger
}

// BuilderOption is a functional option for configuring the Builder.
type BuilderOption func(*Builder)

// WithBuilderLogger sets a custom logger.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithReverseLabels sets how many leading labels of the in-addr.arpa name are
// used as the reverse record name: 1 for a /24 reverse zone, 2 for a /16.
func WithReverseLabels(n int) BuilderOption {
	return func(b *Builder) {
		if n >= 1 && n <= 4 {
			b.reverseLabels = n
		}
	}
}

// NewBuilder creates a Builder publishing hosts under domain.
func NewBuilder(cleaner *Cleaner, domain string, opts ...BuilderOption) *Builder {
	if cleaner == nil {
		cleaner = NewCleaner(nil)
	}
	b := &Builder{
		cleaner:       cleaner,
		domain:        strings.TrimSuffix(domain, "."),
		reverseLabels: 1,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build turns leases into pending updates. Leases whose cleaned name is empty
// or would break the token structure of a zone line are logged and skipped.
func (b *Builder) Build(leases []Lease) *Batch {
	batch := &Batch{
		Forward: zonefile.NewUpdates(),
		Reverse: zonefile.NewUpdates(),
	}

	for _, l := range leases {
		host := b.cleaner.CleanHostname(l.Hostname, l.HWAddr)
		if host == "" || strings.ContainsAny(host, " \t;") {
			b.logger.Warn("skipping lease with unusable hostname",
				slog.String("hostname", l.Hostname),
				slog.String("hwaddr", l.HWAddr),
				slog.String("address", l.Address.String()),
			)
			continue
		}

		reverse, err := ReverseName(l.Address, b.reverseLabels)
		if err != nil {
			b.logger.Warn("skipping lease", slog.String("error", err.Error()))
			continue
		}

		b.logger.Info("applying lease",
			slog.String("host", host),
			slog.String("address", l.Address.String()),
		)

		batch.Forward.Set(host, l.Address.String())
		batch.Reverse.Set(reverse, b.FQDN(host))
		batch.Bindings = append(batch.Bindings, Binding{Host: host, Address: l.Address})
	}

	return batch
}

// FQDN returns the fully-qualified name of host in the builder's domain.
// Without a domain the bare host is returned, relative to the reverse origin.
func (b *Builder) FQDN(host string) string {
	if b.domain == "" {
		return host
	}
	return dns.Fqdn(host + "." + b.domain)
}

// ReverseName returns the record name of addr inside its reverse zone: the
// first labels labels of its in-addr.arpa name. 192.168.11.26 with one label
// is "26".
func ReverseName(addr netip.Addr, labels int) (string, error) {
	if !addr.Is4() {
		return "", fmt.Errorf("reverse name for %s: not an IPv4 address", addr)
	}
	if labels < 1 || labels > 4 {
		return "", fmt.Errorf("reverse name for %s: %d labels out of range", addr, labels)
	}

	arpa, err := dns.ReverseAddr(addr.String())
	if err != nil {
		return "", fmt.Errorf("reverse name for %s: %w", addr, err)
	}

	parts := dns.SplitDomainName(arpa)
	return strings.Join(parts[:labels], "."), nil
}
