package zonefile

import "strings"

// RecordType is the DNS record type written by a reconciliation pass.
type RecordType string

// Record types understood by the record matcher.
const (
	TypeA   RecordType = "A"
	TypePTR RecordType = "PTR"
)

// Valid returns true for the record types this package can reconcile.
func (t RecordType) Valid() bool {
	return t == TypeA || t == TypePTR
}

// Updates is the pending update map for one zone: record name to target value.
// It remembers insertion order so that records appended for new names come out
// in the order the leases were seen.
type Updates struct {
	names  []string
	values map[string]string
}

// NewUpdates returns an empty update map.
func NewUpdates() *Updates {
	return &Updates{values: make(map[string]string)}
}

// Set records value as the target for name. Setting an existing name keeps its
// original position and replaces the value.
func (u *Updates) Set(name, value string) {
	if _, ok := u.values[name]; !ok {
		u.names = append(u.names, name)
	}
	u.values[name] = value
}

// Get returns the pending value for name.
func (u *Updates) Get(name string) (string, bool) {
	if u == nil {
		return "", false
	}
	v, ok := u.values[name]
	return v, ok
}

// Len returns the number of pending names.
func (u *Updates) Len() int {
	if u == nil {
		return 0
	}
	return len(u.names)
}

// Names returns the pending names in insertion order.
func (u *Updates) Names() []string {
	if u == nil {
		return nil
	}
	out := make([]string, len(u.names))
	copy(out, u.names)
	return out
}

// ValueSet returns the set of all pending target values.
func (u *Updates) ValueSet() map[string]struct{} {
	set := make(map[string]struct{}, u.Len())
	if u == nil {
		return set
	}
	for _, v := range u.values {
		set[v] = struct{}{}
	}
	return set
}

// String formats the map as name=value pairs in insertion order.
func (u *Updates) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range u.Names() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(u.values[name])
	}
	b.WriteByte('}')
	return b.String()
}
