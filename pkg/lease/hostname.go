package lease

import "strings"

// Cleaner turns a client-supplied hostname into the label published in DNS.
// Clients that send no hostname are named after their hardware address, or
// after a static override for that address.
type Cleaner struct {
	static map[string]string
}

// NewCleaner creates a Cleaner. Keys of static are hardware addresses in
// either colon or underscore form, matched without regard to case; values are
// the names to publish.
func NewCleaner(static map[string]string) *Cleaner {
	c := &Cleaner{static: make(map[string]string, len(static))}
	for hw, name := range static {
		c.static[strings.ToLower(NormalizeHWAddr(hw))] = name
	}
	return c
}

// NormalizeHWAddr turns "24:46:c8:8b:bb:f1" into "24_46_c8_8b_bb_f1", which is
// usable as a DNS label. Case is kept as Kea sent it.
func NormalizeHWAddr(hwAddr string) string {
	return strings.ReplaceAll(hwAddr, ":", "_")
}

// CleanHostname returns the leftmost label of hostname, or a name derived from
// hwAddr when hostname is empty.
func (c *Cleaner) CleanHostname(hostname, hwAddr string) string {
	if hostname == "" {
		hw := NormalizeHWAddr(hwAddr)
		if name, ok := c.static[strings.ToLower(hw)]; ok {
			return name
		}
		return hw
	}

	if i := strings.IndexByte(hostname, '.'); i >= 0 {
		return hostname[:i]
	}
	return hostname
}
