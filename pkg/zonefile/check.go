package zonefile

import (
	"bytes"
	"fmt"

	"github.com/miekg/dns"
)

// checkDefaultTTL stands in for a missing $TTL; the check only cares about syntax.
const checkDefaultTTL = 3600

// Check parses a reconciled zone body with the full zone parser, resolving
// relative owner names against origin, and returns the number of resource
// records found. It catches output that NSD would refuse to load.
func Check(lines []string, origin string) (int, error) {
	zp := dns.NewZoneParser(bytes.NewReader(Format(lines)), dns.Fqdn(origin), "")
	zp.SetDefaultTTL(checkDefaultTTL)
	zp.SetIncludeAllowed(false)

	count := 0
	for _, ok := zp.Next(); ok; _, ok = zp.Next() {
		count++
	}
	if err := zp.Err(); err != nil {
		return count, fmt.Errorf("checking zone %s: %w", dns.Fqdn(origin), err)
	}
	return count, nil
}
