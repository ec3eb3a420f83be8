// Package zonefile reconciles simple NSD zone files with a batch of pending
// record updates.
//
// Only two line shapes are understood:
//
//   - the serial line, which ends with the ";Serial" marker and carries the
//     zone serial number, and
//   - four-token resource records of the form "NAME IN A|PTR VALUE".
//
// Every other line ($ORIGIN, $TTL, the SOA header, NS records, comments) is
// passed through verbatim. Reconciliation rewrites records whose value changed,
// drops duplicate and stale records, appends records for names that had none,
// and always increments the serial by one in the emitted lines.
//
// # Basic Usage
//
//	updates := zonefile.NewUpdates()
//	updates.Set("frodo", "192.168.11.26")
//
//	result, err := zonefile.UpdateZoneFile("/var/lib/nsd/home.arpa.forward", updates, zonefile.TypeA)
//	if err != nil {
//		return err // errors.Is(err, zonefile.ErrCorruptZoneFile) for a bad serial
//	}
//	if result.Changed {
//		// publish result.Lines
//	}
package zonefile
