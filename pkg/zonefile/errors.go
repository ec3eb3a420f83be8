package zonefile

import (
	"errors"
	"fmt"
)

// ErrCorruptZoneFile indicates a zone file that cannot be reconciled safely,
// for example a serial line whose number does not parse.
var ErrCorruptZoneFile = errors.New("corrupt zone file")

// CorruptZoneFileError describes where a zone file is corrupt.
type CorruptZoneFileError struct {
	Path   string // empty when reading from an anonymous reader
	Line   int    // 1-based, 0 when unknown
	Text   string
	Reason string
}

func (e *CorruptZoneFileError) Error() string {
	where := e.Path
	if where == "" {
		where = "zone"
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}
	return fmt.Sprintf("%s: %v: %s: %q", where, ErrCorruptZoneFile, e.Reason, e.Text)
}

// Unwrap allows errors.Is(err, ErrCorruptZoneFile).
func (e *CorruptZoneFileError) Unwrap() error {
	return ErrCorruptZoneFile
}

// IsCorrupt returns true if the error indicates a corrupt zone file.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptZoneFile)
}
