package zonefile

import (
	"strconv"
	"strings"
)

// SerialMarker terminates the line holding the zone serial number.
const SerialMarker = ";Serial"

// serialLine is a parsed serial line. Leading indentation and the whitespace
// between the number and the marker are kept so the rewrite is minimal.
type serialLine struct {
	indent string
	value  uint32
	gap    string
}

func (s serialLine) String() string {
	return s.indent + strconv.FormatUint(uint64(s.value), 10) + s.gap + SerialMarker
}

// parseSerialLine reports whether line is the serial line and, if so, its parts.
func parseSerialLine(line string) (serialLine, bool, error) {
	trimmed := strings.TrimRight(line, " \t\r")
	if !strings.HasSuffix(trimmed, SerialMarker) {
		return serialLine{}, false, nil
	}

	prefix := strings.TrimSuffix(trimmed, SerialMarker)
	number := strings.TrimSpace(prefix)
	value, err := strconv.ParseUint(number, 10, 32)
	if err != nil {
		return serialLine{}, true, &CorruptZoneFileError{
			Text:   line,
			Reason: "serial is not an unsigned 32-bit integer",
		}
	}

	indentLen := len(prefix) - len(strings.TrimLeft(prefix, " \t"))
	gapStart := len(strings.TrimRight(prefix, " \t"))

	return serialLine{
		indent: prefix[:indentLen],
		value:  uint32(value),
		gap:    prefix[gapStart:],
	}, true, nil
}

// UpdateSerial returns the successor of the serial line and true, or line
// unchanged and false when it is not the serial line. A serial line whose
// number does not parse yields a *CorruptZoneFileError.
//
// The serial wraps from 4294967295 to 0 as in RFC 1982 serial arithmetic.
func UpdateSerial(line string) (string, bool, error) {
	s, ok, err := parseSerialLine(line)
	if !ok || err != nil {
		return line, ok, err
	}
	s.value++
	return s.String(), true, nil
}
