package zonefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Result is the outcome of reconciling one zone file.
type Result struct {
	// Lines is the complete new zone body, in order.
	Lines []string

	// Changed is true when a record was rewritten or appended. Only a changed
	// zone needs publishing; the serial rewrite alone does not count.
	Changed bool

	// SerialFound is true when the zone had a serial line.
	SerialFound bool
	OldSerial   uint32
	NewSerial   uint32

	Rewritten int
	Dropped   int
	Appended  int
}

// Source reads whole files. Both the local and the SFTP publisher file
// systems satisfy it.
type Source interface {
	ReadFile(path string) ([]byte, error)
}

// UpdateZoneFile reconciles the zone file at path with updates. Failing to
// open the file is returned as an error, as is a corrupt serial line.
func UpdateZoneFile(path string, updates *Updates, rrType RecordType) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening zone file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return reconcile(path, f, updates, rrType)
}

// ReadZoneFile is UpdateZoneFile for zone files reached through src.
func ReadZoneFile(src Source, path string, updates *Updates, rrType RecordType) (*Result, error) {
	data, err := src.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading zone file: %w", err)
	}
	return reconcile(path, bytes.NewReader(data), updates, rrType)
}

// Reconcile reconciles the zone body read from r with updates. New records
// are written with rrType.
func Reconcile(r io.Reader, updates *Updates, rrType RecordType) (*Result, error) {
	return reconcile("", r, updates, rrType)
}

func reconcile(path string, r io.Reader, updates *Updates, rrType RecordType) (*Result, error) {
	if !rrType.Valid() {
		return nil, fmt.Errorf("unsupported record type %q", rrType)
	}

	pending := updates.ValueSet()
	done := make(DoneSet)
	res := &Result{}

	lineNo := 0
	for line, err := range Lines(r) {
		if err != nil {
			return nil, fmt.Errorf("reading zone %s: %w", path, err)
		}
		lineNo++

		serial, isSerial, err := parseSerialLine(line)
		if err != nil {
			var corrupt *CorruptZoneFileError
			if errors.As(err, &corrupt) {
				corrupt.Path = path
				corrupt.Line = lineNo
			}
			return nil, err
		}
		if isSerial {
			// Only the first serial line is the zone's serial; a second one is
			// bumped too so the body stays self-consistent.
			if !res.SerialFound {
				res.SerialFound = true
				res.OldSerial = serial.value
				res.NewSerial = serial.value + 1
			}
			serial.value++
			res.Lines = append(res.Lines, serial.String())
			continue
		}

		newLine, outcome := UpdateRecord(line, updates, pending, done)
		switch outcome {
		case Rewritten:
			res.Rewritten++
		case Dropped:
			res.Dropped++
			continue
		}
		res.Changed = res.Changed || outcome.Changed()
		res.Lines = append(res.Lines, newLine)
	}

	for _, name := range updates.Names() {
		if done.Has(name) {
			continue
		}
		value, _ := updates.Get(name)
		res.Lines = append(res.Lines, FormatRecord(name, rrType, value))
		res.Appended++
		res.Changed = true
	}

	return res, nil
}
