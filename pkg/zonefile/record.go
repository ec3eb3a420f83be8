package zonefile

import "strings"

// Outcome is the record matcher's decision for one line.
type Outcome int

// Record matcher outcomes.
const (
	// Unrecognized lines are not "NAME IN A|PTR VALUE" records and pass through.
	Unrecognized Outcome = iota
	// Kept records are already correct or not affected by the updates.
	Kept
	// Rewritten records carry a new value for their name.
	Rewritten
	// Dropped records are duplicates of a name already handled in this pass,
	// or stale records pointing at a value that is being given to another name.
	Dropped
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Kept:
		return "kept"
	case Rewritten:
		return "rewritten"
	case Dropped:
		return "dropped"
	default:
		return "unrecognized"
	}
}

// Changed reports whether the outcome modifies a record value.
// Dropping a line is not a change on its own.
func (o Outcome) Changed() bool {
	return o == Rewritten
}

// DoneSet holds the record names already resolved during one pass.
type DoneSet map[string]struct{}

// Has reports whether name was already resolved.
func (d DoneSet) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Record is a parsed four-token resource record line.
type Record struct {
	Name  string
	Type  RecordType
	Value string
}

// String formats the record the way the reconciler writes it.
func (r Record) String() string {
	return FormatRecord(r.Name, r.Type, r.Value)
}

// FormatRecord formats a record line: name, two tabs, then IN, type and value
// separated by single tabs.
func FormatRecord(name string, rrType RecordType, value string) string {
	return name + "\t\tIN\t" + string(rrType) + "\t" + value
}

// ParseRecord parses line as "NAME IN A|PTR VALUE". It returns false for any
// other shape.
func ParseRecord(line string) (Record, bool) {
	tokens := strings.Fields(line)
	if len(tokens) != 4 || tokens[1] != "IN" {
		return Record{}, false
	}
	rrType := RecordType(tokens[2])
	if !rrType.Valid() {
		return Record{}, false
	}
	return Record{Name: tokens[0], Type: rrType, Value: tokens[3]}, true
}

// UpdateRecord decides what happens to one zone line. The returned line is
// meaningless when the outcome is Dropped. done is updated in place; the first
// record line seen for a name wins and later ones are dropped.
func UpdateRecord(line string, updates *Updates, pending map[string]struct{}, done DoneSet) (string, Outcome) {
	rec, ok := ParseRecord(line)
	if !ok {
		return line, Unrecognized
	}

	if done.Has(rec.Name) {
		return "", Dropped
	}
	done[rec.Name] = struct{}{}

	if newValue, ok := updates.Get(rec.Name); ok {
		if newValue != rec.Value {
			rec.Value = newValue
			return rec.String(), Rewritten
		}
		return line, Kept
	}

	// Another name is being moved onto this value.
	if _, ok := pending[rec.Value]; ok {
		return "", Dropped
	}

	return line, Kept
}
