package zonefile

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// maxLineLength bounds a single zone file line.
const maxLineLength = 1024 * 1024

// Lines yields the lines of r with trailing whitespace removed. The sequence
// is single use. A read error is yielded once as the final element.
func Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
		for scanner.Scan() {
			if !yield(strings.TrimRight(scanner.Text(), " \t\r"), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", err)
		}
	}
}

// Format joins lines into a zone file body terminated by a newline.
func Format(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
