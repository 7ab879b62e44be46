package parser

import (
	"strings"
	"unicode"
)

// FilterLines drops blank and comment lines, trimming trailing whitespace from the rest.
// Order is preserved and filtering an already filtered slice is a no-op.
func FilterLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" || line[0] == CommentMarker {
			continue
		}
		out = append(out, line)
	}
	return out
}

// entryState is the accumulator threaded through the scan
type entryState struct {
	id          string
	field       string
	description strings.Builder
}

// flush appends the in-progress record and clears the description
func (s *entryState) flush(records []Record) []Record {
	records = append(records, Record{
		ID:          s.id,
		Field:       s.field,
		Description: s.description.String(),
	})
	s.description.Reset()
	return records
}

// ParseRecords converts filtered lines into records.
//
// lines[0] must be an ID line and lines[1] a field tag. A separator must be
// followed by two more lines. Input that breaks either rule panics with an
// index out of range error; callers wanting an error should use Parser.
//
// The final line is never dispatched, it is covered by the closing flush.
func ParseRecords(lines []string) []Record {
	var records []Record
	var state entryState

	state.id = stripIDPrefix(lines[0])
	state.field = lines[1]

	last := len(lines) - 1
	for i := 2; i < last; i++ {
		line := lines[i]

		switch {
		case line == EntrySeparator:
			records = state.flush(records)
			i++
			state.id = stripIDPrefix(lines[i])
			i++
			state.field = lines[i]
		case IsFieldTag(line):
			records = state.flush(records)
			state.field = line
		default:
			state.description.WriteString(line)
			state.description.WriteByte('\n')
		}
	}

	return state.flush(records)
}

// stripIDPrefix drops the three byte "ID\t" lead of an ID line
func stripIDPrefix(line string) string {
	if len(line) < len(IDPrefix) {
		return ""
	}
	return line[len(IDPrefix):]
}
