package parser

import "sort"

// Stats summarizes a table
type Stats struct {
	Entries            int // distinct IDs
	Records            int
	TransferredDeleted int
	ByField            map[string]int
}

// Stats counts rows per field and distinct entries
func (t *Table) Stats() Stats {
	s := Stats{
		Entries: len(t.IDs()),
		Records: len(t.Records),
		ByField: make(map[string]int),
	}
	for _, rec := range t.Records {
		s.ByField[rec.Field]++
		if rec.Field == TransferredDeleted {
			s.TransferredDeleted++
		}
	}
	return s
}

// SortedFields returns the fields seen, most frequent first, ties by name
func (s Stats) SortedFields() []string {
	fields := make([]string, 0, len(s.ByField))
	for f := range s.ByField {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		if s.ByField[fields[i]] != s.ByField[fields[j]] {
			return s.ByField[fields[i]] > s.ByField[fields[j]]
		}
		return fields[i] < fields[j]
	})
	return fields
}
