package parser

import (
	"regexp"
	"strings"
)

const emptyComment = " ()"

var (
	// comment text wrapped in parentheses at the end of an ID
	commentRegex = regexp.MustCompile(`\((.*)\)$`)
	// the comment, with an optional leading space, through end of ID
	commentStripRegex = regexp.MustCompile(`\s?\(.*$`)
)

// Normalize handles deleted and transferred EC numbers.
//
// Empty " ()" comments are removed from every ID first. Rows whose ID still
// carries a parenthesized comment are collapsed to one TRANSFERRED_DELETED row
// per distinct ID, with the comment as description and the bare EC number as ID.
// Standard rows come first, collapsed rows after, each in input order.
func Normalize(records []Record) []Record {
	standard := make([]Record, 0, len(records))
	var annotated []Record
	seen := make(map[string]struct{})

	for _, rec := range records {
		id := strings.ReplaceAll(rec.ID, emptyComment, "")

		if !strings.Contains(id, "(") {
			rec.ID = id
			standard = append(standard, rec)
			continue
		}

		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		annotated = append(annotated, Record{
			ID:          commentStripRegex.ReplaceAllString(id, ""),
			Field:       TransferredDeleted,
			Description: extractComment(id),
		})
	}

	return append(standard, annotated...)
}

// extractComment returns the text inside the trailing parentheses of id
func extractComment(id string) string {
	if matches := commentRegex.FindStringSubmatch(id); matches != nil {
		return matches[1]
	}
	return ""
}
