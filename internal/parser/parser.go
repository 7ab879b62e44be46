package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime"
)

var (
	// ErrNotFound is returned when the input path is not an existing regular file
	ErrNotFound = errors.New("file not found")
	// ErrMalformed is returned when the input breaks the two line header or separator layout
	ErrMalformed = errors.New("malformed BRENDA input")
)

// Record is one (ID, field, description) row
type Record struct {
	ID          string `json:"ID" yaml:"ID"`
	Field       string `json:"field" yaml:"field"`
	Description string `json:"description" yaml:"description"`
}

// Columns are the output column names, in Record field order
var Columns = []string{"ID", "field", "description"}

// Table holds parsed records and where they came from
type Table struct {
	Records []Record
	Source  *Source // nil when parsed from lines or a reader
	Clean   bool    // whether Normalize ran
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Records)
}

// IDs returns the distinct IDs in first-seen order
func (t *Table) IDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, rec := range t.Records {
		if _, ok := seen[rec.ID]; ok {
			continue
		}
		seen[rec.ID] = struct{}{}
		ids = append(ids, rec.ID)
	}
	return ids
}

// Filter returns a table with only the rows whose ID is in ids and whose field is in fields.
// An empty list matches everything.
func (t *Table) Filter(ids, fields []string) *Table {
	if len(ids) == 0 && len(fields) == 0 {
		return t
	}

	idSet := toSet(ids)
	fieldSet := toSet(fields)

	out := &Table{Source: t.Source, Clean: t.Clean}
	for _, rec := range t.Records {
		if len(idSet) > 0 {
			if _, ok := idSet[rec.ID]; !ok {
				continue
			}
		}
		if len(fieldSet) > 0 {
			if _, ok := fieldSet[rec.Field]; !ok {
				continue
			}
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Options controls post-processing
type Options struct {
	// Clean collapses annotated IDs into TRANSFERRED_DELETED rows
	Clean bool
}

// DefaultOptions returns options with normalization on
func DefaultOptions() Options {
	return Options{Clean: true}
}

// Parser reads BRENDA flat files into tables
type Parser struct {
	opts Options
}

// NewParser creates a new parser
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// ParseFile parses a BRENDA text file, optionally gzip or xz compressed.
// A missing path fails with ErrNotFound before anything is read.
func (p *Parser) ParseFile(path string) (*Table, error) {
	absPath, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	data, src, err := readSource(absPath)
	if err != nil {
		return nil, err
	}

	table, err := p.ParseReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}
	table.Source = src
	return table, nil
}

// ParseReader parses BRENDA text read from r
func (p *Parser) ParseReader(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	// Reference and synonym lines can run past the default 64KB token size
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return p.ParseLines(lines)
}

// ParseLines filters, parses and optionally normalizes raw lines
func (p *Parser) ParseLines(raw []string) (table *Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			rtErr, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			table = nil
			err = fmt.Errorf("%w: %v", ErrMalformed, rtErr)
		}
	}()

	records := ParseRecords(FilterLines(raw))
	if p.opts.Clean {
		records = Normalize(records)
	}
	return &Table{Records: records, Clean: p.opts.Clean}, nil
}
