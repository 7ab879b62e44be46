package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/gubarz/brendatab/internal/parser"
)

var (
	// ErrUnknownFormat is returned for format names outside the supported set
	ErrUnknownFormat = errors.New("unknown format")
	// ErrDestinationRequired is returned when a format cannot write to a stream
	ErrDestinationRequired = errors.New("destination path required")
)

// ============================================================================
// Formats
// ============================================================================

// Format selects how a table is serialized
type Format string

const (
	FormatCSV    Format = "csv"
	FormatTSV    Format = "tsv"
	FormatJSON   Format = "json"
	FormatJSONL  Format = "jsonl"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
	FormatTable  Format = "table"
)

// Formats lists every supported format
var Formats = []Format{FormatCSV, FormatTSV, FormatJSON, FormatJSONL, FormatYAML, FormatSQLite, FormatTable}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, name, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ============================================================================
// Exporter
// ============================================================================

// Exporter writes parsed tables to files or a stream
type Exporter struct {
	out io.Writer
}

// NewExporter creates an exporter that streams to stdout
func NewExporter() *Exporter {
	return &Exporter{out: os.Stdout}
}

// WithWriter sets the stream used when no destination is given (useful for testing)
func (e *Exporter) WithWriter(w io.Writer) *Exporter {
	e.out = w
	return e
}

// Export writes t in the given format. dest is a file path; empty means the stream.
// The sqlite format always needs a dest.
func (e *Exporter) Export(t *parser.Table, format Format, dest string) (err error) {
	if format == FormatSQLite {
		if dest == "" {
			return fmt.Errorf("%w for %s output", ErrDestinationRequired, format)
		}
		_, err = WriteSQLite(t, dest)
		return err
	}

	w := e.out
	if dest != "" {
		f, createErr := os.Create(dest)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	return e.write(w, t, format)
}

// write dispatches to the stream encoders
func (e *Exporter) write(w io.Writer, t *parser.Table, format Format) error {
	switch format {
	case FormatCSV:
		return writeDelimited(w, t, ',')
	case FormatTSV:
		return writeDelimited(w, t, '\t')
	case FormatJSON:
		return writeJSON(w, t)
	case FormatJSONL:
		return writeJSONL(w, t)
	case FormatYAML:
		return writeYAML(w, t)
	case FormatTable:
		_, err := fmt.Fprintln(w, RenderTable(t))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ============================================================================
// Encoders
// ============================================================================

func writeDelimited(w io.Writer, t *parser.Table, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if err := cw.Write(parser.Columns); err != nil {
		return err
	}
	for _, rec := range t.Records {
		if err := cw.Write([]string{rec.ID, rec.Field, rec.Description}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, t *parser.Table) error {
	records := t.Records
	if records == nil {
		records = []parser.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeJSONL(w io.Writer, t *parser.Table) error {
	enc := json.NewEncoder(w)
	for _, rec := range t.Records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, t *parser.Table) error {
	records := t.Records
	if records == nil {
		records = []parser.Record{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

// ============================================================================
// Terminal Table
// ============================================================================

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderTable renders records as a bordered table, one line per description
func RenderTable(t *parser.Table) string {
	rows := make([][]string, 0, len(t.Records))
	for _, rec := range t.Records {
		rows = append(rows, []string{rec.ID, rec.Field, firstLine(rec.Description)})
	}
	return renderGrid(parser.Columns, rows)
}

// RenderGrid renders arbitrary rows with the same look as RenderTable
func RenderGrid(headers []string, rows [][]string) string {
	return renderGrid(headers, rows)
}

func renderGrid(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// firstLine returns the first line of a string
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
