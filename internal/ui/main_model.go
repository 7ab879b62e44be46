package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gubarz/brendatab/internal/config"
	"github.com/gubarz/brendatab/internal/parser"
)

// ============================================================================
// String Builder Pool - reduces GC pressure from rendering
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// ============================================================================
// Record Item
// ============================================================================

// recordItem wraps a Record with a pre-lowered search key
type recordItem struct {
	rec    parser.Record
	search string
}

// newRecordItem creates a recordItem from a Record
func newRecordItem(rec parser.Record) recordItem {
	return recordItem{
		rec:    rec,
		search: strings.ToLower(rec.ID + "\n" + rec.Field + "\n" + rec.Description),
	}
}

// matchesQuery checks if the item contains all (already lowered) search words
func (item *recordItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !strings.Contains(item.search, word) {
			return false
		}
	}
	return true
}

// ============================================================================
// Column Config
// ============================================================================

// columnConfig holds display column widths and gaps
type columnConfig struct {
	idWidth    int
	fieldWidth int
	gap        int
}

// loadColumnConfig loads column configuration from config
func loadColumnConfig() columnConfig {
	cols := columnConfig{
		idWidth:    config.GetColumnID(),
		fieldWidth: config.GetColumnField(),
		gap:        2,
	}
	// Unset or nonsense widths fall back to the defaults
	if cols.idWidth <= 0 {
		cols.idWidth = 16
	}
	if cols.fieldWidth <= 0 {
		cols.fieldWidth = 32
	}
	return cols
}

// ============================================================================
// Debounce
// ============================================================================

// filterMsg triggers filtering after debounce
type filterMsg struct{}

// debounceFilter returns a command that triggers filtering after a delay
func debounceFilter() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return filterMsg{}
	})
}

// ============================================================================
// Main Model
// ============================================================================

const (
	maxResults      = 5000
	previewMaxLines = 8
)

// mainModel is the Bubble Tea model for browsing records
type mainModel struct {
	width     int
	height    int
	textInput textinput.Model
	quitting  bool

	records  []recordItem
	filtered []recordItem
	cursor   int
	offset   int // viewport scroll offset
	columns  columnConfig
	status   string

	clipboard Clipboard
}

// newMainModel creates a new mainModel over the given records
func newMainModel(records []parser.Record, cb Clipboard) mainModel {
	ti := textinput.New()
	ti.Placeholder = "Filter by EC number, field or text..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	items := make([]recordItem, len(records))
	for i, rec := range records {
		items[i] = newRecordItem(rec)
	}

	return mainModel{
		records:   items,
		filtered:  items,
		textInput: ti,
		columns:   loadColumnConfig(),
		clipboard: cb,
	}
}

// Init implements tea.Model
func (m mainModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 4
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	case filterMsg:
		m.filterRecords()
		return m, nil
	}

	prevQuery := m.textInput.Value()
	var tiCmd tea.Cmd
	m.textInput, tiCmd = m.textInput.Update(msg)
	cmds = append(cmds, tiCmd)

	// Only trigger debounced filter if query changed
	if m.textInput.Value() != prevQuery {
		cmds = append(cmds, debounceFilter())
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes navigation keys; everything else goes to the text input
func (m *mainModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit, true
	case "up", "ctrl+p":
		m.moveCursor(-1)
	case "down", "ctrl+n":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-10)
	case "pgdown":
		m.moveCursor(10)
	case "home", "ctrl+a":
		m.cursor = 0
		m.adjustOffset()
	case "end", "ctrl+e":
		m.cursor = max(0, len(m.filtered)-1)
		m.adjustOffset()
	case "ctrl+y":
		m.copySelected()
	default:
		return nil, false
	}
	return nil, true
}

// copySelected puts the selected description on the clipboard
func (m *mainModel) copySelected() {
	rec, ok := m.selected()
	if !ok {
		return
	}
	if err := m.clipboard.Copy(rec.Description); err != nil {
		m.status = fmt.Sprintf("clipboard error: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied %s %s", rec.ID, rec.Field)
}

// selected returns the record under the cursor
func (m mainModel) selected() (parser.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return parser.Record{}, false
	}
	return m.filtered[m.cursor].rec, true
}

// moveCursor moves the cursor by delta, clamping to valid range
func (m *mainModel) moveCursor(delta int) {
	m.cursor += delta
	m.cursor = clamp(m.cursor, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
}

// adjustOffset ensures cursor is visible within viewport
func (m *mainModel) adjustOffset() {
	viewHeight := max(m.height-previewMaxLines-6, 3) // approximate list height
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+viewHeight {
		m.offset = m.cursor - viewHeight + 1
	}
	maxOffset := max(0, len(m.filtered)-viewHeight)
	m.offset = clamp(m.offset, 0, maxOffset)
}

// filterRecords filters the record list based on the search query
func (m *mainModel) filterRecords() {
	query := strings.TrimSpace(m.textInput.Value())

	if query == "" {
		m.filtered = m.records
	} else {
		words := strings.Fields(strings.ToLower(query))
		m.filtered = make([]recordItem, 0, min(len(m.records), maxResults))
		for i := range m.records {
			if m.records[i].matchesQuery(words) {
				m.filtered = append(m.filtered, m.records[i])
				// Limit results to prevent UI lag
				if len(m.filtered) >= maxResults {
					break
				}
			}
		}
	}

	m.cursor = clamp(m.cursor, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
}

// ============================================================================
// Rendering
// ============================================================================

// View implements tea.Model
func (m mainModel) View() string {
	if m.quitting {
		return ""
	}

	width := max(m.width, 80)
	height := max(m.height, 24)

	preview := m.renderPreview(width)
	previewLines := countLines(preview)

	inputLines := 3 // divider + info + input
	listHeight := max(height-previewLines-inputLines, 3)
	list := m.renderList(listHeight, width)
	listLines := countLines(list)

	padding := max(height-previewLines-listLines-inputLines, 0)

	b := getBuilder()
	defer putBuilder(b)
	b.WriteString(preview)
	b.WriteString(list)
	b.WriteString(strings.Repeat("\n", padding))
	b.WriteString(m.renderInput(width))

	return b.String()
}

// renderPreview renders the selected record at a fixed height
func (m mainModel) renderPreview(width int) string {
	b := getBuilder()
	defer putBuilder(b)
	lines := 0

	if rec, ok := m.selected(); ok {
		b.WriteString(styles.PreviewID.Render(rec.ID))
		b.WriteString("  ")
		b.WriteString(styles.PreviewField.Render(rec.Field))
		b.WriteString("\n")
		lines++

		desc := truncateLines(strings.TrimRight(rec.Description, "\n"), previewMaxLines-lines, width)
		if desc != "" {
			b.WriteString(styles.PreviewDesc.Render(desc))
			b.WriteString("\n")
			lines += countLines(desc + "\n")
		}
	}

	// Pad to fixed height
	for lines < previewMaxLines {
		b.WriteString("\n")
		lines++
	}

	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")

	return b.String()
}

// renderList renders the scrollable list of records
func (m *mainModel) renderList(maxHeight, width int) string {
	if len(m.filtered) == 0 {
		return ""
	}

	start, end := scrollWindow(m.cursor, len(m.filtered), maxHeight, &m.offset)
	gap := strings.Repeat(" ", m.columns.gap)

	b := getBuilder()
	defer putBuilder(b)
	for i := start; i < end; i++ {
		b.WriteString(m.renderListItem(m.filtered[i], i == m.cursor, gap, width))
		b.WriteString("\n")
	}

	return b.String()
}

// renderListItem renders a single list row: ID, field, first description line
func (m mainModel) renderListItem(item recordItem, selected bool, gap string, width int) string {
	idStyle, fieldStyle, descStyle := styles.ID, styles.Field, styles.Desc
	gapStr := gap
	if selected {
		idStyle = styles.WithSelection(idStyle)
		fieldStyle = styles.WithSelection(fieldStyle)
		descStyle = styles.WithSelection(descStyle)
		gapStr = styles.Selected.Render(gap)
	}

	id := fmt.Sprintf("%-*s", m.columns.idWidth, truncateString(item.rec.ID, m.columns.idWidth))
	field := fmt.Sprintf("%-*s", m.columns.fieldWidth, truncateString(item.rec.Field, m.columns.fieldWidth))

	descWidth := width - m.columns.idWidth - m.columns.fieldWidth - m.columns.gap*2 - 2
	desc := truncateString(firstLine(item.rec.Description), max(descWidth, 10))

	line := idStyle.Render(id) + gapStr + fieldStyle.Render(field) + gapStr + descStyle.Render(desc)
	if selected {
		return styles.Cursor.Render("▶ ") + line
	}
	return "  " + line
}

// renderInput renders the input section at the bottom
func (m mainModel) renderInput(width int) string {
	b := getBuilder()
	defer putBuilder(b)
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render(fmt.Sprintf("  %d/%d", len(m.filtered), len(m.records))))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("Ctrl+Y copy"))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("ESC exit"))
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	return b.String()
}

// ============================================================================
// Helpers
// ============================================================================

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// countLines counts newline-terminated lines
func countLines(s string) int {
	return strings.Count(s, "\n")
}

// scrollWindow returns the visible [start, end) range keeping cursor in view
func scrollWindow(cursor, total, height int, offset *int) (start, end int) {
	if cursor < *offset {
		*offset = cursor
	}
	if cursor >= *offset+height {
		*offset = cursor - height + 1
	}
	*offset = clamp(*offset, 0, max(0, total-height))
	return *offset, min(*offset+height, total)
}

// firstLine returns the first line of a string
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// truncateString cuts s to maxLen runes, marking the cut with an ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(r[:maxLen-1]) + "…"
}

// truncateLines keeps at most maxLines lines, each cut to maxLen
func truncateLines(text string, maxLines int, maxLen int) string {
	if text == "" || maxLines <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i, line := range lines {
		lines[i] = truncateString(strings.ReplaceAll(line, "\t", " "), maxLen)
	}
	return strings.Join(lines, "\n")
}
