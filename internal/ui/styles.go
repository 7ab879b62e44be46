package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/brendatab/internal/config"
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	// List view styles
	ID       lipgloss.Style
	Field    lipgloss.Style
	Desc     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style

	// Preview styles
	PreviewID    lipgloss.Style
	PreviewField lipgloss.Style
	PreviewDesc  lipgloss.Style

	// Chrome styles
	Divider lipgloss.Style
	Status  lipgloss.Style

	// Colors for direct access
	SelectedBg lipgloss.Color
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		ID:           lipgloss.NewStyle().Bold(true),
		Field:        lipgloss.NewStyle(),
		Desc:         lipgloss.NewStyle(),
		Selected:     lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Cursor:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		PreviewID:    lipgloss.NewStyle().Bold(true),
		PreviewField: lipgloss.NewStyle(),
		PreviewDesc:  lipgloss.NewStyle(),
		Divider:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		SelectedBg:   lipgloss.Color("236"),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	idColor := parseANSIColor(config.GetColorID())
	fieldColor := parseANSIColor(config.GetColorField())
	descColor := parseANSIColor(config.GetColorDesc())

	s.ID = lipgloss.NewStyle().Foreground(idColor)
	s.Field = lipgloss.NewStyle().Foreground(fieldColor)
	s.Desc = lipgloss.NewStyle().Foreground(descColor)

	// Preview styles (same colors, ID is bold)
	s.PreviewID = lipgloss.NewStyle().Bold(true).Foreground(idColor)
	s.PreviewField = lipgloss.NewStyle().Foreground(fieldColor)
	s.PreviewDesc = lipgloss.NewStyle().Foreground(descColor)
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
