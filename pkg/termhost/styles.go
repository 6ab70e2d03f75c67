package termhost

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used to render each widget kind.
type Styles struct {
	Frame     lipgloss.Style
	Label     lipgloss.Style
	Button    lipgloss.Style
	Checkbox  lipgloss.Style
	Textfield lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	StatusBar lipgloss.Style
}

// DefaultStyles returns the default widget styles.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		Label: lipgloss.NewStyle(),
		Button: lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")),
		Checkbox: lipgloss.NewStyle(),
		Textfield: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245")),
		ActiveTab: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Underline(true),
		StatusBar: lipgloss.NewStyle().
			Faint(true),
	}
}

// WithHighlight overrides the accent color used for buttons and active tabs.
func (s Styles) WithHighlight(color string) Styles {
	s.Button = s.Button.Background(lipgloss.Color(color))
	s.ActiveTab = s.ActiveTab.Foreground(lipgloss.Color(color))
	return s
}
