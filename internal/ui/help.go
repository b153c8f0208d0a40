package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	sections := []struct {
		title string
		keys  []key.Binding
	}{
		{"General", []key.Binding{m.keys.Quit, m.keys.Help, m.keys.CycleTheme}},
		{"Filtering", []key.Binding{m.keys.Filter, m.keys.ClearFilter, m.keys.CycleSort}},
		{"Navigation", []key.Binding{m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom, m.keys.PageUp, m.keys.PageDown}},
		{"Torrent", []key.Binding{m.keys.Start, m.keys.Stop, m.keys.Verify, m.keys.Remove}},
		{"Details", []key.Binding{m.keys.Details, m.keys.Section, m.keys.Escape}},
	}

	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.styles.AccentText.Render(sec.title))
		b.WriteByte('\n')
		for _, binding := range sec.keys {
			h := binding.Help()
			b.WriteString("  ")
			b.WriteString(pad(h.Key, 12))
			b.WriteString(m.styles.MutedText.Render(h.Desc))
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	b.WriteString(m.styles.MutedText.Render("Filter examples: downloading  size>1GiB  name~linux&!private  tracker=example.org"))

	box := m.styles.HelpBox.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
