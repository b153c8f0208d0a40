package ui

import (
	"fmt"
	"strings"

	"github.com/trawltui/trawl/internal/stringable"
)

// renderStatus renders the footer: connection state, totals and any
// transient message.
func (m Model) renderStatus() string {
	parts := []string{}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, m.styles.DangerText.Render("OFFLINE"))
	case m.snapshot.LastError != nil:
		parts = append(parts, m.styles.WarningText.Render("retrying"))
	default:
		parts = append(parts, m.styles.SuccessText.Render("connected"))
	}

	parts = append(parts, fmt.Sprintf("%d torrents", len(m.views)))

	if m.snapshot.HasStats {
		parts = append(parts, fmt.Sprintf("↓%s ↑%s",
			stringable.NewRate(m.snapshot.Stats.RateDown),
			stringable.NewRate(m.snapshot.Stats.RateUp)))
	}

	parts = append(parts, "sort:"+m.sortKey)

	if m.flash != "" {
		parts = append(parts, m.styles.DangerText.Render(m.flash))
	} else if m.snapshot.LastError != nil {
		parts = append(parts, m.styles.MutedText.Render(m.snapshot.LastError.Error()))
	}

	line := strings.Join(parts, "  |  ")
	return m.styles.Footer.Width(m.width).Render(line)
}
