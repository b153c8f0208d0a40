package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trawltui/trawl/internal/filter"
	"github.com/trawltui/trawl/internal/object"
	"github.com/trawltui/trawl/internal/stringable"
)

// Detail holds one torrent's fetched list sections.
type Detail struct {
	ID       int64
	Name     string
	Files    []*object.View
	Peers    []*object.View
	Trackers []*object.View
}

type detailMsg struct {
	detail *Detail
	err    error
}

var detailSections = []string{"files", "peers", "trackers"}

var fileColumns = []column{
	{title: "Name", width: 0, value: func(v *object.View) string {
		s, _ := v.Value("name").(string)
		return s
	}},
	{title: "Size", width: 9, value: func(v *object.View) string {
		return stringable.NewSize(toInt(v.Value("size"))).String()
	}},
	{title: "Done", width: 6, value: func(v *object.View) string {
		f, _ := v.Value("%downloaded").(float64)
		return stringable.NewPercent(f).String()
	}},
	{title: "Priority", width: 8, value: func(v *object.View) string {
		s, _ := v.Value("priority").(string)
		return s
	}},
	{title: "Wanted", width: 6, value: func(v *object.View) string {
		if b, _ := v.Value("wanted").(bool); b {
			return "yes"
		}
		return "no"
	}},
}

var peerColumns = []column{
	{title: "Host", width: 0, value: func(v *object.View) string {
		s, _ := v.Value("id").(string)
		return s
	}},
	{title: "Client", width: 20, value: func(v *object.View) string {
		s, _ := v.Value("client").(string)
		return s
	}},
	{title: "Done", width: 6, value: func(v *object.View) string {
		f, _ := v.Value("%downloaded").(float64)
		return stringable.NewPercent(f).String()
	}},
	{title: "Down", width: 10, value: func(v *object.View) string {
		return rateCell(toInt(v.Value("rate-down")))
	}},
	{title: "Up", width: 10, value: func(v *object.View) string {
		return rateCell(toInt(v.Value("rate-up")))
	}},
}

var trackerColumns = []column{
	{title: "Domain", width: 0, value: func(v *object.View) string {
		s, _ := v.Value("domain").(string)
		return s
	}},
	{title: "Status", width: 10, value: func(v *object.View) string {
		s, _ := v.Value("status").(string)
		return s
	}},
	{title: "Seeds", width: 6, value: func(v *object.View) string {
		return fmt.Sprintf("%d", toInt(v.Value("seeds")))
	}},
	{title: "Leeches", width: 7, value: func(v *object.View) string {
		return fmt.Sprintf("%d", toInt(v.Value("leeches")))
	}},
	{title: "Next announce", width: 16, value: func(v *object.View) string {
		return timeCell(toInt(v.Value("next-announce")))
	}},
	{title: "Error", width: 24, value: func(v *object.View) string {
		s, _ := v.Value("error").(string)
		return s
	}},
}

func timeCell(secs int64) string {
	if secs <= 0 {
		return "-"
	}
	return stringable.NewTimestamp(time.Unix(secs, 0)).String()
}

// openDetail fetches the selected torrent's detail lists asynchronously.
func (m *Model) openDetail() tea.Cmd {
	if m.onDetail == nil || m.selected < 0 || m.selected >= len(m.views) {
		return nil
	}
	id := toInt(m.views[m.selected].Value("id"))
	ctx := m.ctx
	fetch := m.onDetail
	return func() tea.Msg {
		d, err := fetch(ctx, id)
		return detailMsg{detail: d, err: err}
	}
}

func (m *Model) showDetail(d *Detail) {
	m.detail = d
	m.detailSection = 0
	m.detailChain = nil
	m.detailView.Width = m.width
	m.detailView.Height = m.tableHeight()
	m.refreshDetail()
}

func (m *Model) closeDetail() {
	m.detail = nil
	m.detailChain = nil
	m.detailSection = 0
}

// refreshDetail re-renders the focused section into the viewport.
func (m *Model) refreshDetail() {
	var b strings.Builder
	cols := m.detailColumns()
	for i, v := range m.detailRows() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.styles.Text.Render(renderRow(cols, m.width, func(c column) string { return c.value(v) })))
	}
	m.detailView.SetContent(b.String())
	m.detailView.GotoTop()
}

// detailRegistry is the filter registry for the focused section.
func (m Model) detailRegistry() *filter.Registry {
	switch detailSections[m.detailSection] {
	case "peers":
		return filter.Peers()
	case "trackers":
		return filter.Trackers()
	}
	return filter.Files()
}

// detailRows returns the focused section's views after the section filter.
func (m Model) detailRows() []*object.View {
	var views []*object.View
	switch detailSections[m.detailSection] {
	case "peers":
		views = m.detail.Peers
	case "trackers":
		views = m.detail.Trackers
	default:
		views = m.detail.Files
	}
	if m.detailChain == nil {
		return views
	}
	items := make([]filter.Item, len(views))
	for i, v := range views {
		items[i] = v
	}
	out := make([]*object.View, 0, len(views))
	for _, it := range m.detailChain.Apply(items) {
		if v, ok := it.(*object.View); ok {
			out = append(out, v)
		}
	}
	return out
}

func (m Model) detailColumns() []column {
	switch detailSections[m.detailSection] {
	case "peers":
		return peerColumns
	case "trackers":
		return trackerColumns
	}
	return fileColumns
}

func (m Model) updateDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.closeDetail()
		return m, nil

	case key.Matches(msg, m.keys.Section):
		m.detailSection = (m.detailSection + 1) % len(detailSections)
		m.detailChain = nil
		m.refreshDetail()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue("")
		m.filterInput.CursorEnd()
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.ClearFilter):
		m.detailChain = nil
		m.refreshDetail()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

// applyDetailFilter parses expr against the focused section's registry.
func (m Model) applyDetailFilter(expr string) (tea.Model, tea.Cmd) {
	m.filtering = false
	m.filterInput.Blur()

	chain, err := filter.ParseChain(m.detailRegistry(), expr)
	if err != nil {
		m.flash = err.Error()
		return m, nil
	}
	m.detailChain = chain
	m.flash = ""
	m.refreshDetail()
	return m, nil
}

func (m Model) renderDetail() string {
	tabs := make([]string, len(detailSections))
	for i, name := range detailSections {
		if i == m.detailSection {
			tabs[i] = "[" + name + "]"
		} else {
			tabs[i] = " " + name + " "
		}
	}
	title := "trawl  " + m.detail.Name + "  " + strings.Join(tabs, " ")
	if m.detailChain != nil && !m.detailChain.MatchesEverything() {
		title += "  [" + m.detailChain.String() + "]"
	}

	var header string
	if m.filtering {
		header = m.styles.FilterBar.Width(m.width).Render(m.filterInput.View())
	} else {
		header = m.styles.Header.Width(m.width).Render(title)
	}

	cols := m.detailColumns()
	colHeader := m.styles.Header.Render(renderRow(cols, m.width, func(c column) string { return c.title }))
	footer := m.renderStatus()

	out := header + "\n" + colHeader + "\n" + m.detailView.View()
	gap := m.height - strings.Count(out, "\n") - 2
	for i := 0; i < gap; i++ {
		out += "\n"
	}
	return out + footer
}
