package ui

import (
	"sort"
	"strings"
	"time"

	"github.com/trawltui/trawl/internal/object"
	"github.com/trawltui/trawl/internal/stringable"
)

// column is one torrent table column. Width 0 means the column absorbs the
// remaining horizontal space.
type column struct {
	title string
	width int
	value func(*object.View) string
}

var torrentColumns = []column{
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
	{title: "Down", width: 10, value: func(v *object.View) string {
		return rateCell(toInt(v.Value("rate-down")))
	}},
	{title: "Up", width: 10, value: func(v *object.View) string {
		return rateCell(toInt(v.Value("rate-up")))
	}},
	{title: "ETA", width: 7, value: func(v *object.View) string {
		return etaCell(v.Value("eta"))
	}},
	{title: "Status", width: 20, value: func(v *object.View) string {
		words, _ := v.Value("status").([]string)
		return strings.Join(words, ",")
	}},
}

// renderTable renders the header plus one line per torrent, highlighting
// the selected row. Rows outside the scroll window are skipped.
func renderTable(st Styles, views []*object.View, selected, offset, width, height int) string {
	if width <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(st.Header.Render(renderRow(torrentColumns, width, func(c column) string { return c.title })))
	b.WriteByte('\n')

	end := offset + height
	if end > len(views) {
		end = len(views)
	}
	for i := offset; i < end; i++ {
		v := views[i]
		line := renderRow(torrentColumns, width, func(c column) string { return c.value(v) })
		if i == selected {
			line = st.Selected.Render(line)
		} else {
			line = st.Text.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderRow lays the cells out left to right, giving the flexible column
// whatever width the fixed ones leave over.
func renderRow(cols []column, width int, cell func(column) string) string {
	fixed := 0
	for _, c := range cols {
		if c.width > 0 {
			fixed += c.width + 2
		}
	}
	flex := width - fixed
	if flex < 8 {
		flex = 8
	}

	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		w := c.width
		if w == 0 {
			w = flex
		}
		parts = append(parts, pad(cell(c), w))
	}
	return strings.Join(parts, "  ")
}

// pad truncates or right-pads s to exactly width cells.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func rateCell(bps int64) string {
	if bps <= 0 {
		return "-"
	}
	return stringable.NewRate(bps).String()
}

func etaCell(v any) string {
	secs := toInt(v)
	switch {
	case secs == -1:
		return "?"
	case secs <= 0:
		return "-"
	}
	return stringable.NewTimedelta(time.Duration(secs) * time.Second).String()
}

func toInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

// sortKeys lists the sort orders the s key cycles through.
var sortKeys = []string{"name", "size", "%downloaded", "ratio", "id"}

// NextSortKey returns the sort key after the given one in cycle order.
func NextSortKey(key string) string {
	for i, k := range sortKeys {
		if k == key {
			return sortKeys[(i+1)%len(sortKeys)]
		}
	}
	return sortKeys[0]
}

// sortViews orders torrents by the given logical key, name ascending as
// the tie break. Numeric keys sort descending so the biggest values are on
// top.
func sortViews(views []*object.View, key string) {
	name := func(v *object.View) string {
		s, _ := v.Value("name").(string)
		return s
	}
	sort.SliceStable(views, func(i, j int) bool {
		switch key {
		case "name":
			return name(views[i]) < name(views[j])
		case "id":
			return toInt(views[i].Value("id")) < toInt(views[j].Value("id"))
		default:
			a, b := views[i].Value(key), views[j].Value(key)
			af, _ := a.(float64)
			bf, _ := b.(float64)
			if af == 0 && bf == 0 {
				if ai, bi := toInt(a), toInt(b); ai != bi {
					return ai > bi
				}
				return name(views[i]) < name(views[j])
			}
			if af != bf {
				return af > bf
			}
			return name(views[i]) < name(views[j])
		}
	})
}
