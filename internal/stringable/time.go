package stringable

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type tsKind int

const (
	tsFinite tsKind = iota
	tsNA
	tsUnknown
	tsNow
	tsSoon
	tsNever
)

// Timestamp is an absolute instant. The sentinels order na < unknown <
// finite values (with now and soon anchored at their creation instant, soon
// breaking ties upward) < never.
type Timestamp struct {
	t    time.Time
	kind tsKind
}

// NewTimestamp wraps a concrete instant.
func NewTimestamp(t time.Time) Timestamp { return Timestamp{t: t} }

// TimestampNow anchors the "now" sentinel at the given instant.
func TimestampNow(now time.Time) Timestamp { return Timestamp{t: now, kind: tsNow} }

// TimestampSoon anchors the "soon" sentinel at the given instant. It sorts
// just above now and any equal finite time.
func TimestampSoon(now time.Time) Timestamp { return Timestamp{t: now, kind: tsSoon} }

// TimestampNever sorts above everything.
func TimestampNever() Timestamp { return Timestamp{kind: tsNever} }

// TimestampUnknown sorts below finite values, above na.
func TimestampUnknown() Timestamp { return Timestamp{kind: tsUnknown} }

// TimestampNA sorts below everything.
func TimestampNA() Timestamp { return Timestamp{kind: tsNA} }

// Time returns the concrete instant; ok is false for never, unknown and na.
func (ts Timestamp) Time() (time.Time, bool) {
	return ts.t, ts.kind == tsFinite || ts.kind == tsNow || ts.kind == tsSoon
}

// Delta returns the duration from now to the timestamp, mapping sentinels
// across: never stays never, unknown and na stay themselves.
func (ts Timestamp) Delta(now time.Time) Timedelta {
	switch ts.kind {
	case tsNever:
		return TimedeltaNever()
	case tsUnknown:
		return TimedeltaUnknown()
	case tsNA:
		return TimedeltaNA()
	}
	return NewTimedelta(ts.t.Sub(now))
}

func (ts Timestamp) String() string {
	switch ts.kind {
	case tsNA:
		return "na"
	case tsUnknown:
		return "unknown"
	case tsNow:
		return "now"
	case tsSoon:
		return "soon"
	case tsNever:
		return "never"
	}
	return ts.t.Format("2006-01-02 15:04")
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseTimestamp parses absolute dates (partial dates fill missing parts
// from now), clock times on today's date, relative expressions like "in 3d"
// and "5h ago", bare durations signed by the future convention, and the
// sentinel words.
func ParseTimestamp(s string, now time.Time, future bool) (Timestamp, error) {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "na", "n/a":
		return TimestampNA(), nil
	case "unknown":
		return TimestampUnknown(), nil
	case "now":
		return TimestampNow(now), nil
	case "soon":
		return TimestampSoon(now), nil
	case "never":
		return TimestampNever(), nil
	}

	if rest, found := strings.CutPrefix(t, "in "); found {
		d, err := parseDuration(rest)
		if err != nil {
			return Timestamp{}, err
		}
		return NewTimestamp(now.Add(d)), nil
	}
	if rest, found := strings.CutSuffix(t, " ago"); found {
		d, err := parseDuration(rest)
		if err != nil {
			return Timestamp{}, err
		}
		return NewTimestamp(now.Add(-d)), nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.ParseInLocation(layout, t, now.Location())
		if err == nil {
			return NewTimestamp(parsed), nil
		}
	}
	if parsed, err := time.ParseInLocation("15:04", t, now.Location()); err == nil {
		y, m, d := now.Date()
		return NewTimestamp(time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, now.Location())), nil
	}

	if d, err := parseDuration(t); err == nil {
		if !future {
			d = -d
		}
		return NewTimestamp(now.Add(d)), nil
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp: %q", s)
}

type tdKind int

const (
	tdFinite tdKind = iota
	tdNA
	tdUnknown
	tdNever
)

// Timedelta is a duration. Sentinels order na < unknown < finite < never,
// matching the Timestamp policy so an ETA of "never" sorts after any finite
// ETA.
type Timedelta struct {
	d    time.Duration
	kind tdKind
}

// NewTimedelta wraps a concrete duration.
func NewTimedelta(d time.Duration) Timedelta { return Timedelta{d: d} }

// TimedeltaNever sorts above everything.
func TimedeltaNever() Timedelta { return Timedelta{kind: tdNever} }

// TimedeltaUnknown sorts below finite values, above na.
func TimedeltaUnknown() Timedelta { return Timedelta{kind: tdUnknown} }

// TimedeltaNA sorts below everything.
func TimedeltaNA() Timedelta { return Timedelta{kind: tdNA} }

// Duration returns the concrete duration; ok is false for sentinels.
func (td Timedelta) Duration() (time.Duration, bool) {
	return td.d, td.kind == tdFinite
}

// Time returns the instant implied by the delta from now, mapping sentinels
// across.
func (td Timedelta) Time(now time.Time) Timestamp {
	switch td.kind {
	case tdNever:
		return TimestampNever()
	case tdUnknown:
		return TimestampUnknown()
	case tdNA:
		return TimestampNA()
	}
	return NewTimestamp(now.Add(td.d))
}

func (td Timedelta) String() string {
	switch td.kind {
	case tdNA:
		return "na"
	case tdUnknown:
		return "unknown"
	case tdNever:
		return "never"
	}
	return formatDuration(td.d)
}

// ParseTimedelta parses compact durations ("3d", "1h30m", bare seconds),
// the relative forms "in X" and "X ago", and the sentinel words. A bare
// duration takes its sign from the future convention.
func ParseTimedelta(s string, future bool) (Timedelta, error) {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "na", "n/a":
		return TimedeltaNA(), nil
	case "unknown":
		return TimedeltaUnknown(), nil
	case "never":
		return TimedeltaNever(), nil
	case "now":
		return NewTimedelta(0), nil
	}

	if rest, found := strings.CutPrefix(t, "in "); found {
		d, err := parseDuration(rest)
		if err != nil {
			return Timedelta{}, err
		}
		return NewTimedelta(d), nil
	}
	if rest, found := strings.CutSuffix(t, " ago"); found {
		d, err := parseDuration(rest)
		if err != nil {
			return Timedelta{}, err
		}
		return NewTimedelta(-d), nil
	}

	d, err := parseDuration(t)
	if err != nil {
		return Timedelta{}, err
	}
	if !future {
		d = -d
	}
	return NewTimedelta(d), nil
}

var durationUnits = map[byte]time.Duration{
	'd': 24 * time.Hour,
	'h': time.Hour,
	'm': time.Minute,
	's': time.Second,
}

// parseDuration reads compact forms like "1d2h", "90m" or "45s". A bare
// number means seconds. A leading minus negates the whole duration.
func parseDuration(s string) (time.Duration, error) {
	t := strings.TrimSpace(s)
	neg := false
	if rest, found := strings.CutPrefix(t, "-"); found {
		neg = true
		t = rest
	}
	if t == "" {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	var total time.Duration
	i := 0
	for i < len(t) {
		j := i
		for j < len(t) && (t[j] >= '0' && t[j] <= '9' || t[j] == '.') {
			j++
		}
		if j == i {
			return 0, fmt.Errorf("invalid duration: %q", s)
		}
		f, err := strconv.ParseFloat(t[i:j], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %q", s)
		}
		if j == len(t) {
			// Bare trailing number counts as seconds.
			total += time.Duration(f * float64(time.Second))
			break
		}
		unit, ok := durationUnits[t[j]]
		if !ok {
			return 0, fmt.Errorf("invalid duration unit %q in %q", string(t[j]), s)
		}
		total += time.Duration(f * float64(unit))
		i = j + 1
	}
	if neg {
		total = -total
	}
	return total, nil
}

// formatDuration renders the two most significant units, e.g. "1d2h",
// "5h3m", "45s".
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	neg := d < 0
	if neg {
		d = -d
	}

	secs := int64(d / time.Second)
	parts := []struct {
		unit string
		size int64
	}{
		{"d", 86400},
		{"h", 3600},
		{"m", 60},
		{"s", 1},
	}

	out := ""
	count := 0
	for _, p := range parts {
		if n := secs / p.size; n > 0 {
			out += strconv.FormatInt(n, 10) + p.unit
			secs -= n * p.size
			count++
			if count == 2 {
				break
			}
		} else if count > 0 {
			break
		}
	}
	if out == "" {
		out = "0s"
	}
	if neg {
		out = "-" + out
	}
	return out
}

func cmpTimestamp(a, b Timestamp) int {
	ra, rb := tsRank(a.kind), tsRank(b.kind)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	if ra != 2 {
		return 0
	}
	if c := cmpInt(boolToInt(a.t.After(b.t)), boolToInt(b.t.After(a.t))); c != 0 {
		return c
	}
	// Equal instants: soon sorts above now and plain times.
	return cmpInt(boolToInt(a.kind == tsSoon), boolToInt(b.kind == tsSoon))
}

func tsRank(k tsKind) int {
	switch k {
	case tsNA:
		return 0
	case tsUnknown:
		return 1
	case tsNever:
		return 3
	default:
		return 2
	}
}

func cmpTimedelta(a, b Timedelta) int {
	ra, rb := tdRank(a.kind), tdRank(b.kind)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	if a.kind != tdFinite {
		return 0
	}
	return cmpInt(int(a.d.Seconds()), int(b.d.Seconds()))
}

func tdRank(k tdKind) int {
	switch k {
	case tdNA:
		return 0
	case tdUnknown:
		return 1
	case tdFinite:
		return 2
	default:
		return 3
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
