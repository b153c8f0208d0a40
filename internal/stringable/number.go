package stringable

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Prefix selects how multiplier letters scale a number.
type Prefix int

const (
	Metric Prefix = iota // powers of 1000: k, M, G, T
	Binary               // powers of 1024: Ki, Mi, Gi, Ti
)

type numKind int

const (
	numFinite numKind = iota
	numNA
	numUnknown
	numUnlimited
)

// Number is a float with a unit and a preferred prefix mode. Rate limits and
// similar concepts use the unlimited sentinel, which sorts above every
// finite value; na and unknown sort below.
type Number struct {
	val    float64
	kind   numKind
	unit   string
	prefix Prefix
}

// NewSize builds a byte count rendered with binary prefixes.
func NewSize(b int64) Number {
	return Number{val: float64(b), unit: "B", prefix: Binary}
}

// NewRate builds a bytes-per-second rate rendered with binary prefixes.
func NewRate(bps int64) Number {
	return Number{val: float64(bps), unit: "B/s", prefix: Binary}
}

// NewCount builds a unitless integer quantity.
func NewCount(n int64) Number {
	return Number{val: float64(n), unit: "", prefix: Metric}
}

// NewPercent builds a percentage in the 0-100 range.
func NewPercent(f float64) Number {
	return Number{val: f, unit: "%", prefix: Metric}
}

// NewRatio builds a unitless float such as an upload/download ratio.
func NewRatio(f float64) Number {
	return Number{val: f, unit: "", prefix: Metric}
}

// NewNumber builds a finite number with an explicit unit and prefix mode.
func NewNumber(f float64, unit string, prefix Prefix) Number {
	return Number{val: f, unit: unit, prefix: prefix}
}

// UnlimitedNumber is the sentinel for limits that are switched off.
func UnlimitedNumber(unit string) Number {
	return Number{kind: numUnlimited, unit: unit}
}

// UnknownNumber is the sentinel for measurements that are not available yet.
func UnknownNumber(unit string) Number {
	return Number{kind: numUnknown, unit: unit}
}

// NumberNA is the sentinel for measurements that do not apply.
func NumberNA(unit string) Number {
	return Number{kind: numNA, unit: unit}
}

// Float64 returns the finite value. ok is false for sentinels.
func (n Number) Float64() (float64, bool) {
	return n.val, n.kind == numFinite
}

// IsUnlimited reports the unlimited sentinel.
func (n Number) IsUnlimited() bool {
	return n.kind == numUnlimited
}

var (
	metricLetters = []string{"", "k", "M", "G", "T"}
	binaryLetters = []string{"", "Ki", "Mi", "Gi", "Ti"}
)

// String renders the number with the largest prefix that keeps the value at
// or above one, rounded to two decimals.
func (n Number) String() string {
	switch n.kind {
	case numNA:
		return "na"
	case numUnknown:
		return "unknown"
	case numUnlimited:
		return "unlimited"
	}

	base := 1000.0
	letters := metricLetters
	if n.prefix == Binary {
		base = 1024.0
		letters = binaryLetters
	}

	v := n.val
	neg := v < 0
	if neg {
		v = -v
	}
	i := 0
	for v >= base && i < len(letters)-1 {
		v /= base
		i++
	}
	v = math.Round(v*100) / 100
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if neg {
		s = "-" + s
	}
	return s + letters[i] + n.unit
}

// ParseNumber parses a user-supplied number with optional prefix letter and
// unit, e.g. "500k", "1.5MiB", "80%". A bare prefix letter scales by the
// given mode; an explicit "i" marker always means binary. The sentinel words
// na, unknown and unlimited are accepted too.
func ParseNumber(s, unit string, prefix Prefix) (Number, error) {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "na", "n/a":
		return NumberNA(unit), nil
	case "unknown":
		return UnknownNumber(unit), nil
	case "unlimited", "infinite", "inf":
		return UnlimitedNumber(unit), nil
	}

	i := 0
	for i < len(t) {
		c := t[i]
		if c >= '0' && c <= '9' || c == '.' || (i == 0 && (c == '+' || c == '-')) {
			i++
			continue
		}
		break
	}
	if i == 0 {
		return Number{}, fmt.Errorf("not a number: %q", s)
	}
	f, err := strconv.ParseFloat(t[:i], 64)
	if err != nil {
		return Number{}, fmt.Errorf("not a number: %q", s)
	}

	rest := strings.TrimSpace(t[i:])
	mult := 1.0
	if rest != "" {
		if idx := prefixIndex(rest[0]); idx > 0 {
			mode := prefix
			consumed := 1
			if len(rest) > 1 && (rest[1] == 'i' || rest[1] == 'I') {
				mode = Binary
				consumed = 2
			}
			base := 1000.0
			if mode == Binary {
				base = 1024.0
			}
			mult = math.Pow(base, float64(idx))
			rest = rest[consumed:]
		}
	}
	if rest != "" && !unitMatches(rest, unit) {
		return Number{}, fmt.Errorf("invalid unit %q in %q", rest, s)
	}

	return Number{val: f * mult, unit: unit, prefix: prefix}, nil
}

// ParseNumberAdjust parses like ParseNumber but also accepts the relative
// forms "+=N" and "-=N", applied against current. A sentinel current value
// adjusts from zero.
func ParseNumberAdjust(s string, current Number, unit string, prefix Prefix) (Number, error) {
	t := strings.TrimSpace(s)
	sign := 0.0
	switch {
	case strings.HasPrefix(t, "+="):
		sign = 1
	case strings.HasPrefix(t, "-="):
		sign = -1
	default:
		return ParseNumber(t, unit, prefix)
	}

	delta, err := ParseNumber(t[2:], unit, prefix)
	if err != nil {
		return Number{}, err
	}
	dv, ok := delta.Float64()
	if !ok {
		return Number{}, fmt.Errorf("not a number: %q", s)
	}
	base, _ := current.Float64()
	return Number{val: base + sign*dv, unit: unit, prefix: prefix}, nil
}

// prefixIndex maps a multiplier letter to its power, zero for none.
func prefixIndex(c byte) int {
	switch c {
	case 'k', 'K':
		return 1
	case 'm', 'M':
		return 2
	case 'g', 'G':
		return 3
	case 't', 'T':
		return 4
	}
	return 0
}

// unitMatches accepts the full unit, the unit without a "/s" suffix, or a
// case-folded match, so "1MB", "1MB/s" and "1m" all parse against "B/s".
func unitMatches(got, unit string) bool {
	if strings.EqualFold(got, unit) {
		return true
	}
	if short, found := strings.CutSuffix(unit, "/s"); found {
		return strings.EqualFold(got, short)
	}
	return false
}

func cmpNumber(a, b Number) int {
	ra, rb := numRank(a.kind), numRank(b.kind)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	if a.kind != numFinite {
		return 0
	}
	return cmpFloat(a.val, b.val)
}

func numRank(k numKind) int {
	switch k {
	case numNA:
		return 0
	case numUnknown:
		return 1
	case numFinite:
		return 2
	default:
		return 3
	}
}
