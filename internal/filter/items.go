package filter

import (
	"time"

	"github.com/trawltui/trawl/internal/stringable"
)

// Coercions from the loosely-typed object layer. JSON decoding hands the
// adaptation layer float64 for every number, so each accessor accepts the
// common numeric shapes.

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func toStrings(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Getter combinators reading one logical key from an item.

func getStr(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value { return stringable.Str(toString(it.Value(key))) }
}

func getPath(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value { return stringable.NewPath(toString(it.Value(key))) }
}

func getSize(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value {
		n, ok := toInt64(it.Value(key))
		if !ok {
			return stringable.UnknownNumber("B")
		}
		return stringable.NewSize(n)
	}
}

func getRate(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value {
		n, ok := toInt64(it.Value(key))
		if !ok {
			return stringable.UnknownNumber("B/s")
		}
		return stringable.NewRate(n)
	}
}

// getLimit treats a negative count as the unlimited sentinel, matching the
// object layer's encoding of switched-off limits.
func getLimit(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value {
		n, ok := toInt64(it.Value(key))
		if !ok {
			return stringable.UnknownNumber("B/s")
		}
		if n < 0 {
			return stringable.UnlimitedNumber("B/s")
		}
		return stringable.NewRate(n)
	}
}

func getCount(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value {
		n, ok := toInt64(it.Value(key))
		if !ok {
			return stringable.UnknownNumber("")
		}
		return stringable.NewCount(n)
	}
}

func getPercent(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value {
		f, ok := toFloat(it.Value(key))
		if !ok {
			return stringable.UnknownNumber("%")
		}
		return stringable.NewPercent(f)
	}
}

func getRatio(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value {
		f, ok := toFloat(it.Value(key))
		if !ok || f < 0 {
			return stringable.UnknownNumber("")
		}
		return stringable.NewRatio(f)
	}
}

func getFlag(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value { return stringable.Flag(toBool(it.Value(key))) }
}

// getTime reads an epoch-seconds field; zero and below mean the event has
// not happened.
func getTime(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value {
		n, ok := toInt64(it.Value(key))
		if !ok || n <= 0 {
			return stringable.TimestampUnknown()
		}
		return stringable.NewTimestamp(time.Unix(n, 0))
	}
}

// getEta reads a seconds-remaining field with the daemon's conventions:
// -1 means unknown, -2 means not applicable.
func getEta(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value {
		n, ok := toInt64(it.Value(key))
		switch {
		case !ok, n == -1:
			return stringable.TimedeltaUnknown()
		case n == -2:
			return stringable.TimedeltaNA()
		}
		return stringable.NewTimedelta(time.Duration(n) * time.Second)
	}
}

// getOption reads a single-word key whose values come from a closed
// universe, keeping the universe's ordering for comparisons.
func getOption(key string, universe ...string) func(Item) stringable.Value {
	return func(it Item) stringable.Value {
		opt, err := stringable.NewOption(toString(it.Value(key)), universe...)
		if err != nil {
			return stringable.Str(toString(it.Value(key)))
		}
		return opt
	}
}

func getOptions(key string) func(Item) stringable.Value {
	return func(it Item) stringable.Value {
		return stringable.NewOptions(toStrings(it.Value(key))...)
	}
}

// Parse combinators coercing user-supplied text.

func parseStr(s string) (stringable.Value, error) { return stringable.Str(s), nil }

func parsePath(s string) (stringable.Value, error) { return stringable.NewPath(s), nil }

func parseSize(s string) (stringable.Value, error) {
	return stringable.ParseNumber(s, "B", stringable.Binary)
}

func parseRate(s string) (stringable.Value, error) {
	return stringable.ParseNumber(s, "B/s", stringable.Binary)
}

func parseCount(s string) (stringable.Value, error) {
	return stringable.ParseNumber(s, "", stringable.Metric)
}

func parsePercent(s string) (stringable.Value, error) {
	return stringable.ParseNumber(s, "%", stringable.Metric)
}

func parseRatio(s string) (stringable.Value, error) {
	return stringable.ParseNumber(s, "", stringable.Metric)
}

func parseFlag(s string) (stringable.Value, error) {
	return stringable.ParseFlag(s)
}

// parseTimePast reads timestamps where a bare duration means that long ago,
// the natural reading for fields like "added" and "completed".
func parseTimePast(s string) (stringable.Value, error) {
	return stringable.ParseTimestamp(s, time.Now(), false)
}

// parseTimeFuture reads timestamps where a bare duration points forward,
// for fields like a tracker's next announce.
func parseTimeFuture(s string) (stringable.Value, error) {
	return stringable.ParseTimestamp(s, time.Now(), true)
}

func parseEta(s string) (stringable.Value, error) {
	return stringable.ParseTimedelta(s, true)
}

func parseOption(universe ...string) func(string) (stringable.Value, error) {
	return func(s string) (stringable.Value, error) {
		return stringable.NewOption(s, universe...)
	}
}

// hasWord tests membership in a word-set key, the backing for the status
// boolean filters.
func hasWord(key, word string) func(Item) bool {
	return func(it Item) bool {
		for _, w := range toStrings(it.Value(key)) {
			if w == word {
				return true
			}
		}
		return false
	}
}
