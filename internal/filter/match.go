package filter

import (
	"regexp"
	"strings"

	"github.com/trawltui/trawl/internal/stringable"
)

// testOp applies one operator to an object value and the user's coerced
// value. Combinations the value family cannot support simply do not match;
// the parser rejects them up front, so reaching one here means the getter
// produced an unexpected family.
func testOp(have stringable.Value, op Operator, want stringable.Value, re *regexp.Regexp) bool {
	switch op {
	case OpRegex:
		return re != nil && re.MatchString(have.String())
	case OpContains:
		if set, ok := have.(stringable.Options); ok {
			return set.Contains(want.String())
		}
		return strings.Contains(have.String(), want.String())
	case OpEqual:
		if set, ok := have.(stringable.Options); ok {
			words := set.Words()
			return len(words) == 1 && words[0] == want.String()
		}
		return stringable.Equal(have, want)
	case OpGreater, OpLess, OpGreaterEq, OpLessEq:
		c, ok := stringable.Cmp(have, want)
		if !ok {
			return false
		}
		switch op {
		case OpGreater:
			return c > 0
		case OpLess:
			return c < 0
		case OpGreaterEq:
			return c >= 0
		default:
			return c <= 0
		}
	}
	return false
}

// opAllowed reports whether the operator makes sense for the user value's
// family. Text accepts everything, numbers and times accept equality and
// ordering, options additionally accept membership, flags only equality.
func opAllowed(v stringable.Value, op Operator) bool {
	switch v.(type) {
	case stringable.Str, stringable.Path:
		return true
	case stringable.Flag:
		return op == OpEqual
	case stringable.Number, stringable.Timestamp, stringable.Timedelta:
		return op != OpContains && op != OpRegex
	case stringable.Option:
		return op != OpRegex
	}
	return false
}
