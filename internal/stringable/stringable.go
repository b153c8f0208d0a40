package stringable

import (
	"fmt"
	"strings"
)

// Value is implemented by every type in this package. The canonical string
// form is what filters display and what parse constructors accept back.
type Value interface {
	fmt.Stringer
}

// Cmp orders two values of the same family and reports whether the pair is
// comparable at all. Sentinels order per the package policy: na and unknown
// below every finite value, unlimited and never above. Mixed families are
// not comparable.
func Cmp(a, b Value) (int, bool) {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		if !ok {
			return 0, false
		}
		return cmpNumber(av, bv), true
	case Str:
		bv, ok := b.(Str)
		if !ok {
			return 0, false
		}
		return strings.Compare(string(av), string(bv)), true
	case Path:
		bv, ok := b.(Path)
		if !ok {
			return 0, false
		}
		return strings.Compare(string(av), string(bv)), true
	case Flag:
		bv, ok := b.(Flag)
		if !ok {
			return 0, false
		}
		return cmpBool(bool(av), bool(bv)), true
	case Timestamp:
		bv, ok := b.(Timestamp)
		if !ok {
			return 0, false
		}
		return cmpTimestamp(av, bv), true
	case Timedelta:
		bv, ok := b.(Timedelta)
		if !ok {
			return 0, false
		}
		return cmpTimedelta(av, bv), true
	case Option:
		bv, ok := b.(Option)
		if !ok {
			return 0, false
		}
		return cmpInt(av.index(), bv.index()), true
	}
	return 0, false
}

// Equal reports value equality. Ordered families compare via Cmp; word sets
// compare as sets.
func Equal(a, b Value) bool {
	if as, ok := a.(Options); ok {
		bs, ok := b.(Options)
		return ok && as.equalSet(bs)
	}
	c, ok := Cmp(a, b)
	return ok && c == 0
}

// IsZero reports whether v is its family's zero, the falsy value for a
// comparative filter used without an operator.
func IsZero(v Value) bool {
	switch tv := v.(type) {
	case Number:
		switch tv.kind {
		case numNA, numUnknown:
			return true
		case numFinite:
			return tv.val == 0
		}
		return false
	case Str:
		return tv == ""
	case Path:
		return tv == ""
	case Flag:
		return !bool(tv)
	case Timestamp:
		return tv.kind == tsNA || tv.kind == tsUnknown
	case Timedelta:
		return tv.kind == tdNA || tv.kind == tdUnknown || tv.kind == tdFinite && tv.d == 0
	case Option:
		return tv.word == ""
	case Options:
		return len(tv.words) == 0
	}
	return v == nil
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
