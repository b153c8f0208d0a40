package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/trawltui/trawl/internal/stringable"
)

// Operator is one comparison from the closed operator set.
type Operator string

const (
	OpEqual     Operator = "="
	OpContains  Operator = "~"
	OpGreater   Operator = ">"
	OpLess      Operator = "<"
	OpGreaterEq Operator = ">="
	OpLessEq    Operator = "<="
	OpRegex     Operator = "=~"
)

// Filter is one immutable, parsed clause: a named filter, an optional
// inversion, and an optional operator plus coerced value. A comparative
// filter without an operator degenerates to its boolean form.
type Filter struct {
	reg     *Registry
	name    string
	invert  bool
	op      Operator
	value   stringable.Value
	re      *regexp.Regexp
	boolean *BooleanSpec
	comp    *ComparativeSpec
}

// Parse builds a Filter from one clause string like "size>1.5GiB",
// "!private" or "stopped". A bare value that names no known filter falls
// back to the registry's default filter with the contains operator.
func Parse(reg *Registry, s string) (*Filter, error) {
	opStart, opEnd, op := findOperator(s)
	hasOp := opStart >= 0

	nameRaw := s
	valueRaw := ""
	invertOp := false
	if hasOp {
		nameEnd := opStart
		if nameEnd > 0 && s[nameEnd-1] == '!' && !escapedAt(s, nameEnd-1) {
			invertOp = true
			nameEnd--
		}
		nameRaw = s[:nameEnd]
		valueRaw = s[opEnd:]
	}

	nchars, _, err := scanToken(nameRaw)
	if err != nil {
		return nil, err
	}
	nchars = trimToken(nchars)
	nchars, flips := stripInverters(nchars)
	nchars = trimToken(nchars)
	invert := flips%2 == 1
	invert = invert != invertOp
	name := tokenText(nchars)

	hadValue := false
	valuePlain := ""
	if hasOp {
		vchars, sawQuote, err := scanToken(valueRaw)
		if err != nil {
			return nil, err
		}
		vchars = trimToken(vchars)
		hadValue = len(vchars) > 0 || sawQuote
		if hasUnquotedSpace(vchars) {
			return nil, fmt.Errorf("unquoted space in value %q (add quotes)", tokenText(vchars))
		}
		valuePlain = tokenText(vchars)
	}

	canonical, err := reg.resolve(name)
	if err != nil {
		return nil, err
	}

	if b, ok := reg.booleans[canonical]; ok {
		if hasOp || hadValue {
			return nil, fmt.Errorf("boolean filter %q does not take an operator or value", canonical)
		}
		return &Filter{reg: reg, name: canonical, invert: invert, boolean: b}, nil
	}

	comp, ok := reg.comps[canonical]
	if !ok {
		// Unknown name with nothing else on the line: reinterpret the whole
		// input as a bare value for the default filter.
		if reg.def != "" && !hasOp {
			def, _ := reg.resolve(reg.def)
			if dc, ok := reg.comps[def]; ok {
				return newComparative(reg, dc, def, invert, OpContains, name)
			}
		}
		return nil, fmt.Errorf("invalid filter name: %q", name)
	}

	if !hasOp {
		return &Filter{reg: reg, name: canonical, invert: invert, comp: comp}, nil
	}
	if !hadValue {
		return nil, fmt.Errorf("missing value for filter %q", canonical)
	}
	return newComparative(reg, comp, canonical, invert, op, valuePlain)
}

func newComparative(reg *Registry, spec *ComparativeSpec, name string, invert bool, op Operator, raw string) (*Filter, error) {
	value, err := spec.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid value for filter %s: %q: %w", name, raw, err)
	}

	var re *regexp.Regexp
	if op == OpRegex {
		re, err = regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid regular expression %q: %w", raw, err)
		}
	}

	if !opAllowed(value, op) {
		return nil, fmt.Errorf("invalid operator for filter %s: %s", name, op)
	}

	return &Filter{
		reg:    reg,
		name:   name,
		invert: invert,
		op:     op,
		value:  value,
		re:     re,
		comp:   spec,
	}, nil
}

// Name returns the canonical filter name.
func (f *Filter) Name() string { return f.name }

// NeededKeys returns the object keys this clause reads.
func (f *Filter) NeededKeys() []string {
	if f.boolean != nil {
		return append([]string(nil), f.boolean.Keys...)
	}
	return append([]string(nil), f.comp.Keys...)
}

// MatchesEverything reports the non-inverted catch-all.
func (f *Filter) MatchesEverything() bool {
	return f.boolean != nil && f.boolean.Test == nil && !f.invert
}

// Match applies the clause to one object.
func (f *Filter) Match(it Item) bool {
	return f.match(it) != f.invert
}

func (f *Filter) match(it Item) bool {
	if f.boolean != nil {
		if f.boolean.Test == nil {
			return true
		}
		return f.boolean.Test(it)
	}
	if f.op == "" {
		if f.comp.AsBool != nil {
			return f.comp.AsBool(it)
		}
		for _, v := range f.values(it) {
			if v != nil && !stringable.IsZero(v) {
				return true
			}
		}
		return false
	}
	for _, v := range f.values(it) {
		if v != nil && testOp(v, f.op, f.value, f.re) {
			return true
		}
	}
	return false
}

func (f *Filter) values(it Item) []stringable.Value {
	if f.comp.GetAll != nil {
		return f.comp.GetAll(it)
	}
	return []stringable.Value{f.comp.Get(it)}
}

// Apply returns the matching items. The invert argument XOR-combines with
// the clause's own inversion.
func (f *Filter) Apply(items []Item, invert bool) []Item {
	var out []Item
	for _, it := range items {
		if f.Match(it) != invert {
			out = append(out, it)
		}
	}
	return out
}

// ApplyValues returns the value at key for each matching item.
func (f *Filter) ApplyValues(items []Item, invert bool, key string) []any {
	var out []any
	for _, it := range f.Apply(items, invert) {
		out = append(out, it.Value(key))
	}
	return out
}

// Equal compares clauses structurally: name, inversion, operator and
// coerced value.
func (f *Filter) Equal(other *Filter) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.reg.kind == other.reg.kind && f.String() == other.String()
}

// String renders the canonical form, which reparses to an equal Filter.
// The name is omitted when it is the default filter, and values containing
// spaces or special characters are requoted.
func (f *Filter) String() string {
	prefix := ""
	if f.invert {
		prefix = "!"
	}
	if f.op == "" {
		return prefix + f.name
	}
	name := f.name
	if def, err := f.reg.resolve(f.reg.def); err == nil && name == def {
		name = ""
	}
	return prefix + name + string(f.op) + quoteValue(f.value.String())
}

// tokenChar is one plaintext character plus whether quoting or escaping
// shields it from operator and inverter recognition.
type tokenChar struct {
	c      byte
	shield bool
}

// scanToken resolves quotes and backslash escapes in one token. sawQuote
// distinguishes an explicitly quoted empty value from an absent one.
func scanToken(s string) (chars []tokenChar, sawQuote bool, err error) {
	var quote byte
	esc := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case esc:
			chars = append(chars, tokenChar{c: c, shield: true})
			esc = false
		case c == '\\':
			esc = true
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				chars = append(chars, tokenChar{c: c, shield: true})
			}
		case c == '\'' || c == '"':
			quote = c
			sawQuote = true
		default:
			chars = append(chars, tokenChar{c: c})
		}
	}
	if esc {
		return nil, false, fmt.Errorf("trailing backslash in %q", s)
	}
	if quote != 0 {
		return nil, false, fmt.Errorf("unbalanced quote in %q", s)
	}
	return chars, sawQuote, nil
}

// trimToken drops unshielded whitespace from both ends.
func trimToken(chars []tokenChar) []tokenChar {
	start := 0
	for start < len(chars) && !chars[start].shield && isSpace(chars[start].c) {
		start++
	}
	end := len(chars)
	for end > start && !chars[end-1].shield && isSpace(chars[end-1].c) {
		end--
	}
	return chars[start:end]
}

// stripInverters removes unshielded ! characters from both ends, counting
// each so double negation cancels.
func stripInverters(chars []tokenChar) ([]tokenChar, int) {
	flips := 0
	for len(chars) > 0 && !chars[0].shield && chars[0].c == '!' {
		chars = chars[1:]
		flips++
	}
	for len(chars) > 0 && !chars[len(chars)-1].shield && chars[len(chars)-1].c == '!' {
		chars = chars[:len(chars)-1]
		flips++
	}
	return chars, flips
}

func hasUnquotedSpace(chars []tokenChar) bool {
	for _, tc := range chars {
		if !tc.shield && isSpace(tc.c) {
			return true
		}
	}
	return false
}

func tokenText(chars []tokenChar) string {
	var b strings.Builder
	for _, tc := range chars {
		b.WriteByte(tc.c)
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// findOperator locates the first operator outside quotes and escapes.
// start is -1 when the clause has none.
func findOperator(s string) (start, end int, op Operator) {
	var quote byte
	esc := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case esc:
			esc = false
		case c == '\\':
			esc = true
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '=':
			if i+1 < len(s) && s[i+1] == '~' {
				return i, i + 2, OpRegex
			}
			return i, i + 1, OpEqual
		case c == '~':
			return i, i + 1, OpContains
		case c == '>':
			if i+1 < len(s) && s[i+1] == '=' {
				return i, i + 2, OpGreaterEq
			}
			return i, i + 1, OpGreater
		case c == '<':
			if i+1 < len(s) && s[i+1] == '=' {
				return i, i + 2, OpLessEq
			}
			return i, i + 1, OpLess
		}
	}
	return -1, -1, ""
}

// escapedAt reports whether the character at i is preceded by an odd run of
// backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

const specialChars = " \t!&|=~<>'\"\\"

// quoteValue wraps a value in single quotes when it contains characters the
// tokenizer would otherwise interpret.
func quoteValue(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, specialChars) {
		return s
	}
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('\'')
	return b.String()
}
