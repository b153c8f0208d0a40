package filter

import (
	"fmt"
	"sort"
	"strings"
)

// Chain is a full boolean expression over clauses: an OR of AND-groups.
// "a&b|c" matches objects satisfying both a and b, or satisfying c. A chain
// with no groups matches everything. Chains are immutable once parsed.
type Chain struct {
	reg    *Registry
	groups [][]*Filter
}

// NewChain wraps a single parsed clause.
func NewChain(f *Filter) *Chain {
	return &Chain{reg: f.reg, groups: [][]*Filter{{f}}}
}

// EmptyChain matches every object.
func EmptyChain(reg *Registry) *Chain {
	return &Chain{reg: reg}
}

// ParseChain parses one or more expressions, OR-joining them. & binds
// clauses into AND-groups, | separates the groups. A catch-all clause
// anywhere collapses the chain to just that clause.
func ParseChain(reg *Registry, exprs ...string) (*Chain, error) {
	c := &Chain{reg: reg}
	for _, expr := range exprs {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		clauses, ops, err := splitChain(expr)
		if err != nil {
			return nil, err
		}

		group := []*Filter{}
		for i, clause := range clauses {
			f, err := Parse(reg, clause)
			if err != nil {
				return nil, err
			}
			if f.MatchesEverything() {
				// Absorption: nothing else can narrow or widen the result.
				return &Chain{reg: reg, groups: [][]*Filter{{f}}}, nil
			}
			group = append(group, f)
			if i < len(ops) && ops[i] == '|' {
				c.groups = append(c.groups, group)
				group = []*Filter{}
			}
		}
		if len(group) > 0 {
			c.groups = append(c.groups, group)
		}
	}
	return c, nil
}

// splitChain tokenizes an expression into clause substrings and the & / |
// operators between them, honoring quotes and escapes. Misplaced operators
// are reported with the offending substring.
func splitChain(expr string) (clauses []string, ops []byte, err error) {
	var quote byte
	esc := false
	start := 0
	for i := 0; i < len(expr); i++ {
		c := expr[i]
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
		case c == '&' || c == '|':
			clause := strings.TrimSpace(expr[start:i])
			if clause == "" {
				return nil, nil, fmt.Errorf("missing filter expression around %q", offending(expr, i))
			}
			clauses = append(clauses, clause)
			ops = append(ops, c)
			start = i + 1
		}
	}
	last := strings.TrimSpace(expr[start:])
	if last == "" {
		return nil, nil, fmt.Errorf("missing filter expression around %q", offending(expr, len(expr)-1))
	}
	clauses = append(clauses, last)
	return clauses, ops, nil
}

// offending extracts a short context window around a bad operator.
func offending(expr string, i int) string {
	lo := i - 1
	if lo < 0 {
		lo = 0
	}
	hi := i + 2
	if hi > len(expr) {
		hi = len(expr)
	}
	return strings.TrimSpace(expr[lo:hi])
}

// Match applies the chain to one object. An empty chain matches.
func (c *Chain) Match(it Item) bool {
	if len(c.groups) == 0 {
		return true
	}
	for _, group := range c.groups {
		all := true
		for _, f := range group {
			if !f.Match(it) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// Apply returns the matching items. An empty chain returns the input
// unchanged.
func (c *Chain) Apply(items []Item) []Item {
	if len(c.groups) == 0 {
		return items
	}
	var out []Item
	for _, it := range items {
		if c.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// First returns the first matching item, nil when none match.
func (c *Chain) First(items []Item) Item {
	for _, it := range items {
		if c.Match(it) {
			return it
		}
	}
	return nil
}

// NeededKeys returns the union of all member clauses' keys, sorted.
func (c *Chain) NeededKeys() []string {
	seen := map[string]bool{}
	for _, group := range c.groups {
		for _, f := range group {
			for _, k := range f.NeededKeys() {
				seen[k] = true
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MatchesEverything reports whether the chain is empty or collapsed to a
// catch-all.
func (c *Chain) MatchesEverything() bool {
	if len(c.groups) == 0 {
		return true
	}
	return len(c.groups) == 1 && len(c.groups[0]) == 1 && c.groups[0][0].MatchesEverything()
}

// Equal compares chains as sets of sets: group order and clause order
// within a group are both irrelevant, so a&b|c equals c|b&a.
func (c *Chain) Equal(other *Chain) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.reg.kind == other.reg.kind && c.signature() == other.signature()
}

func (c *Chain) signature() string {
	groupSigs := make([]string, 0, len(c.groups))
	for _, group := range c.groups {
		parts := make([]string, 0, len(group))
		for _, f := range group {
			parts = append(parts, f.String())
		}
		sort.Strings(parts)
		groupSigs = append(groupSigs, strings.Join(parts, "&"))
	}
	sort.Strings(groupSigs)
	return strings.Join(groupSigs, "|")
}

// Or combines two chains as alternatives. A catch-all on either side
// dominates; structurally equal groups are kept once.
func (c *Chain) Or(other *Chain) *Chain {
	if other == nil {
		return c
	}
	if c.MatchesEverything() {
		return c
	}
	if other.MatchesEverything() {
		return other
	}

	out := &Chain{reg: c.reg}
	seen := map[string]bool{}
	for _, group := range append(append([][]*Filter{}, c.groups...), other.groups...) {
		parts := make([]string, 0, len(group))
		for _, f := range group {
			parts = append(parts, f.String())
		}
		sort.Strings(parts)
		sig := strings.Join(parts, "&")
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out.groups = append(out.groups, group)
	}
	return out
}

// And combines two chains by textual recombination: this expression, &, the
// other. The AND binds the adjacent groups, matching how the expression
// would parse had the user typed it; full distribution is not attempted.
func (c *Chain) And(other *Chain) *Chain {
	if other == nil || len(other.groups) == 0 {
		return c
	}
	if len(c.groups) == 0 {
		return other
	}
	combined, err := ParseChain(c.reg, c.String()+"&"+other.String())
	if err != nil {
		// Both inputs were valid chains, so recombination cannot fail.
		return c
	}
	return combined
}

// String renders the canonical expression, which reparses to an equal
// chain.
func (c *Chain) String() string {
	groupStrs := make([]string, 0, len(c.groups))
	for _, group := range c.groups {
		parts := make([]string, 0, len(group))
		for _, f := range group {
			parts = append(parts, f.String())
		}
		groupStrs = append(groupStrs, strings.Join(parts, "&"))
	}
	return strings.Join(groupStrs, "|")
}
