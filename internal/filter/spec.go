package filter

import (
	"errors"
	"fmt"

	"github.com/trawltui/trawl/internal/stringable"
)

// ErrNoFilter is returned for an empty expression on a kind with no default
// filter.
var ErrNoFilter = errors.New("no filter expression given")

// Item is the read contract filters evaluate against. Object views and
// plain test maps both satisfy it.
type Item interface {
	Value(key string) any
}

// Map adapts a plain map to Item.
type Map map[string]any

// Value implements Item.
func (m Map) Value(key string) any { return m[key] }

// BooleanSpec describes a filter that is a plain predicate, like
// "downloading". A nil Test matches every object (the catch-all).
type BooleanSpec struct {
	Name        string
	Aliases     []string
	Description string
	Keys        []string
	Test        func(Item) bool
}

// ComparativeSpec describes a filter compared against a user-supplied
// value, like "size>1.5GiB". Parse coerces the user's text into the spec's
// value type. Get extracts the object's value; GetAll, when set, yields
// several candidates and the clause matches if any does. AsBool is the
// no-operator form; when nil it defaults to "Get is non-zero".
type ComparativeSpec struct {
	Name        string
	Aliases     []string
	Description string
	Keys        []string
	Parse       func(string) (stringable.Value, error)
	Get         func(Item) stringable.Value
	GetAll      func(Item) []stringable.Value
	AsBool      func(Item) bool
}

// Registry holds the filter specs for one object kind plus the flattened
// alias table and the default filter name.
type Registry struct {
	kind     string
	booleans map[string]*BooleanSpec
	comps    map[string]*ComparativeSpec
	aliases  map[string]string
	def      string
}

// NewRegistry builds a registry, flattening alias tables eagerly. A name or
// alias claimed twice is a configuration error, not user input, and is
// reported immediately.
func NewRegistry(kind string, booleans []BooleanSpec, comps []ComparativeSpec, defaultFilter string) (*Registry, error) {
	r := &Registry{
		kind:     kind,
		booleans: make(map[string]*BooleanSpec, len(booleans)),
		comps:    make(map[string]*ComparativeSpec, len(comps)),
		aliases:  make(map[string]string),
		def:      defaultFilter,
	}

	claim := func(name, owner string) error {
		if prev, ok := r.aliases[name]; ok {
			return fmt.Errorf("%s filter name %q claimed by both %q and %q", kind, name, prev, owner)
		}
		r.aliases[name] = owner
		return nil
	}

	for i := range booleans {
		b := &booleans[i]
		if b.Name == "" {
			return nil, fmt.Errorf("%s boolean filter with empty name", kind)
		}
		r.booleans[b.Name] = b
		if err := claim(b.Name, b.Name); err != nil {
			return nil, err
		}
		for _, a := range b.Aliases {
			if err := claim(a, b.Name); err != nil {
				return nil, err
			}
		}
	}
	for i := range comps {
		c := &comps[i]
		if c.Name == "" {
			return nil, fmt.Errorf("%s comparative filter with empty name", kind)
		}
		if c.Parse == nil || (c.Get == nil && c.GetAll == nil) {
			return nil, fmt.Errorf("%s comparative filter %q missing Parse or Get", kind, c.Name)
		}
		r.comps[c.Name] = c
		if err := claim(c.Name, c.Name); err != nil {
			return nil, err
		}
		for _, a := range c.Aliases {
			if err := claim(a, c.Name); err != nil {
				return nil, err
			}
		}
	}

	if defaultFilter != "" {
		if _, ok := r.aliases[defaultFilter]; !ok {
			return nil, fmt.Errorf("%s default filter %q is not a known filter", kind, defaultFilter)
		}
	}
	return r, nil
}

func mustRegistry(r *Registry, err error) *Registry {
	if err != nil {
		panic(err)
	}
	return r
}

// Kind returns the object kind this registry filters.
func (r *Registry) Kind() string { return r.kind }

// DefaultFilter returns the filter name implied by a bare value, or empty.
func (r *Registry) DefaultFilter() string { return r.def }

// resolve maps a user-supplied name through the alias table. The empty name
// resolves to the default filter. An unknown name is returned unchanged so
// the parser can apply the default-filter fallback.
func (r *Registry) resolve(name string) (string, error) {
	if name == "" {
		if r.def == "" {
			return "", ErrNoFilter
		}
		name = r.def
	}
	if canonical, ok := r.aliases[name]; ok {
		return canonical, nil
	}
	return name, nil
}
