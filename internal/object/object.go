package object

import (
	"reflect"
	"sort"
)

// Field binds one logical key to the raw fields it reads. A Field with a
// nil Fn passes its single raw field through untouched.
type Field struct {
	// Raw lists the raw payload fields the derivation reads.
	Raw []string
	// Fn derives the logical value from the raw payload.
	Fn func(raw map[string]any) any
}

// Schema maps logical keys to their fields. Logical keys absent from the
// schema read the raw payload directly under the same name.
type Schema map[string]Field

// RawKeys translates logical keys to the union of raw fields they need,
// sorted and deduplicated. Unknown logical keys pass through unchanged.
func RawKeys(schema Schema, logical ...string) []string {
	seen := map[string]bool{}
	for _, key := range logical {
		field, ok := schema[key]
		if !ok {
			seen[key] = true
			continue
		}
		for _, raw := range field.Raw {
			seen[raw] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// View is one object seen through a schema. Views are not safe for
// concurrent use; the state layer hands each consumer its own snapshot.
type View struct {
	schema Schema
	idKey  string
	raw    map[string]any
	cache  map[string]any
}

// New wraps a raw payload. idKey names the logical key that identifies the
// object across updates.
func New(schema Schema, idKey string, raw map[string]any) *View {
	return &View{
		schema: schema,
		idKey:  idKey,
		raw:    raw,
		cache:  make(map[string]any),
	}
}

// Value returns the logical value for key, deriving and caching it on
// first use. Keys outside the schema read the raw payload directly.
func (v *View) Value(key string) any {
	if cached, ok := v.cache[key]; ok {
		return cached
	}
	field, ok := v.schema[key]
	if !ok {
		return v.raw[key]
	}
	if field.Fn == nil {
		if len(field.Raw) == 1 {
			return v.raw[field.Raw[0]]
		}
		return nil
	}
	val := field.Fn(v.raw)
	v.cache[key] = val
	return val
}

// Has reports whether every raw field behind key is present, meaning Value
// would compute from real data rather than absent fields.
func (v *View) Has(key string) bool {
	field, ok := v.schema[key]
	if !ok {
		_, present := v.raw[key]
		return present
	}
	for _, raw := range field.Raw {
		if _, present := v.raw[raw]; !present {
			return false
		}
	}
	return true
}

// ID returns the object's identity value.
func (v *View) ID() any {
	return v.Value(v.idKey)
}

// Same reports whether other is the same object, by identity key.
func (v *View) Same(other *View) bool {
	return other != nil && v.idKey == other.idKey && reflect.DeepEqual(v.ID(), other.ID())
}

// Update merges a fresh raw payload into the view and drops cached derived
// values whose raw fields changed. Fields absent from the new payload keep
// their old values, so partial fetches never erase known data.
func (v *View) Update(raw map[string]any) {
	changed := map[string]bool{}
	for k, val := range raw {
		if old, ok := v.raw[k]; !ok || !reflect.DeepEqual(old, val) {
			changed[k] = true
		}
		v.raw[k] = val
	}
	if len(changed) == 0 {
		return
	}
	for key := range v.cache {
		field, ok := v.schema[key]
		if !ok {
			continue
		}
		for _, raw := range field.Raw {
			if changed[raw] {
				delete(v.cache, key)
				break
			}
		}
	}
}
