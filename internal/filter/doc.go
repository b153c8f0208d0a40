// Package filter implements the filter expression mini-language used to
// narrow torrent, file, peer, tracker and setting lists.
//
// # Overview
//
// A filter expression combines single clauses with & (AND) and | (OR):
//
//	downloading&!private|tracker~example.com
//
// One clause is name, !name, or name<operator>value. Operators are
// = (equals), ~ (contains), =~ (regex), and the orderings > < >= <=, each
// invertible with a leading !. Single or double quotes keep operator
// characters and spaces literal, and backslash escapes one character.
//
// # Registries
//
// Each object kind owns a Registry of filter specs: boolean filters (a
// plain predicate, like "downloading") and comparative filters (a value
// getter plus a typed comparison, like "size>1.5GiB"). A bare value with no
// filter name falls back to the kind's default filter with the contains
// operator, so "foo" on a torrent list means "name~foo". Every spec
// declares the object keys it needs so callers can fetch only those fields.
//
// # Chains
//
// Parse produces a Filter from one clause; ParseChain produces a Chain, an
// OR of AND-groups. Chain equality ignores textual order: a&b|c equals
// c|b&a. A catch-all filter (all, *) anywhere collapses the whole chain.
// Both forms render back to canonical strings that reparse to equal values.
package filter
