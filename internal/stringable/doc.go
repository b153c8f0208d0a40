// Package stringable provides the typed value domain for filter comparisons.
//
// # Overview
//
// Every value a user can type into a filter expression ("1.5GiB", "50%",
// "2024-01-01", "5h ago", "seeding") is represented by one of a closed set
// of types that knows how to parse itself from a string and render itself
// back to a canonical string. The round-trip law holds for all of them:
// parsing a value's String() output yields an equal value, modulo
// normalization such as unit-prefix choice.
//
// # Types
//
//   - Str, Path: text values; Path normalizes trailing slashes
//   - Flag: booleans accepting true/false, yes/no, on/off, 1/0
//   - Number: floats with a unit ("B", "B/s", "%") and a prefix mode
//     (metric powers of 1000 or binary powers of 1024)
//   - Timestamp: absolute instants, parsed from dates or relative
//     expressions like "in 3d" and "5h ago"
//   - Timedelta: durations in compact day/hour/minute/second form
//   - Option, Options: words from a closed set, ordered by declaration
//
// # Sentinels
//
// Domain concepts without a finite representation (an unlimited rate limit,
// an unknown ETA, a torrent that will never finish) are sentinel values with
// a defined position in the ordering: "na" and "unknown" sort below every
// finite value, "unlimited" and "never" above. Cmp implements this policy
// for the whole set so comparison behavior is enumerated in one place.
package stringable
