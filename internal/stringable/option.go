package stringable

import (
	"fmt"
	"sort"
	"strings"
)

// Option is one word from a closed set. The declaration order of the set
// defines the ordinal used by < and > comparisons, so a priority set
// declared low, normal, high orders naturally.
type Option struct {
	word     string
	universe []string
}

// NewOption validates word against the universe.
func NewOption(word string, universe ...string) (Option, error) {
	w := strings.ToLower(strings.TrimSpace(word))
	for _, u := range universe {
		if w == u {
			return Option{word: w, universe: universe}, nil
		}
	}
	return Option{}, fmt.Errorf("invalid option %q (one of: %s)", word, strings.Join(universe, ", "))
}

func (o Option) String() string { return o.word }

func (o Option) index() int {
	for i, u := range o.universe {
		if o.word == u {
			return i
		}
	}
	return -1
}

// Options is a set of words from a closed universe, e.g. the status words a
// torrent currently carries. The contains operator tests membership.
type Options struct {
	words []string
}

// NewOptions wraps a word set.
func NewOptions(words ...string) Options {
	return Options{words: words}
}

// Contains reports membership of a single word.
func (o Options) Contains(word string) bool {
	for _, w := range o.words {
		if w == word {
			return true
		}
	}
	return false
}

// Words returns the member words.
func (o Options) Words() []string {
	return append([]string(nil), o.words...)
}

func (o Options) String() string {
	sorted := append([]string(nil), o.words...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func (o Options) equalSet(other Options) bool {
	if len(o.words) != len(other.words) {
		return false
	}
	for _, w := range o.words {
		if !other.Contains(w) {
			return false
		}
	}
	return true
}
