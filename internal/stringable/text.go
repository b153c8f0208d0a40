package stringable

import (
	"fmt"
	"strings"
)

// Str is a plain text value. Ordering is lexicographic so text fields accept
// the full operator set.
type Str string

func (s Str) String() string { return string(s) }

// Path is a filesystem path. Trailing slashes are stripped on construction
// so "/data/" and "/data" compare equal.
type Path string

// NewPath normalizes and wraps a path string.
func NewPath(s string) Path {
	if len(s) > 1 {
		s = strings.TrimRight(s, "/")
		if s == "" {
			s = "/"
		}
	}
	return Path(s)
}

func (p Path) String() string { return string(p) }

// Flag is a boolean value.
type Flag bool

// ParseFlag accepts the usual spellings of true and false.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return Flag(true), nil
	case "false", "no", "off", "0":
		return Flag(false), nil
	}
	return Flag(false), fmt.Errorf("not a boolean: %q", s)
}

func (f Flag) String() string {
	if f {
		return "yes"
	}
	return "no"
}
