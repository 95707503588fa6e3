package validation

import (
	"fmt"
	"regexp"
)

// Pattern is a validated regular expression used to select invite tokens
// for bulk deletion. Raw strings are compiled exactly once, up front, so a
// malformed expression is rejected before anything is deleted.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// ParsePattern compiles a raw pattern string
func ParsePattern(raw string) (Pattern, error) {
	if raw == "" {
		return Pattern{}, fmt.Errorf("empty pattern")
	}
	re, err := regexp.Compile(raw)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", raw, err)
	}
	return Pattern{raw: raw, re: re}, nil
}

// ParsePatterns compiles a set of raw pattern strings, failing on the first
// invalid one.
func ParsePatterns(raw []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(raw))
	for _, r := range raw {
		p, err := ParsePattern(r)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Matches reports whether the value matches the pattern
func (p Pattern) Matches(value string) bool {
	return p.re != nil && p.re.MatchString(value)
}

// String returns the original pattern text
func (p Pattern) String() string {
	return p.raw
}
