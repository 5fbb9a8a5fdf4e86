package parser

import (
	"regexp"
	"strings"
)

// Patterns are matched case-insensitively as plain substrings
const (
	PatternFailedLogin = "failed password"
	PatternError       = "error"
	PatternCritical    = "critical"
)

// reAddress finds dotted-quad shaped tokens. Groups are not range checked, so
// 999.1.1.1 qualifies: the token is a grouping key, not a validated IPv4 address.
var reAddress = regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`)

// ExtractAddress returns the first address token in line, or "" if none
func ExtractAddress(line string) string {
	return reAddress.FindString(line)
}

// Classifier matches lines against the fixed danger patterns
type Classifier struct{}

// NewClassifier creates a new line classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify implements the Parser interface
func (c *Classifier) Classify(line string) Classification {
	lower := asciiLower(line)

	var cl Classification
	if strings.Contains(lower, PatternFailedLogin) {
		cl.FailedLogin = true
		// Extract from the raw line, not the lowered copy
		cl.Address = ExtractAddress(line)
	}
	cl.Error = strings.Contains(lower, PatternError)
	cl.Critical = strings.Contains(lower, PatternCritical)
	return cl
}

// asciiLower folds only 'A'..'Z'. Other bytes, including multi-byte runes, are
// kept as is so no non-ASCII letter can turn into a pattern match.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
