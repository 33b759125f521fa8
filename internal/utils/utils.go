// Package utils contains general helper functions used across the tree tool.
package utils

import (
	"regexp"
	"strings"
)

const wildcard = "*"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// MatchesPattern reports whether entryPath matches pattern. A pattern containing
// "*" must match the whole path, each "*" standing for any run of characters
// (path separators included). Any other pattern matches when it occurs as a
// substring of entryPath. Matching is case-sensitive and there is no brace
// expansion or character class support.
func MatchesPattern(entryPath string, pattern string) bool {
	if !strings.Contains(pattern, wildcard) {
		return strings.Contains(entryPath, pattern)
	}
	return compileWildcard(pattern).MatchString(entryPath)
}

// MatchesAnyPattern reports whether entryPath matches at least one pattern.
func MatchesAnyPattern(entryPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchesPattern(entryPath, pattern) {
			return true
		}
	}
	return false
}

// compileWildcard turns a wildcard pattern into an anchored expression where
// every non-wildcard character is literal.
func compileWildcard(pattern string) *regexp.Regexp {
	literalParts := strings.Split(pattern, wildcard)
	for partIndex, literalPart := range literalParts {
		literalParts[partIndex] = regexp.QuoteMeta(literalPart)
	}
	return regexp.MustCompile("^(?s:" + strings.Join(literalParts, ".*") + ")$")
}
