package util

import "strings"

// NormalizeName standardizes free-text identifiers for fingerprinting and
// alias lookups: lowercased, trimmed, inner whitespace collapsed to single
// spaces. Matching on normalized names is exact, never fuzzy.
func NormalizeName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ToLower(value)
	return strings.Join(strings.Fields(value), " ")
}

// Tokenize splits a normalized string into its whitespace-separated tokens.
func Tokenize(value string) []string {
	return strings.Fields(NormalizeName(value))
}
