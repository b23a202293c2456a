package core

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// suggestMinRatio is the minimum similarity for Suggest to propose a candidate.
const suggestMinRatio = .6

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Suggest returns the candidate closest to `val`, or "" if none is similar enough.
func Suggest(val string, candidates []string) string {
	val = strings.ToLower(val)
	if val == "" {
		return ""
	}
	var (
		best      string
		bestRatio float64
	)
	for _, c := range candidates {
		ratio := difflib.NewMatcher(strings.Split(val, ""), strings.Split(strings.ToLower(c), "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}
	if bestRatio < suggestMinRatio {
		return ""
	}
	return best
}

// ParseEnum validates `val` against a closed set of string values.
func ParseEnum[E ~string](field, val string, set []E) (E, error) {
	for _, e := range set {
		if string(e) == val {
			return e, nil
		}
	}
	var zero E
	return zero, NewUnknownValueError(field, val, EnumStrings(set))
}

func EnumStrings[E ~string](set []E) []string {
	out := make([]string, len(set))
	for i, e := range set {
		out[i] = string(e)
	}
	return out
}
