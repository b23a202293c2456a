// Package query derives view models from in-memory collections:
// filtering, grouping, sorting and aggregation. Every function is pure.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/trezcool/masomo-dashboard/core"
)

// All is the sentinel filter value meaning "apply no constraint for this field".
const All = "all"

// Criteria holds user supplied filtering input.
type Criteria struct {
	Search  string
	Filters map[string]string
	From    time.Time // inclusive, zero means unbounded
	To      time.Time // inclusive, zero means unbounded
}

// IsEmpty reports whether applying the criteria is a no-op.
func (c Criteria) IsEmpty() bool {
	if c.Search != "" || !c.From.IsZero() || !c.To.IsZero() {
		return false
	}
	for _, v := range c.Filters {
		if !isNoop(v) {
			return false
		}
	}
	return true
}

func (c *Criteria) Clean() {
	c.Search = core.CleanString(c.Search)
	for k, v := range c.Filters {
		c.Filters[k] = core.CleanString(v)
	}
}

// Field extracts a string value from a record.
type Field[T any] func(T) string

// Policy configures how Criteria apply to records of type T.
type Policy[T any] struct {
	// SearchFields are ORed; a record matches if any contains the search term.
	SearchFields []Field[T]
	// Categories are ANDed; each is an exact match against its filter value.
	Categories map[string]Field[T]
	// Values optionally closes the set of accepted values of a category.
	Values map[string][]string
	// Date is used by the From/To range. Nil disables date filtering.
	Date func(T) time.Time
}

// Keys returns the sorted category keys of the policy.
func (p Policy[T]) Keys() []string {
	keys := make([]string, 0, len(p.Categories))
	for k := range p.Categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate rejects filter keys the policy does not know about, and values
// outside of a closed category.
func (p Policy[T]) Validate(c Criteria) error {
	keys := p.Keys()
	for k, v := range c.Filters {
		if _, ok := p.Categories[k]; !ok {
			return core.NewUnknownValueError("filter", k, keys)
		}
		if allowed, ok := p.Values[k]; ok && !isNoop(v) && !contains(allowed, v) {
			return core.NewUnknownValueError(k, v, allowed)
		}
	}
	if p.Date == nil && (!c.From.IsZero() || !c.To.IsZero()) {
		return core.NewValidationError(nil, core.FieldError{Field: "from", Error: "date range is not supported here"})
	}
	if !c.From.IsZero() && !c.To.IsZero() && c.To.Before(c.From) {
		return core.NewValidationError(nil, core.FieldError{Field: "to", Error: "to must not be before from"})
	}
	return nil
}

// Matcher returns a predicate applying c to records.
func (p Policy[T]) Matcher(c Criteria) func(T) bool {
	needle := fold(core.CleanString(c.Search))

	type catFilter struct {
		field Field[T]
		want  string
	}
	cats := make([]catFilter, 0, len(c.Filters))
	for k, v := range c.Filters {
		if isNoop(v) {
			continue
		}
		if f, ok := p.Categories[k]; ok {
			cats = append(cats, catFilter{field: f, want: v})
		}
	}

	return func(item T) bool {
		for _, cf := range cats {
			if cf.field(item) != cf.want {
				return false
			}
		}
		if p.Date != nil && !(c.From.IsZero() && c.To.IsZero()) {
			d := p.Date(item)
			if !c.From.IsZero() && d.Before(c.From) {
				return false
			}
			if !c.To.IsZero() && d.After(c.To) {
				return false
			}
		}
		if needle == "" {
			return true
		}
		for _, f := range p.SearchFields {
			if strings.Contains(fold(f(item)), needle) {
				return true
			}
		}
		return false
	}
}

// Filter returns the records matching c, preserving their relative order.
// The input slice is never modified.
func Filter[T any](items []T, p Policy[T], c Criteria) []T {
	if c.IsEmpty() {
		return append(make([]T, 0, len(items)), items...)
	}
	return Where(items, p.Matcher(c))
}

// Where returns the records satisfying pred, preserving their relative order.
func Where[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

func contains(vals []string, v string) bool {
	for _, val := range vals {
		if val == v {
			return true
		}
	}
	return false
}

func isNoop(v string) bool {
	return v == "" || strings.EqualFold(v, All)
}

// fold applies full Unicode case folding. A Caser is not safe for concurrent use.
func fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Fold().String(s)
}
