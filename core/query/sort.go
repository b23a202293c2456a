package query

import (
	"sort"
	"strings"

	"github.com/trezcool/masomo-dashboard/core"
)

type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// ParseOrdering parses "-field,field" into orderings; a leading "-" means descending.
func ParseOrdering(val string) []Ordering {
	var orderings []Ordering
	if val == "" {
		return orderings
	}
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, Ordering{Field: field, Ascending: !descending})
	}
	return orderings
}

// Comparator returns a negative number when a < b, 0 when equal and a positive number otherwise.
type Comparator[T any] func(a, b T) int

// Sort returns a stably sorted copy of items. Orderings are applied in sequence,
// later ones breaking ties of earlier ones. Unknown fields are rejected.
func Sort[T any](items []T, orderings []Ordering, comparators map[string]Comparator[T]) ([]T, error) {
	out := make([]T, len(items))
	copy(out, items)
	if len(orderings) == 0 {
		return out, nil
	}

	cmps := make([]Comparator[T], 0, len(orderings))
	for _, ord := range orderings {
		cmp, ok := comparators[ord.Field]
		if !ok {
			fields := make([]string, 0, len(comparators))
			for f := range comparators {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			return nil, core.NewUnknownValueError("ordering", ord.Field, fields)
		}
		if !ord.Ascending {
			asc := cmp
			cmp = func(a, b T) int { return asc(b, a) }
		}
		cmps = append(cmps, cmp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, cmp := range cmps {
			if c := cmp(out[i], out[j]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out, nil
}

// CompareStrings compares case-insensitively.
func CompareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// CompareNumbers compares two numbers.
func CompareNumbers[N Number](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Request is a full derivation request: what to keep, and in which order.
type Request struct {
	Criteria Criteria
	Ordering []Ordering
}
