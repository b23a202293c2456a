package student

import (
	"time"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/csvexport"
	"github.com/trezcool/masomo-dashboard/core/query"
)

// Filter keys
const (
	FilterStatus     = "status"
	FilterClassLevel = "class_level"
)

var Policy = query.Policy[Student]{
	SearchFields: []query.Field[Student]{
		func(s Student) string { return s.FirstName },
		func(s Student) string { return s.LastName },
		Student.FullName,
		func(s Student) string { return s.Email },
		func(s Student) string { return s.Phone },
		func(s Student) string { return s.ID },
	},
	Categories: map[string]query.Field[Student]{
		FilterStatus:     func(s Student) string { return string(s.Status) },
		FilterClassLevel: func(s Student) string { return string(s.ClassLevel) },
	},
	Values: map[string][]string{
		FilterStatus:     core.EnumStrings(Statuses),
		FilterClassLevel: core.EnumStrings(ClassLevels),
	},
	Date: func(s Student) time.Time { return s.RegisteredAt },
}

var comparators = map[string]query.Comparator[Student]{
	"name": func(a, b Student) int {
		if c := query.CompareStrings(a.LastName, b.LastName); c != 0 {
			return c
		}
		return query.CompareStrings(a.FirstName, b.FirstName)
	},
	"registered_at":   func(a, b Student) int { return a.RegisteredAt.Compare(b.RegisteredAt) },
	"tuition_balance": func(a, b Student) int { return query.CompareNumbers(a.TuitionBalance, b.TuitionBalance) },
	"books_borrowed":  func(a, b Student) int { return query.CompareNumbers(a.BooksBorrowed, b.BooksBorrowed) },
}

// Columns are the exported CSV columns.
var Columns = []csvexport.Column[Student]{
	{Header: "Name", Value: Student.FullName},
	{Header: "Email", Value: func(s Student) string { return s.Email }},
	{Header: "Class", Value: func(s Student) string { return string(s.ClassLevel) }},
	{Header: "Status", Value: func(s Student) string { return string(s.Status) }},
	{Header: "Tuition Balance", Value: func(s Student) string { return csvexport.Money(s.TuitionBalance) }},
}

type Summary struct {
	Total              int     `json:"total"`
	Active             int     `json:"active"`
	Inactive           int     `json:"inactive"`
	Graduated          int     `json:"graduated"`
	ActivePercent      float64 `json:"active_percent"`
	TuitionOutstanding float64 `json:"tuition_outstanding"`
	WithBalance        int     `json:"with_balance"`
	BooksBorrowed      int     `json:"books_borrowed"`
}

// Summarize aggregates students in a single pass.
func Summarize(students []Student) Summary {
	var sum Summary
	for _, s := range students {
		sum.Total++
		switch s.Status {
		case StatusActive:
			sum.Active++
		case StatusInactive:
			sum.Inactive++
		case StatusGraduated:
			sum.Graduated++
		}
		if s.HasBalance() {
			sum.WithBalance++
			sum.TuitionOutstanding += s.TuitionBalance
		}
		sum.BooksBorrowed += s.BooksBorrowed
	}
	sum.ActivePercent = query.Percent(sum.Active, sum.Total)
	return sum
}

type ClassBreakdown struct {
	ClassLevel         ClassLevel `json:"class_level"`
	Students           int        `json:"students"`
	Active             int        `json:"active"`
	TuitionOutstanding float64    `json:"tuition_outstanding"`
}

// ByClass breaks students down per class level, in first-seen order.
func ByClass(students []Student) []ClassBreakdown {
	groups := query.GroupBy(students, func(s Student) ClassLevel { return s.ClassLevel })
	out := make([]ClassBreakdown, 0, len(groups))
	for _, g := range groups {
		sum := Summarize(g.Items)
		out = append(out, ClassBreakdown{
			ClassLevel:         g.Key,
			Students:           sum.Total,
			Active:             sum.Active,
			TuitionOutstanding: sum.TuitionOutstanding,
		})
	}
	return out
}

// Graduated keeps graduated students only.
func Graduated(students []Student) []Student {
	return query.Where(students, func(s Student) bool { return s.Status == StatusGraduated })
}

type View struct {
	Items   []Student        `json:"items"`
	Summary Summary          `json:"summary"`
	Groups  []ClassBreakdown `json:"groups"`
}

// Derive filters, sorts and aggregates students for req.
func Derive(students []Student, req query.Request) (View, error) {
	if err := Policy.Validate(req.Criteria); err != nil {
		return View{}, err
	}
	items, err := query.Sort(query.Filter(students, Policy, req.Criteria), req.Ordering, comparators)
	if err != nil {
		return View{}, err
	}
	return View{
		Items:   items,
		Summary: Summarize(items),
		Groups:  ByClass(items),
	}, nil
}
