package employee

import (
	"time"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/csvexport"
	"github.com/trezcool/masomo-dashboard/core/query"
)

// Filter keys
const (
	FilterDepartment = "department"
	FilterStatus     = "status"
)

var Policy = query.Policy[Employee]{
	SearchFields: []query.Field[Employee]{
		Employee.FullName,
		func(e Employee) string { return e.Email },
		func(e Employee) string { return e.Position },
	},
	Categories: map[string]query.Field[Employee]{
		FilterDepartment: func(e Employee) string { return string(e.Department) },
		FilterStatus:     func(e Employee) string { return string(e.Status) },
	},
	Values: map[string][]string{
		FilterDepartment: core.EnumStrings(Departments),
		FilterStatus:     core.EnumStrings(Statuses),
	},
	Date: func(e Employee) time.Time { return e.HiredAt },
}

var comparators = map[string]query.Comparator[Employee]{
	"name": func(a, b Employee) int {
		if c := query.CompareStrings(a.LastName, b.LastName); c != 0 {
			return c
		}
		return query.CompareStrings(a.FirstName, b.FirstName)
	},
	"salary":   func(a, b Employee) int { return query.CompareNumbers(a.Salary, b.Salary) },
	"hired_at": func(a, b Employee) int { return a.HiredAt.Compare(b.HiredAt) },
}

var Columns = []csvexport.Column[Employee]{
	{Header: "Name", Value: Employee.FullName},
	{Header: "Department", Value: func(e Employee) string { return string(e.Department) }},
	{Header: "Position", Value: func(e Employee) string { return e.Position }},
	{Header: "Status", Value: func(e Employee) string { return string(e.Status) }},
	{Header: "Salary", Value: func(e Employee) string { return csvexport.Money(e.Salary) }},
}

type Summary struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	OnLeave       int     `json:"on_leave"`
	Terminated    int     `json:"terminated"`
	Payroll       float64 `json:"payroll"` // active employees only
	AverageSalary float64 `json:"average_salary"`
}

func Summarize(employees []Employee) Summary {
	var sum Summary
	for _, e := range employees {
		sum.Total++
		switch e.Status {
		case StatusActive:
			sum.Active++
			sum.Payroll += e.Salary
		case StatusOnLeave:
			sum.OnLeave++
		case StatusTerminated:
			sum.Terminated++
		}
	}
	sum.AverageSalary = query.Round(query.Average(sum.Payroll, sum.Active), 2)
	return sum
}

type DepartmentBreakdown struct {
	Department Department `json:"department"`
	Headcount  int        `json:"headcount"`
	Payroll    float64    `json:"payroll"`
}

func ByDepartment(employees []Employee) []DepartmentBreakdown {
	groups := query.GroupBy(employees, func(e Employee) Department { return e.Department })
	out := make([]DepartmentBreakdown, 0, len(groups))
	for _, g := range groups {
		sum := Summarize(g.Items)
		out = append(out, DepartmentBreakdown{Department: g.Key, Headcount: sum.Total, Payroll: sum.Payroll})
	}
	return out
}

type View struct {
	Items   []Employee            `json:"items"`
	Summary Summary               `json:"summary"`
	Groups  []DepartmentBreakdown `json:"groups"`
}

func Derive(employees []Employee, req query.Request) (View, error) {
	if err := Policy.Validate(req.Criteria); err != nil {
		return View{}, err
	}
	items, err := query.Sort(query.Filter(employees, Policy, req.Criteria), req.Ordering, comparators)
	if err != nil {
		return View{}, err
	}
	return View{
		Items:   items,
		Summary: Summarize(items),
		Groups:  ByDepartment(items),
	}, nil
}

// AttendanceRow is an employee with the status recorded on a day.
// An empty Status means nothing was recorded.
type AttendanceRow struct {
	Employee Employee         `json:"employee"`
	Status   AttendanceStatus `json:"status"`
}

type AttendanceSummary struct {
	Total          int     `json:"total"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	Remote         int     `json:"remote"`
	Unrecorded     int     `json:"unrecorded"`
	PresentPercent float64 `json:"present_percent"`
}

type AttendanceView struct {
	Date    time.Time         `json:"date"`
	Items   []AttendanceRow   `json:"items"`
	Summary AttendanceSummary `json:"summary"`
}

// DailyAttendance joins the records of day onto every employee not terminated.
// Each employee is counted in exactly one bucket; the first record of a day wins.
func DailyAttendance(dir Directory, day time.Time) AttendanceView {
	day = Day(day)
	recorded := query.NewIndex(
		query.Where(dir.Attendance, func(a Attendance) bool { return Day(a.Date).Equal(day) }),
		func(a Attendance) string { return a.EmployeeID },
	)

	view := AttendanceView{Date: day, Items: make([]AttendanceRow, 0, len(dir.Employees))}
	for _, e := range dir.Employees {
		if e.Status == StatusTerminated {
			continue
		}
		row := AttendanceRow{Employee: e}
		if rec, ok := recorded.Get(e.ID); ok {
			row.Status = rec.Status
		}
		view.Items = append(view.Items, row)

		sum := &view.Summary
		sum.Total++
		switch row.Status {
		case Present:
			sum.Present++
		case Absent:
			sum.Absent++
		case Late:
			sum.Late++
		case Remote:
			sum.Remote++
		default:
			sum.Unrecorded++
		}
	}
	view.Summary.PresentPercent = query.Percent(view.Summary.Present, view.Summary.Total)
	return view
}
