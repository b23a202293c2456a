package employee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/query"
	logsvc "github.com/trezcool/masomo-dashboard/services/logger"
)

var (
	hired = time.Date(2019, time.September, 2, 0, 0, 0, 0, time.UTC)
	today = time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)

	employees = []Employee{
		{ID: "e1", FirstName: "Joseph", LastName: "Kasa", Email: "joseph@school.test", Department: DeptAcademics, Position: "Mathematics Teacher", Salary: 1200, Status: StatusActive, HiredAt: hired},
		{ID: "e2", FirstName: "Nadine", LastName: "Mbuyi", Email: "nadine@school.test", Department: DeptFinance, Position: "Bursar", Salary: 1500, Status: StatusActive, HiredAt: hired.AddDate(1, 0, 0)},
		{ID: "e3", FirstName: "Patrick", LastName: "Lumbu", Email: "patrick@school.test", Department: DeptAcademics, Position: "Physics Teacher", Salary: 1100, Status: StatusOnLeave, HiredAt: hired.AddDate(2, 0, 0)},
		{ID: "e4", FirstName: "Sarah", LastName: "Ngoy", Email: "sarah@school.test", Department: DeptLibrary, Position: "Librarian", Salary: 900, Status: StatusTerminated, HiredAt: hired.AddDate(3, 0, 0)},
	}
	attendance = []Attendance{
		{EmployeeID: "e1", Date: today, Status: Present},
		{EmployeeID: "e1", Date: today.Add(9 * time.Hour), Status: Late}, // duplicate, ignored
		{EmployeeID: "e2", Date: today, Status: Remote},
		{EmployeeID: "e4", Date: today, Status: Present}, // terminated, ignored
		{EmployeeID: "e3", Date: today.AddDate(0, 0, -1), Status: Absent},
	}
)

type sliceRepo struct{}

func (sliceRepo) Employees() []Employee     { return employees }
func (sliceRepo) Attendance() []Attendance { return attendance }

func names(es []Employee) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.FullName())
	}
	return out
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(sliceRepo{}, logsvc.NewZapLoggerFrom(zap.NewNop()), core.NewTestConfig(), nil)
	require.NoError(t, err)
	return svc
}

func TestSummarize(t *testing.T) {
	sum := Summarize(employees)
	assert.Equal(t, Summary{Total: 4, Active: 2, OnLeave: 1, Terminated: 1, Payroll: 2700, AverageSalary: 1350}, sum)
	assert.Equal(t, sum.Total, sum.Active+sum.OnLeave+sum.Terminated)
	assert.Equal(t, Summary{}, Summarize([]Employee{}))
}

func TestByDepartment(t *testing.T) {
	assert.Equal(t, []DepartmentBreakdown{
		{Department: DeptAcademics, Headcount: 2, Payroll: 1200},
		{Department: DeptFinance, Headcount: 1, Payroll: 1500},
		{Department: DeptLibrary, Headcount: 1},
	}, ByDepartment(employees))
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		req  query.Request
		want []string
	}{
		{name: "empty request", want: names(employees)},
		{name: "search position", req: query.Request{Criteria: query.Criteria{Search: "teacher"}}, want: []string{"Joseph Kasa", "Patrick Lumbu"}},
		{name: "department", req: query.Request{Criteria: query.Criteria{Filters: map[string]string{FilterDepartment: "academics", FilterStatus: "all"}}}, want: []string{"Joseph Kasa", "Patrick Lumbu"}},
		{name: "hired from", req: query.Request{Criteria: query.Criteria{From: hired.AddDate(2, 0, 0)}}, want: []string{"Patrick Lumbu", "Sarah Ngoy"}},
		{name: "salary desc", req: query.Request{Ordering: query.ParseOrdering("-salary")}, want: []string{"Nadine Mbuyi", "Joseph Kasa", "Patrick Lumbu", "Sarah Ngoy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := Derive(employees, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(view.Items))
		})
	}
}

func TestDailyAttendance(t *testing.T) {
	view := DailyAttendance(Directory{Employees: employees, Attendance: attendance}, today.Add(15*time.Hour))

	assert.Equal(t, today, view.Date)
	assert.Equal(t, AttendanceSummary{Total: 3, Present: 1, Remote: 1, Unrecorded: 1, PresentPercent: 33.33}, view.Summary)
	sum := view.Summary
	assert.Equal(t, sum.Total, sum.Present+sum.Absent+sum.Late+sum.Remote+sum.Unrecorded)

	require.Len(t, view.Items, 3)
	assert.Equal(t, Present, view.Items[0].Status)
	assert.Equal(t, AttendanceStatus(""), view.Items[2].Status)

	empty := DailyAttendance(Directory{}, today)
	assert.Equal(t, AttendanceSummary{}, empty.Summary)
}

func TestService_AdjustSalary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ack, err := svc.AdjustSalary(ctx, "e1", SalaryAdjustment{Salary: 1300, Reason: "annual review"})
	require.NoError(t, err)
	assert.Equal(t, "employee.adjust_salary", ack.Action)
	assert.Contains(t, ack.Message, "Joseph Kasa")

	_, err = svc.AdjustSalary(ctx, "e4", SalaryAdjustment{Salary: 1000, Reason: "x"})
	_, ok := err.(*core.ValidationError)
	assert.True(t, ok)

	_, err = svc.AdjustSalary(ctx, "lol", SalaryAdjustment{Salary: 1000, Reason: "x"})
	assert.True(t, core.IsNotFound(err))
}

func TestService_Export(t *testing.T) {
	svc := newTestService(t)
	data, err := svc.Export(context.Background(), query.Request{Criteria: query.Criteria{Filters: map[string]string{FilterDepartment: "finance"}}})
	require.NoError(t, err)
	assert.Equal(t,
		"\"Name\",\"Department\",\"Position\",\"Status\",\"Salary\"\n"+
			"\"Nadine Mbuyi\",\"finance\",\"Bursar\",\"active\",\"1500.00\"\n",
		string(data),
	)
}

func TestSalaryAdjustment_Validate(t *testing.T) {
	validate, _ := core.NewValidator()
	assert.NoError(t, (&SalaryAdjustment{Salary: 1, Reason: " promotion "}).Validate(validate))
	assert.Error(t, (&SalaryAdjustment{Salary: 0, Reason: "x"}).Validate(validate))
	assert.Error(t, (&SalaryAdjustment{Salary: 10, Reason: "   "}).Validate(validate))
}
