package employee

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-dashboard/core"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusOnLeave    Status = "on_leave"
	StatusTerminated Status = "terminated"
)

var Statuses = []Status{StatusActive, StatusOnLeave, StatusTerminated}

func ParseStatus(s string) (Status, error) {
	return core.ParseEnum("status", s, Statuses)
}

type Department string

const (
	DeptAdministration Department = "administration"
	DeptAcademics      Department = "academics"
	DeptFinance        Department = "finance"
	DeptFacilities     Department = "facilities"
	DeptLibrary        Department = "library"
)

var Departments = []Department{DeptAdministration, DeptAcademics, DeptFinance, DeptFacilities, DeptLibrary}

func ParseDepartment(s string) (Department, error) {
	return core.ParseEnum("department", s, Departments)
}

type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
	Remote  AttendanceStatus = "remote"
)

var AttendanceStatuses = []AttendanceStatus{Present, Absent, Late, Remote}

func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	return core.ParseEnum("attendance_status", s, AttendanceStatuses)
}

type Employee struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Department Department `json:"department"`
	Position   string     `json:"position"`
	Salary     float64    `json:"salary"`
	Status     Status     `json:"status"`
	HiredAt    time.Time  `json:"hired_at"` // UTC
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Attendance records the status of one employee on one day.
type Attendance struct {
	EmployeeID string           `json:"employee_id"`
	Date       time.Time        `json:"date"` // UTC midnight
	Status     AttendanceStatus `json:"status"`
}

// Directory is the loaded employee collection with its attendance records.
type Directory struct {
	Employees  []Employee
	Attendance []Attendance
}

// SalaryAdjustment contains information needed to request a salary change.
type SalaryAdjustment struct {
	Salary float64 `json:"salary" validate:"gt=0"`
	Reason string  `json:"reason" validate:"required,max=500"`
}

func (sa *SalaryAdjustment) Validate(validate *validator.Validate) error {
	sa.Reason = core.CleanString(sa.Reason)
	return validate.Struct(sa)
}

// Day truncates t to its UTC day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
