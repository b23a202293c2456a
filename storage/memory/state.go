// Package memory is the in-memory data store. It is read-only once opened.
package memory

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/employee"
	"github.com/trezcool/masomo-dashboard/core/investment"
	"github.com/trezcool/masomo-dashboard/core/stock"
	"github.com/trezcool/masomo-dashboard/core/student"
	"github.com/trezcool/masomo-dashboard/storage/seed"
)

const dateLayout = "2006-01-02"

type (
	// State owns every table of the application.
	State struct {
		students   *table[student.Student]
		employees  *table[employee.Employee]
		attendance *table[employee.Attendance]
		categories *table[stock.Category]
		products   *table[stock.Product]
		members    *table[investment.Member]
		payments   *table[investment.Payment]
	}

	table[T any] struct {
		sync.RWMutex
		rows []T
	}
)

var (
	_ student.Repository    = (*State)(nil)
	_ employee.Repository   = (*State)(nil)
	_ stock.Repository      = (*State)(nil)
	_ investment.Repository = (*State)(nil)
)

func newTable[T any](rows []T) *table[T] {
	return &table[T]{rows: rows}
}

// all returns a copy of the rows.
func (t *table[T]) all() []T {
	t.RLock()
	defer t.RUnlock()
	out := make([]T, len(t.rows))
	copy(out, t.rows)
	return out
}

// Open validates the raw data and loads it.
func Open(data seed.Data) (*State, error) {
	students, err := parseStudents(data.Students)
	if err != nil {
		return nil, err
	}
	employees, err := parseEmployees(data.Employees)
	if err != nil {
		return nil, err
	}
	attendance, err := parseAttendance(data.Attendance, employees)
	if err != nil {
		return nil, err
	}
	categories, err := parseCategories(data.Categories)
	if err != nil {
		return nil, err
	}
	products, err := parseProducts(data.Products)
	if err != nil {
		return nil, err
	}
	members, err := parseMembers(data.Members)
	if err != nil {
		return nil, err
	}
	payments, err := parsePayments(data.Payments)
	if err != nil {
		return nil, err
	}

	return &State{
		students:   newTable(students),
		employees:  newTable(employees),
		attendance: newTable(attendance),
		categories: newTable(categories),
		products:   newTable(products),
		members:    newTable(members),
		payments:   newTable(payments),
	}, nil
}

func (s *State) Students() []student.Student       { return s.students.all() }
func (s *State) Employees() []employee.Employee    { return s.employees.all() }
func (s *State) Attendance() []employee.Attendance { return s.attendance.all() }
func (s *State) Categories() []stock.Category      { return s.categories.all() }
func (s *State) Products() []stock.Product         { return s.products.all() }
func (s *State) Members() []investment.Member      { return s.members.all() }
func (s *State) Payments() []investment.Payment    { return s.payments.all() }

func parseDate(field, val string) (time.Time, error) {
	t, err := time.Parse(dateLayout, val)
	if err != nil {
		return time.Time{}, core.NewValidationError(err, core.FieldError{Field: field, Error: "expected a YYYY-MM-DD date"})
	}
	return t.UTC(), nil
}

// ids rejects empty and duplicate IDs.
type ids map[string]struct{}

func (seen ids) add(id string) error {
	if id == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "id", Error: "id is required"})
	}
	if _, ok := seen[id]; ok {
		return core.NewValidationError(nil, core.FieldError{Field: "id", Error: "duplicate id " + id})
	}
	seen[id] = struct{}{}
	return nil
}

func negative(field string) error {
	return core.NewValidationError(nil, core.FieldError{Field: field, Error: field + " must not be negative"})
}

func parseStudents(raw []seed.Student) ([]student.Student, error) {
	seen := make(ids, len(raw))
	out := make([]student.Student, 0, len(raw))
	for i, r := range raw {
		s, err := parseStudent(r, seen)
		if err != nil {
			return nil, errors.Wrapf(err, "students[%d]", i)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseStudent(r seed.Student, seen ids) (student.Student, error) {
	if err := seen.add(r.ID); err != nil {
		return student.Student{}, err
	}
	status, err := student.ParseStatus(r.Status)
	if err != nil {
		return student.Student{}, err
	}
	level, err := student.ParseClassLevel(r.ClassLevel)
	if err != nil {
		return student.Student{}, err
	}
	if r.TuitionBalance < 0 {
		return student.Student{}, negative("tuition_balance")
	}
	if r.BooksBorrowed < 0 {
		return student.Student{}, negative("books_borrowed")
	}
	registered, err := parseDate("registered_at", r.RegisteredAt)
	if err != nil {
		return student.Student{}, err
	}
	return student.Student{
		ID:             r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		Guardian:       r.Guardian,
		GuardianEmail:  r.GuardianEmail,
		ClassLevel:     level,
		Status:         status,
		TuitionBalance: r.TuitionBalance,
		BooksBorrowed:  r.BooksBorrowed,
		RegisteredAt:   registered,
	}, nil
}

func parseEmployees(raw []seed.Employee) ([]employee.Employee, error) {
	seen := make(ids, len(raw))
	out := make([]employee.Employee, 0, len(raw))
	for i, r := range raw {
		e, err := parseEmployee(r, seen)
		if err != nil {
			return nil, errors.Wrapf(err, "employees[%d]", i)
		}
		out = append(out, e)
	}
	return out, nil
}

func parseEmployee(r seed.Employee, seen ids) (employee.Employee, error) {
	if err := seen.add(r.ID); err != nil {
		return employee.Employee{}, err
	}
	dept, err := employee.ParseDepartment(r.Department)
	if err != nil {
		return employee.Employee{}, err
	}
	status, err := employee.ParseStatus(r.Status)
	if err != nil {
		return employee.Employee{}, err
	}
	if r.Salary < 0 {
		return employee.Employee{}, negative("salary")
	}
	hired, err := parseDate("hired_at", r.HiredAt)
	if err != nil {
		return employee.Employee{}, err
	}
	return employee.Employee{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Department: dept,
		Position:   r.Position,
		Salary:     r.Salary,
		Status:     status,
		HiredAt:    hired,
	}, nil
}

func parseAttendance(raw []seed.Attendance, employees []employee.Employee) ([]employee.Attendance, error) {
	known := make(map[string]struct{}, len(employees))
	for _, e := range employees {
		known[e.ID] = struct{}{}
	}
	out := make([]employee.Attendance, 0, len(raw))
	for i, r := range raw {
		if _, ok := known[r.EmployeeID]; !ok {
			err := core.NewNotFoundError("employee", r.EmployeeID)
			return nil, errors.Wrapf(err, "attendance[%d]", i)
		}
		status, err := employee.ParseAttendanceStatus(r.Status)
		if err != nil {
			return nil, errors.Wrapf(err, "attendance[%d]", i)
		}
		day, err := parseDate("date", r.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "attendance[%d]", i)
		}
		out = append(out, employee.Attendance{EmployeeID: r.EmployeeID, Date: day, Status: status})
	}
	return out, nil
}

func parseCategories(raw []seed.Category) ([]stock.Category, error) {
	seen := make(ids, len(raw))
	out := make([]stock.Category, 0, len(raw))
	for i, r := range raw {
		if err := seen.add(r.ID); err != nil {
			return nil, errors.Wrapf(err, "categories[%d]", i)
		}
		out = append(out, stock.Category{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// parseProducts leaves category references unchecked; unknown ones resolve to
// the Uncategorized category on read.
func parseProducts(raw []seed.Product) ([]stock.Product, error) {
	seen := make(ids, len(raw))
	out := make([]stock.Product, 0, len(raw))
	for i, r := range raw {
		if err := seen.add(r.ID); err != nil {
			return nil, errors.Wrapf(err, "products[%d]", i)
		}
		switch {
		case r.Quantity < 0:
			return nil, errors.Wrapf(negative("quantity"), "products[%d]", i)
		case r.ReorderPoint < 0:
			return nil, errors.Wrapf(negative("reorder_point"), "products[%d]", i)
		case r.UnitPrice < 0:
			return nil, errors.Wrapf(negative("unit_price"), "products[%d]", i)
		}
		out = append(out, stock.Product{
			ID:           r.ID,
			SKU:          r.SKU,
			Name:         r.Name,
			CategoryID:   r.CategoryID,
			Quantity:     r.Quantity,
			ReorderPoint: r.ReorderPoint,
			UnitPrice:    r.UnitPrice,
		})
	}
	return out, nil
}

func parseMembers(raw []seed.Member) ([]investment.Member, error) {
	seen := make(ids, len(raw))
	out := make([]investment.Member, 0, len(raw))
	for i, r := range raw {
		if err := seen.add(r.ID); err != nil {
			return nil, errors.Wrapf(err, "members[%d]", i)
		}
		if r.TotalContribution < 0 {
			return nil, errors.Wrapf(negative("total_contribution"), "members[%d]", i)
		}
		joined, err := parseDate("joined_at", r.JoinedAt)
		if err != nil {
			return nil, errors.Wrapf(err, "members[%d]", i)
		}
		out = append(out, investment.Member{
			ID:                r.ID,
			Name:              r.Name,
			Email:             r.Email,
			TotalContribution: r.TotalContribution,
			Active:            r.Active,
			JoinedAt:          joined,
		})
	}
	return out, nil
}

func parsePayments(raw []seed.Payment) ([]investment.Payment, error) {
	seen := make(ids, len(raw))
	out := make([]investment.Payment, 0, len(raw))
	for i, r := range raw {
		if err := seen.add(r.ID); err != nil {
			return nil, errors.Wrapf(err, "payments[%d]", i)
		}
		typ, err := investment.ParsePaymentType(r.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "payments[%d]", i)
		}
		if r.Amount < 0 {
			return nil, errors.Wrapf(negative("amount"), "payments[%d]", i)
		}
		date, err := parseDate("date", r.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "payments[%d]", i)
		}
		out = append(out, investment.Payment{
			ID:          r.ID,
			MemberID:    r.MemberID,
			Type:        typ,
			Amount:      r.Amount,
			Description: r.Description,
			Date:        date,
		})
	}
	return out, nil
}
