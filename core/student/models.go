package student

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-dashboard/core"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusGraduated Status = "graduated"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusGraduated}

// ParseStatus validates s against the closed set of statuses.
func ParseStatus(s string) (Status, error) {
	return core.ParseEnum("status", s, Statuses)
}

type ClassLevel string

const (
	Form1 ClassLevel = "form1"
	Form2 ClassLevel = "form2"
	Form3 ClassLevel = "form3"
	Form4 ClassLevel = "form4"
	Form5 ClassLevel = "form5"
	Form6 ClassLevel = "form6"
)

var ClassLevels = []ClassLevel{Form1, Form2, Form3, Form4, Form5, Form6}

func ParseClassLevel(s string) (ClassLevel, error) {
	return core.ParseEnum("class_level", s, ClassLevels)
}

type Student struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Guardian       string     `json:"guardian"`
	GuardianEmail  string     `json:"guardian_email"`
	ClassLevel     ClassLevel `json:"class_level"`
	Status         Status     `json:"status"`
	TuitionBalance float64    `json:"tuition_balance"`
	BooksBorrowed  int        `json:"books_borrowed"`
	RegisteredAt   time.Time  `json:"registered_at"` // UTC
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func (s Student) HasBalance() bool { return s.TuitionBalance > 0 }

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	FirstName      string  `json:"first_name" validate:"required"`
	LastName       string  `json:"last_name" validate:"required"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Phone          string  `json:"phone" validate:"omitempty,phone"`
	Guardian       string  `json:"guardian" validate:"required"`
	GuardianEmail  string  `json:"guardian_email" validate:"required,email"`
	ClassLevel     string  `json:"class_level" validate:"required,oneof=form1 form2 form3 form4 form5 form6"`
	TuitionBalance float64 `json:"tuition_balance" validate:"gte=0"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	ns.Guardian = core.CleanString(ns.Guardian)
	ns.GuardianEmail = core.CleanString(ns.GuardianEmail, true /* lower */)
	ns.ClassLevel = core.CleanString(ns.ClassLevel, true /* lower */)
	return validate.Struct(ns)
}
