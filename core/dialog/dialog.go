// Package dialog is the confirmation state machine guarding destructive or
// confirmable actions: Closed -> Open -> (Confirm | Cancel) -> Closed.
package dialog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrAlreadyOpen = errors.New("a dialog is already open")
	ErrNotOpen     = errors.New("no dialog is open")
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Subject is what a dialog asks to confirm. The set of subjects is closed.
type Subject interface {
	// Action names the action, e.g. "student.remove".
	Action() string
	// Prompt is the question shown to the user.
	Prompt() string
	isSubject()
}

type StudentRemoval struct {
	StudentID string
	Name      string
}

type StudentsRemoval struct {
	StudentIDs []string
}

type ProductRemoval struct {
	ProductID string
	Name      string
}

type SalaryAdjustment struct {
	EmployeeID string
	Name       string
	From, To   float64
}

type TuitionReminder struct {
	StudentID string
	Guardian  string
}

func (StudentRemoval) Action() string   { return "student.remove" }
func (StudentsRemoval) Action() string  { return "student.remove" }
func (ProductRemoval) Action() string   { return "stock.remove_product" }
func (SalaryAdjustment) Action() string { return "employee.adjust_salary" }
func (TuitionReminder) Action() string  { return "student.remind" }

func (s StudentRemoval) Prompt() string {
	return fmt.Sprintf("Remove student %s?", s.Name)
}

func (s StudentsRemoval) Prompt() string {
	return fmt.Sprintf("Remove %d students (%s)?", len(s.StudentIDs), strings.Join(s.StudentIDs, ", "))
}

func (s ProductRemoval) Prompt() string {
	return fmt.Sprintf("Remove product %s?", s.Name)
}

func (s SalaryAdjustment) Prompt() string {
	return fmt.Sprintf("Adjust the salary of %s from %.2f to %.2f?", s.Name, s.From, s.To)
}

func (s TuitionReminder) Prompt() string {
	return fmt.Sprintf("Send a tuition reminder to %s?", s.Guardian)
}

func (StudentRemoval) isSubject()   {}
func (StudentsRemoval) isSubject()  {}
func (ProductRemoval) isSubject()   {}
func (SalaryAdjustment) isSubject() {}
func (TuitionReminder) isSubject()  {}

// Dialog holds at most one open subject. It is safe for concurrent use.
type Dialog struct {
	mu      sync.Mutex
	subject Subject
}

func New() *Dialog {
	return &Dialog{}
}

func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.subject != nil {
		return Open
	}
	return Closed
}

// Subject returns the open subject, or nil when closed.
func (d *Dialog) Subject() Subject {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.subject
}

func (d *Dialog) Open(s Subject) error {
	if s == nil {
		return errors.New("dialog subject is required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.subject != nil {
		return ErrAlreadyOpen
	}
	d.subject = s
	return nil
}

// Confirm closes the dialog and returns the confirmed subject.
func (d *Dialog) Confirm() (Subject, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.subject == nil {
		return nil, ErrNotOpen
	}
	s := d.subject
	d.subject = nil
	return s, nil
}

func (d *Dialog) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.subject == nil {
		return ErrNotOpen
	}
	d.subject = nil
	return nil
}

// Resolve opens s then confirms it when confirmed is true, cancelling otherwise.
// It returns the subject only when confirmed.
func (d *Dialog) Resolve(s Subject, confirmed bool) (Subject, error) {
	if err := d.Open(s); err != nil {
		return nil, err
	}
	if confirmed {
		return d.Confirm()
	}
	return nil, d.Cancel()
}
