package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/csvexport"
	"github.com/trezcool/masomo-dashboard/core/fetch"
	"github.com/trezcool/masomo-dashboard/core/query"
)

const LoaderName = "employees"

const cacheKey = "all"

var ErrTerminated = errors.New("employee is terminated")

type (
	Repository interface {
		Employees() []Employee
		Attendance() []Attendance
	}

	Service struct {
		repo        Repository
		loader      *fetch.Loader[Directory]
		log         core.Logger
		submitDelay time.Duration
	}
)

func NewService(repo Repository, logger core.Logger, conf *core.Config, metrics *fetch.Metrics) (*Service, error) {
	svc := &Service{repo: repo, log: logger, submitDelay: conf.Submit.Delay}
	loader, err := fetch.NewLoader(LoaderName, svc.fetch, fetch.Options{
		Latency:   conf.Fetch.EmployeesLatency,
		CacheSize: conf.Fetch.CacheSize,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, err
	}
	svc.loader = loader
	return svc, nil
}

func (svc *Service) fetch(context.Context, string) (Directory, error) {
	return Directory{Employees: svc.repo.Employees(), Attendance: svc.repo.Attendance()}, nil
}

func (svc *Service) Load(ctx context.Context) (Directory, error) {
	return svc.loader.Get(ctx, cacheKey)
}

func (svc *Service) State() fetch.State[Directory] {
	return svc.loader.State(cacheKey)
}

func (svc *Service) Refresh(ctx context.Context) error {
	_, err := svc.loader.Refetch(ctx, cacheKey)
	return err
}

func (svc *Service) Query(ctx context.Context, req query.Request) (View, error) {
	dir, err := svc.Load(ctx)
	if err != nil {
		return View{}, err
	}
	return Derive(dir.Employees, req)
}

func (svc *Service) Export(ctx context.Context, req query.Request) ([]byte, error) {
	view, err := svc.Query(ctx, req)
	if err != nil {
		return nil, err
	}
	return csvexport.Render(Columns, view.Items)
}

// Attendance returns the attendance sheet of day.
func (svc *Service) Attendance(ctx context.Context, day time.Time) (AttendanceView, error) {
	dir, err := svc.Load(ctx)
	if err != nil {
		return AttendanceView{}, err
	}
	return DailyAttendance(dir, day), nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Employee, error) {
	dir, err := svc.Load(ctx)
	if err != nil {
		return Employee{}, err
	}
	for _, e := range dir.Employees {
		if e.ID == id {
			return e, nil
		}
	}
	return Employee{}, core.NewNotFoundError("employee", id)
}

// AdjustSalary acknowledges a validated salary adjustment. Nothing is persisted.
func (svc *Service) AdjustSalary(ctx context.Context, id string, adj SalaryAdjustment) (core.Acknowledgement, error) {
	e, err := svc.GetByID(ctx, id)
	if err != nil {
		return core.Acknowledgement{}, err
	}
	if e.Status == StatusTerminated {
		return core.Acknowledgement{}, core.NewValidationError(ErrTerminated, core.FieldError{Field: "status", Error: ErrTerminated.Error()})
	}
	if err := core.Wait(ctx, svc.submitDelay); err != nil {
		return core.Acknowledgement{}, err
	}
	svc.log.Info("salary adjustment accepted", map[string]interface{}{
		"employee": e.ID,
		"from":     e.Salary,
		"to":       adj.Salary,
		"reason":   adj.Reason,
	})
	return core.NewAcknowledgement(
		"employee.adjust_salary",
		fmt.Sprintf("salary of %s adjusted from %.2f to %.2f", e.FullName(), e.Salary, adj.Salary),
	), nil
}
