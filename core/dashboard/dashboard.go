// Package dashboard combines the four domain loads into the landing page overview.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/trezcool/masomo-dashboard/core/employee"
	"github.com/trezcool/masomo-dashboard/core/fetch"
	"github.com/trezcool/masomo-dashboard/core/investment"
	"github.com/trezcool/masomo-dashboard/core/query"
	"github.com/trezcool/masomo-dashboard/core/stock"
	"github.com/trezcool/masomo-dashboard/core/student"
)

const recentPayments = 5

type (
	StudentSource interface {
		Load(ctx context.Context) ([]student.Student, error)
		State() fetch.State[[]student.Student]
	}

	EmployeeSource interface {
		Load(ctx context.Context) (employee.Directory, error)
		State() fetch.State[employee.Directory]
	}

	StockSource interface {
		Load(ctx context.Context) (stock.Catalog, error)
		State() fetch.State[stock.Catalog]
	}

	InvestmentSource interface {
		Load(ctx context.Context) (investment.Ledger, error)
		State() fetch.State[investment.Ledger]
	}

	Service struct {
		students   StudentSource
		employees  EmployeeSource
		stock      StockSource
		investment InvestmentSource
	}
)

type Overview struct {
	Ready          bool                    `json:"ready"`
	Students       student.Summary         `json:"students"`
	Employees      employee.Summary        `json:"employees"`
	Stock          stock.Summary           `json:"stock"`
	Investment     investment.Summary      `json:"investment"`
	LowStock       []stock.Row             `json:"low_stock"`
	Profit         float64                 `json:"profit"`
	RecentPayments []investment.PaymentRow `json:"recent_payments"`
}

// Status reports which loads have completed, without triggering any.
type Status struct {
	Students   bool `json:"students"`
	Employees  bool `json:"employees"`
	Stock      bool `json:"stock"`
	Investment bool `json:"investment"`
	Ready      bool `json:"ready"`
}

func NewService(students StudentSource, employees EmployeeSource, stk StockSource, inv InvestmentSource) *Service {
	return &Service{students: students, employees: employees, stock: stk, investment: inv}
}

func (svc *Service) Status() Status {
	st := Status{
		Students:   svc.students.State().Loaded(),
		Employees:  svc.employees.State().Loaded(),
		Stock:      svc.stock.State().Loaded(),
		Investment: svc.investment.State().Loaded(),
	}
	st.Ready = st.Students && st.Employees && st.Stock && st.Investment
	return st
}

// Load fetches the four domains concurrently. The overview is Ready only once
// every load has completed; the first failure cancels the others.
func (svc *Service) Load(ctx context.Context) (Overview, error) {
	var ov Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		students, err := svc.students.Load(ctx)
		if err != nil {
			return err
		}
		ov.Students = student.Summarize(students)
		return nil
	})
	g.Go(func() error {
		dir, err := svc.employees.Load(ctx)
		if err != nil {
			return err
		}
		ov.Employees = employee.Summarize(dir.Employees)
		return nil
	})
	g.Go(func() error {
		c, err := svc.stock.Load(ctx)
		if err != nil {
			return err
		}
		rows := c.Rows()
		ov.Stock = stock.Summarize(rows)
		ov.LowStock = query.Where(rows, func(r stock.Row) bool { return r.LowStock })
		return nil
	})
	g.Go(func() error {
		l, err := svc.investment.Load(ctx)
		if err != nil {
			return err
		}
		rows, err := query.Sort(l.Rows(), query.ParseOrdering("-date"), map[string]query.Comparator[investment.PaymentRow]{
			"date": func(a, b investment.PaymentRow) int { return a.Payment.Date.Compare(b.Payment.Date) },
		})
		if err != nil {
			return err
		}
		ov.Investment = investment.Summarize(l.Members, rows)
		ov.Profit = ov.Investment.Profit
		if len(rows) > recentPayments {
			rows = rows[:recentPayments]
		}
		ov.RecentPayments = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	ov.Ready = true
	return ov, nil
}
