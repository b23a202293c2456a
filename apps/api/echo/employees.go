package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core/dialog"
	"github.com/trezcool/masomo-dashboard/core/employee"
)

type employeeApi struct {
	deps *Deps
	svc  *employee.Service
}

func registerEmployeeAPI(g *echo.Group, deps *Deps) {
	api := employeeApi{deps: deps, svc: deps.Employees}

	eg := g.Group("/employees")
	eg.GET("", api.query)
	eg.GET("/attendance", api.attendance)
	eg.GET("/export", api.export)
	eg.POST("/refresh", api.refresh)
	eg.POST("/:id/salary-adjustments", api.adjustSalary)
}

func (api *employeeApi) query(ctx echo.Context) error {
	req, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.Query(ctx.Request().Context(), req)
	if err != nil {
		return errors.Wrap(err, "querying employees")
	}
	return ctx.JSON(http.StatusOK, view)
}

// attendance defaults to today when ?date= is missing.
func (api *employeeApi) attendance(ctx echo.Context) error {
	day, err := parseDateParam(dateParam, ctx.QueryParam(dateParam), false)
	if err != nil {
		return err
	}
	if day.IsZero() {
		day = time.Now()
	}
	view, err := api.svc.Attendance(ctx.Request().Context(), employee.Day(day))
	if err != nil {
		return errors.Wrap(err, "loading attendance")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *employeeApi) export(ctx echo.Context) error {
	req, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	data, err := api.svc.Export(ctx.Request().Context(), req)
	if err != nil {
		return errors.Wrap(err, "exporting employees")
	}
	return sendCSV(ctx, "employees", data)
}

func (api *employeeApi) refresh(ctx echo.Context) error {
	if err := api.svc.Refresh(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "refreshing employees")
	}
	return refreshed(ctx, employee.LoaderName, api.svc.State())
}

func (api *employeeApi) adjustSalary(ctx echo.Context) error {
	var data employee.SalaryAdjustment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SalaryAdjustment")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	e, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding employee")
	}
	subj := dialog.SalaryAdjustment{EmployeeID: e.ID, Name: e.FullName(), From: e.Salary, To: data.Salary}
	if err := resolveDialog(ctx, subj); err != nil {
		return err
	}

	ack, err := api.svc.AdjustSalary(ctx.Request().Context(), e.ID, data)
	if err != nil {
		return errors.Wrap(err, "adjusting salary")
	}
	return accepted(ctx, ack)
}
