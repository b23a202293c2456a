package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/dialog"
	"github.com/trezcool/masomo-dashboard/core/query"
	"github.com/trezcool/masomo-dashboard/core/student"
)

type studentApi struct {
	deps *Deps
	svc  *student.Service
}

func registerStudentAPI(g *echo.Group, deps *Deps) {
	api := studentApi{deps: deps, svc: deps.Students}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.GET("/graduated", api.queryGraduated)
	sg.GET("/export", api.export)
	sg.POST("", api.register)
	sg.POST("/refresh", api.refresh)
	sg.DELETE("", api.destroyMultiple)

	dg := sg.Group("/:id")
	dg.DELETE("", api.destroy)
	dg.POST("/tuition-reminders", api.remind)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	req, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.Query(ctx.Request().Context(), req)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *studentApi) queryGraduated(ctx echo.Context) error {
	req, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.QueryGraduated(ctx.Request().Context(), req)
	if err != nil {
		return errors.Wrap(err, "querying graduated students")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *studentApi) export(ctx echo.Context) error {
	req, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	data, err := api.svc.Export(ctx.Request().Context(), req)
	if err != nil {
		return errors.Wrap(err, "exporting students")
	}
	return sendCSV(ctx, "students", data)
}

func (api *studentApi) register(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	ack, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering student")
	}
	return accepted(ctx, ack)
}

func (api *studentApi) refresh(ctx echo.Context) error {
	if err := api.svc.Refresh(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "refreshing students")
	}
	return refreshed(ctx, student.LoaderName, api.svc.State())
}

func (api *studentApi) destroy(ctx echo.Context) error {
	s, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding student")
	}
	if err := resolveDialog(ctx, dialog.StudentRemoval{StudentID: s.ID, Name: s.FullName()}); err != nil {
		return err
	}

	ack, err := api.svc.Remove(ctx.Request().Context(), s.ID)
	if err != nil {
		return errors.Wrap(err, "removing student")
	}
	return accepted(ctx, ack)
}

// destroyMultiple removes the students selected with ?id=..&id=..
func (api *studentApi) destroyMultiple(ctx echo.Context) error {
	sel := query.NewSelection(ctx.QueryParams()[idParam]...)
	sel.Remove("")
	if sel.Len() == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: idParam, Error: "at least one student is required"})
	}
	for _, id := range sel.Keys() {
		if _, err := api.svc.GetByID(ctx.Request().Context(), id); err != nil {
			return errors.Wrap(err, "finding student")
		}
	}
	if err := resolveDialog(ctx, dialog.StudentsRemoval{StudentIDs: sel.Keys()}); err != nil {
		return err
	}

	ack, err := api.svc.Remove(ctx.Request().Context(), sel.Keys()...)
	if err != nil {
		return errors.Wrap(err, "removing students")
	}
	return accepted(ctx, ack)
}

func (api *studentApi) remind(ctx echo.Context) error {
	s, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding student")
	}
	if err := resolveDialog(ctx, dialog.TuitionReminder{StudentID: s.ID, Guardian: s.Guardian}); err != nil {
		return err
	}

	ack, err := api.svc.SendTuitionReminder(ctx.Request().Context(), s.ID)
	if err != nil {
		return errors.Wrap(err, "sending tuition reminder")
	}
	return accepted(ctx, ack)
}
