package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core/investment"
)

type investmentApi struct {
	deps *Deps
	svc  *investment.Service
}

func registerInvestmentAPI(g *echo.Group, deps *Deps) {
	api := investmentApi{deps: deps, svc: deps.Investment}

	ig := g.Group("/investment")
	ig.GET("/summary", api.summary)
	ig.GET("/members", api.queryMembers)
	ig.GET("/payments", api.queryPayments)
	ig.GET("/payments/export", api.exportPayments)
	ig.POST("/payments", api.recordPayment)
	ig.POST("/refresh", api.refresh)
}

func (api *investmentApi) summary(ctx echo.Context) error {
	ov, err := api.svc.Overview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading fund overview")
	}
	return ctx.JSON(http.StatusOK, ov)
}

func (api *investmentApi) queryMembers(ctx echo.Context) error {
	req, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.QueryMembers(ctx.Request().Context(), req)
	if err != nil {
		return errors.Wrap(err, "querying members")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *investmentApi) queryPayments(ctx echo.Context) error {
	req, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.QueryPayments(ctx.Request().Context(), req)
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *investmentApi) exportPayments(ctx echo.Context) error {
	req, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	data, err := api.svc.ExportPayments(ctx.Request().Context(), req)
	if err != nil {
		return errors.Wrap(err, "exporting payments")
	}
	return sendCSV(ctx, "payments", data)
}

func (api *investmentApi) recordPayment(ctx echo.Context) error {
	var data investment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	ack, err := api.svc.RecordPayment(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "recording payment")
	}
	return accepted(ctx, ack)
}

func (api *investmentApi) refresh(ctx echo.Context) error {
	if err := api.svc.Refresh(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "refreshing investment fund")
	}
	return refreshed(ctx, investment.LoaderName, api.svc.State())
}
