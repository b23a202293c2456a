package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core/dialog"
	"github.com/trezcool/masomo-dashboard/core/stock"
)

type stockApi struct {
	svc *stock.Service
}

func registerStockAPI(g *echo.Group, deps *Deps) {
	api := stockApi{svc: deps.Stock}

	sg := g.Group("/stock")
	sg.GET("/products", api.query)
	sg.GET("/products/export", api.export)
	sg.DELETE("/products/:id", api.destroy)
	sg.GET("/categories", api.categories)
	sg.POST("/refresh", api.refresh)
}

func (api *stockApi) query(ctx echo.Context) error {
	req, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.Query(ctx.Request().Context(), req)
	if err != nil {
		return errors.Wrap(err, "querying products")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *stockApi) export(ctx echo.Context) error {
	req, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	data, err := api.svc.Export(ctx.Request().Context(), req)
	if err != nil {
		return errors.Wrap(err, "exporting products")
	}
	return sendCSV(ctx, "stock", data)
}

// categories lists every known category, empty ones included.
func (api *stockApi) categories(ctx echo.Context) error {
	cats, err := api.svc.Categories(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing categories")
	}
	return ctx.JSON(http.StatusOK, cats)
}

func (api *stockApi) refresh(ctx echo.Context) error {
	if err := api.svc.Refresh(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "refreshing stock")
	}
	return refreshed(ctx, stock.LoaderName, api.svc.State())
}

func (api *stockApi) destroy(ctx echo.Context) error {
	r, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding product")
	}
	if err := resolveDialog(ctx, dialog.ProductRemoval{ProductID: r.Product.ID, Name: r.Product.Name}); err != nil {
		return err
	}

	ack, err := api.svc.RemoveProduct(ctx.Request().Context(), r.Product.ID)
	if err != nil {
		return errors.Wrap(err, "removing product")
	}
	return accepted(ctx, ack)
}
