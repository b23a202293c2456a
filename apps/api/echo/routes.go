package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core/fetch"
	"github.com/trezcool/masomo-dashboard/core/route"
)

type resolvedRoute struct {
	Route       route.Route   `json:"route"`
	Breadcrumbs []route.Route `json:"breadcrumbs"`
	WindowTitle string        `json:"window_title"`
	Login       string        `json:"login,omitempty"`
}

type refreshResponse struct {
	Resource  string    `json:"resource"`
	FetchedAt time.Time `json:"fetched_at"`
}

func registerRouteAPI(g *echo.Group, deps *Deps) {
	rg := g.Group("/routes")
	rg.GET("", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, route.All())
	})
	rg.GET("/resolve", func(ctx echo.Context) error {
		p := ctx.QueryParam("path")
		res := resolvedRoute{
			Route:       route.Resolve(p),
			Breadcrumbs: route.Breadcrumbs(p),
			WindowTitle: route.WindowTitle(p, deps.Conf.AppName),
		}
		if !route.IsPublic(p) {
			res.Login = route.LoginRedirect(p)
		}
		return ctx.JSON(http.StatusOK, res)
	})
}

func registerDashboardAPI(g *echo.Group, deps *Deps) {
	dg := g.Group("/dashboard")
	dg.GET("", func(ctx echo.Context) error {
		ov, err := deps.Dashboard.Load(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "loading dashboard")
		}
		return ctx.JSON(http.StatusOK, ov)
	})
	dg.GET("/status", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, deps.Dashboard.Status())
	})
}

// refreshed reports the fetch time of a manually refreshed resource.
func refreshed[T any](ctx echo.Context, resource string, st fetch.State[T]) error {
	return ctx.JSON(http.StatusOK, refreshResponse{Resource: resource, FetchedAt: st.FetchedAt})
}
