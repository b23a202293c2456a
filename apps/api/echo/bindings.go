package echoapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/csvexport"
	"github.com/trezcool/masomo-dashboard/core/dialog"
	"github.com/trezcool/masomo-dashboard/core/query"
)

const (
	searchParam   = "search"
	fromParam     = "from"
	toParam       = "to"
	orderingParam = "ordering"
	confirmParam  = "confirm"
	dateParam     = "date"
	idParam       = "id"

	dateLayout = "2006-01-02"
)

// reserved params are never treated as category filters.
var reserved = map[string]bool{
	searchParam:   true,
	fromParam:     true,
	toParam:       true,
	orderingParam: true,
	confirmParam:  true,
	dateParam:     true,
	idParam:       true,
}

// bindQuery reads the query request from the query string. Every other
// parameter is a category filter, validated later against the domain policy.
func bindQuery(ctx echo.Context) (query.Request, error) {
	var req query.Request
	params := ctx.QueryParams()

	req.Criteria.Search = params.Get(searchParam)
	req.Ordering = query.ParseOrdering(params.Get(orderingParam))

	var err error
	if req.Criteria.From, err = parseDateParam(fromParam, params.Get(fromParam), false); err != nil {
		return req, err
	}
	if req.Criteria.To, err = parseDateParam(toParam, params.Get(toParam), true); err != nil {
		return req, err
	}

	for key, vals := range params {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		if len(vals) > 1 {
			return req, core.NewValidationError(nil, core.FieldError{
				Field: key,
				Error: key + " must be given once",
			})
		}
		if req.Criteria.Filters == nil {
			req.Criteria.Filters = make(map[string]string)
		}
		req.Criteria.Filters[key] = vals[0]
	}
	req.Criteria.Clean()
	return req, nil
}

// parseDateParam accepts RFC3339 or a bare date. A bare upper bound covers the whole day.
func parseDateParam(name, val string, endOfDay bool) (time.Time, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, val)
	if err != nil {
		return time.Time{}, core.NewValidationError(err, core.FieldError{
			Field: name,
			Error: name + " must be a valid date (YYYY-MM-DD or RFC3339)",
		})
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func confirmed(ctx echo.Context) bool {
	return ctx.QueryParam(confirmParam) == "true"
}

// resolveDialog opens a dialog for subj and resolves it from ?confirm=.
// It returns a ConfirmationError when the action was not confirmed.
func resolveDialog(ctx echo.Context, subj dialog.Subject) error {
	s, err := dialog.New().Resolve(subj, confirmed(ctx))
	if err != nil {
		return err
	}
	if s == nil {
		return core.NewConfirmationError(subj.Prompt())
	}
	return nil
}

func accepted(ctx echo.Context, ack core.Acknowledgement) error {
	return ctx.JSON(http.StatusAccepted, ack)
}

func sendCSV(ctx echo.Context, name string, data []byte) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+csvexport.Filename(name, time.Now())+"\"")
	return ctx.Blob(http.StatusOK, csvexport.ContentType, data)
}
