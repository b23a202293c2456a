package echoapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/masomo-dashboard/apps/api/echo"
	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/auth"
	"github.com/trezcool/masomo-dashboard/core/csvexport"
	"github.com/trezcool/masomo-dashboard/core/dashboard"
	"github.com/trezcool/masomo-dashboard/core/employee"
	"github.com/trezcool/masomo-dashboard/core/investment"
	"github.com/trezcool/masomo-dashboard/core/query"
	"github.com/trezcool/masomo-dashboard/core/route"
	"github.com/trezcool/masomo-dashboard/core/stock"
	"github.com/trezcool/masomo-dashboard/core/student"
)

func decode(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}

func Test_home(t *testing.T) {
	srv, _ := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Masomo Dashboard API!", rec.Body.String())
}

func Test_authApi(t *testing.T) {
	srv, app := setup(t)
	token := adminToken(t, app)
	teacher := getToken(t, app, auth.Profile{Email: "t@masomo.test", Name: "Teacher", Role: "teacher"})

	runHTTPTests(t, srv, []httpTest{
		{
			name:     "login without password",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			body:     []byte(`{"email": "admin@masomo.test", "password": "  "}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"password": "password is a required field"}`),
		},
		{
			name:     "me without token",
			method:   http.MethodGet,
			path:     "/v1/auth/me",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, map[string]string{
				"error": "missing or malformed jwt",
				"login": "/login?redirect=%2Fauth%2Fme",
			}),
		},
		{
			name:     "me with invalid token",
			method:   http.MethodGet,
			path:     "/v1/auth/me",
			token:    "invalid",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "me",
			method:   http.MethodGet,
			path:     "/v1/auth/me",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{
				"profile":      auth.StaticProfile(adminEmail),
				"window_title": "Dashboard | Masomo",
			}),
		},
		{
			name:     "not an admin",
			method:   http.MethodGet,
			path:     "/v1/students",
			token:    teacher,
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name:     "protected page keeps its continuation",
			method:   http.MethodGet,
			path:     "/v1/students?status=active",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, map[string]string{
				"error": "missing or malformed jwt",
				"login": route.LoginRedirect("/students?status=active"),
			}),
		},
	})

	t.Run("login", func(t *testing.T) {
		body := []byte(`{"email": " Admin@Masomo.test ", "password": "anything"}`)
		req, rec := newRequest(http.MethodPost, "/v1/auth/login?redirect=%2Fstock", body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var res echoapi.LoginResponse
		decode(t, rec.Body.Bytes(), &res)
		assert.Equal(t, auth.StaticProfile(adminEmail), res.Profile)
		assert.Equal(t, "/stock", res.Redirect)
		require.NotEmpty(t, res.Token)

		req, rec = newAuthRequest(http.MethodGet, "/v1/auth/me", res.Token)
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_routeApi(t *testing.T) {
	srv, _ := setup(t)

	runHTTPTests(t, srv, []httpTest{
		{
			name:     "all routes",
			method:   http.MethodGet,
			path:     "/v1/routes",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, route.All()),
		},
		{
			name:     "resolve a detail page",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve?path=%2Fstudents%2Fstu-001",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{
				"route": route.Route{Path: "/students", Title: "Students"},
				"breadcrumbs": []route.Route{
					{Path: "/", Title: "Dashboard"},
					{Path: "/students", Title: "Students"},
				},
				"window_title": "Students | Masomo",
				"login":        "/login?redirect=%2Fstudents%2Fstu-001",
			}),
		},
		{
			name:     "resolve the login page",
			method:   http.MethodGet,
			path:     "/v1/routes/resolve?path=%2Flogin",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{
				"route":        route.Route{Path: "/login", Title: "Sign In", Public: true},
				"breadcrumbs":  []route.Route{{Path: "/", Title: "Dashboard"}, {Path: "/login", Title: "Sign In", Public: true}},
				"window_title": "Sign In | Masomo",
			}),
		},
	})
}

func Test_studentApi_query(t *testing.T) {
	srv, app := setup(t)
	token := adminToken(t, app)
	ctx := context.Background()

	view := func(c query.Criteria, ordering string) []byte {
		v, err := app.Students.Query(ctx, query.Request{Criteria: c, Ordering: query.ParseOrdering(ordering)})
		require.NoError(t, err)
		return marchallObj(t, v)
	}
	graduated, err := app.Students.QueryGraduated(ctx, query.Request{})
	require.NoError(t, err)

	runHTTPTests(t, srv, []httpTest{
		{
			name:     "all",
			method:   http.MethodGet,
			path:     "/v1/students",
			token:    token,
			wantCode: http.StatusOK,
			wantData: view(query.Criteria{}, ""),
		},
		{
			name:     "filter by status",
			method:   http.MethodGet,
			path:     "/v1/students?status=active&class_level=all",
			token:    token,
			wantCode: http.StatusOK,
			wantData: view(query.Criteria{Filters: map[string]string{"status": "active"}}, ""),
		},
		{
			name:     "search and order",
			method:   http.MethodGet,
			path:     "/v1/students?search=+KAB+&ordering=-tuition_balance",
			token:    token,
			wantCode: http.StatusOK,
			wantData: view(query.Criteria{Search: "KAB"}, "-tuition_balance"),
		},
		{
			name:     "registration range",
			method:   http.MethodGet,
			path:     "/v1/students?from=2022-01-01&to=2022-12-31",
			token:    token,
			wantCode: http.StatusOK,
			wantData: view(query.Criteria{
				From: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
			}, ""),
		},
		{
			name:     "graduated",
			method:   http.MethodGet,
			path:     "/v1/students/graduated",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, graduated),
		},
		{
			name:     "unknown status value",
			method:   http.MethodGet,
			path:     "/v1/students?status=inactiv",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"status": "unknown value \"inactiv\"; did you mean \"inactive\"?"}`),
		},
		{
			name:     "unknown filter",
			method:   http.MethodGet,
			path:     "/v1/students?statu=active",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"filter": "unknown value \"statu\"; did you mean \"status\"?"}`),
		},
		{
			name:     "repeated filter",
			method:   http.MethodGet,
			path:     "/v1/students?status=active&status=graduated",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"status": "status must be given once"}`),
		},
		{
			name:     "unknown ordering",
			method:   http.MethodGet,
			path:     "/v1/students?ordering=-height",
			token:    token,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid date",
			method:   http.MethodGet,
			path:     "/v1/students?from=yesterday",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"from": "from must be a valid date (YYYY-MM-DD or RFC3339)"}`),
		},
		{
			name:     "inverted range",
			method:   http.MethodGet,
			path:     "/v1/students?from=2023-01-01&to=2022-01-01",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"to": "to must not be before from"}`),
		},
	})

	t.Run("export", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/export?status=graduated&ordering=name", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, csvexport.ContentType, rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), `attachment; filename="students-`))

		lines := strings.Split(strings.TrimSuffix(rec.Body.String(), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, `"Name","Email","Class","Status","Tuition Balance"`, lines[0])
		assert.Equal(t, `"Chantal Ilunga","chantal.ilunga@masomo.test","form6","graduated","0.00"`, lines[1])
	})
}

func Test_debugErrors(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Debug = true
	srv, app := setupWith(t, conf)
	token := adminToken(t, app)

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		body     []byte
		wantCode int
		want     map[string]string
	}{
		{
			name:     "unauthenticated",
			method:   http.MethodGet,
			path:     "/v1/students?status=active",
			wantCode: http.StatusUnauthorized,
			want: map[string]string{
				"error": "missing or malformed jwt",
				"login": route.LoginRedirect("/students?status=active"),
			},
		},
		{
			name:     "invalid form",
			method:   http.MethodPost,
			path:     "/v1/students",
			token:    token,
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			want:     map[string]string{"first_name": "this field is required"},
		},
		{
			name:     "unconfirmed",
			method:   http.MethodDelete,
			path:     "/v1/students/stu-001",
			token:    token,
			wantCode: http.StatusPreconditionRequired,
			want:     map[string]string{"prompt": "Remove student Amani Kabila?"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			require.Equal(t, tt.wantCode, rec.Code)

			var got map[string]string
			decode(t, rec.Body.Bytes(), &got)
			for k, v := range tt.want {
				assert.Equal(t, v, got[k], k)
			}
			assert.NotEmpty(t, got["debug"])
		})
	}
}

func Test_studentApi_actions(t *testing.T) {
	srv, app := setup(t)
	token := adminToken(t, app)

	runHTTPTests(t, srv, []httpTest{
		{
			name:     "remove without confirmation",
			method:   http.MethodDelete,
			path:     "/v1/students/stu-001",
			token:    token,
			wantCode: http.StatusPreconditionRequired,
			wantData: marchallObj(t, map[string]string{
				"error":  "confirmation required: Remove student Amani Kabila?",
				"prompt": "Remove student Amani Kabila?",
			}),
		},
		{
			name:     "remove unknown",
			method:   http.MethodDelete,
			path:     "/v1/students/stu-999?confirm=true",
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: `student "stu-999" not found`}),
		},
		{
			name:     "remove none",
			method:   http.MethodDelete,
			path:     "/v1/students?confirm=true",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"id": "at least one student is required"}`),
		},
		{
			name:     "remind without balance",
			method:   http.MethodPost,
			path:     "/v1/students/stu-002/tuition-reminders?confirm=true",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"tuition_balance": student.ErrNoBalance.Error()}),
		},
	})

	ack := func(t *testing.T, method, path string, body []byte) core.Acknowledgement {
		t.Helper()
		req, rec := newAuthRequest(method, path, token, body)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
		var a core.Acknowledgement
		decode(t, rec.Body.Bytes(), &a)
		assert.NotEmpty(t, a.ID)
		assert.False(t, a.Persisted)
		return a
	}

	t.Run("remove", func(t *testing.T) {
		a := ack(t, http.MethodDelete, "/v1/students/stu-001?confirm=true", nil)
		assert.Equal(t, "student.remove", a.Action)
	})

	t.Run("remove selection", func(t *testing.T) {
		a := ack(t, http.MethodDelete, "/v1/students?id=stu-001&id=stu-002&id=stu-001&confirm=true", nil)
		assert.Equal(t, "removal of 2 student(s) accepted", a.Message)
	})

	t.Run("register", func(t *testing.T) {
		body := []byte(`{
			"first_name": " Kevin ", "last_name": "Mulumba", "phone": "+243 810 111 011",
			"guardian": "Lea Mulumba", "guardian_email": "LEA@mail.test", "class_level": "Form1"
		}`)
		a := ack(t, http.MethodPost, "/v1/students", body)
		assert.Equal(t, "student.register", a.Action)
		assert.Equal(t, "registration of Kevin Mulumba accepted", a.Message)
	})

	t.Run("register invalid", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", token, []byte(`{"guardian_email": "nope", "tuition_balance": -1}`))
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var fldErrs map[string]string
		decode(t, rec.Body.Bytes(), &fldErrs)
		for _, fld := range []string{"first_name", "last_name", "guardian", "guardian_email", "class_level", "tuition_balance"} {
			assert.Contains(t, fldErrs, fld)
		}
		assert.Equal(t, "this field is required", fldErrs["first_name"])
	})

	t.Run("remind", func(t *testing.T) {
		a := ack(t, http.MethodPost, "/v1/students/stu-001/tuition-reminders?confirm=true", nil)
		assert.Equal(t, "student.remind", a.Action)

		sent := app.Mail.SentMessages()
		require.Len(t, sent, 1)
		assert.Equal(t, "grace.kabila@mail.test", sent[0].To[0].Address)
		assert.Contains(t, sent[0].TextContent, "150.00")
	})
}

func Test_employeeApi(t *testing.T) {
	srv, app := setup(t)
	token := adminToken(t, app)
	ctx := context.Background()

	academics, err := app.Employees.Query(ctx, query.Request{Criteria: query.Criteria{Filters: map[string]string{"department": "academics"}}})
	require.NoError(t, err)

	runHTTPTests(t, srv, []httpTest{
		{
			name:     "filter by department",
			method:   http.MethodGet,
			path:     "/v1/employees?department=academics",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, academics),
		},
		{
			name:     "invalid attendance date",
			method:   http.MethodGet,
			path:     "/v1/employees/attendance?date=monday",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"date": "date must be a valid date (YYYY-MM-DD or RFC3339)"}`),
		},
		{
			name:     "adjust without confirmation",
			method:   http.MethodPost,
			path:     "/v1/employees/emp-001/salary-adjustments",
			body:     []byte(`{"salary": 1300, "reason": "Annual review"}`),
			token:    token,
			wantCode: http.StatusPreconditionRequired,
			wantData: marchallObj(t, map[string]string{
				"error":  "confirmation required: Adjust the salary of Joseph Kasa from 1200.00 to 1300.00?",
				"prompt": "Adjust the salary of Joseph Kasa from 1200.00 to 1300.00?",
			}),
		},
		{
			name:     "adjust terminated",
			method:   http.MethodPost,
			path:     "/v1/employees/emp-007/salary-adjustments?confirm=true",
			body:     []byte(`{"salary": 1300, "reason": "Annual review"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"status": employee.ErrTerminated.Error()}),
		},
		{
			name:     "adjust unknown",
			method:   http.MethodPost,
			path:     "/v1/employees/emp-999/salary-adjustments?confirm=true",
			body:     []byte(`{"salary": 1300, "reason": "Annual review"}`),
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: `employee "emp-999" not found`}),
		},
		{
			name:     "adjust invalid",
			method:   http.MethodPost,
			path:     "/v1/employees/emp-001/salary-adjustments?confirm=true",
			body:     []byte(`{"salary": 0}`),
			token:    token,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "adjust",
			method:   http.MethodPost,
			path:     "/v1/employees/emp-001/salary-adjustments?confirm=true",
			body:     []byte(`{"salary": 1300, "reason": "Annual review"}`),
			token:    token,
			wantCode: http.StatusAccepted,
		},
	})

	t.Run("attendance", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/employees/attendance?date=2024-05-06", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var view employee.AttendanceView
		decode(t, rec.Body.Bytes(), &view)
		assert.Equal(t, employee.AttendanceSummary{
			Total:          7,
			Present:        2,
			Absent:         1,
			Late:           1,
			Remote:         1,
			Unrecorded:     2,
			PresentPercent: query.Percent(2, 7),
		}, view.Summary)
	})

	t.Run("export", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/employees/export?status=terminated", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, strings.Count(rec.Body.String(), "\n"))
	})
}

func Test_stockApi(t *testing.T) {
	srv, app := setup(t)
	token := adminToken(t, app)

	cats, err := app.Stock.Categories(context.Background())
	require.NoError(t, err)

	runHTTPTests(t, srv, []httpTest{
		{
			name:     "categories",
			method:   http.MethodGet,
			path:     "/v1/stock/categories",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, cats),
		},
		{
			name:     "unknown stock level",
			method:   http.MethodGet,
			path:     "/v1/stock/products?stock=lo",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"stock": "unknown value \"lo\"; did you mean \"low\"?"}`),
		},
		{
			name:     "no date range on products",
			method:   http.MethodGet,
			path:     "/v1/stock/products?from=2024-01-01",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"from": "date range is not supported here"}`),
		},
		{
			name:     "remove without confirmation",
			method:   http.MethodDelete,
			path:     "/v1/stock/products/prd-001?confirm=yes",
			token:    token,
			wantCode: http.StatusPreconditionRequired,
		},
		{
			name:     "remove",
			method:   http.MethodDelete,
			path:     "/v1/stock/products/prd-001?confirm=true",
			token:    token,
			wantCode: http.StatusAccepted,
		},
	})

	t.Run("science", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/stock/products?category=Science", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var view stock.View
		decode(t, rec.Body.Bytes(), &view)
		assert.Len(t, view.Items, 2)
		assert.Equal(t, 1, view.Summary.LowStock)
	})

	t.Run("export", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/stock/products/export?category=Science", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		lines := strings.Split(rec.Body.String(), "\n")
		assert.Equal(t, `"Name","Category","Quantity"`, lines[0])
		assert.Equal(t, `"Chemistry Lab Kit","Science","54"`, lines[1])
	})
}

func Test_investmentApi(t *testing.T) {
	srv, app := setup(t)
	token := adminToken(t, app)
	ctx := context.Background()

	income, err := app.Investment.QueryPayments(ctx, query.Request{
		Criteria: query.Criteria{Filters: map[string]string{"type": "income"}},
		Ordering: query.ParseOrdering("-amount"),
	})
	require.NoError(t, err)
	inactive, err := app.Investment.QueryMembers(ctx, query.Request{Criteria: query.Criteria{Filters: map[string]string{"active": "false"}}})
	require.NoError(t, err)

	payment := func(memberID, date string) []byte {
		return marchallObj(t, investment.NewPayment{
			MemberID:    memberID,
			Type:        "income",
			Amount:      100,
			Description: "Savings interest",
			Date:        date,
		})
	}

	runHTTPTests(t, srv, []httpTest{
		{
			name:     "income payments",
			method:   http.MethodGet,
			path:     "/v1/investment/payments?type=income&ordering=-amount",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, income),
		},
		{
			name:     "inactive members",
			method:   http.MethodGet,
			path:     "/v1/investment/members?active=false",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, inactive),
		},
		{
			name:     "record",
			method:   http.MethodPost,
			path:     "/v1/investment/payments",
			body:     payment("mem-002", "2024-05-01"),
			token:    token,
			wantCode: http.StatusAccepted,
		},
		{
			name:     "record for inactive member",
			method:   http.MethodPost,
			path:     "/v1/investment/payments",
			body:     payment("mem-003", "2024-05-01"),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"member_id": investment.ErrInactiveMember.Error()}),
		},
		{
			name:     "record for unknown member",
			method:   http.MethodPost,
			path:     "/v1/investment/payments",
			body:     payment("mem-999", "2024-05-01"),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"member_id": "member \"mem-999\" not found"}`),
		},
		{
			name:     "record with invalid date",
			method:   http.MethodPost,
			path:     "/v1/investment/payments",
			body:     payment("mem-002", "01/05/2024"),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"date": "date must be a valid date (YYYY-MM-DD)"}`),
		},
	})

	t.Run("summary", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/investment/summary", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var ov investment.Overview
		decode(t, rec.Body.Bytes(), &ov)
		assert.Equal(t, 5950.0, ov.Summary.Income)
		assert.Equal(t, 2100.0, ov.Summary.Outcome)
		assert.Equal(t, 3850.0, ov.Summary.Profit)
	})

	t.Run("export", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/investment/payments/export?type=outcome", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "\"Date\",\"Member\",\"Type\",\"Amount\"\n\"2024-04-02\",\"Esther Kalala\",\"outcome\",\"2100.00\"\n", rec.Body.String())
	})
}

func Test_dashboardApi(t *testing.T) {
	srv, app := setup(t)
	token := adminToken(t, app)

	status := func(t *testing.T) dashboard.Status {
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard/status", token)
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var st dashboard.Status
		decode(t, rec.Body.Bytes(), &st)
		return st
	}

	assert.Equal(t, dashboard.Status{}, status(t))

	req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard", token)
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var ov dashboard.Overview
	decode(t, rec.Body.Bytes(), &ov)
	assert.True(t, ov.Ready)
	assert.Equal(t, 3850.0, ov.Profit)
	assert.Len(t, ov.LowStock, 3)
	require.NotEmpty(t, ov.RecentPayments)
	assert.Equal(t, "pay-004", ov.RecentPayments[0].Payment.ID)

	assert.Equal(t, dashboard.Status{Students: true, Employees: true, Stock: true, Investment: true, Ready: true}, status(t))
}

func Test_refresh(t *testing.T) {
	srv, app := setup(t)
	token := adminToken(t, app)

	for _, resource := range []string{"students", "employees", "stock", "investment"} {
		t.Run(resource, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/"+resource+"/refresh", token)
			srv.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)

			var res struct {
				Resource  string    `json:"resource"`
				FetchedAt time.Time `json:"fetched_at"`
			}
			decode(t, rec.Body.Bytes(), &res)
			assert.Equal(t, resource, res.Resource)
			assert.False(t, res.FetchedAt.IsZero())
		})
	}
}

func Test_metrics(t *testing.T) {
	srv, app := setup(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/stock/products", adminToken(t, app))
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodGet, "/metrics")
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `masomo_http_requests_total{code="200",method="GET",route="/v1/stock/products"} 1`)
	assert.Contains(t, body, `masomo_loader_fetches_total{loader="stock"} 1`)
}
