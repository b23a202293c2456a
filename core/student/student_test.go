package student

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/query"
	emailsvc "github.com/trezcool/masomo-dashboard/services/email"
	logsvc "github.com/trezcool/masomo-dashboard/services/logger"
)

var (
	jan = time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

	students = []Student{
		{ID: "s1", FirstName: "Amani", LastName: "Kabila", Email: "amani@school.test", Guardian: "Grace Kabila", GuardianEmail: "grace@home.test", ClassLevel: Form1, Status: StatusActive, TuitionBalance: 120, BooksBorrowed: 2, RegisteredAt: jan},
		{ID: "s2", FirstName: "Benoît", LastName: "Mukendi", Email: "benoit@school.test", Guardian: "Paul Mukendi", GuardianEmail: "paul@home.test", ClassLevel: Form2, Status: StatusInactive, BooksBorrowed: 1, RegisteredAt: jan.AddDate(0, 1, 0)},
		{ID: "s3", FirstName: "Chantal", LastName: "Ilunga", Email: "chantal@school.test", Guardian: "Rose Ilunga", GuardianEmail: "rose@home.test", ClassLevel: Form1, Status: StatusGraduated, TuitionBalance: 80.5, RegisteredAt: jan.AddDate(0, 2, 0)},
		{ID: "s4", FirstName: "Didier", LastName: "Amani", Email: "didier@school.test", Guardian: "Jean Amani", GuardianEmail: "jean@home.test", ClassLevel: Form6, Status: StatusActive, BooksBorrowed: 3, RegisteredAt: jan.AddDate(0, 3, 0)},
	}
)

type sliceRepo []Student

func (r sliceRepo) Students() []Student { return r }

func ids(ss []Student) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.ID)
	}
	return out
}

func newTestService(t *testing.T) (*Service, *emailsvc.ConsoleService) {
	t.Helper()
	conf := core.NewTestConfig()
	log := logsvc.NewZapLoggerFrom(zap.NewNop())
	mailer := emailsvc.NewConsoleServiceMock(conf, log)
	svc, err := NewService(sliceRepo(students), mailer, log, conf, nil)
	require.NoError(t, err)
	return svc, mailer
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("graduated")
	require.NoError(t, err)
	assert.Equal(t, StatusGraduated, st)

	_, err = ParseStatus("activ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "active"?`)

	_, err = ParseClassLevel("form7")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	sum := Summarize(students)
	assert.Equal(t, Summary{
		Total:              4,
		Active:             2,
		Inactive:           1,
		Graduated:          1,
		ActivePercent:      50,
		TuitionOutstanding: 200.5,
		WithBalance:        2,
		BooksBorrowed:      6,
	}, sum)
	assert.Equal(t, sum.Total, sum.Active+sum.Inactive+sum.Graduated)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestByClass(t *testing.T) {
	groups := ByClass(students)
	assert.Equal(t, []ClassBreakdown{
		{ClassLevel: Form1, Students: 2, Active: 1, TuitionOutstanding: 200.5},
		{ClassLevel: Form2, Students: 1},
		{ClassLevel: Form6, Students: 1, Active: 1},
	}, groups)
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name    string
		req     query.Request
		want    []string
		wantErr bool
	}{
		{name: "empty request", want: []string{"s1", "s2", "s3", "s4"}},
		{name: "search matches any field", req: query.Request{Criteria: query.Criteria{Search: "amani"}}, want: []string{"s1", "s4"}},
		{name: "search full name", req: query.Request{Criteria: query.Criteria{Search: "chantal ilunga"}}, want: []string{"s3"}},
		{
			name: "status and class",
			req:  query.Request{Criteria: query.Criteria{Filters: map[string]string{FilterStatus: "active", FilterClassLevel: "form1"}}},
			want: []string{"s1"},
		},
		{
			name: "registered range",
			req:  query.Request{Criteria: query.Criteria{From: jan.AddDate(0, 1, 0), To: jan.AddDate(0, 2, 0)}},
			want: []string{"s2", "s3"},
		},
		{name: "sort by name", req: query.Request{Ordering: query.ParseOrdering("name")}, want: []string{"s4", "s3", "s1", "s2"}},
		{name: "sort by balance desc", req: query.Request{Ordering: query.ParseOrdering("-tuition_balance,name")}, want: []string{"s1", "s3", "s4", "s2"}},
		{name: "unknown filter", req: query.Request{Criteria: query.Criteria{Filters: map[string]string{"class": "form1"}}}, wantErr: true},
		{name: "unknown ordering", req: query.Request{Ordering: query.ParseOrdering("age")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := Derive(students, tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(view.Items))
			assert.Equal(t, len(tt.want), view.Summary.Total)
		})
	}
}

func TestService_QueryGraduated(t *testing.T) {
	svc, _ := newTestService(t)
	view, err := svc.QueryGraduated(context.Background(), query.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"s3"}, ids(view.Items))
	assert.True(t, svc.State().Loaded())
}

func TestService_Export(t *testing.T) {
	svc, _ := newTestService(t)
	data, err := svc.Export(context.Background(), query.Request{Criteria: query.Criteria{Search: "kabila"}})
	require.NoError(t, err)
	assert.Equal(t,
		"\"Name\",\"Email\",\"Class\",\"Status\",\"Tuition Balance\"\n"+
			"\"Amani Kabila\",\"amani@school.test\",\"form1\",\"active\",\"120.00\"\n",
		string(data),
	)
}

func TestService_Remove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ack, err := svc.Remove(ctx, "s1", "s2")
	require.NoError(t, err)
	assert.Equal(t, "student.remove", ack.Action)
	assert.False(t, ack.Persisted)
	assert.NotEmpty(t, ack.ID)

	_, err = svc.Remove(ctx, "s1", "lol")
	assert.True(t, core.IsNotFound(err))

	_, err = svc.Remove(ctx)
	assert.Error(t, err)

	// nothing is persisted
	view, err := svc.Query(ctx, query.Request{})
	require.NoError(t, err)
	assert.Len(t, view.Items, 4)
}

func TestService_SendTuitionReminder(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendTuitionReminder(ctx, "s1")
	require.NoError(t, err)
	sent := mailer.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "grace@home.test", sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "Amani Kabila (form1) is 120.00")

	_, err = svc.SendTuitionReminder(ctx, "s2")
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "tuition_balance", vErr.Fields[0].Field)

	_, err = svc.SendTuitionReminder(ctx, "lol")
	assert.True(t, core.IsNotFound(err))
}

func TestNewStudent_Validate(t *testing.T) {
	validate, _ := core.NewValidator()

	ns := NewStudent{
		FirstName:     "  Eliane ",
		LastName:      "Tshala",
		Guardian:      "Marc Tshala",
		GuardianEmail: "MARC@home.test",
		ClassLevel:    "FORM3",
		Phone:         "+243 810 000 000",
	}
	require.NoError(t, ns.Validate(validate))
	assert.Equal(t, "Eliane", ns.FirstName)
	assert.Equal(t, "marc@home.test", ns.GuardianEmail)
	assert.Equal(t, "form3", ns.ClassLevel)

	bad := NewStudent{FirstName: "x", ClassLevel: "form9", TuitionBalance: -1, Phone: "abc"}
	assert.Error(t, bad.Validate(validate))
}
