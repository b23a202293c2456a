package student

import (
	"context"
	"fmt"
	"net/mail"
	texttmpl "text/template"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/csvexport"
	"github.com/trezcool/masomo-dashboard/core/fetch"
	"github.com/trezcool/masomo-dashboard/core/query"
)

// LoaderName names the students loader in metrics and logs.
const LoaderName = "students"

const cacheKey = "all"

var ErrNoBalance = errors.New("student has no outstanding tuition balance")

var reminderTmpl = texttmpl.Must(texttmpl.New("tuition-reminder").Parse(
	`Dear {{.Student.Guardian}},

This is a friendly reminder that the tuition balance of {{.Student.FullName}} ({{.Student.ClassLevel}}) is {{printf "%.2f" .Student.TuitionBalance}}.

Kind regards,
{{.AppName}}
`))

type (
	Repository interface {
		Students() []Student
	}

	Service struct {
		repo        Repository
		loader      *fetch.Loader[[]Student]
		mailer      core.EmailService
		log         core.Logger
		conf        *core.Config
		submitDelay func(ctx context.Context) error
	}
)

func NewService(repo Repository, mailer core.EmailService, logger core.Logger, conf *core.Config, metrics *fetch.Metrics) (*Service, error) {
	svc := &Service{
		repo:   repo,
		mailer: mailer,
		log:    logger,
		conf:   conf,
	}
	svc.submitDelay = func(ctx context.Context) error { return core.Wait(ctx, conf.Submit.Delay) }

	loader, err := fetch.NewLoader(LoaderName, svc.fetch, fetch.Options{
		Latency:   conf.Fetch.StudentsLatency,
		CacheSize: conf.Fetch.CacheSize,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, err
	}
	svc.loader = loader
	return svc, nil
}

func (svc *Service) fetch(context.Context, string) ([]Student, error) {
	return svc.repo.Students(), nil
}

// Load returns every student, fetching them on first use.
func (svc *Service) Load(ctx context.Context) ([]Student, error) {
	return svc.loader.Get(ctx, cacheKey)
}

func (svc *Service) State() fetch.State[[]Student] {
	return svc.loader.State(cacheKey)
}

// Refresh re-fetches students, replacing the cached collection.
func (svc *Service) Refresh(ctx context.Context) error {
	_, err := svc.loader.Refetch(ctx, cacheKey)
	return err
}

func (svc *Service) Query(ctx context.Context, req query.Request) (View, error) {
	students, err := svc.Load(ctx)
	if err != nil {
		return View{}, err
	}
	return Derive(students, req)
}

// QueryGraduated derives the graduated roster.
func (svc *Service) QueryGraduated(ctx context.Context, req query.Request) (View, error) {
	students, err := svc.Load(ctx)
	if err != nil {
		return View{}, err
	}
	return Derive(Graduated(students), req)
}

// Export renders the filtered students as CSV.
func (svc *Service) Export(ctx context.Context, req query.Request) ([]byte, error) {
	view, err := svc.Query(ctx, req)
	if err != nil {
		return nil, err
	}
	return csvexport.Render(Columns, view.Items)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	students, err := svc.Load(ctx)
	if err != nil {
		return Student{}, err
	}
	for _, s := range students {
		if s.ID == id {
			return s, nil
		}
	}
	return Student{}, core.NewNotFoundError("student", id)
}

// Register acknowledges a validated registration. Nothing is persisted.
func (svc *Service) Register(ctx context.Context, ns NewStudent) (core.Acknowledgement, error) {
	if err := svc.submitDelay(ctx); err != nil {
		return core.Acknowledgement{}, err
	}
	name := core.CleanString(ns.FirstName + " " + ns.LastName)
	svc.log.Info("student registration accepted", map[string]interface{}{
		"name":        name,
		"class_level": ns.ClassLevel,
	})
	return core.NewAcknowledgement("student.register", fmt.Sprintf("registration of %s accepted", name)), nil
}

// Remove acknowledges the removal of the given students. Every ID must exist.
func (svc *Service) Remove(ctx context.Context, ids ...string) (core.Acknowledgement, error) {
	if len(ids) == 0 {
		return core.Acknowledgement{}, core.NewValidationError(nil, core.FieldError{Field: "id", Error: "at least one student is required"})
	}
	for _, id := range ids {
		if _, err := svc.GetByID(ctx, id); err != nil {
			return core.Acknowledgement{}, err
		}
	}
	if err := svc.submitDelay(ctx); err != nil {
		return core.Acknowledgement{}, err
	}
	svc.log.Info("student removal accepted", map[string]interface{}{"ids": ids})
	return core.NewAcknowledgement("student.remove", fmt.Sprintf("removal of %d student(s) accepted", len(ids))), nil
}

// SendTuitionReminder emails the guardian of a student holding a balance.
func (svc *Service) SendTuitionReminder(ctx context.Context, id string) (core.Acknowledgement, error) {
	s, err := svc.GetByID(ctx, id)
	if err != nil {
		return core.Acknowledgement{}, err
	}
	if !s.HasBalance() {
		return core.Acknowledgement{}, core.NewValidationError(ErrNoBalance, core.FieldError{Field: "tuition_balance", Error: ErrNoBalance.Error()})
	}
	if err := svc.submitDelay(ctx); err != nil {
		return core.Acknowledgement{}, err
	}

	msg := &core.EmailMessage{
		To:       []mail.Address{{Name: s.Guardian, Address: s.GuardianEmail}},
		Subject:  "Tuition reminder for " + s.FullName(),
		Template: reminderTmpl,
		TemplateData: map[string]interface{}{
			"Student": s,
			"AppName": svc.conf.AppName,
		},
	}
	svc.mailer.SendMessages(msg)
	svc.log.Info("tuition reminder sent", map[string]interface{}{"student": s.ID, "guardian": s.GuardianEmail})
	return core.NewAcknowledgement("student.remind", "tuition reminder sent to "+s.GuardianEmail), nil
}
