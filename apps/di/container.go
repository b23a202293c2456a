// Package di wires the application dependencies shared by the API server,
// the admin CLI and the tests.
package di

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/auth"
	"github.com/trezcool/masomo-dashboard/core/dashboard"
	"github.com/trezcool/masomo-dashboard/core/employee"
	"github.com/trezcool/masomo-dashboard/core/fetch"
	"github.com/trezcool/masomo-dashboard/core/investment"
	"github.com/trezcool/masomo-dashboard/core/stock"
	"github.com/trezcool/masomo-dashboard/core/student"
	emailsvc "github.com/trezcool/masomo-dashboard/services/email"
	logsvc "github.com/trezcool/masomo-dashboard/services/logger"
	"github.com/trezcool/masomo-dashboard/storage/memory"
	"github.com/trezcool/masomo-dashboard/storage/seed"
)

type Container struct {
	Conf       *core.Config
	Logger     core.Logger
	Mailer     core.EmailService
	Validate   *validator.Validate
	Translator ut.Translator
	Registry   *prometheus.Registry
	State      *memory.State

	Auth       *auth.Authenticator
	Students   *student.Service
	Employees  *employee.Service
	Stock      *stock.Service
	Investment *investment.Service
	Dashboard  *dashboard.Service
}

// NewLogger returns the structured console logger, reporting to rollbar outside debug.
func NewLogger(conf *core.Config) (*logsvc.RollbarLogger, error) {
	zl, err := logsvc.NewZapLogger(conf.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logsvc.NewRollbarLogger(zl, conf)
	logger.Enable(!conf.Debug && !conf.TestMode && conf.RollbarToken != "")
	return logger, nil
}

func NewEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

// New opens the store with data and builds every service on top of it.
func New(conf *core.Config, logger core.Logger, mailer core.EmailService, data seed.Data) (*Container, error) {
	state, err := memory.Open(data)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := fetch.NewMetrics(reg)

	validate, translator := core.NewValidator()

	c := &Container{
		Conf:       conf,
		Logger:     logger,
		Mailer:     mailer,
		Validate:   validate,
		Translator: translator,
		Registry:   reg,
		State:      state,
		Auth:       auth.NewAuthenticator(conf),
	}
	if c.Students, err = student.NewService(state, mailer, logger, conf, metrics); err != nil {
		return nil, err
	}
	if c.Employees, err = employee.NewService(state, logger, conf, metrics); err != nil {
		return nil, err
	}
	if c.Stock, err = stock.NewService(state, logger, conf, metrics); err != nil {
		return nil, err
	}
	if c.Investment, err = investment.NewService(state, logger, conf, metrics); err != nil {
		return nil, err
	}
	c.Dashboard = dashboard.NewService(c.Students, c.Employees, c.Stock, c.Investment)
	return c, nil
}
