// Package testutil builds seeded, zero-latency applications for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trezcool/masomo-dashboard/apps/di"
	"github.com/trezcool/masomo-dashboard/core"
	emailsvc "github.com/trezcool/masomo-dashboard/services/email"
	logsvc "github.com/trezcool/masomo-dashboard/services/logger"
	"github.com/trezcool/masomo-dashboard/storage/seed"
)

// App is a test application backed by the default seed.
type App struct {
	*di.Container
	Mail *emailsvc.ConsoleService
}

// NewApp returns a silent application with every artificial delay disabled.
func NewApp(t testing.TB) *App {
	t.Helper()
	return NewAppWith(t, core.NewTestConfig(), seed.Default())
}

func NewAppWith(t testing.TB, conf *core.Config, data seed.Data) *App {
	t.Helper()
	logger := NopLogger()
	mail := emailsvc.NewConsoleServiceMock(conf, logger)
	c, err := di.New(conf, logger, mail, data)
	require.NoError(t, err)
	return &App{Container: c, Mail: mail}
}

func NopLogger() core.Logger {
	return logsvc.NewZapLoggerFrom(zap.NewNop())
}
