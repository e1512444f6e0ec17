package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-artax/app"
	"github.com/km-arc/go-artax/framework/config"
	"github.com/km-arc/go-artax/framework/container"
	kernel "github.com/km-arc/go-artax/framework/app"
)

func newApplication(t *testing.T) *kernel.Application {
	t.Helper()
	a, err := kernel.New(context.Background(), &config.Config{
		App:   config.AppConfig{Name: "Test", Env: "testing"},
		Log:   config.LogConfig{Level: "error"},
		Trace: config.TraceConfig{Exporter: "none"},
	})
	require.NoError(t, err)
	require.NoError(t, a.Register(&app.AppServiceProvider{}))
	require.NoError(t, a.Register(&app.ReportServiceProvider{}))
	a.Boot()
	return a
}

func TestService_DefaultWiring(t *testing.T) {
	a := newApplication(t)

	svc, err := container.Resolve[*app.Service](a.Container, "app.service", nil)
	require.NoError(t, err)

	assert.IsType(t, &app.ConsoleLogger{}, svc.Logger)
	assert.Equal(t, app.DefaultMailFrom, svc.Mailer.From())

	report, err := container.Resolve[*app.Report](a.Container, "app.report", nil)
	require.NoError(t, err)
	assert.Equal(t, `service logger=*app.ConsoleLogger mailer from=noreply@example.com logger=*app.FileLogger`, report.String())
}

func TestService_CustomStaysAtTopLevel(t *testing.T) {
	a := newApplication(t)
	mine := app.NewFileLogger(filepath.Join(t.TempDir(), "mine.log"))

	svc, err := container.Resolve[*app.Service](a.Container, "app.service", map[string]any{"logger": mine})
	require.NoError(t, err)

	assert.Same(t, mine, svc.Logger)
	report := app.NewReport(svc).String()
	assert.Contains(t, report, "logger=*app.FileLogger mailer")
	// The mailer's own FileLogger is a fresh one from its binding.
	assert.Contains(t, report, "from=noreply@example.com")
}

func TestService_WelcomeWritesThroughBindings(t *testing.T) {
	a := newApplication(t)
	logPath := filepath.Join(t.TempDir(), "logs", "app.log")
	require.NoError(t, a.Types.RegisterAs("test.logPath", func() string { return logPath }))
	require.NoError(t, a.Types.RegisterAs("test.mailFrom", func() string { return "team@example.com" }))
	a.Bindings.Set("app.fileLogger", "path", "test.logPath")
	a.Bindings.Set("app.mailer", "from", "test.mailFrom")

	svc, err := container.Resolve[*app.Service](a.Container, "app.service", nil)
	require.NoError(t, err)
	require.NoError(t, svc.Welcome("bob@example.com"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "mail from=team@example.com to=bob@example.com subject=\"Welcome!\"\n", string(data))
}

func TestReport_IsDeferred(t *testing.T) {
	a := newApplication(t)

	assert.False(t, a.Types.Has("app.report"))
	_, err := a.Make("app.report", nil)
	require.NoError(t, err)
	assert.True(t, a.Types.Has("app.report"))
}

func TestExplain_Service(t *testing.T) {
	a := newApplication(t)

	plan, err := a.Explain("app.service", nil)
	require.NoError(t, err)

	want := "app.service (*app.Service)\n" +
		"  logger <- app.Logger [declared]\n" +
		"    app.consolelogger (*app.ConsoleLogger)\n" +
		"      out <- zap.Logger [declared]\n" +
		"        zap.logger (*zap.Logger)\n" +
		"  mailer <- app.Mailer [declared]\n" +
		"    app.mailer (*app.Mailer)\n" +
		"      logger <- app.fileLogger [configured]\n" +
		"        app.filelogger (*app.FileLogger)\n" +
		"          path <- app.logPath [configured]\n" +
		"            app.logpath (string)\n" +
		"      from <- app.mailFrom [configured]\n" +
		"        app.mailfrom (string)\n"
	assert.Equal(t, want, plan.String())
}
