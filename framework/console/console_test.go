package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-artax/app"
	"github.com/km-arc/go-artax/framework/config"
	"github.com/km-arc/go-artax/framework/console"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// run executes the CLI with the demo providers and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "testing")
	t.Setenv("TRACE_EXPORTER", "none")
	t.Setenv("ARTAX_BINDINGS", "")

	cmd := console.NewRootCommand(&app.AppServiceProvider{}, &app.ReportServiceProvider{})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	base := []string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--log-level", "error"}
	cmd.SetArgs(append(base, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTypes(t *testing.T) {
	out, err := run(t, "types")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "app.service")
	assert.Contains(t, lines, "zap.logger")
	assert.NotContains(t, lines, "app.report", "deferred names are not listed until loaded")
	assert.Contains(t, out, "bound types")
}

func TestExplain_Tree(t *testing.T) {
	out, err := run(t, "explain", "app.mailer")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "app.mailer (*app.Mailer)\n"), out)
	assert.Contains(t, out, "  logger <- app.fileLogger [configured]\n")
	assert.Contains(t, out, "  from <- app.mailFrom [configured]\n")
}

func TestExplain_Custom(t *testing.T) {
	out, err := run(t, "explain", "app.service", "--custom", "logger")
	require.NoError(t, err)

	assert.Contains(t, out, "  logger [custom]\n")
	assert.Contains(t, out, "  mailer <- app.Mailer [declared]\n")
}

func TestExplain_JSON(t *testing.T) {
	out, err := run(t, "explain", "app.fileLogger", "--json")
	require.NoError(t, err)

	var plan struct {
		Name   string
		Params []struct {
			Name   string
			Source string
			Target string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "app.filelogger", plan.Name)
	require.Len(t, plan.Params, 1)
	assert.Equal(t, "path", plan.Params[0].Name)
	assert.Equal(t, "configured", plan.Params[0].Source)
	assert.Equal(t, "app.logPath", plan.Params[0].Target)
}

func TestExplain_Unknown(t *testing.T) {
	_, err := run(t, "explain", "nope.missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.missing")
}

func TestMake(t *testing.T) {
	out, err := run(t, "make", "app.report")
	require.NoError(t, err)
	assert.Equal(t, "✓ app.report: *app.Report\n", out)
}

func TestMake_Set(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "custom.log")
	out, err := run(t, "make", "app.fileLogger", "--set", "path="+logPath)
	require.NoError(t, err)
	assert.Contains(t, out, "*app.FileLogger")

	_, err = run(t, "make", "app.fileLogger", "--set", "path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want param=value")
}

func TestBind_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.yaml")

	out, err := run(t, "--bindings", path, "bind", "app.service", "logger", "app.fileLogger")
	require.NoError(t, err)
	assert.Contains(t, out, "app.service.logger")

	_, err = run(t, "--bindings", path, "bind", "app.service", "mailer", "app.mailer")
	require.NoError(t, err)

	table, err := config.LoadBindings(path)
	require.NoError(t, err)
	assert.Equal(t, config.Table{
		"app.service": {"logger": "app.fileLogger", "mailer": "app.mailer"},
	}, table)

	out, err = run(t, "--bindings", path, "explain", "app.service")
	require.NoError(t, err)
	assert.Contains(t, out, "  logger <- app.fileLogger [configured]\n")
}

func TestBind_Rejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.yaml")

	_, err := run(t, "--bindings", path, "bind", "app.service", "logger", "nodots")
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing written on validation failure")

	_, err = run(t, "bind", "app.service", "logger", "app.fileLogger")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bindings file")
}
