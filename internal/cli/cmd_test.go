package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/report"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/testutil"
)

// testConfig mirrors the configuration defaults with animation disabled.
func testConfig() *config.Config {
	return &config.Config{
		DB:      config.DBConfig{Path: ":memory:"},
		Catalog: config.CatalogConfig{},
		Report: config.ReportConfig{
			Timeout:      time.Second,
			Offline:      true,
			FixtureDelay: 0,
		},
		UI: config.UIConfig{
			Input:      "pointer",
			Layout:     "wide",
			WheelDelta: 100,
		},
		Interaction: config.InteractionConfig{
			WheelCooldown:    400 * time.Millisecond,
			WheelNoiseFloor:  5,
			SwipeThreshold:   50,
			UnfocusDelay:     3 * time.Second,
			FeedbackLifetime: 900 * time.Millisecond,
			FeedbackCap:      32,
		},
		Log: config.LogConfig{Level: "info"},
	}
}

// testApp wires an App over an in-memory DB and an instant report fixture.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteReportRunRepo(database)

	return &App{
		Config:    testConfig(),
		Log:       zap.NewNop(),
		Catalog:   testutil.NewTestCatalog(t, 3),
		Flags:     repository.NewSQLiteFlagRepo(database, testutil.NewTestUoW(database)),
		Runs:      runs,
		Transport: report.NewFixtureTransport(0),
		Observer:  report.NewHistoryObserver(runs, nil),
	}
}

// executeCmd runs the root command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app, nil)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_NonInteractivePrintsCatalog(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app)
	require.NoError(t, err)

	out = stripANSI(out)
	assert.Contains(t, out, "CATALOG")
	assert.Contains(t, out, "Domain 2")
	assert.Contains(t, out, "3 domains, 6 modules")
}

func TestRootCmd_BootstrapPopulatesApp(t *testing.T) {
	app := &App{}
	boot := func(cmd *cobra.Command, a *App) error {
		a.Catalog = testutil.NewTestCatalog(t, 1)
		a.Config = testConfig()
		return nil
	}

	root := NewRootCmd(app, boot)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"catalog", "list"})

	require.NoError(t, root.Execute())
	assert.Contains(t, stripANSI(buf.String()), "1 domains, 2 modules")
}

func TestRootCmd_BootstrapErrorStopsCommand(t *testing.T) {
	boot := func(*cobra.Command, *App) error { return errors.New("database locked") }

	root := NewRootCmd(&App{}, boot)
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"catalog", "list"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database locked")
}

func TestRootCmd_BootstrapWithoutCatalogFails(t *testing.T) {
	boot := func(*cobra.Command, *App) error { return nil }

	root := NewRootCmd(&App{}, boot)
	root.SetArgs([]string{"catalog", "list"})

	require.EqualError(t, root.Execute(), "no catalog loaded")
}

func TestApp_CloseRunsClosersInReverse(t *testing.T) {
	app := &App{}
	var order []int
	app.AddCloser(func() error { order = append(order, 1); return nil })
	app.AddCloser(func() error { order = append(order, 2); return errors.New("boom") })

	err := app.Close()
	require.Error(t, err)
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, app.Close(), "closers run once")
}

func TestCatalogList(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, stripANSI(out), "m6")
}

func TestCatalogValidate_BuiltIn(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, stripANSI(out), "✔ built-in catalog")
}

func TestCatalogValidate_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "domains": [
    {"id": "lit", "title": "Literacy", "modules": [{"id": "l1", "name": "Prompting"}]}
  ]
}`), 0o644))

	out, err := executeCmd(t, testApp(t), "catalog", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, stripANSI(out), "(1 domains, 1 modules)")
}

func TestCatalogValidate_ReportsEveryProblem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
domains:
  - id: ""
    title: Missing id
    modules:
      - id: a1
        name: First
  - id: dup
    title: Dup
    modules:
      - id: a1
        name: ""
`), 0o644))

	out, err := executeCmd(t, testApp(t), "catalog", "validate", path)
	require.Error(t, err)

	out = stripANSI(out)
	assert.Contains(t, out, "✖ "+path)
	assert.Contains(t, out, "domains[0].id is required")
	assert.Contains(t, out, "problems")
}

func TestCatalogValidate_MissingFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "catalog", "validate", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading catalog")
}

func TestReportSubmit_PrintsTiersAndRecordsHistory(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "report", "submit", "m1", "m3", "m1")
	require.NoError(t, err)

	out = stripANSI(out)
	assert.Contains(t, out, "REPORT")
	assert.Contains(t, out, "Grade 1-3")
	assert.Contains(t, out, "4 x 35 min", "duplicates are dropped before submission")
	assert.Contains(t, out, "Grade 9-12")

	runs, err := app.Runs.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, []string{"m1", "m3"}, runs[0].ModuleIDs)
	assert.Equal(t, domain.OutcomeSuccess, runs[0].Outcome)
	assert.Equal(t, 4, runs[0].TierCount)
}

func TestReportSubmit_LogicalFailure(t *testing.T) {
	app := testApp(t)
	app.Transport = &report.FixtureTransport{FailWith: "quota exceeded"}

	_, err := executeCmd(t, app, "report", "submit", "m2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	runs, err := app.Runs.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.OutcomeFailure, runs[0].Outcome)
	assert.Equal(t, "quota exceeded", runs[0].Message)
}

func TestReportSubmit_UnknownModule(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "report", "submit", "m1", "zz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown module "zz"`)
}

func TestReportSubmit_NoModulesWithoutTerminal(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "report", "submit")
	require.EqualError(t, err, "no modules given")
}

func TestReportHistory(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	out, err := executeCmd(t, app, "report", "history")
	require.NoError(t, err)
	assert.Contains(t, stripANSI(out), "No reports generated yet.")

	for i := 0; i < 3; i++ {
		run := testutil.NewTestRun(
			testutil.WithRequestedAt(time.Now().UTC().Add(-time.Duration(i)*time.Minute)),
			testutil.WithModules(fmt.Sprintf("m%d", i+1)),
		)
		require.NoError(t, app.Runs.Record(ctx, run))
	}

	out, err = executeCmd(t, app, "report", "history", "--limit", "2")
	require.NoError(t, err)

	out = stripANSI(out)
	assert.Contains(t, out, "REPORT HISTORY")
	assert.Contains(t, out, "m1")
	assert.Contains(t, out, "m2")
	assert.NotContains(t, out, "m3", "limit keeps the newest runs")
}

func TestReportHistory_Unavailable(t *testing.T) {
	app := testApp(t)
	app.Runs = nil

	_, err := executeCmd(t, app, "report", "history")
	require.EqualError(t, err, "report history is not available")
}

func TestServeFixture_ServesContractUntilCanceled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() {
		served <- serveFixture(ctx, ln, report.NewFixtureHandler(&report.FixtureTransport{}, nil), zap.NewNop())
	}()

	cfg := report.DefaultConfig()
	cfg.Endpoint = "http://" + ln.Addr().String()
	resp, err := report.NewHTTPTransport(cfg).Generate(context.Background(), report.Request{
		ID:        "req-1",
		ModuleIDs: []string{"m1", "m2", "m3"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Tiers, 4)
	assert.Contains(t, resp.Tiers[0].ClassTimeText, "6 x")

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("fixture server did not shut down")
	}
}

func TestResolveModuleIDs(t *testing.T) {
	c := testutil.NewTestCatalog(t, 2)

	ids, err := resolveModuleIDs(c, []string{"m3", "m1", "m3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"m3", "m1"}, ids)

	_, err = resolveModuleIDs(c, nil)
	assert.Error(t, err)
}

func TestControllerOptions_MapsConfig(t *testing.T) {
	cfg := testConfig()
	cfg.UI.Input = "touch"
	cfg.UI.Layout = "compact"
	cfg.Interaction.WheelCooldown = 250 * time.Millisecond
	cfg.Interaction.FeedbackCap = 4

	opts := controllerOptions(cfg, true)

	assert.Equal(t, domain.InputTouch, opts.Input)
	assert.Equal(t, domain.LayoutCompact, opts.Layout.Kind)
	assert.Equal(t, 250*time.Millisecond, opts.Gesture.WheelCooldown)
	assert.Equal(t, 4, opts.FeedbackCap)
	assert.True(t, opts.ShowOnboarding)
}

func TestInputCapability(t *testing.T) {
	assert.Equal(t, domain.InputPointer, inputCapability("auto"))
	assert.Equal(t, domain.InputPointer, inputCapability("pointer"))
	assert.Equal(t, domain.InputTouch, inputCapability("touch"))
}

func TestFirstVisit_ReadOnceWriteOnce(t *testing.T) {
	app := testApp(t)
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	assert.True(t, firstVisit(cmd, app), "guide shows on the first run")
	assert.False(t, firstVisit(cmd, app), "flag is set after the first check")

	app.Flags = nil
	assert.False(t, firstVisit(cmd, app))
}
