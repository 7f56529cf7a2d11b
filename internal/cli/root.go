package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/clock"
	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/report"
	"github.com/alexanderramin/syllabus/internal/repository"
)

// App holds the services shared by every command. Fields are populated by
// the Bootstrap passed to NewRootCmd once persistent flags are parsed.
type App struct {
	Config    *config.Config
	Settings  *config.Manager // nil when configuration is not file-backed
	Log       *zap.Logger
	Catalog   *domain.Catalog
	Flags     repository.FlagRepo
	Runs      repository.ReportRunRepo
	Transport report.Transport
	Observer  report.Observer
	Clock     clock.Clock

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	closers []func() error
}

// Bootstrap wires app from the parsed flags of cmd.
type Bootstrap func(cmd *cobra.Command, app *App) error

// AddCloser registers a cleanup run by Close in reverse order.
func (a *App) AddCloser(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases everything registered with AddCloser.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) logger() *zap.Logger {
	if a.Log == nil {
		return zap.NewNop()
	}
	return a.Log
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "syllabus" command. Without a
// subcommand it opens the TUI on a terminal and prints the catalog otherwise.
func NewRootCmd(app *App, boot Bootstrap) *cobra.Command {
	root := &cobra.Command{
		Use:           "syllabus",
		Short:         "Browse the curriculum catalog and generate tiered reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if boot == nil {
				return nil
			}
			if err := boot(cmd, app); err != nil {
				return err
			}
			if app.Catalog == nil {
				return fmt.Errorf("no catalog loaded")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.interactive() {
				return runTUI(cmd, app, true)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(app.Catalog))
			return nil
		},
	}

	fs := root.PersistentFlags()
	fs.String("config", "", "config file (default "+config.ConfigDir()+"/config.yaml)")
	fs.String("db", "", "sqlite database path")
	fs.String("catalog", "", "catalog file (JSON or YAML); built-in catalog when empty")
	fs.String("endpoint", "", "report service URL; the local fixture is used when empty")
	fs.Bool("offline", false, "use the local report fixture even when an endpoint is set")
	fs.String("input", "", "input capability: auto, pointer or touch")
	fs.String("layout", "", "layout: auto, wide or compact")

	root.AddCommand(
		newTUICmd(app),
		newCatalogCmd(app),
		newReportCmd(app),
		newFixtureCmd(app),
	)

	return root
}
