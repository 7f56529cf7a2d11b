package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/syllabus/internal/catalog"
	"github.com/alexanderramin/syllabus/internal/cli"
	"github.com/alexanderramin/syllabus/internal/clock"
	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/logging"
	"github.com/alexanderramin/syllabus/internal/report"
	"github.com/alexanderramin/syllabus/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	defer app.Close()

	return cli.NewRootCmd(app, bootstrap).ExecuteContext(ctx)
}

// bootstrap wires configuration, logging, storage and the report transport
// once cobra has parsed the persistent flags.
func bootstrap(cmd *cobra.Command, app *cli.App) error {
	file, _ := cmd.Flags().GetString("config")
	mgr := config.NewManager(file)
	if err := mgr.BindFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	cfg, err := mgr.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	mgr.SetLogger(log)
	app.AddCloser(func() error {
		_ = log.Sync()
		return nil
	})

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	app.AddCloser(database.Close)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	uow := db.NewTxRunner(database)
	runs := repository.NewSQLiteReportRunRepo(database)

	rc := report.Config{
		Endpoint:     cfg.Report.Endpoint,
		Timeout:      cfg.Report.Timeout,
		Offline:      cfg.Report.Offline,
		FixtureDelay: cfg.Report.FixtureDelay,
	}
	var transport report.Transport
	if rc.UseFixture() {
		transport = report.NewFixtureTransport(rc.FixtureDelay)
		log.Info("using report fixture", zap.Duration("delay", rc.FixtureDelay))
	} else {
		transport = report.NewHTTPTransport(rc)
	}

	app.Config = cfg
	app.Settings = mgr
	app.Log = log
	app.Catalog = cat
	app.Flags = repository.NewSQLiteFlagRepo(database, uow)
	app.Runs = runs
	app.Transport = transport
	app.Observer = report.MultiObserver{
		report.NewLogObserver(log),
		report.NewHistoryObserver(runs, log),
	}
	app.Clock = clock.Real{}
	return nil
}
