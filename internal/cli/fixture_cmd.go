package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/report"
)

const fixtureShutdownTimeout = 5 * time.Second

func newFixtureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Run the local report fixture",
	}
	cmd.AddCommand(newFixtureServeCmd(app))
	return cmd
}

func newFixtureServeCmd(app *App) *cobra.Command {
	var (
		addr     string
		delay    time.Duration
		failWith string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve fabricated reports over HTTP using the report contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("delay") && app.Config != nil {
				delay = app.Config.Report.FixtureDelay
			}
			fixture := report.NewFixtureTransport(delay)
			fixture.FailWith = failWith

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s serving reports on http://%s %s\n",
				formatter.StyleGreen.Render("●"), ln.Addr(), formatter.Dim("(ctrl+c to stop)"))

			return serveFixture(cmd.Context(), ln, report.NewFixtureHandler(fixture, app.logger()), app.logger())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8787", "listen address")
	cmd.Flags().DurationVar(&delay, "delay", report.DefaultConfig().FixtureDelay, "simulated generation latency")
	cmd.Flags().StringVar(&failWith, "fail-with", "", "answer every request with this logical failure message")
	return cmd
}

// serveFixture serves h on ln until ctx is canceled, then shuts down
// gracefully.
func serveFixture(ctx context.Context, ln net.Listener, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("fixture server started", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving fixture: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), fixtureShutdownTimeout)
		defer cancel()
		log.Info("fixture server stopping")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
