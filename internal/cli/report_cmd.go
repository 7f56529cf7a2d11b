package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate tiered reports and review past submissions",
	}
	cmd.AddCommand(
		newReportSubmitCmd(app),
		newReportHistoryCmd(app),
	)
	return cmd
}

func newReportSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit [module-id...]",
		Short: "Submit modules for a report and print its tiers",
		Long: "Submit the given modules to the report service. Without arguments on a\n" +
			"terminal, pick modules from the catalog interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := args
			if len(ids) == 0 {
				if !app.interactive() {
					return fmt.Errorf("no modules given")
				}
				picked, err := pickModules(app.Catalog)
				if err != nil {
					return err
				}
				ids = picked
			}

			ids, err := resolveModuleIDs(app.Catalog, ids)
			if err != nil {
				return err
			}

			flow := newWorkflow(app, nil)
			defer flow.Close()

			done, ok := flow.Submit(cmd.Context(), ids)
			if !ok {
				return fmt.Errorf("report request was not accepted")
			}
			if app.interactive() {
				stop := formatter.StartSpinner(cmd.ErrOrStderr(),
					fmt.Sprintf("Generating report for %d modules...", len(ids)))
				<-done
				stop()
			} else {
				<-done
			}

			st := flow.State()
			if st.Phase != domain.ReportSuccess {
				return fmt.Errorf("report failed: %s", st.Message)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(st.RequestID, st.Tiers))
			return nil
		},
	}
}

func newReportHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent report submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Runs == nil {
				return fmt.Errorf("report history is not available")
			}
			runs, err := app.Runs.ListRecent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("listing report history: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(runs, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show (0 for all)")
	return cmd
}

// newWorkflow builds a report workflow over the app's transport.
func newWorkflow(app *App, onChange func()) *report.Workflow {
	opts := []report.Option{
		report.WithLogger(app.logger()),
		report.WithOnChange(onChange),
	}
	if app.Observer != nil {
		opts = append(opts, report.WithObserver(app.Observer))
	}
	if app.Clock != nil {
		opts = append(opts, report.WithClock(app.Clock))
	}
	return report.NewWorkflow(app.Transport, opts...)
}

// resolveModuleIDs drops duplicates, keeping first-seen order, and rejects
// IDs missing from the catalog.
func resolveModuleIDs(c *domain.Catalog, ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := c.Module(id); !ok {
			return nil, fmt.Errorf("unknown module %q (see 'syllabus catalog list')", id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no modules given")
	}
	return out, nil
}
