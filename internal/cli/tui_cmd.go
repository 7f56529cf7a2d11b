package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/interaction"
	"github.com/alexanderramin/syllabus/internal/repository"
)

func newTUICmd(app *App) *cobra.Command {
	var noConfirm bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, app, !noConfirm)
		},
	}
	cmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "submit reports without a confirmation prompt")
	return cmd
}

// runTUI runs the full-screen session until the user quits.
func runTUI(cmd *cobra.Command, app *App, confirm bool) error {
	if app.Config == nil {
		return fmt.Errorf("tui requires a loaded configuration")
	}
	ctx := cmd.Context()
	log := app.logger()

	// Timer callbacks and config reloads only signal; the program pulls
	// events from this channel so no callback ever blocks on the UI loop.
	events := make(chan tea.Msg, 16)
	notify := func() {
		select {
		case events <- refreshMsg{}:
		default:
		}
	}

	flow := newWorkflow(app, notify)
	defer flow.Close()

	opts := controllerOptions(app.Config, firstVisit(cmd, app))
	opts.OverlayOpen = flow.OverlayOpen
	opts.OnChange = notify
	opts.Logger = log
	if app.Clock != nil {
		opts.Clock = app.Clock
	}
	ctrl, err := interaction.NewController(app.Catalog, opts)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer ctrl.Close()

	if app.Settings != nil {
		app.Settings.OnChange(func(c *config.Config) {
			select {
			case events <- uiConfigMsg(c.UI):
			default:
			}
		})
		app.Settings.Watch()
	}

	model := newTUIModel(ctx, tuiDeps{
		Controller:    ctrl,
		Workflow:      flow,
		UI:            app.Config.UI,
		Events:        events,
		ConfirmSubmit: confirm,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	log.Info("tui started", zap.Int("domains", app.Catalog.Len()), zap.String("input", string(opts.Input)))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// firstVisit reads and sets the first-visit flag. The guide is shown only
// when the flag was absent; storage errors skip the guide.
func firstVisit(cmd *cobra.Command, app *App) bool {
	if app.Flags == nil {
		return false
	}
	present, err := app.Flags.CheckAndSet(cmd.Context(), repository.FirstVisitKey)
	if err != nil {
		app.logger().Warn("first-visit flag unavailable", zap.Error(err))
		return false
	}
	return !present
}

// controllerOptions maps configuration onto controller options.
func controllerOptions(cfg *config.Config, showOnboarding bool) interaction.Options {
	opts := interaction.DefaultOptions()
	opts.Input = inputCapability(cfg.UI.Input)
	if cfg.UI.Layout != "auto" {
		opts.Layout = interaction.LayoutFor(domain.LayoutKind(cfg.UI.Layout))
	}
	opts.Gesture = interaction.GestureConfig{
		WheelCooldown:   cfg.Interaction.WheelCooldown,
		WheelNoiseFloor: cfg.Interaction.WheelNoiseFloor,
		SwipeThreshold:  cfg.Interaction.SwipeThreshold,
	}
	opts.UnfocusDelay = cfg.Interaction.UnfocusDelay
	opts.FeedbackLifetime = cfg.Interaction.FeedbackLifetime
	opts.FeedbackCap = cfg.Interaction.FeedbackCap
	opts.ShowOnboarding = showOnboarding
	return opts
}

// inputCapability resolves the configured input; terminals with mouse
// reporting are hover-capable, so "auto" means pointer.
func inputCapability(s string) domain.InputCapability {
	if s == string(domain.InputTouch) {
		return domain.InputTouch
	}
	return domain.InputPointer
}
