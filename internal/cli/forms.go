package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
)

// syllabusHuhTheme styles huh forms with the formatter palette.
func syllabusHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("✔ ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("• ")
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmSubmitForm asks before sending the selection to the report service.
func confirmSubmitForm(mods []domain.Module, result *bool) *huh.Form {
	desc := ""
	for i, m := range mods {
		if i > 0 {
			desc += ", "
		}
		desc += m.Name
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Generate a report for %d modules?", len(mods))).
				Description(formatter.Truncate(desc, 60)).
				Affirmative("Generate").
				Negative("Cancel").
				Value(result),
		),
	).WithTheme(syllabusHuhTheme()).WithShowHelp(false)
}

// moduleOptions lists every catalog module labeled with its domain.
func moduleOptions(c *domain.Catalog) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, c.ModuleCount())
	for _, d := range c.Domains() {
		for _, m := range d.Modules {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s", m.Name, formatter.Dim(d.Title)), m.ID))
		}
	}
	return opts
}

// pickModules runs a standalone multi-select over the catalog.
func pickModules(c *domain.Catalog) ([]string, error) {
	var ids []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select modules").
				Options(moduleOptions(c)...).
				Height(14).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return fmt.Errorf("select at least one module")
					}
					return nil
				}).
				Value(&ids),
		),
	).WithTheme(syllabusHuhTheme())

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("selecting modules: %w", err)
	}
	return ids, nil
}
