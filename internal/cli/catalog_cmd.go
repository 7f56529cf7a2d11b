package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/catalog"
	"github.com/alexanderramin/syllabus/internal/cli/formatter"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate curriculum catalogs",
	}
	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogValidateCmd(app),
	)
	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List domains and modules of the active catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(app.Catalog))
			return nil
		},
	}
}

func newCatalogValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a catalog file, or the configured catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else if app.Config != nil {
				path = app.Config.Catalog.Path
			}

			f := catalog.DefaultFile()
			if path != "" {
				var err error
				if f, err = catalog.LoadFile(path); err != nil {
					return fmt.Errorf("reading catalog %s: %w", path, err)
				}
			}

			errs := catalog.Validate(f)
			modules := 0
			for _, d := range f.Domains {
				modules += len(d.Modules)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidation(path, len(f.Domains), modules, errs))
			if len(errs) > 0 {
				return fmt.Errorf("catalog has %d problems", len(errs))
			}
			return nil
		},
	}
}
