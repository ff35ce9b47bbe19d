package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the discovery waves and questions",
		Long:  "Prints the built-in question catalog, or validates and prints a custom one with --file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := app.catalog()
			if file != "" {
				raw, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading catalog: %w", err)
				}
				if cat, err = catalog.Load(raw); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(cat))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML catalog to validate and print instead of the built-in one")
	return cmd
}
