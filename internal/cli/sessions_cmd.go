package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/repository"
	"github.com/spf13/cobra"
)

func newSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session"},
		Short:   "Review completed project discoveries stored on this machine",
	}

	cmd.AddCommand(
		newSessionsListCmd(app),
		newSessionsShowCmd(app),
	)

	return cmd
}

func newSessionsListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent discoveries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Discoveries == nil {
				return errNoStore
			}
			records, err := app.Discoveries.ListRecent(cmdContext(cmd), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDiscoveryList(records, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of discoveries (0 for all)")
	return cmd
}

func newSessionsShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [id|latest]",
		Short: "Show one discovery with its answers and analysis",
		Long:  "Shows the discovery with the given id. Without an id, or with \"latest\", shows the most recent one.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Discoveries == nil {
				return errNoStore
			}
			ctx := cmdContext(cmd)

			var (
				rec *domain.DiscoveryRecord
				err error
			)
			if len(args) == 0 || args[0] == "latest" {
				rec, err = app.Discoveries.Latest(ctx)
			} else {
				rec, err = app.Discoveries.Get(ctx, args[0])
			}
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no discovery found; run 'leadflow chat --mode project' first")
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDiscovery(rec))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

var errNoStore = errors.New("local storage is not available")

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
