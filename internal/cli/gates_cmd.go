package cli

import (
	"fmt"

	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newGatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gates",
		Short: "Manage one-time prompts such as the onboarding tips",
	}
	cmd.AddCommand(newGatesResetCmd(app))
	return cmd
}

func newGatesResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Show every one-time prompt again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Gates == nil {
				return errNoStore
			}
			if !yes && app.interactive() &&
				!promptYesNoIO(cmd.InOrStdin(), cmd.OutOrStdout(), "Reset all one-time prompts? [y/N]: ") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			n, err := app.Gates.Reset(cmdContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render(fmt.Sprintf("Reset %d gate(s).", n)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
