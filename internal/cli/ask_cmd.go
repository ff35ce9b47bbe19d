package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   `ask "<question>"`,
		Short: "Ask the assistant a single question",
		Long:  "Send one question to the consultancy assistant and print the reply.\nFalls back to local answers when the QA webhook is not configured or fails.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("question is empty")
			}

			session := newChatSession(ctx, app)
			defer session.close()
			if err := session.store.Start(ctx, bot.ModeQA); err != nil {
				return err
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			err := session.store.Send(ctx, question)
			stop()
			if err != nil {
				return err
			}

			snap := session.store.Snapshot()
			out := cmd.OutOrStdout()
			if n := len(snap.History); n > 0 && snap.History[n-1].Role == bot.RoleBot {
				fmt.Fprintln(out, formatter.FormatMessage(snap.History[n-1]))
			}
			if sug := formatter.FormatSuggestions(snap.SuggestedQuestions); sug != "" {
				fmt.Fprintln(out, sug)
			}
			return nil
		},
	}
}
