package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/alexanderramin/leadflow/internal/conversation"
	"github.com/alexanderramin/leadflow/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	var (
		modeFlag string
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start a conversation with the assistant or a project discovery",
		Long: "Chat with the consultancy assistant (--mode qa) or walk through a guided\n" +
			"project discovery (--mode project). Without --mode an interactive terminal\n" +
			"asks which one you want.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			interactive := app.interactive() && !plain

			mode, err := resolveMode(ctx, app, modeFlag, interactive)
			if err != nil {
				return err
			}
			onboarding := showOnboarding(ctx, app)

			session := newChatSession(ctx, app)
			defer session.close()

			if interactive {
				err = runTUIChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), session, mode, onboarding)
			} else {
				err = runPlainChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), session, mode, onboarding)
			}
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), session)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "conversation mode: qa or project")
	cmd.Flags().BoolVar(&plain, "plain", false, "line-based chat without the terminal UI")
	return cmd
}

// resolveMode uses the flag when given, asks on a terminal, and defaults to QA otherwise.
func resolveMode(ctx context.Context, app *App, flag string, interactive bool) (bot.Mode, error) {
	if flag != "" {
		return bot.ParseMode(flag)
	}
	if !interactive {
		return bot.ModeQA, nil
	}
	return pickMode(ctx, app.catalog())
}

// showOnboarding reports whether the onboarding tips are due and dismisses them.
// Gate failures only hide the tips.
func showOnboarding(ctx context.Context, app *App) bool {
	if app.Gates == nil {
		return true
	}
	show, err := app.Gates.ShouldShow(ctx, domain.GateOnboardingDismissed)
	if err != nil || !show {
		return false
	}
	_ = app.Gates.Dismiss(ctx, domain.GateOnboardingDismissed)
	return true
}

// ── plain line loop ──────────────────────────────────────────────────────────

func runPlainChat(ctx context.Context, in io.Reader, out io.Writer, s *chatSession, mode bot.Mode, onboarding bool) error {
	fmt.Fprint(out, formatter.FormatChatWelcome(mode, onboarding))

	changed := make(chan struct{}, 1)
	unsubscribe := s.store.Subscribe(func(conversation.Snapshot) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	if err := s.store.Start(ctx, mode); err != nil {
		return err
	}

	t := &transcript{out: out}
	t.flush(s.store.Snapshot())

	lines := &lineReader{in: in}
	for {
		snap := s.store.Snapshot()
		if snap.Completed != nil {
			fmt.Fprintln(out, formatter.FormatAnalysis(snap.Completed))
			return nil
		}

		fmt.Fprint(out, formatter.ModePrompt(snap.Mode))
		line, err := lines.ReadLine()
		if err != nil {
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch err := s.submit(ctx, line); {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, conversation.ErrNotStarted):
			return err
		case err != nil:
			fmt.Fprintln(out, formatter.FormatError(err.Error()))
			continue
		}

		if err := waitIdle(ctx, s.store, changed); err != nil {
			return err
		}
		t.flush(s.store.Snapshot())
	}
}

// waitIdle blocks until the active strategy is no longer generating.
func waitIdle(ctx context.Context, store *conversation.Store, changed <-chan struct{}) error {
	for store.Snapshot().IsLoading {
		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// transcript prints bot messages the user has not seen yet. A new conversation
// id or mode restarts it from the top of the reseeded history.
type transcript struct {
	out     io.Writer
	key     string
	printed int
}

func (t *transcript) flush(snap conversation.Snapshot) {
	if key := string(snap.Mode) + "/" + snap.ConversationID; key != t.key {
		if t.key != "" {
			fmt.Fprintln(t.out, formatter.Dim("  ── new "+string(snap.Mode)+" conversation ──"))
		}
		t.key, t.printed = key, 0
	}

	fresh := false
	for _, m := range snap.History[min(t.printed, len(snap.History)):] {
		if m.Role == bot.RoleBot {
			fmt.Fprintln(t.out, formatter.FormatMessage(m))
			fresh = true
		}
	}
	t.printed = len(snap.History)

	if snap.ValidationMessage != "" {
		fmt.Fprintln(t.out, formatter.FormatValidation(snap.ValidationMessage))
	}
	if snap.Error != "" {
		fmt.Fprintln(t.out, formatter.FormatError(snap.Error))
	}
	if fresh && snap.CurrentQuestion == nil && snap.Completed == nil {
		if sug := formatter.FormatSuggestions(snap.SuggestedQuestions); sug != "" {
			fmt.Fprintln(t.out, sug)
		}
	}
}

// ── terminal UI ──────────────────────────────────────────────────────────────

func runTUIChat(ctx context.Context, in io.Reader, out io.Writer, s *chatSession, mode bot.Mode, onboarding bool) error {
	changed := make(chan struct{}, 1)
	unsubscribe := s.store.Subscribe(func(conversation.Snapshot) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	if err := s.store.Start(ctx, mode); err != nil {
		return err
	}

	m := newChatView(ctx, s, onboarding)
	m.changed = changed

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running chat: %w", err)
	}
	return nil
}

// printOutcome reports where a finished discovery was stored.
func printOutcome(out io.Writer, s *chatSession) {
	rec, err := s.outcome()
	switch {
	case err != nil:
		fmt.Fprintln(out, formatter.FormatError("saving discovery: "+err.Error()))
	case rec != nil:
		fmt.Fprintln(out, formatter.Dim("  Saved discovery "+rec.ID+"."))
		fmt.Fprintln(out, formatter.Dim("  Review it with: leadflow sessions show "+rec.ID))
	}
}
