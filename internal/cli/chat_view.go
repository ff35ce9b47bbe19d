package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/alexanderramin/leadflow/internal/conversation"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// snapshotMsg carries fresh store state into the view.
type snapshotMsg struct {
	snap conversation.Snapshot
}

// inputErrMsg reports a rejected slash command or send.
type inputErrMsg struct {
	err error
}

var chatKeys = struct {
	Send key.Binding
	Quit key.Binding
}{
	Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// chatView is the interactive chat. It renders the store snapshot and forwards
// input through the session; it never touches strategies directly.
type chatView struct {
	ctx        context.Context
	session    *chatSession
	input      textinput.Model
	onboarding bool

	snap    conversation.Snapshot
	notice  string
	changed <-chan struct{} // nil when no listener is wanted
	done    bool
}

func newChatView(ctx context.Context, s *chatSession, onboarding bool) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 1000

	return &chatView{
		ctx:        ctx,
		session:    s,
		input:      ti,
		onboarding: onboarding,
		snap:       s.store.Snapshot(),
	}
}

func (v *chatView) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, v.listen())
}

// listen waits for the next store change and turns it into a snapshotMsg.
func (v *chatView) listen() tea.Cmd {
	if v.changed == nil {
		return nil
	}
	changed, store := v.changed, v.session.store
	return func() tea.Msg {
		<-changed
		return snapshotMsg{snap: store.Snapshot()}
	}
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		v.snap = msg.snap
		return v, v.listen()

	case inputErrMsg:
		if errors.Is(msg.err, errQuit) {
			v.done = true
			return v, tea.Quit
		}
		v.notice = msg.err.Error()
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, chatKeys.Quit):
			v.done = true
			return v, tea.Quit
		case key.Matches(msg, chatKeys.Send):
			if v.snap.Completed != nil && !v.snap.IsLoading {
				v.done = true
				return v, tea.Quit
			}
			input := v.input.Value()
			v.input.Reset()
			v.notice = ""
			return v, v.send(input)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// send runs the input on its own goroutine; strategies may block on the network.
func (v *chatView) send(input string) tea.Cmd {
	ctx, session := v.ctx, v.session
	return func() tea.Msg {
		if err := session.submit(ctx, input); err != nil {
			return inputErrMsg{err: err}
		}
		return snapshotMsg{snap: session.store.Snapshot()}
	}
}

func (v *chatView) View() string {
	var b strings.Builder

	b.WriteString(formatter.FormatChatWelcome(v.snap.Mode, v.onboarding))
	if v.snap.Mode == bot.ModeProject {
		done, total := discoveryProgress(v.session.app.catalog(), v.snap.CurrentQuestion)
		b.WriteString("  " + formatter.RenderProgress(done, total, 20) + "\n\n")
	}

	for _, m := range v.snap.History {
		b.WriteString(formatter.FormatMessage(m))
		b.WriteString("\n")
	}

	switch {
	case v.snap.IsLoading:
		b.WriteString(formatter.Thinking() + "\n")
	case v.snap.CurrentQuestion == nil && v.snap.Completed == nil:
		if sug := formatter.FormatSuggestions(v.snap.SuggestedQuestions); sug != "" {
			b.WriteString(sug + "\n")
		}
	}
	if v.snap.ValidationMessage != "" {
		b.WriteString(formatter.FormatValidation(v.snap.ValidationMessage) + "\n")
	}
	if v.snap.Error != "" {
		b.WriteString(formatter.FormatError(v.snap.Error) + "\n")
	}
	if v.notice != "" {
		b.WriteString(formatter.FormatError(v.notice) + "\n")
	}

	if v.snap.Completed != nil && !v.snap.IsLoading {
		b.WriteString("\n" + formatter.FormatAnalysis(v.snap.Completed) + "\n")
		if !v.done {
			b.WriteString(formatter.Dim("  Press enter to exit.") + "\n")
		}
		return b.String()
	}
	if v.done {
		return b.String()
	}

	b.WriteString(formatter.ModePrompt(v.snap.Mode))
	b.WriteString(v.input.View())
	b.WriteString("\n" + formatter.Dim(helpLine(chatKeys.Send, chatKeys.Quit)))
	return b.String()
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return "  " + strings.Join(parts, " · ")
}
