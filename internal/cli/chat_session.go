package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/alexanderramin/leadflow/internal/conversation"
	"github.com/alexanderramin/leadflow/internal/domain"
)

var errQuit = errors.New("quit")

// chatSession is one chat: its own strategy registry, the store mirroring the
// active strategy, and the outcome of a finished discovery.
type chatSession struct {
	ctx     context.Context
	app     *App
	factory *bot.Factory
	store   *conversation.Store

	mu      sync.Mutex
	saved   *domain.DiscoveryRecord
	saveErr error
}

func newChatSession(ctx context.Context, app *App) *chatSession {
	s := &chatSession{ctx: ctx, app: app}

	opts := app.Bot
	opts.Catalog = app.catalog()
	opts.QA = app.Gateway
	opts.Leads = app.Gateway
	opts.OnComplete = s.record
	if opts.Now == nil {
		opts.Now = app.Now
	}

	s.factory = bot.NewFactory(opts)
	s.store = conversation.NewStore(s.factory)
	return s
}

// record persists a finished discovery. It runs on whatever goroutine completed it.
func (s *chatSession) record(c bot.Completion) {
	if s.app.Discoveries == nil {
		return
	}
	rec, err := s.app.Discoveries.Record(context.WithoutCancel(s.ctx), c)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved, s.saveErr = rec, err
}

func (s *chatSession) outcome() (*domain.DiscoveryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved, s.saveErr
}

func (s *chatSession) close() {
	s.store.Close()
	s.factory.CleanupAllStrategies()
}

// submit routes one line of chat input: slash commands, a numbered suggestion,
// or a message for the active strategy. It returns errQuit on /quit.
func (s *chatSession) submit(ctx context.Context, input string) error {
	input = strings.TrimSpace(input)
	snap := s.store.Snapshot()

	if strings.HasPrefix(input, "/") {
		return s.command(ctx, input)
	}
	if snap.CurrentQuestion == nil {
		if input == "" {
			return nil
		}
		if text, ok := pickSuggestion(snap.SuggestedQuestions, input); ok {
			return s.store.SendSuggested(ctx, text)
		}
	}
	return s.store.Send(ctx, input)
}

func (s *chatSession) command(ctx context.Context, input string) error {
	fields := strings.Fields(strings.ToLower(input))
	switch fields[0] {
	case "/quit", "/exit", "/q":
		return errQuit
	case "/clear":
		return s.store.Clear(ctx)
	case "/mode":
		if len(fields) < 2 {
			return fmt.Errorf("usage: /mode qa|project")
		}
		mode, err := bot.ParseMode(fields[1])
		if err != nil {
			return err
		}
		return s.store.SwitchMode(ctx, mode)
	default:
		return fmt.Errorf("unknown command %q (try /mode, /clear or /quit)", fields[0])
	}
}

// pickSuggestion resolves "2" to the second suggestion.
func pickSuggestion(suggestions []string, input string) (string, bool) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(suggestions) {
		return "", false
	}
	return suggestions[n-1], true
}

// discoveryProgress returns how many discovery questions precede q, and how many
// there are in total.
func discoveryProgress(cat *catalog.Catalog, q *catalog.Question) (done, total int) {
	total = cat.DiscoveryQuestionCount()
	if q == nil {
		return total, total
	}
	for wi := catalog.ModeSelectionWave + 1; wi < cat.Len(); wi++ {
		for _, candidate := range cat.Wave(wi).Questions {
			if candidate.ID == q.ID {
				return done, total
			}
			done++
		}
	}
	return done, total
}
