// Package conversation holds the UI-facing state of one chat and the actions the
// UI uses to drive it.
package conversation

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/google/uuid"
)

// ErrNotStarted is returned by actions that need an active strategy.
var ErrNotStarted = errors.New("conversation not started")

// Snapshot is a copy of the UI-facing state.
type Snapshot struct {
	History            []bot.Message
	SuggestedQuestions []string
	CurrentQuestion    *catalog.Question
	IsLoading          bool
	Error              string
	ValidationMessage  string
	Mode               bot.Mode
	ConversationID     string
	Completed          *analysis.EnhancedConversationData
}

func (s Snapshot) clone() Snapshot {
	s.History = append([]bot.Message(nil), s.History...)
	s.SuggestedQuestions = append([]string(nil), s.SuggestedQuestions...)
	return s
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides how conversation ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Store owns the active strategy of one conversation and mirrors its state.
type Store struct {
	factory *bot.Factory
	newID   func() string

	mu          sync.Mutex
	snap        Snapshot
	active      bot.Strategy
	subscribers map[int]func(Snapshot)
	nextSub     int
}

// NewStore creates an idle store backed by factory.
func NewStore(factory *bot.Factory, opts ...Option) *Store {
	s := &Store{
		factory:     factory,
		newID:       uuid.NewString,
		subscribers: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a new conversation in mode, retiring any current one.
func (s *Store) Start(ctx context.Context, mode bot.Mode) error {
	if _, err := bot.ParseMode(string(mode)); err != nil {
		s.setError(err)
		return err
	}

	s.mu.Lock()
	prev, prevID := s.active, s.snap.ConversationID
	s.mu.Unlock()
	if prev != nil {
		s.factory.Remove(prev.Mode(), prevID)
	}
	return s.activate(ctx, mode, s.newID(), func(id string) (bot.Strategy, error) {
		return s.factory.CreateStrategy(mode, id)
	})
}

// SwitchMode moves the current conversation to another mode. The previous strategy is
// cleaned up before the new one is initialized and the history is reseeded.
func (s *Store) SwitchMode(ctx context.Context, mode bot.Mode) error {
	s.mu.Lock()
	prev, id := s.active, s.snap.ConversationID
	s.mu.Unlock()
	if prev == nil {
		return s.Start(ctx, mode)
	}
	if prev.Mode() == mode {
		return nil
	}
	return s.activate(ctx, mode, id, func(id string) (bot.Strategy, error) {
		return s.factory.SwitchStrategy(prev.Mode(), mode, id)
	})
}

// Send forwards free-form input to the active strategy.
func (s *Store) Send(ctx context.Context, text string) error {
	st := s.current()
	if st == nil {
		return ErrNotStarted
	}
	st.HandleUserInput(ctx, text)
	return nil
}

// SendSuggested submits a suggested question. Picking the discovery suggestion in QA
// mode switches the conversation to project discovery.
func (s *Store) SendSuggested(ctx context.Context, text string) error {
	st := s.current()
	if st == nil {
		return ErrNotStarted
	}
	if text == bot.SuggestionStartDiscovery && st.Mode() == bot.ModeQA {
		return s.SwitchMode(ctx, bot.ModeProject)
	}
	st.HandleSuggestedQuestion(ctx, text)
	return nil
}

// Clear drops the conversation and starts a fresh one in the same mode.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	mode := s.snap.Mode
	s.mu.Unlock()
	if mode == "" {
		return ErrNotStarted
	}
	return s.Start(ctx, mode)
}

// Close retires the active strategy. The last snapshot stays readable.
func (s *Store) Close() {
	s.mu.Lock()
	st, id := s.active, s.snap.ConversationID
	s.active = nil
	s.snap.IsLoading = false
	s.mu.Unlock()
	if st != nil {
		s.factory.Remove(st.Mode(), id)
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Strategy returns the active strategy, or nil.
func (s *Store) Strategy() bot.Strategy {
	return s.current()
}

// ReadyForInput reports whether the active strategy accepts input.
func (s *Store) ReadyForInput() bool {
	st := s.current()
	return st != nil && st.IsReadyForInput()
}

// Subscribe registers fn to receive a snapshot after every applied change.
// The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) current() bot.Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// activate swaps in the strategy returned by create, resets the mirrored state and
// initializes it. Updates from any other strategy are ignored from here on.
func (s *Store) activate(ctx context.Context, mode bot.Mode, id string, create func(id string) (bot.Strategy, error)) error {
	st, err := create(id)
	if err != nil {
		s.setError(err)
		return err
	}

	s.mu.Lock()
	s.active = st
	s.snap = Snapshot{Mode: mode, ConversationID: id}
	s.mu.Unlock()

	st.SetStateUpdateCallback(func(u bot.StateUpdate) { s.apply(st, u) })
	st.Initialize(ctx)
	s.notify()
	return nil
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	s.snap.Error = err.Error()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) apply(src bot.Strategy, u bot.StateUpdate) {
	s.mu.Lock()
	if src != s.active {
		s.mu.Unlock()
		return
	}
	if u.Has(bot.FieldHistory) {
		s.snap.History = append([]bot.Message(nil), u.ConversationHistory...)
	}
	if u.Has(bot.FieldSuggestions) {
		s.snap.SuggestedQuestions = append([]string(nil), u.SuggestedQuestions...)
	}
	if u.Has(bot.FieldGenerating) {
		s.snap.IsLoading = u.IsGenerating
	}
	if u.Has(bot.FieldCurrentQuestion) {
		s.snap.CurrentQuestion = u.CurrentQuestion
	}
	if u.Has(bot.FieldValidation) {
		s.snap.ValidationMessage = u.ValidationMessage
	}
	if u.Has(bot.FieldCompleted) {
		s.snap.Completed = u.Completed
	}
	s.snap.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.mu.Lock()
	snap := s.snap.clone()
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
