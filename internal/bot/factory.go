package bot

import (
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/alexanderramin/leadflow/internal/webhook"
)

// Options are the collaborators handed to every strategy the factory builds.
type Options struct {
	Catalog       *catalog.Catalog
	QA            QAResponder
	Leads         LeadSubmitter
	Observer      webhook.Observer
	Scheduler     Scheduler
	Pacing        time.Duration
	OnComplete    CompleteFunc
	Now           func() time.Time
	ClientVersion string
}

// Factory is a registry holding at most one live strategy per (mode, conversation id).
type Factory struct {
	opts      Options
	construct func(Mode, string) (Strategy, error)

	mu         sync.Mutex
	strategies map[string]Strategy
}

// NewFactory returns an empty registry.
func NewFactory(opts Options) *Factory {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	f := &Factory{opts: opts, strategies: make(map[string]Strategy)}
	f.construct = f.newStrategy
	return f
}

// Key returns the registry key for a strategy.
func Key(mode Mode, conversationID string) string {
	return string(mode) + "-" + conversationID
}

// CreateStrategy builds a fresh strategy, first cleaning up and replacing any
// strategy already registered under the same key.
func (f *Factory) CreateStrategy(mode Mode, conversationID string) (Strategy, error) {
	s, err := f.construct(mode, conversationID)
	if err != nil {
		return nil, err
	}

	key := Key(mode, conversationID)
	f.mu.Lock()
	old := f.strategies[key]
	delete(f.strategies, key)
	f.mu.Unlock()

	if old != nil {
		old.Cleanup()
	}

	f.mu.Lock()
	f.strategies[key] = s
	f.mu.Unlock()
	return s, nil
}

// SwitchStrategy retires the from-mode strategy of the conversation and creates the to-mode one.
func (f *Factory) SwitchStrategy(from, to Mode, conversationID string) (Strategy, error) {
	if _, err := ParseMode(string(to)); err != nil {
		return nil, err
	}
	f.remove(Key(from, conversationID))
	return f.CreateStrategy(to, conversationID)
}

// Remove cleans up and unregisters the strategy for (mode, conversationID), if any.
func (f *Factory) Remove(mode Mode, conversationID string) {
	f.remove(Key(mode, conversationID))
}

// CleanupAllStrategies cleans up every registered strategy and empties the registry.
func (f *Factory) CleanupAllStrategies() {
	f.mu.Lock()
	all := f.strategies
	f.strategies = make(map[string]Strategy)
	f.mu.Unlock()

	for _, s := range all {
		s.Cleanup()
	}
}

// Get returns the live strategy for (mode, conversationID).
func (f *Factory) Get(mode Mode, conversationID string) (Strategy, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.strategies[Key(mode, conversationID)]
	return s, ok
}

// Len returns the number of live strategies.
func (f *Factory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.strategies)
}

func (f *Factory) remove(key string) {
	f.mu.Lock()
	s := f.strategies[key]
	delete(f.strategies, key)
	f.mu.Unlock()
	if s != nil {
		s.Cleanup()
	}
}

func (f *Factory) newStrategy(mode Mode, conversationID string) (Strategy, error) {
	switch mode {
	case ModeQA:
		return NewQAStrategy(conversationID, f.opts.QA, f.opts.Observer, f.opts.Now), nil
	case ModeProject:
		return NewProjectStrategy(conversationID, ProjectOptions{
			Catalog:       f.opts.Catalog,
			Leads:         f.opts.Leads,
			Observer:      f.opts.Observer,
			Scheduler:     f.opts.Scheduler,
			Pacing:        f.opts.Pacing,
			OnComplete:    f.opts.OnComplete,
			Now:           f.opts.Now,
			ClientVersion: f.opts.ClientVersion,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
