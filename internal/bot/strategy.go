// Package bot implements the conversational strategies behind the chat:
// free-form QA and structured project discovery.
package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/alexanderramin/leadflow/internal/webhook"
)

// Mode selects a strategy.
type Mode string

const (
	ModeQA      Mode = "qa"
	ModeProject Mode = "project"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeQA, ModeProject:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Role is who authored a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one entry of the append-only conversation log.
type Message struct {
	Role      Role
	Text      string
	Timestamp time.Time
}

// State is the strategy-local state. Each strategy owns its own copy.
type State struct {
	ConversationHistory []Message
	SuggestedQuestions  []string
	IsGenerating        bool
	ConversationID      string
}

// Field marks which parts of a StateUpdate are present.
type Field uint8

const (
	FieldHistory Field = 1 << iota
	FieldSuggestions
	FieldGenerating
	FieldCurrentQuestion
	FieldValidation
	FieldCompleted
)

// StateUpdate is a partial state change. Only fields marked in Fields are
// authoritative; receivers leave the rest untouched.
type StateUpdate struct {
	Fields              Field
	ConversationHistory []Message
	SuggestedQuestions  []string
	IsGenerating        bool
	CurrentQuestion     *catalog.Question
	ValidationMessage   string
	Completed           *analysis.EnhancedConversationData
}

// Has reports whether f is present in the update.
func (u StateUpdate) Has(f Field) bool {
	return u.Fields&f != 0
}

// StateUpdateFunc receives state changes pushed by a strategy.
type StateUpdateFunc func(StateUpdate)

// Strategy is the behavior of one bot mode.
type Strategy interface {
	Mode() Mode

	// Initialize seeds greeting messages. Repeated calls are no-ops.
	Initialize(ctx context.Context)

	// HandleUserInput processes one message. It never panics on remote
	// failures and ignores input while a previous message is being handled.
	HandleUserInput(ctx context.Context, text string)

	// HandleSuggestedQuestion submits a suggested question as input.
	HandleSuggestedQuestion(ctx context.Context, text string)

	// CurrentQuestion returns the structured question awaiting an answer,
	// or nil when the UI should offer free-form input.
	CurrentQuestion() *catalog.Question

	IsReadyForInput() bool

	// SetStateUpdateCallback registers the single receiver of state updates,
	// replacing any previous one.
	SetStateUpdateCallback(cb StateUpdateFunc)

	State() State

	// Cleanup resets the strategy to its initial empty state. Safe to repeat.
	Cleanup()
}

// QAResponder sends QA messages to the remote assistant.
type QAResponder interface {
	SendQAMessage(ctx context.Context, req webhook.QARequest) (*webhook.QAReply, error)
}

// LeadSubmitter posts completed discoveries.
type LeadSubmitter interface {
	SubmitProjectData(ctx context.Context, sub webhook.ProjectSubmission) (*webhook.SubmitResult, error)
}

// base carries what both strategies share. Mutations hold mu; callbacks run
// after mu is released.
type base struct {
	mu          sync.Mutex
	mode        Mode
	state       State
	initialized bool
	generation  int
	callback    StateUpdateFunc
	observer    webhook.Observer
	now         func() time.Time
}

func (b *base) init(mode Mode, conversationID string, observer webhook.Observer, now func() time.Time) {
	if observer == nil {
		observer = webhook.NoopObserver{}
	}
	if now == nil {
		now = time.Now
	}
	b.mode = mode
	b.state = State{ConversationID: conversationID}
	b.observer = observer
	b.now = now
}

func (b *base) Mode() Mode { return b.mode }

func (b *base) SetStateUpdateCallback(cb StateUpdateFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callback = cb
}

func (b *base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{
		ConversationHistory: b.historyLocked(),
		SuggestedQuestions:  append([]string(nil), b.state.SuggestedQuestions...),
		IsGenerating:        b.state.IsGenerating,
		ConversationID:      b.state.ConversationID,
	}
}

func (b *base) emit(u StateUpdate) {
	b.mu.Lock()
	cb := b.callback
	b.mu.Unlock()
	if cb != nil {
		cb(u)
	}
}

func (b *base) appendLocked(role Role, text string) {
	b.state.ConversationHistory = append(b.state.ConversationHistory, Message{
		Role:      role,
		Text:      text,
		Timestamp: b.now(),
	})
}

func (b *base) historyLocked() []Message {
	return append([]Message(nil), b.state.ConversationHistory...)
}

// resetLocked drops everything except the conversation id and the callback,
// and retires any in-flight work by bumping the generation.
func (b *base) resetLocked() {
	b.generation++
	b.initialized = false
	b.state = State{ConversationID: b.state.ConversationID}
}
