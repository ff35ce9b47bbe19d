package bot

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/alexanderramin/leadflow/internal/webhook"
)

const qaGreeting = "Hi! I'm the Leadflow assistant. Ask me anything about our AI automation services, " +
	"pricing, technology or timelines."

// SuggestionStartDiscovery is offered when the assistant recommends talking to the team.
const SuggestionStartDiscovery = "I'd like to plan a project with you"

// Conversation phases reported to the QA webhook.
const (
	PhaseExploration  = "exploration"
	PhaseSatisfaction = "satisfaction"
	PhaseTransition   = "transition"
)

// ConversationIntelligence derives the flow heuristics sent with each QA request.
func ConversationIntelligence(exchangeCount int) webhook.ConversationFlow {
	phase := PhaseTransition
	switch {
	case exchangeCount <= 2:
		phase = PhaseExploration
	case exchangeCount <= 5:
		phase = PhaseSatisfaction
	}
	return webhook.ConversationFlow{
		ExchangeCount:    exchangeCount,
		EngagementScore:  min(exchangeCount*2, 10),
		Phase:            phase,
		ShouldTransition: exchangeCount >= 5,
	}
}

// QAStrategy answers free-form questions through the QA webhook,
// falling back to canned local answers.
type QAStrategy struct {
	base
	client        QAResponder
	exchangeCount int
}

// NewQAStrategy creates a QA strategy. client may be nil, in which case every
// answer comes from the local fallback.
func NewQAStrategy(conversationID string, client QAResponder, observer webhook.Observer, now func() time.Time) *QAStrategy {
	s := &QAStrategy{client: client}
	s.init(ModeQA, conversationID, observer, now)
	return s
}

func (s *QAStrategy) Initialize(_ context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	s.initialized = true
	s.appendLocked(RoleBot, qaGreeting)
	s.state.SuggestedQuestions = webhook.InitialSuggestions()
	upd := StateUpdate{
		Fields:              FieldHistory | FieldSuggestions | FieldGenerating | FieldCurrentQuestion,
		ConversationHistory: s.historyLocked(),
		SuggestedQuestions:  append([]string(nil), s.state.SuggestedQuestions...),
	}
	s.mu.Unlock()
	s.emit(upd)
}

func (s *QAStrategy) HandleUserInput(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	gen, req, ok := s.beginExchange(text)
	if !ok {
		return
	}
	defer s.finishExchange(gen)

	reply := s.resolveReply(ctx, req)
	s.applyReply(gen, reply)
}

func (s *QAStrategy) HandleSuggestedQuestion(ctx context.Context, text string) {
	s.HandleUserInput(ctx, text)
}

// CurrentQuestion is always nil: QA mode takes free-form input.
func (s *QAStrategy) CurrentQuestion() *catalog.Question { return nil }

func (s *QAStrategy) IsReadyForInput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized && !s.state.IsGenerating
}

func (s *QAStrategy) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.exchangeCount = 0
}

// ExchangeCount returns how many user messages have been handled.
func (s *QAStrategy) ExchangeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchangeCount
}

func (s *QAStrategy) beginExchange(text string) (int, webhook.QARequest, bool) {
	s.mu.Lock()
	if !s.initialized || s.state.IsGenerating || text == "" {
		s.mu.Unlock()
		return 0, webhook.QARequest{}, false
	}
	s.state.IsGenerating = true
	s.appendLocked(RoleUser, text)
	s.exchangeCount++

	history := make([]webhook.HistoryEntry, 0, len(s.state.ConversationHistory))
	for _, m := range s.state.ConversationHistory {
		history = append(history, webhook.HistoryEntry{Role: string(m.Role), Content: m.Text})
	}
	req := webhook.QARequest{
		UserMessage:         text,
		ConversationHistory: history,
		SessionID:           s.state.ConversationID,
		Timestamp:           s.now().UTC().Format(time.RFC3339),
		BusinessPolicy:      webhook.DefaultBusinessPolicy(),
		ConversationFlow:    ConversationIntelligence(s.exchangeCount),
	}
	gen := s.generation
	upd := StateUpdate{
		Fields:              FieldHistory | FieldGenerating,
		ConversationHistory: s.historyLocked(),
		IsGenerating:        true,
	}
	s.mu.Unlock()

	s.emit(upd)
	return gen, req, true
}

// resolveReply asks the webhook and converts every failure into a local answer.
func (s *QAStrategy) resolveReply(ctx context.Context, req webhook.QARequest) *webhook.QAReply {
	if s.client == nil {
		s.observer.OnFallback(webhook.FallbackEvent{Endpoint: webhook.EndpointQA, Reason: "no client"})
		return webhook.FallbackQAReply(req.UserMessage)
	}

	reply, err := s.client.SendQAMessage(ctx, req)
	if err != nil || reply == nil || strings.TrimSpace(reply.Text) == "" {
		reason := "empty reply"
		if err != nil {
			reason = err.Error()
		}
		s.observer.OnFallback(webhook.FallbackEvent{Endpoint: webhook.EndpointQA, Reason: reason})
		return webhook.FallbackQAReply(req.UserMessage)
	}

	if len(reply.SuggestedQuestions) == 0 {
		reply.SuggestedQuestions = webhook.FallbackSuggestions(req.UserMessage)
	}
	if reply.RequiresTeamConsultation && !containsString(reply.SuggestedQuestions, SuggestionStartDiscovery) {
		reply.SuggestedQuestions = append([]string{SuggestionStartDiscovery}, reply.SuggestedQuestions...)
	}
	return reply
}

func (s *QAStrategy) applyReply(gen int, reply *webhook.QAReply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.appendLocked(RoleBot, strings.TrimSpace(reply.Text))
	s.state.SuggestedQuestions = append([]string(nil), reply.SuggestedQuestions...)
}

// finishExchange always clears the generating flag, even if the reply path panicked.
func (s *QAStrategy) finishExchange(gen int) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.state.IsGenerating = false
	upd := StateUpdate{
		Fields:              FieldHistory | FieldSuggestions | FieldGenerating,
		ConversationHistory: s.historyLocked(),
		SuggestedQuestions:  append([]string(nil), s.state.SuggestedQuestions...),
	}
	s.mu.Unlock()
	s.emit(upd)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
