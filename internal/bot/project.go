package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/alexanderramin/leadflow/internal/webhook"
)

// DefaultPacing is the pause between acknowledging an answer and asking the next question.
const DefaultPacing = 1200 * time.Millisecond

const (
	thankYou           = "Thank you!"
	msgRequired        = "This field is required."
	msgInvalidEmail    = "Please enter a valid email address so we can send you the project summary."
	msgMoreDetail      = "Please provide a bit more detail so we can understand your needs."
	submissionSource   = "leadflow-cli"
	firstDiscoveryWave = catalog.ModeSelectionWave + 1
)

// Completion describes a finished discovery run.
type Completion struct {
	ConversationID    string
	Data              *analysis.EnhancedConversationData
	LeadScore         int
	Submitted         bool
	SubmissionMessage string
	StartedAt         time.Time
	Duration          time.Duration
}

// CompleteFunc receives the completion of a discovery run. It is called exactly
// once per run, whatever the submission outcome.
type CompleteFunc func(Completion)

// ProjectOptions configures a ProjectStrategy. Zero values get sensible defaults.
type ProjectOptions struct {
	Catalog       *catalog.Catalog
	Leads         LeadSubmitter
	Observer      webhook.Observer
	Scheduler     Scheduler
	Pacing        time.Duration
	OnComplete    CompleteFunc
	Now           func() time.Time
	ClientVersion string
}

// ProjectStrategy walks the user through the discovery waves, one question at a time.
type ProjectStrategy struct {
	base

	cat           *catalog.Catalog
	leads         LeadSubmitter
	scheduler     Scheduler
	pacing        time.Duration
	onComplete    CompleteFunc
	clientVersion string

	wave, question int
	finished       bool
	responses      analysis.Responses
	answers        []webhook.QuestionAnswer
	path           []string
	validation     string
	completed      *analysis.EnhancedConversationData
	startedAt      time.Time

	runCtx      context.Context
	cancelRun   context.CancelFunc
	cancelTimer func()
}

// NewProjectStrategy creates a discovery strategy for one conversation.
func NewProjectStrategy(conversationID string, opts ProjectOptions) *ProjectStrategy {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	if opts.Pacing < 0 {
		opts.Pacing = 0
	}
	s := &ProjectStrategy{
		cat:           opts.Catalog,
		leads:         opts.Leads,
		scheduler:     opts.Scheduler,
		pacing:        opts.Pacing,
		onComplete:    opts.OnComplete,
		clientVersion: opts.ClientVersion,
	}
	s.init(ModeProject, conversationID, opts.Observer, opts.Now)
	s.resetCursorLocked()
	return s
}

func (s *ProjectStrategy) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	s.initialized = true
	s.startedAt = s.now()
	s.runCtx, s.cancelRun = context.WithCancel(context.WithoutCancel(ctx))

	s.appendLocked(RoleBot, fmt.Sprintf(
		"Welcome to project discovery! I'll ask %d short questions to understand what you want to build.",
		s.cat.DiscoveryQuestionCount()))
	if w := s.cat.Wave(s.wave); w != nil {
		s.path = append(s.path, w.ID)
		s.appendLocked(RoleBot, fmt.Sprintf("Let's start with %s. %s", w.Name, w.Description))
	}
	q := s.currentLocked()
	if q != nil {
		s.appendLocked(RoleBot, questionPrompt(q))
	} else {
		s.finished = true
	}
	upd := StateUpdate{
		Fields:              FieldHistory | FieldSuggestions | FieldGenerating | FieldCurrentQuestion | FieldValidation,
		ConversationHistory: s.historyLocked(),
		CurrentQuestion:     q,
	}
	s.mu.Unlock()
	s.emit(upd)
}

// HandleUserInput validates the answer to the current question. Accepted answers are
// recorded and the next question follows after the pacing delay.
func (s *ProjectStrategy) HandleUserInput(_ context.Context, text string) {
	s.mu.Lock()
	if !s.initialized || s.state.IsGenerating || s.finished {
		s.mu.Unlock()
		return
	}
	q := s.currentLocked()
	if q == nil {
		s.mu.Unlock()
		return
	}

	answer, msg := resolveAnswer(q, text)
	if msg != "" {
		s.validation = msg
		upd := StateUpdate{Fields: FieldValidation, ValidationMessage: msg}
		s.mu.Unlock()
		s.emit(upd)
		return
	}

	s.validation = ""
	s.state.IsGenerating = true
	if answer != "" {
		s.responses[q.ID] = answer
		s.answers = append(s.answers, webhook.QuestionAnswer{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			QuestionType: string(q.Type),
			Answer:       answer,
			Timestamp:    s.now().UTC().Format(time.RFC3339),
		})
		s.appendLocked(RoleUser, answer)
	}
	followUp := q.FollowUp
	if followUp == "" {
		followUp = thankYou
	}
	s.appendLocked(RoleBot, followUp)

	gen := s.generation
	upd := StateUpdate{
		Fields:              FieldHistory | FieldGenerating | FieldValidation,
		ConversationHistory: s.historyLocked(),
		IsGenerating:        true,
	}
	s.mu.Unlock()
	s.emit(upd)

	cancel := s.scheduler.After(s.pacing, func() { s.advance(gen) })

	s.mu.Lock()
	if gen == s.generation && s.state.IsGenerating && !s.finished {
		s.cancelTimer = cancel
	}
	s.mu.Unlock()
}

func (s *ProjectStrategy) HandleSuggestedQuestion(ctx context.Context, text string) {
	s.HandleUserInput(ctx, text)
}

func (s *ProjectStrategy) CurrentQuestion() *catalog.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *ProjectStrategy) IsReadyForInput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized && !s.state.IsGenerating && !s.finished && s.currentLocked() != nil
}

// Cleanup cancels pending pacing and in-flight submission, then resets the walk.
func (s *ProjectStrategy) Cleanup() {
	s.mu.Lock()
	cancelTimer, cancelRun := s.cancelTimer, s.cancelRun
	s.cancelTimer, s.cancelRun = nil, nil
	s.resetLocked()
	s.resetCursorLocked()
	s.mu.Unlock()

	if cancelTimer != nil {
		cancelTimer()
	}
	if cancelRun != nil {
		cancelRun()
	}
}

// Responses returns a copy of the answers accepted so far.
func (s *ProjectStrategy) Responses() analysis.Responses {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(analysis.Responses, len(s.responses))
	for k, v := range s.responses {
		out[k] = v
	}
	return out
}

// ValidationMessage returns the message for the last rejected answer, if any.
func (s *ProjectStrategy) ValidationMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validation
}

// Cursor returns the (wave, question) position.
func (s *ProjectStrategy) Cursor() (wave, question int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wave, s.question
}

// Completed returns the analysis produced at the end of the run, or nil.
func (s *ProjectStrategy) Completed() *analysis.EnhancedConversationData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

func (s *ProjectStrategy) resetCursorLocked() {
	s.wave, s.question = firstDiscoveryWave, 0
	s.finished = false
	s.responses = make(analysis.Responses)
	s.answers = nil
	s.path = nil
	s.validation = ""
	s.completed = nil
	s.startedAt = time.Time{}
}

func (s *ProjectStrategy) currentLocked() *catalog.Question {
	if s.finished {
		return nil
	}
	return s.cat.Question(s.wave, s.question)
}

// advance moves the cursor forward once the pacing delay has elapsed.
func (s *ProjectStrategy) advance(gen int) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.cancelTimer = nil

	w := s.cat.Wave(s.wave)
	if w != nil && s.question+1 < len(w.Questions) {
		s.question++
	} else if next := s.cat.Wave(s.wave + 1); next != nil {
		s.wave++
		s.question = 0
		s.path = append(s.path, next.ID)
		s.appendLocked(RoleBot, fmt.Sprintf("Now let's talk about %s. %s", next.Name, next.Description))
	} else {
		s.finished = true
		s.mu.Unlock()
		s.complete(gen)
		return
	}

	q := s.currentLocked()
	s.appendLocked(RoleBot, questionPrompt(q))
	s.state.IsGenerating = false
	upd := StateUpdate{
		Fields:              FieldHistory | FieldGenerating | FieldCurrentQuestion,
		ConversationHistory: s.historyLocked(),
		CurrentQuestion:     q,
	}
	s.mu.Unlock()
	s.emit(upd)
}

// complete analyses the responses, submits the lead when an email was captured and
// always notifies onComplete. It runs once per walk: finished blocks further input.
func (s *ProjectStrategy) complete(gen int) {
	defer s.finishCompletion(gen)

	s.mu.Lock()
	responses := make(analysis.Responses, len(s.responses))
	for k, v := range s.responses {
		responses[k] = v
	}
	data := analysis.Build(responses)
	sub := s.submissionLocked(data)
	ctx := s.runCtx
	startedAt := s.startedAt
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	submitted, serverMsg := s.submit(ctx, sub)
	var closing string
	if submitted {
		closing = submittedMessage(responses, serverMsg)
	} else {
		closing = FallbackSummary(responses, data)
	}

	s.mu.Lock()
	current := gen == s.generation
	var upd StateUpdate
	if current {
		s.completed = data
		s.appendLocked(RoleBot, closing)
		upd = StateUpdate{
			Fields:              FieldHistory | FieldCurrentQuestion | FieldCompleted,
			ConversationHistory: s.historyLocked(),
			Completed:           data,
		}
	}
	s.mu.Unlock()

	if current {
		s.emit(upd)
	}
	if s.onComplete != nil {
		s.onComplete(Completion{
			ConversationID:    sub.SessionID,
			Data:              data,
			LeadScore:         sub.ProjectData.LeadScore,
			Submitted:         submitted,
			SubmissionMessage: serverMsg,
			StartedAt:         startedAt,
			Duration:          s.now().Sub(startedAt),
		})
	}
}

func (s *ProjectStrategy) finishCompletion(gen int) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.state.IsGenerating = false
	s.mu.Unlock()
	s.emit(StateUpdate{Fields: FieldGenerating})
}

func (s *ProjectStrategy) submit(ctx context.Context, sub webhook.ProjectSubmission) (bool, string) {
	if strings.TrimSpace(sub.Email) == "" {
		return false, ""
	}
	if s.leads == nil {
		s.observer.OnFallback(webhook.FallbackEvent{Endpoint: webhook.EndpointProject, Reason: "no client"})
		return false, ""
	}
	res, err := s.leads.SubmitProjectData(ctx, sub)
	if err != nil || res == nil || !res.Success {
		reason := "rejected"
		if err != nil {
			reason = err.Error()
		}
		s.observer.OnFallback(webhook.FallbackEvent{Endpoint: webhook.EndpointProject, Reason: reason})
		return false, ""
	}
	return true, res.Message
}

func (s *ProjectStrategy) submissionLocked(data *analysis.EnhancedConversationData) webhook.ProjectSubmission {
	now := s.now()
	var elapsed int64
	if !s.startedAt.IsZero() {
		elapsed = int64(now.Sub(s.startedAt).Seconds())
	}
	return webhook.ProjectSubmission{
		Email:     s.responses.Get(analysis.KeyEmail),
		Name:      s.responses.Get(analysis.KeyName),
		Timestamp: now.UTC().Format(time.RFC3339),
		SessionID: s.state.ConversationID,
		ProjectData: webhook.ProjectData{
			QuestionsAnswers: append([]webhook.QuestionAnswer(nil), s.answers...),
			TotalQuestions:   s.cat.DiscoveryQuestionCount(),
			CompletionTime:   elapsed,
			LeadScore:        analysis.LeadScore(data.Complexity),
			ConversationPath: append([]string(nil), s.path...),
		},
		Metadata: webhook.SubmissionMetadata{
			Source:          submissionSource,
			ClientVersion:   s.clientVersion,
			Complexity:      string(data.Complexity),
			RiskFlags:       data.RiskFlags,
			TechStack:       data.TechStack,
			EstimatedEffort: data.EstimatedEffort,
			BusinessImpact:  data.BusinessImpact,
		},
	}
}

// resolveAnswer returns the answer to store, or a validation message. An empty answer
// with no message is a skipped optional question.
func resolveAnswer(q *catalog.Question, text string) (string, string) {
	text = strings.TrimSpace(text)
	if q.IsChoice() {
		if opt, ok := q.OptionAt(text); ok {
			return opt, ""
		}
		return "", fmt.Sprintf("Please choose an option between 1 and %d.", len(q.Options))
	}
	if !q.Validate(text) {
		return "", validationMessage(q, text)
	}
	return text, ""
}

func validationMessage(q *catalog.Question, answer string) string {
	switch {
	case q.ID == analysis.KeyEmail:
		return msgInvalidEmail
	case answer == "":
		return msgRequired
	default:
		return msgMoreDetail
	}
}

func questionPrompt(q *catalog.Question) string {
	if !q.IsChoice() {
		return q.Text
	}
	var b strings.Builder
	b.WriteString(q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "\n%d. %s", i+1, opt)
	}
	return b.String()
}
