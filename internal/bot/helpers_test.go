package bot

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/leadflow/internal/webhook"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func clock() func() time.Time {
	var mu sync.Mutex
	t := fixedNow
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

type fakeQA struct {
	mu       sync.Mutex
	reply    *webhook.QAReply
	err      error
	requests []webhook.QARequest

	// started is signalled when a call begins; release unblocks it when non-nil.
	started chan struct{}
	release chan struct{}
}

func (f *fakeQA) SendQAMessage(_ context.Context, req webhook.QARequest) (*webhook.QAReply, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.reply == nil {
		return nil, nil
	}
	cp := *f.reply
	cp.SuggestedQuestions = append([]string(nil), f.reply.SuggestedQuestions...)
	return &cp, nil
}

func (f *fakeQA) calls() []webhook.QARequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]webhook.QARequest(nil), f.requests...)
}

type fakeLeads struct {
	mu          sync.Mutex
	result      *webhook.SubmitResult
	err         error
	submissions []webhook.ProjectSubmission
}

func (f *fakeLeads) SubmitProjectData(_ context.Context, sub webhook.ProjectSubmission) (*webhook.SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, sub)
	return f.result, f.err
}

type recordingObserver struct {
	mu        sync.Mutex
	fallbacks []webhook.FallbackEvent
}

func (o *recordingObserver) OnCallComplete(webhook.CallEvent) {}

func (o *recordingObserver) OnFallback(e webhook.FallbackEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fallbacks = append(o.fallbacks, e)
}

// manualScheduler holds pacing callbacks until the test fires them.
type manualScheduler struct {
	mu        sync.Mutex
	pending   []func()
	cancelled int
}

func (m *manualScheduler) After(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, fn)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.cancelled++
	}
}

func (m *manualScheduler) fireAll() {
	m.mu.Lock()
	fns := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// discoveryAnswers walks the default catalog with valid answers.
var discoveryAnswers = []string{
	"An assistant that triages inbound support tickets",
	"Support staff spend half their day sorting tickets by hand",
	"Cut first response time in half",
	"3", // Enterprise-scale system
	"3", // Several integrations
	"1", // ASAP
	"1", // No technical background
	"y",
	"Dana",
	"dana@example.com",
}

func lastMessage(s Strategy) Message {
	h := s.State().ConversationHistory
	if len(h) == 0 {
		return Message{}
	}
	return h[len(h)-1]
}
