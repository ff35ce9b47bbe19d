package testutil

import (
	"time"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/google/uuid"
)

// SampleResponses is a complete discovery for an enterprise project.
func SampleResponses() analysis.Responses {
	return analysis.Responses{
		analysis.KeyProjectIdea:         "An assistant that triages inbound support tickets",
		analysis.KeyBusinessProblem:     "Support staff spend half their day sorting tickets by hand",
		analysis.KeySuccessCriteria:     "Cut first response time in half",
		analysis.KeyProjectScale:        "Enterprise-scale system",
		analysis.KeyIntegrations:        "Several integrations (CRM, ERP, payments, etc.)",
		analysis.KeyTimeline:            "ASAP (within a month)",
		analysis.KeyTechnicalExperience: "No technical background",
		analysis.KeyExistingData:        "Yes",
		analysis.KeyName:                "Dana",
		analysis.KeyEmail:               "dana@example.com",
	}
}

// DiscoveryInput is the chat input that walks the default catalog to the
// answers in SampleResponses.
func DiscoveryInput() []string {
	return []string{
		"An assistant that triages inbound support tickets",
		"Support staff spend half their day sorting tickets by hand",
		"Cut first response time in half",
		"3",
		"3",
		"1",
		"1",
		"y",
		"Dana",
		"dana@example.com",
	}
}

type DiscoveryOption func(*domain.DiscoveryRecord)

func WithCompletedAt(t time.Time) DiscoveryOption {
	return func(r *domain.DiscoveryRecord) {
		r.CompletedAt = t
		r.StartedAt = t.Add(-time.Duration(r.DurationSec) * time.Second)
	}
}

func WithSubmitted(msg string) DiscoveryOption {
	return func(r *domain.DiscoveryRecord) {
		r.Submitted = true
		r.SubmissionMessage = msg
	}
}

func WithResponses(resp analysis.Responses) DiscoveryOption {
	return func(r *domain.DiscoveryRecord) {
		data := analysis.Build(resp)
		r.Data = data
		r.Name = resp.Get(analysis.KeyName)
		r.Email = resp.Get(analysis.KeyEmail)
		r.Complexity = data.Complexity
		r.LeadScore = analysis.LeadScore(data.Complexity)
		r.EstimatedEffort = data.EstimatedEffort
		r.BusinessImpact = data.BusinessImpact
	}
}

func NewTestDiscovery(opts ...DiscoveryOption) *domain.DiscoveryRecord {
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.DiscoveryRecord{
		ID:             uuid.New().String(),
		ConversationID: uuid.New().String(),
		DurationSec:    300,
		StartedAt:      now.Add(-5 * time.Minute),
		CompletedAt:    now,
	}
	WithResponses(SampleResponses())(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}
