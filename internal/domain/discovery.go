package domain

import (
	"time"

	"github.com/alexanderramin/leadflow/internal/analysis"
)

// DiscoveryRecord is a completed project discovery kept on the local machine,
// whether or not the lead webhook accepted it.
type DiscoveryRecord struct {
	ID                string
	ConversationID    string
	Name              string
	Email             string
	Complexity        analysis.Complexity
	LeadScore         int
	EstimatedEffort   string
	BusinessImpact    string
	Submitted         bool
	SubmissionMessage string
	Data              *analysis.EnhancedConversationData
	StartedAt         time.Time
	CompletedAt       time.Time
	DurationSec       int
}

// DisplayName returns the captured name or a placeholder.
func (r *DiscoveryRecord) DisplayName() string {
	if r.Name == "" {
		return "(anonymous)"
	}
	return r.Name
}
