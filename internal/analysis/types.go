// Package analysis derives project insights from a completed discovery.
//
// Every function here is pure: the same Responses always produce the same output.
package analysis

import "strings"

// Response keys read by the engine.
const (
	KeyProjectIdea         = "project_idea"
	KeyBusinessProblem     = "business_problem"
	KeySuccessCriteria     = "success_criteria"
	KeyProjectScale        = "project_scale"
	KeyIntegrations        = "integrations"
	KeyTimeline            = "timeline"
	KeyTechnicalExperience = "technical_experience"
	KeyExistingData        = "existing_data"
	KeyName                = "name"
	KeyEmail               = "email"
)

// Responses maps question id to the accepted answer text.
type Responses map[string]string

// Get returns the trimmed answer for key, or "" when absent.
func (r Responses) Get(key string) string {
	return strings.TrimSpace(r[key])
}

func (r Responses) contains(key, needle string) bool {
	return strings.Contains(strings.ToLower(r.Get(key)), needle)
}

// Complexity is the overall project complexity tier.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityStandard Complexity = "standard"
	ComplexityComplex  Complexity = "complex"
)

func (c Complexity) rank() int {
	switch c {
	case ComplexityComplex:
		return 2
	case ComplexityStandard:
		return 1
	default:
		return 0
	}
}

// InsightType classifies what an insight is about.
type InsightType string

const (
	InsightImmediate   InsightType = "immediate"
	InsightRisk        InsightType = "risk"
	InsightTechnical   InsightType = "technical"
	InsightOpportunity InsightType = "opportunity"
)

// Impact is the weight of an insight.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Insight is one rule-derived observation about the project.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Impact      Impact      `json:"impact"`
}

// Phases holds the three delivery phase task lists.
type Phases struct {
	Phase1 []string `json:"phase1"`
	Phase2 []string `json:"phase2"`
	Phase3 []string `json:"phase3"`
}

// EnhancedConversationData is the analysis bundle computed once when discovery completes.
type EnhancedConversationData struct {
	Responses       Responses  `json:"responses"`
	Insights        []Insight  `json:"insights"`
	Complexity      Complexity `json:"complexity"`
	RiskFlags       []string   `json:"riskFlags"`
	TechStack       []string   `json:"techStack"`
	Phases          Phases     `json:"phases"`
	EstimatedEffort string     `json:"estimatedEffort"`
	BusinessImpact  string     `json:"businessImpact"`
}

// Build runs every analysis over responses. The returned data holds its own copy
// of the map so later changes to the input do not leak into it.
func Build(responses Responses) *EnhancedConversationData {
	snapshot := make(Responses, len(responses))
	for k, v := range responses {
		snapshot[k] = v
	}

	complexity := AssessComplexity(snapshot)
	return &EnhancedConversationData{
		Responses:       snapshot,
		Insights:        GenerateInsights(snapshot),
		Complexity:      complexity,
		RiskFlags:       IdentifyRiskFlags(snapshot),
		TechStack:       SuggestTechStack(snapshot),
		Phases:          PlanPhases(snapshot, complexity),
		EstimatedEffort: EstimateEffort(snapshot, complexity),
		BusinessImpact:  AssessBusinessImpact(snapshot),
	}
}

// LeadScore rates a lead for the sales team by complexity.
func LeadScore(c Complexity) int {
	switch c {
	case ComplexityComplex:
		return 9
	case ComplexityStandard:
		return 7
	default:
		return 5
	}
}
