package analysis

// Risk flag tags.
const (
	FlagAggressiveTimeline       = "aggressive-timeline"
	FlagUndefinedSuccessCriteria = "undefined-success-criteria"
	FlagVagueProjectScope        = "vague-project-scope"
	FlagIntegrationComplexity    = "integration-complexity"
	FlagTechnicalGuidanceNeeded  = "technical-guidance-needed"
)

// GenerateInsights applies each insight rule independently. Any number may fire.
func GenerateInsights(r Responses) []Insight {
	insights := []Insight{}

	if hasSubstantiveProblem(r) {
		insights = append(insights, Insight{
			Type:        InsightImmediate,
			Title:       "Clear business problem",
			Description: "A well-defined problem lets us target automation where it pays back fastest.",
			Impact:      ImpactHigh,
		})
	}
	if isUrgent(r) {
		insights = append(insights, Insight{
			Type:        InsightRisk,
			Title:       "Aggressive timeline",
			Description: "An ASAP timeline calls for a narrow first release and weekly checkpoints.",
			Impact:      ImpactHigh,
		})
	}
	if lacksTechnicalBackground(r) {
		insights = append(insights, Insight{
			Type:        InsightTechnical,
			Title:       "Guided delivery recommended",
			Description: "Without an in-house technical team we will include training and hands-on support.",
			Impact:      ImpactMedium,
		})
	}
	if needsSeveralIntegrations(r) {
		insights = append(insights, Insight{
			Type:        InsightTechnical,
			Title:       "Integration-heavy architecture",
			Description: "Several integrations mean API access and data mapping should be settled early.",
			Impact:      ImpactHigh,
		})
	}
	if isEnterprise(r) {
		insights = append(insights, Insight{
			Type:        InsightOpportunity,
			Title:       "Organisation-wide leverage",
			Description: "Enterprise scale allows shared AI services to be reused across teams.",
			Impact:      ImpactMedium,
		})
	}

	return insights
}

// IdentifyRiskFlags returns the risk tags that apply to the responses.
func IdentifyRiskFlags(r Responses) []string {
	flags := []string{}

	if isUrgent(r) {
		flags = append(flags, FlagAggressiveTimeline)
	}
	if len(r.Get(KeySuccessCriteria)) < 10 {
		flags = append(flags, FlagUndefinedSuccessCriteria)
	}
	if len(r.Get(KeyProjectIdea)) < 20 {
		flags = append(flags, FlagVagueProjectScope)
	}
	if needsSeveralIntegrations(r) {
		flags = append(flags, FlagIntegrationComplexity)
	}
	if lacksTechnicalBackground(r) {
		flags = append(flags, FlagTechnicalGuidanceNeeded)
	}

	return flags
}

// AssessBusinessImpact summarises the expected business value in one of four tiers.
func AssessBusinessImpact(r Responses) string {
	problem := hasSubstantiveProblem(r)
	criteria := hasSubstantiveCriteria(r)
	scaled := isEnterprise(r) || isProduction(r)

	switch {
	case isEnterprise(r) && problem && criteria:
		return "Transformational: an enterprise-wide solution to a well-defined problem with measurable success criteria."
	case scaled && problem:
		return "High: a production-grade solution addressing a clear business problem."
	case problem || criteria:
		return "Moderate: a focused improvement with a defined goal, suited to an incremental rollout."
	default:
		return "Exploratory: a good candidate for a proof-of-concept to validate value before investing further."
	}
}
