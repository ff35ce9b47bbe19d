package analysis

// Factor scores that feed AssessComplexity. The total decides the tier.
const (
	complexThreshold  = 6
	standardThreshold = 3
)

// ComplexityFactors breaks the complexity score into its weighted parts.
type ComplexityFactors struct {
	Integrations int // 0, 1 or 2
	Scale        int // 1, 2 or 3
	Urgency      int // 0 or 2
	Experience   int // 0, 1 or 2; less experience scores higher
}

// Total sums the factors.
func (f ComplexityFactors) Total() int {
	return f.Integrations + f.Scale + f.Urgency + f.Experience
}

// ScoreComplexity computes the individual complexity factors.
func ScoreComplexity(r Responses) ComplexityFactors {
	var f ComplexityFactors

	switch {
	case needsSeveralIntegrations(r):
		f.Integrations = 2
	case r.contains(KeyIntegrations, "one or two"):
		f.Integrations = 1
	}

	switch {
	case isEnterprise(r):
		f.Scale = 3
	case isProduction(r):
		f.Scale = 2
	default:
		f.Scale = 1
	}

	if isUrgent(r) {
		f.Urgency = 2
	}

	switch {
	case lacksTechnicalBackground(r):
		f.Experience = 2
	case r.contains(KeyTechnicalExperience, "some technical"):
		f.Experience = 1
	}

	return f
}

// AssessComplexity classifies the project as simple, standard or complex.
func AssessComplexity(r Responses) Complexity {
	total := ScoreComplexity(r).Total()
	switch {
	case total >= complexThreshold:
		return ComplexityComplex
	case total >= standardThreshold:
		return ComplexityStandard
	default:
		return ComplexitySimple
	}
}

func isEnterprise(r Responses) bool { return r.contains(KeyProjectScale, "enterprise") }

func isProduction(r Responses) bool { return r.contains(KeyProjectScale, "production") }

func isUrgent(r Responses) bool { return r.contains(KeyTimeline, "asap") }

func needsSeveralIntegrations(r Responses) bool { return r.contains(KeyIntegrations, "several") }

func lacksTechnicalBackground(r Responses) bool {
	return r.contains(KeyTechnicalExperience, "no technical")
}

func hasSubstantiveProblem(r Responses) bool { return len(r.Get(KeyBusinessProblem)) > 20 }

func hasSubstantiveCriteria(r Responses) bool { return len(r.Get(KeySuccessCriteria)) > 10 }
