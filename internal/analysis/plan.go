package analysis

import (
	"fmt"
	"math"
)

var (
	enterpriseStack  = []string{"Microservices architecture", "Docker containers", "Kubernetes cluster"}
	productionStack  = []string{"REST API backend", "PostgreSQL database", "Managed cloud hosting"}
	prototypeStack   = []string{"Python or Node.js backend", "SQLite database", "Prototype hosting (Vercel, Render)"}
	integrationStack = []string{"API gateway", "Message queue", "Integration platform (n8n, Zapier)"}
)

// SuggestTechStack proposes a stack from the project scale and integration needs.
func SuggestTechStack(r Responses) []string {
	var base []string
	switch {
	case isEnterprise(r):
		base = enterpriseStack
	case isProduction(r):
		base = productionStack
	default:
		base = prototypeStack
	}

	stack := append([]string{}, base...)
	if needsSeveralIntegrations(r) {
		stack = append(stack, integrationStack...)
	}
	return stack
}

// PlanPhases builds the foundation, development and deployment task lists.
func PlanPhases(r Responses, c Complexity) Phases {
	p := Phases{
		Phase1: []string{"Requirements workshop", "Technical architecture", "Data and access audit"},
		Phase2: []string{"Core AI workflow development", "Iterative testing with real data", "User feedback round"},
		Phase3: []string{"Production deployment", "Team onboarding", "Monitoring and alerting"},
	}

	if c == ComplexityComplex {
		p.Phase1 = append(p.Phase1, "Proof-of-concept for high-risk components")
		p.Phase2 = append(p.Phase2, "Performance and scalability engineering")
		p.Phase3 = append(p.Phase3, "Security review and load testing")
	}
	if c.rank() >= ComplexityStandard.rank() {
		p.Phase3 = append(p.Phase3, "Operational runbook")
	}
	if needsSeveralIntegrations(r) {
		p.Phase1 = append(p.Phase1, "Integration mapping and API credentials")
		p.Phase2 = append(p.Phase2, "Third-party integration development")
		p.Phase3 = append(p.Phase3, "End-to-end integration testing")
	}
	if lacksTechnicalBackground(r) {
		p.Phase3 = append(p.Phase3, "Hands-on training sessions")
	}

	return p
}

// Effort multipliers applied to the base weeks.
const (
	integrationMultiplier = 1.5
	urgencyMultiplier     = 1.3
	guidanceMultiplier    = 1.2
)

func baseWeeks(c Complexity) float64 {
	switch c {
	case ComplexityComplex:
		return 16
	case ComplexityStandard:
		return 8
	default:
		return 4
	}
}

// EffortWeeks estimates the delivery effort in whole weeks, rounded up.
func EffortWeeks(r Responses, c Complexity) int {
	weeks := baseWeeks(c)
	if needsSeveralIntegrations(r) {
		weeks *= integrationMultiplier
	}
	if isUrgent(r) {
		weeks *= urgencyMultiplier
	}
	if lacksTechnicalBackground(r) {
		weeks *= guidanceMultiplier
	}
	return int(math.Ceil(weeks))
}

// EstimateEffort renders EffortWeeks for people.
func EstimateEffort(r Responses, c Complexity) string {
	return FormatEffort(EffortWeeks(r, c))
}

// FormatEffort renders weeks up to 6, months up to 12 weeks, and a month range beyond.
func FormatEffort(weeks int) string {
	months := int(math.Ceil(float64(weeks) / 4))
	switch {
	case weeks <= 6:
		return fmt.Sprintf("%d weeks", weeks)
	case weeks <= 12:
		return fmt.Sprintf("%d months", months)
	default:
		return fmt.Sprintf("%d-%d months", months, months+2)
	}
}
