package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadflow/internal/analysis"
)

// FormatAnalysis renders the project analysis produced at the end of discovery.
func FormatAnalysis(data *analysis.EnhancedConversationData) string {
	if data == nil {
		return ""
	}
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", ComplexityBadge(data.Complexity),
		Dim(fmt.Sprintf("lead score %d", analysis.LeadScore(data.Complexity))))
	fmt.Fprintf(&b, "%s %s\n", Dim("Estimated effort:"), orDash(data.EstimatedEffort))
	fmt.Fprintf(&b, "%s %s\n", Dim("Business impact: "), orDash(data.BusinessImpact))

	if len(data.Insights) > 0 {
		b.WriteString("\n" + Header("Insights") + "\n")
		for _, in := range data.Insights {
			fmt.Fprintf(&b, "  %s %s\n", ImpactStyle(in.Impact).Render("●"), Bold(in.Title))
			b.WriteString(Dim(indentWrapped(in.Description, 4, wrapWidth-4)) + "\n")
		}
	}

	if len(data.RiskFlags) > 0 {
		b.WriteString("\n" + Header("Risk flags") + "\n")
		for _, flag := range data.RiskFlags {
			fmt.Fprintf(&b, "  %s %s\n", StyleYellow.Render("▲"), flag)
		}
	}

	if len(data.TechStack) > 0 {
		b.WriteString("\n" + Header("Suggested stack") + "\n")
		b.WriteString("  " + strings.Join(data.TechStack, Dim(" · ")) + "\n")
	}

	phases := []struct {
		name  string
		tasks []string
	}{
		{"Phase 1", data.Phases.Phase1},
		{"Phase 2", data.Phases.Phase2},
		{"Phase 3", data.Phases.Phase3},
	}
	b.WriteString("\n" + Header("Delivery plan") + "\n")
	for _, p := range phases {
		b.WriteString("  " + StyleGreen.Render(p.name) + "\n")
		if len(p.tasks) == 0 {
			b.WriteString("    " + Dim("--") + "\n")
		}
		for _, task := range p.tasks {
			b.WriteString("    - " + task + "\n")
		}
	}

	return RenderBox("Project analysis", strings.TrimRight(b.String(), "\n"))
}
