package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
)

// FormatDiscoveryList renders stored discoveries as a table, newest first.
func FormatDiscoveryList(records []*domain.DiscoveryRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No discoveries recorded yet. Run 'leadflow chat --mode project' to start one.") + "\n"
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			TruncID(r.ID),
			r.DisplayName(),
			orDash(r.Email),
			ComplexityBadge(r.Complexity),
			fmt.Sprintf("%d", r.LeadScore),
			submittedPill(r.Submitted),
			HumanTimestampFrom(r.CompletedAt, now),
		})
	}
	return RenderTable(
		[]string{"ID", "NAME", "EMAIL", "COMPLEXITY", "SCORE", "LEAD", "COMPLETED"},
		rows,
	)
}

// FormatDiscovery renders one stored discovery with its answers and analysis.
func FormatDiscovery(r *domain.DiscoveryRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:        "), r.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("Contact:   "), contactLine(r))
	fmt.Fprintf(&b, "%s %s\n", Dim("Completed: "), r.CompletedAt.Local().Format("Jan 2, 2006 15:04"))
	fmt.Fprintf(&b, "%s %s\n", Dim("Duration:  "), FormatSeconds(r.DurationSec))
	fmt.Fprintf(&b, "%s %s", Dim("Lead:      "), submittedPill(r.Submitted))
	if r.SubmissionMessage != "" {
		b.WriteString(Dim("  " + r.SubmissionMessage))
	}
	b.WriteString("\n")

	if r.Data != nil && len(r.Data.Responses) > 0 {
		b.WriteString("\n" + Header("Answers") + "\n")
		keys := make([]string, 0, len(r.Data.Responses))
		for k := range r.Data.Responses {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([][]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, []string{StyleGreen.Render(k), r.Data.Responses[k]})
		}
		b.WriteString(RenderTable([]string{"QUESTION", "ANSWER"}, rows))
	}

	out := RenderBox("Discovery", strings.TrimRight(b.String(), "\n"))
	if r.Data != nil {
		out += "\n" + FormatAnalysis(r.Data)
	}
	return out + "\n"
}

func contactLine(r *domain.DiscoveryRecord) string {
	if r.Email == "" {
		return r.DisplayName()
	}
	return fmt.Sprintf("%s <%s>", r.DisplayName(), r.Email)
}

func submittedPill(submitted bool) string {
	if submitted {
		return StyleGreen.Render("✔ sent")
	}
	return StyleYellow.Render("○ local")
}
