package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"just now", now.Add(-20 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-30 * time.Hour), "Yesterday"},
		{"older", now.Add(-10 * 24 * time.Hour), "Jan 28, 2026"},
		{"future", now.Add(2 * time.Hour), "Feb 7, 2026 14:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0s"},
		{-4, "0s"},
		{42, "42s"},
		{60, "1m"},
		{250, "4m 10s"},
		{3600, "1h"},
		{3900, "1h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSeconds(tt.in), tt.in)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	assert.Equal(t, "one two\nthree\nfour", got)

	assert.Equal(t, "a\n\nb", wrapText("a\n\nb", 10))
	assert.Equal(t, "keep it", wrapText("  keep it  ", 0))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"ID", "NAME"},
		[][]string{{"1", "Dana"}, {"22", StyleGreen.Render("Li")}},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		"ID  NAME",
		"──  ────",
		"1   Dana",
		"22  Li",
	}, lines)
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[██░░] 5/10", stripANSI(RenderProgress(5, 10, 4)))
	assert.Equal(t, "[████] 10/10", stripANSI(RenderProgress(12, 10, 4)))
	assert.Equal(t, "[░░] 0/3", stripANSI(RenderProgress(-1, 3, 1)))
	assert.Empty(t, RenderProgress(1, 0, 4))
}

func TestFormatMessage(t *testing.T) {
	user := stripANSI(FormatMessage(bot.Message{Role: bot.RoleUser, Text: "hello"}))
	assert.Equal(t, "You: hello", user)

	reply := stripANSI(FormatMessage(bot.Message{Role: bot.RoleBot, Text: "Pick one:\n1. Prototype\n2. Production"}))
	assert.Equal(t, "Bot:\n  Pick one:\n  1. Prototype\n  2. Production", reply)
}

func TestFormatSuggestions(t *testing.T) {
	assert.Empty(t, FormatSuggestions(nil))

	out := stripANSI(FormatSuggestions([]string{"What do you build?", "How much?"}))
	assert.Contains(t, out, "1. What do you build?")
	assert.Contains(t, out, "2. How much?")
}

func TestFormatChatWelcome_OnboardingTips(t *testing.T) {
	first := stripANSI(FormatChatWelcome(bot.ModeProject, true))
	assert.Contains(t, first, "project discovery")
	assert.Contains(t, first, "/quit exits")

	again := stripANSI(FormatChatWelcome(bot.ModeQA, false))
	assert.Contains(t, again, "assistant")
	assert.NotContains(t, again, "/quit")
}

func TestFormatAnalysis(t *testing.T) {
	assert.Empty(t, FormatAnalysis(nil))

	data := analysis.Build(analysis.Responses{
		analysis.KeyProjectIdea:     "Automate invoice triage with document AI",
		analysis.KeyBusinessProblem: "Finance spends two days a week sorting supplier invoices by hand",
		analysis.KeyProjectScale:    "Enterprise rollout across business units",
		analysis.KeyIntegrations:    "Several systems (4+)",
		analysis.KeyTimeline:        "ASAP (under 1 month)",
	})
	out := stripANSI(FormatAnalysis(data))

	assert.Contains(t, out, "PROJECT ANALYSIS")
	assert.Contains(t, out, "● COMPLEX")
	assert.Contains(t, out, "lead score 9")
	assert.Contains(t, out, "DELIVERY PLAN")
	assert.Contains(t, out, "Phase 1")
	assert.Contains(t, out, data.EstimatedEffort)
}

func TestFormatCatalog(t *testing.T) {
	out := stripANSI(FormatCatalog(catalog.Default()))

	assert.Contains(t, out, "0. GETTING STARTED (ROUTING)")
	assert.Contains(t, out, "PROJECT VISION")
	assert.Contains(t, out, "[text, email]")
	assert.Contains(t, out, "discovery questions across 4 waves")
}

func TestFormatDiscoveryList(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	assert.Contains(t, stripANSI(FormatDiscoveryList(nil, now)), "No discoveries recorded yet")

	out := stripANSI(FormatDiscoveryList([]*domain.DiscoveryRecord{
		{ID: "0123456789abcdef", Name: "Dana", Email: "dana@example.com", Complexity: analysis.ComplexityComplex,
			LeadScore: 9, Submitted: true, CompletedAt: now.Add(-2 * time.Hour)},
		{ID: "fedcba9876543210", Complexity: analysis.ComplexitySimple, LeadScore: 5, CompletedAt: now.Add(-3 * time.Minute)},
	}, now))

	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "✔ sent")
	assert.Contains(t, out, "(anonymous)")
	assert.Contains(t, out, "○ local")
	assert.Contains(t, out, "2h ago")
}

func TestFormatDiscovery(t *testing.T) {
	rec := &domain.DiscoveryRecord{
		ID:                "rec-1",
		Name:              "Dana",
		Email:             "dana@example.com",
		Complexity:        analysis.ComplexitySimple,
		Submitted:         true,
		SubmissionMessage: "Received",
		DurationSec:       250,
		CompletedAt:       time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC),
		Data:              analysis.Build(analysis.Responses{analysis.KeyName: "Dana", analysis.KeyProjectIdea: "A chatbot"}),
	}
	out := stripANSI(FormatDiscovery(rec))

	assert.Contains(t, out, "Dana <dana@example.com>")
	assert.Contains(t, out, "4m 10s")
	assert.Contains(t, out, "Received")
	assert.Contains(t, out, "project_idea")
	assert.Contains(t, out, "PROJECT ANALYSIS")
}
