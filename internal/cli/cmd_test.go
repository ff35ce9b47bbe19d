package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/repository"
	"github.com/alexanderramin/leadflow/internal/service"
	"github.com/alexanderramin/leadflow/internal/testutil"
	"github.com/alexanderramin/leadflow/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires a full App backed by an in-memory DB. With cfg nil the gateway
// has no endpoints and every remote call falls back locally.
func testApp(t *testing.T, cfg *webhook.Config) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	prefs := repository.NewSQLitePreferenceRepo(database)

	gwCfg := webhook.DefaultConfig()
	if cfg != nil {
		gwCfg = *cfg
	}

	return &App{
		Gateway: webhook.NewGateway(gwCfg, webhook.NoopObserver{}),
		Discoveries: service.NewDiscoveryService(
			repository.NewSQLiteDiscoveryRepo(database),
			prefs,
			testutil.NewTestUoW(database),
		),
		Gates: service.NewGateService(prefs),
		Bot:   bot.Options{Scheduler: bot.ImmediateScheduler{}},
	}
}

func webhookConfig(qaURL, projectURL string) *webhook.Config {
	cfg := webhook.DefaultConfig()
	cfg.MaxRetries = 0
	cfg.Endpoints[webhook.EndpointQA] = webhook.EndpointConfig{URL: qaURL, TimeoutMs: 2000}
	cfg.Endpoints[webhook.EndpointProject] = webhook.EndpointConfig{URL: projectURL, TimeoutMs: 2000}
	return &cfg
}

// executeCmd runs a cobra command with stdin and returns stdout and stderr combined.
func executeCmd(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stripANSI(buf.String()), err
}

func discoveryInput() string {
	return strings.Join(testutil.DiscoveryInput(), "\n") + "\n"
}

// --- catalog ---

func TestCatalogCmd_ListsWaves(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "", "catalog")
	require.NoError(t, err)

	assert.Contains(t, out, "GETTING STARTED (ROUTING)")
	assert.Contains(t, out, "SCOPE AND SCALE")
	assert.Contains(t, out, "CONTACT DETAILS")
	assert.Contains(t, out, "project_idea")
}

func TestCatalogCmd_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waves.yaml")
	require.NoError(t, os.WriteFile(path, []byte("waves: []\n"), 0o644))

	_, err := executeCmd(t, testApp(t, nil), "", "catalog", "--file", path)
	assert.ErrorContains(t, err, "no waves")
}

// --- analyze ---

func TestAnalyzeCmd_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project_idea: An assistant that triages inbound support tickets
project_scale: Enterprise-scale system
integrations: Several integrations (CRM, ERP, payments, etc.)
timeline: ASAP (within a month)
existing_data: true
budget: 50000
`), 0o644))

	out, err := executeCmd(t, testApp(t, nil), "", "analyze", path)
	require.NoError(t, err)

	assert.Contains(t, out, "PROJECT ANALYSIS")
	assert.Contains(t, out, "● COMPLEX")
	assert.Contains(t, out, `note: "budget" is not a catalog question`)
}

func TestAnalyzeCmd_JSONFromStdin(t *testing.T) {
	in := `{"responses": {"project_idea": "A small FAQ bot", "project_scale": "Quick proof-of-concept"}}`

	out, err := executeCmd(t, testApp(t, nil), in, "analyze", "-", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "simple", got["complexity"])
	assert.Equal(t, "A small FAQ bot", got["responses"].(map[string]any)["project_idea"])
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "", "analyze", "-")
	assert.ErrorContains(t, err, "no responses found")

	_, err = executeCmd(t, app, "project_idea: [a, b]\n", "analyze", "-")
	assert.ErrorContains(t, err, "must be a single value")

	_, err = executeCmd(t, app, "", "analyze", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading responses")
}

func TestParseResponses_Scalars(t *testing.T) {
	got, err := parseResponses([]byte("existing_data: false\nname: ' Dana '\nteam_size: 4\nempty:\n"))
	require.NoError(t, err)
	assert.Equal(t, "No", got["existing_data"])
	assert.Equal(t, "Dana", got["name"])
	assert.Equal(t, "4", got["team_size"])
	assert.NotContains(t, got, "empty")
}

// --- ask ---

func TestAskCmd_FallsBackWithoutWebhook(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "", "ask", "How", "much", "does", "it", "cost?")
	require.NoError(t, err)

	assert.Contains(t, out, "Bot:")
	assert.Contains(t, out, "Suggestions:")
}

func TestAskCmd_UsesWebhookReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req webhook.QARequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What do you build?", req.UserMessage)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"response":           "We build AI assistants for support teams.",
			"suggestedQuestions": []string{"How long does it take?"},
		})
	}))
	defer srv.Close()

	out, err := executeCmd(t, testApp(t, webhookConfig(srv.URL, "")), "", "ask", "What do you build?")
	require.NoError(t, err)

	assert.Contains(t, out, "We build AI assistants for support teams.")
	assert.Contains(t, out, "1. How long does it take?")
}

// --- chat (plain) ---

func TestChatCmd_ProjectDiscoveryIsStored(t *testing.T) {
	app := testApp(t, nil)

	out, err := executeCmd(t, app, discoveryInput(), "chat", "--mode", "project")
	require.NoError(t, err)

	assert.Contains(t, out, "Welcome to project discovery!")
	assert.Contains(t, out, "Now let's talk about Scope and Scale.")
	assert.Contains(t, out, "Here's a summary of your project")
	assert.Contains(t, out, "PROJECT ANALYSIS")
	assert.Contains(t, out, "Saved discovery")

	rec, err := app.Discoveries.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dana", rec.Name)
	assert.Equal(t, "dana@example.com", rec.Email)
	assert.Equal(t, 9, rec.LeadScore)
	assert.False(t, rec.Submitted)

	list, err := executeCmd(t, app, "", "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, list, "Dana")
	assert.Contains(t, list, "○ local")

	show, err := executeCmd(t, app, "", "sessions", "show", rec.ID)
	require.NoError(t, err)
	assert.Contains(t, show, "Dana <dana@example.com>")
	assert.Contains(t, show, "business_problem")

	latest, err := executeCmd(t, app, "", "sessions", "show", "--json")
	require.NoError(t, err)
	assert.Contains(t, latest, rec.ID)
}

func TestChatCmd_SubmittedDiscovery(t *testing.T) {
	var got webhook.ProjectSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "message": "Proposal on its way."}`))
	}))
	defer srv.Close()

	app := testApp(t, webhookConfig("", srv.URL))
	out, err := executeCmd(t, app, discoveryInput(), "chat", "--mode", "project", "--plain")
	require.NoError(t, err)

	assert.Contains(t, out, "Your project brief has been sent to our team.")
	assert.Contains(t, out, "Proposal on its way.")
	assert.Equal(t, "dana@example.com", got.Email)
	assert.Equal(t, 9, got.ProjectData.LeadScore)

	rec, err := app.Discoveries.Latest(context.Background())
	require.NoError(t, err)
	assert.True(t, rec.Submitted)
	assert.Equal(t, "Proposal on its way.", rec.SubmissionMessage)
}

func TestChatCmd_ValidationMessages(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "\ntoo short\n/quit\n", "chat", "--mode", "project")
	require.NoError(t, err)

	assert.Contains(t, out, "! This field is required.")
	assert.Contains(t, out, "! Please provide a bit more detail")
	assert.NotContains(t, out, "Saved discovery")
}

func TestChatCmd_OnboardingShownOnceUntilReset(t *testing.T) {
	app := testApp(t, nil)

	first, err := executeCmd(t, app, "/quit\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, first, "/quit exits")

	second, err := executeCmd(t, app, "/quit\n", "chat")
	require.NoError(t, err)
	assert.NotContains(t, second, "/quit exits")

	reset, err := executeCmd(t, app, "", "gates", "reset")
	require.NoError(t, err)
	assert.Contains(t, reset, "Reset 1 gate(s).")

	third, err := executeCmd(t, app, "/quit\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, third, "/quit exits")
}

func TestChatCmd_QASuggestionAndModeSwitch(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "1\n/mode project\n/mode nope\n", "chat", "--mode", "qa")
	require.NoError(t, err)

	assert.Contains(t, out, "Suggestions:")
	assert.Contains(t, out, "new project conversation")
	assert.Contains(t, out, "Welcome to project discovery!")
	assert.Contains(t, out, "Error: unknown bot mode")
}

func TestChatCmd_DiscoverySuggestionSwitchesMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"response":                 "That sounds like a custom build. Let's plan it.",
			"suggestedQuestions":       []string{"What does it cost?"},
			"requiresTeamConsultation": true,
		})
	}))
	defer srv.Close()

	out, err := executeCmd(t, testApp(t, webhookConfig(srv.URL, "")), "Can you build a custom agent?\n1\n", "chat", "--mode", "qa")
	require.NoError(t, err)

	assert.Contains(t, out, "1. "+bot.SuggestionStartDiscovery)
	assert.Contains(t, out, "Welcome to project discovery!")
}

func TestChatCmd_UnknownMode(t *testing.T) {
	_, err := executeCmd(t, testApp(t, nil), "", "chat", "--mode", "sales")
	assert.ErrorIs(t, err, bot.ErrUnknownMode)
}

func TestChatSession_UnknownSlashCommand(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "/help\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, `unknown command "/help"`)
}

// --- sessions / gates ---

func TestSessionsShow_NothingStored(t *testing.T) {
	_, err := executeCmd(t, testApp(t, nil), "", "sessions", "show")
	assert.ErrorContains(t, err, "no discovery found")
}

func TestSessionsList_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "", "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No discoveries recorded yet")
}

func TestCommands_WithoutStorage(t *testing.T) {
	app := &App{}

	_, err := executeCmd(t, app, "", "sessions", "list")
	assert.ErrorIs(t, err, errNoStore)

	_, err = executeCmd(t, app, "", "gates", "reset", "--yes")
	assert.ErrorIs(t, err, errNoStore)
}

func TestGatesReset_ConfirmationDeclined(t *testing.T) {
	app := testApp(t, nil)
	app.IsInteractive = func() bool { return true }

	out, err := executeCmd(t, app, "n\n", "gates", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
}
