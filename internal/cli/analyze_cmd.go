package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <responses.yaml|->",
		Short: "Run the project analysis over a file of discovery answers",
		Long: "Reads a YAML or JSON map of question id to answer (optionally nested under\n" +
			"a top-level \"responses\" key) and prints the complexity, insights, risk flags,\n" +
			"suggested stack and delivery plan. Use - to read from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			responses, err := parseResponses(raw)
			if err != nil {
				return err
			}
			warnUnknownKeys(cmd.ErrOrStderr(), app, responses)

			data := analysis.Build(responses)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAnalysis(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading responses: %w", err)
	}
	return data, nil
}

// parseResponses decodes a flat answer map. Scalars of any type become strings.
func parseResponses(raw []byte) (analysis.Responses, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding responses: %w", err)
	}
	if nested, ok := doc["responses"].(map[string]any); ok {
		doc = nested
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("no responses found")
	}

	out := make(analysis.Responses, len(doc))
	for k, v := range doc {
		switch val := v.(type) {
		case nil:
			continue
		case map[string]any, []any:
			return nil, fmt.Errorf("response %q must be a single value", k)
		case bool:
			out[k] = map[bool]string{true: "Yes", false: "No"}[val]
		default:
			out[k] = strings.TrimSpace(fmt.Sprint(val))
		}
	}
	return out, nil
}

// warnUnknownKeys notes answers that match no catalog question.
func warnUnknownKeys(w io.Writer, app *App, r analysis.Responses) {
	cat := app.catalog()
	keys := make([]string, 0, len(r))
	for k := range r {
		if cat.FindQuestion(k) == nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("note: %q is not a catalog question", k)))
	}
}
