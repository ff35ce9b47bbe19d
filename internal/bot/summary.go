package bot

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadflow/internal/analysis"
)

const notSpecified = "Not specified"

var summaryFields = []struct {
	label string
	key   string
}{
	{"Project", analysis.KeyProjectIdea},
	{"Business problem", analysis.KeyBusinessProblem},
	{"Success criteria", analysis.KeySuccessCriteria},
	{"Scale", analysis.KeyProjectScale},
	{"Integrations", analysis.KeyIntegrations},
	{"Timeline", analysis.KeyTimeline},
	{"Technical experience", analysis.KeyTechnicalExperience},
	{"Existing data", analysis.KeyExistingData},
}

// FallbackSummary renders the closing message used when the discovery could not be
// submitted. Every field is optional.
func FallbackSummary(responses analysis.Responses, data *analysis.EnhancedConversationData) string {
	var b strings.Builder

	name := strings.TrimSpace(responses.Get(analysis.KeyName))
	if name != "" {
		fmt.Fprintf(&b, "Thanks, %s! Here's a summary of your project:\n\n", name)
	} else {
		b.WriteString("Thanks! Here's a summary of your project:\n\n")
	}

	for _, f := range summaryFields {
		fmt.Fprintf(&b, "- %s: %s\n", f.label, valueOr(responses.Get(f.key)))
	}
	if data != nil {
		fmt.Fprintf(&b, "- Complexity: %s\n", data.Complexity)
		fmt.Fprintf(&b, "- Estimated effort: %s\n", data.EstimatedEffort)
	}

	b.WriteString("\n")
	if email := strings.TrimSpace(responses.Get(analysis.KeyEmail)); email != "" {
		fmt.Fprintf(&b, "Our team will review this and reach out at %s within one business day.", email)
	} else {
		b.WriteString("Share an email address with our team to receive a detailed proposal.")
	}
	return b.String()
}

func submittedMessage(responses analysis.Responses, serverMessage string) string {
	name := valueOr(responses.Get(analysis.KeyName))
	if name == notSpecified {
		name = "there"
	}
	msg := fmt.Sprintf("Thanks, %s! Your project brief has been sent to our team. We'll follow up at %s shortly.",
		name, responses.Get(analysis.KeyEmail))
	if s := strings.TrimSpace(serverMessage); s != "" {
		msg += "\n\n" + s
	}
	return msg
}

func valueOr(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return notSpecified
	}
	return v
}
