package webhook

import "strings"

// topicBucket maps keywords in a user question to a canned answer.
type topicBucket struct {
	Name        string
	Keywords    []string
	Reply       string
	Suggestions []string
}

// Buckets are matched in order; the first with a keyword hit wins.
var topicBuckets = []topicBucket{
	{
		Name:     "cost",
		Keywords: []string{"cost", "price", "pricing", "budget", "how much", "quote", "expensive", "fee"},
		Reply: "Pricing depends on scope, the number of integrations and your timeline. " +
			"Most engagements start with a fixed-price discovery phase, and we share a detailed quote " +
			"after a short consultation. Contact our team or start a project discovery to get an estimate " +
			"tailored to your project.",
		Suggestions: []string{
			"What affects the cost of a project?",
			"Do you offer a fixed-price discovery phase?",
			"How do I book a consultation?",
		},
	},
	{
		Name:     "timeline",
		Keywords: []string{"timeline", "how long", "deadline", "duration", "weeks", "months", "how fast"},
		Reply: "A proof-of-concept usually takes two to four weeks. Production-ready solutions take two to " +
			"three months, and enterprise rollouts are planned in phases over several months. Tight deadlines " +
			"are possible with a narrower first release.",
		Suggestions: []string{
			"What happens in each project phase?",
			"Can you deliver a proof-of-concept quickly?",
			"What do you need from my team to start?",
		},
	},
	{
		Name:     "technology",
		Keywords: []string{"technology", "tech stack", "stack", "llm", "gpt", "model", "tools", "platform", "python"},
		Reply: "We pick technology to fit the problem: large language models from the major providers, " +
			"retrieval over your own documents, workflow automation platforms and cloud-native backends. " +
			"We favour proven, maintainable tools your team can own after handover.",
		Suggestions: []string{
			"Which AI models do you work with?",
			"Can you integrate with our existing systems?",
			"How do you keep our data secure?",
		},
	},
	{
		Name:     "contact",
		Keywords: []string{"contact", "call", "meeting", "talk to", "email", "reach", "book", "consult", "human"},
		Reply: "You can reach our team by email or book a free 30-minute consultation. If you start a project " +
			"discovery, we will send you a written summary and follow up within one to two business days.",
		Suggestions: []string{
			"Start a project discovery",
			"What happens in the consultation?",
			"How quickly will you respond?",
		},
	},
	{
		Name:     "service",
		Keywords: []string{"service", "offer", "what do you do", "what can you", "help with", "automation", "chatbot", "agent"},
		Reply: "We design and build AI automation for businesses: customer-support assistants, document " +
			"processing, internal knowledge bots and workflow automation that connects your existing tools. " +
			"Every engagement starts with understanding the business problem before any code is written.",
		Suggestions: []string{
			"What kind of processes can you automate?",
			"Do you have examples of past projects?",
			"How much does a typical project cost?",
		},
	},
}

const genericReply = "Thanks for your question! We help businesses identify where AI automation saves the " +
	"most time and money, then design and build it with them. Tell me a little more about what you are " +
	"trying to achieve, or ask about our services, pricing, technology or timelines."

var genericSuggestions = []string{
	"What services do you offer?",
	"How much does a project cost?",
	"How long does a typical project take?",
}

// InitialSuggestions are offered before the first QA exchange.
func InitialSuggestions() []string {
	return []string{
		"What AI automation services do you offer?",
		"How much does an AI project cost?",
		"Which technologies do you use?",
		"How long does a typical project take?",
	}
}

// matchBucket returns the first bucket whose keywords appear in message.
func matchBucket(message string) *topicBucket {
	lower := strings.ToLower(message)
	for i := range topicBuckets {
		for _, kw := range topicBuckets[i].Keywords {
			if strings.Contains(lower, kw) {
				return &topicBuckets[i]
			}
		}
	}
	return nil
}

// FallbackQAReply produces a local answer without any remote call.
func FallbackQAReply(message string) *QAReply {
	reply := &QAReply{
		Text:               genericReply,
		SuggestedQuestions: append([]string{}, genericSuggestions...),
		Source:             SourceFallback,
	}
	if b := matchBucket(message); b != nil {
		reply.Text = b.Reply
		reply.SuggestedQuestions = append([]string{}, b.Suggestions...)
	}
	return reply
}

// FallbackSuggestions picks follow-up questions for message by keyword bucket.
func FallbackSuggestions(message string) []string {
	return FallbackQAReply(message).SuggestedQuestions
}

// FallbackTopic names the bucket message falls into, or "general".
func FallbackTopic(message string) string {
	if b := matchBucket(message); b != nil {
		return b.Name
	}
	return "general"
}
