package webhook

// HistoryEntry is one message of the conversation sent to the QA webhook.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BusinessPolicy tells the remote assistant what it may promise.
type BusinessPolicy struct {
	CompanyName       string   `json:"companyName"`
	Focus             string   `json:"focus"`
	ShareExactPricing bool     `json:"shareExactPricing"`
	EscalateToTeam    bool     `json:"escalateToTeam"`
	Tone              string   `json:"tone"`
	AllowedTopics     []string `json:"allowedTopics"`
	MaxSentences      int      `json:"maxResponseSentences"`
}

// DefaultBusinessPolicy is the fixed policy sent with every QA request.
func DefaultBusinessPolicy() BusinessPolicy {
	return BusinessPolicy{
		CompanyName:       "Leadflow AI",
		Focus:             "AI automation consulting",
		ShareExactPricing: false,
		EscalateToTeam:    true,
		Tone:              "professional, friendly",
		AllowedTopics:     []string{"services", "pricing", "technology", "timeline", "contact"},
		MaxSentences:      6,
	}
}

// ConversationFlow carries the QA exchange heuristics.
type ConversationFlow struct {
	ExchangeCount    int    `json:"exchangeCount"`
	EngagementScore  int    `json:"engagementScore"`
	Phase            string `json:"phase"`
	ShouldTransition bool   `json:"shouldTransition"`
}

// QARequest is the body posted to the QA webhook.
type QARequest struct {
	UserMessage         string           `json:"userMessage"`
	ConversationHistory []HistoryEntry   `json:"conversationHistory"`
	SessionID           string           `json:"sessionId"`
	Timestamp           string           `json:"timestamp"`
	BusinessPolicy      BusinessPolicy   `json:"businessPolicy"`
	ConversationFlow    ConversationFlow `json:"conversationFlow"`
}

// Reply sources.
const (
	SourceWebhook  = "webhook"
	SourceFallback = "fallback"
)

// QAReply is the decoded QA answer.
type QAReply struct {
	Text                     string
	SuggestedQuestions       []string
	RequiresTeamConsultation bool
	Source                   string
}

// QuestionAnswer is one answered discovery question.
type QuestionAnswer struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
	Answer       string `json:"answer"`
	Timestamp    string `json:"timestamp"`
}

// ProjectData is the discovery payload.
type ProjectData struct {
	QuestionsAnswers []QuestionAnswer `json:"questionsAnswers"`
	TotalQuestions   int              `json:"totalQuestions"`
	CompletionTime   int64            `json:"completionTime"` // seconds
	LeadScore        int              `json:"leadScore"`
	ConversationPath []string         `json:"conversationPath"`
}

// SubmissionMetadata summarises the analysis for the sales team.
type SubmissionMetadata struct {
	Source          string   `json:"source"`
	ClientVersion   string   `json:"clientVersion"`
	Complexity      string   `json:"complexity"`
	RiskFlags       []string `json:"riskFlags"`
	TechStack       []string `json:"techStack"`
	EstimatedEffort string   `json:"estimatedEffort"`
	BusinessImpact  string   `json:"businessImpact"`
}

// ProjectSubmission is the body posted to the project-data webhook.
type ProjectSubmission struct {
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	Timestamp   string             `json:"timestamp"`
	SessionID   string             `json:"sessionId"`
	ProjectData ProjectData        `json:"projectData"`
	Metadata    SubmissionMetadata `json:"metadata"`
}

// SubmitResult is the decoded project-data answer.
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
