package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// qaWire is the union of reply shapes seen from workflow runners.
type qaWire struct {
	Response                 string   `json:"response"`
	Text                     string   `json:"text"`
	Output                   string   `json:"output"`
	SuggestedQuestions       []string `json:"suggestedQuestions"`
	RequiresTeamConsultation bool     `json:"requiresTeamConsultation"`
}

// decodeQAReply accepts a bare object, a single-element array wrapping one,
// a JSON object embedded in prose or code fences, or plain text.
func decodeQAReply(body []byte) (*QAReply, error) {
	raw := bytes.TrimSpace(body)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}

	obj, err := unwrapObject(raw)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		// Plain-text reply.
		return &QAReply{Text: string(raw)}, nil
	}

	var w qaWire
	if err := json.Unmarshal(obj, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	text := firstNonEmpty(w.Response, w.Text, w.Output)
	if text == "" {
		return nil, fmt.Errorf("%w: no response text", ErrInvalidResponse)
	}

	return &QAReply{
		Text:                     text,
		SuggestedQuestions:       cleanSuggestions(w.SuggestedQuestions),
		RequiresTeamConsultation: w.RequiresTeamConsultation,
	}, nil
}

func decodeSubmitResult(body []byte) (*SubmitResult, error) {
	raw := bytes.TrimSpace(body)
	if len(raw) == 0 {
		// A bare 2xx acknowledges the lead.
		return &SubmitResult{Success: true}, nil
	}

	obj, err := unwrapObject(raw)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return &SubmitResult{Success: true, Message: string(raw)}, nil
	}

	var result SubmitResult
	if err := json.Unmarshal(obj, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &result, nil
}

// unwrapObject returns the JSON object held in raw, or nil when raw is not JSON.
func unwrapObject(raw []byte) ([]byte, error) {
	switch raw[0] {
	case '{':
		return raw, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: empty array", ErrInvalidResponse)
		}
		first := bytes.TrimSpace(items[0])
		if len(first) == 0 || first[0] != '{' {
			return nil, fmt.Errorf("%w: array element is not an object", ErrInvalidResponse)
		}
		return first, nil
	}

	block := extractJSONBlock(stripCodeFences(string(raw)))
	if block == "" {
		return nil, nil
	}
	return []byte(block), nil
}

// stripCodeFences drops markdown fence lines, keeping what they enclose.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// extractJSONBlock finds the first balanced { ... } block in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func cleanSuggestions(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
