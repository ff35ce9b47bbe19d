// Package catalog holds the static wave/question data that drives project discovery.
package catalog

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuestionType identifies how a question expects to be answered.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeText           QuestionType = "text"
	TypeYesNo          QuestionType = "yes-no"
)

// ModeSelectionWave is the index of the routing wave. Discovery never traverses it.
const ModeSelectionWave = 0

// Question is one immutable entry in a wave.
type Question struct {
	ID             string       `yaml:"id"`
	Text           string       `yaml:"text"`
	Type           QuestionType `yaml:"type"`
	Options        []string     `yaml:"options,omitempty"`
	FollowUp       string       `yaml:"follow_up,omitempty"`
	Rule           string       `yaml:"validation,omitempty"`
	Category       string       `yaml:"category,omitempty"`
	RiskFlags      []string     `yaml:"risk_flags,omitempty"`
	TechnicalDepth int          `yaml:"technical_depth,omitempty"`

	validate Validator
}

// Wave is an ordered group of related questions.
type Wave struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Questions   []Question `yaml:"questions"`

	// Adaptive, MinQuestions and MaxQuestions are metadata only; traversal ignores them.
	Adaptive     bool `yaml:"adaptive,omitempty"`
	MinQuestions int  `yaml:"min_questions,omitempty"`
	MaxQuestions int  `yaml:"max_questions,omitempty"`
}

// Catalog is the ordered list of waves.
type Catalog struct {
	Waves []Wave `yaml:"waves"`
}

//go:embed waves.yaml
var defaultWaves []byte

// Default returns the built-in catalog. It panics if the embedded data is malformed.
func Default() *Catalog {
	c, err := Load(defaultWaves)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded waves are invalid: %v", err))
	}
	return c
}

// Load decodes a YAML catalog and compiles each question's validation rule.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if len(c.Waves) == 0 {
		return nil, fmt.Errorf("catalog has no waves")
	}

	seen := make(map[string]bool)
	for wi := range c.Waves {
		w := &c.Waves[wi]
		if len(w.Questions) == 0 {
			return nil, fmt.Errorf("wave %q has no questions", w.ID)
		}
		for qi := range w.Questions {
			q := &w.Questions[qi]
			if q.ID == "" {
				return nil, fmt.Errorf("wave %q question %d has no id", w.ID, qi)
			}
			if seen[q.ID] {
				return nil, fmt.Errorf("duplicate question id %q", q.ID)
			}
			seen[q.ID] = true

			switch q.Type {
			case TypeMultipleChoice:
				if len(q.Options) == 0 {
					return nil, fmt.Errorf("question %q: multiple-choice without options", q.ID)
				}
			case TypeYesNo:
				if len(q.Options) == 0 {
					q.Options = []string{"Yes", "No"}
				}
			case TypeText:
			default:
				return nil, fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
			}

			v, err := CompileRule(q.Rule)
			if err != nil {
				return nil, fmt.Errorf("question %q: %w", q.ID, err)
			}
			q.validate = v
		}
	}
	return &c, nil
}

// Len returns the number of waves, including the mode-selection wave.
func (c *Catalog) Len() int { return len(c.Waves) }

// Wave returns the wave at index i, or nil when out of range.
func (c *Catalog) Wave(i int) *Wave {
	if i < 0 || i >= len(c.Waves) {
		return nil
	}
	return &c.Waves[i]
}

// Question returns the question at (wave, question), or nil when out of range.
func (c *Catalog) Question(wave, question int) *Question {
	w := c.Wave(wave)
	if w == nil || question < 0 || question >= len(w.Questions) {
		return nil
	}
	return &w.Questions[question]
}

// FindQuestion looks up a question by id across all waves.
func (c *Catalog) FindQuestion(id string) *Question {
	for wi := range c.Waves {
		for qi := range c.Waves[wi].Questions {
			if c.Waves[wi].Questions[qi].ID == id {
				return &c.Waves[wi].Questions[qi]
			}
		}
	}
	return nil
}

// DiscoveryQuestionCount counts the questions discovery will ask.
func (c *Catalog) DiscoveryQuestionCount() int {
	n := 0
	for wi := ModeSelectionWave + 1; wi < len(c.Waves); wi++ {
		n += len(c.Waves[wi].Questions)
	}
	return n
}

// HasValidation reports whether the question carries a validation rule.
func (q *Question) HasValidation() bool {
	return q.validate != nil
}

// Validate runs the question's validator. Questions without one accept anything.
func (q *Question) Validate(answer string) bool {
	if q.validate == nil {
		return true
	}
	return q.validate(answer)
}

// OptionAt resolves a 1-based option index typed by the user to the option text.
// yes-no questions also accept "y", "yes", "n" and "no".
func (q *Question) OptionAt(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if q.Type == TypeYesNo {
		switch strings.ToLower(input) {
		case "y", "yes":
			return q.Options[0], true
		case "n", "no":
			return q.Options[1], true
		}
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(q.Options) {
		return "", false
	}
	return q.Options[n-1], true
}

// IsChoice reports whether the answer is picked from Options.
func (q *Question) IsChoice() bool {
	return q.Type == TypeMultipleChoice || q.Type == TypeYesNo
}
