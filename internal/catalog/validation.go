package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Validator accepts or rejects a trimmed answer.
type Validator func(answer string) bool

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CompileRule turns a rule string from the catalog into a Validator.
// An empty rule compiles to nil (no validation).
//
// Supported rules:
//
//	required      non-empty answer
//	min_length:N  answer of at least N characters
//	email         something@domain.tld
func CompileRule(rule string) (Validator, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return nil, nil
	}

	name, arg, _ := strings.Cut(rule, ":")
	switch name {
	case "required":
		return func(a string) bool { return a != "" }, nil
	case "min_length":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid min_length %q", arg)
		}
		return func(a string) bool { return len([]rune(a)) >= n }, nil
	case "email":
		return func(a string) bool { return emailPattern.MatchString(a) }, nil
	default:
		return nil, fmt.Errorf("unknown validation rule %q", rule)
	}
}
