package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadflow/internal/bot"
)

// FormatChatWelcome renders the banner shown when a chat opens. The onboarding
// tips are printed only while the onboarding gate is still open.
func FormatChatWelcome(mode bot.Mode, onboarding bool) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StylePurple.Render("  leadflow") + StyleDim.Render(" "+modeLabel(mode)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	if onboarding {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("  Answer in your own words, or type a number to pick an option.") + "\n")
		b.WriteString(StyleDim.Render("  /mode qa|project switches mode, /clear starts over, /quit exits.") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func modeLabel(mode bot.Mode) string {
	if mode == bot.ModeProject {
		return "project discovery"
	}
	return "assistant"
}

// ModePrompt is the input prompt for a mode, e.g. "qa> ".
func ModePrompt(mode bot.Mode) string {
	return StylePurple.Render(string(mode)) + Dim("> ")
}

// FormatMessage renders one chat message. Bot messages keep their line breaks.
func FormatMessage(m bot.Message) string {
	if m.Role == bot.RoleUser {
		return Dim("You: ") + m.Text
	}
	lines := strings.Split(indentWrapped(m.Text, 2, wrapWidth), "\n")
	for i, line := range lines {
		lines[i] = StyleFg.Render(line)
	}
	return StyleBlue.Render("Bot:") + "\n" + strings.Join(lines, "\n")
}

// FormatSuggestions renders numbered suggested questions, or "" when there are none.
func FormatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Dim("  Suggestions:"))
	for i, s := range suggestions {
		fmt.Fprintf(&b, "\n  %s %s", StyleGreen.Render(fmt.Sprintf("%d.", i+1)), s)
	}
	return b.String()
}

// FormatValidation renders an inline field validation message.
func FormatValidation(msg string) string {
	return StyleYellow.Render("  ! " + msg)
}

// FormatError renders an error line.
func FormatError(msg string) string {
	return StyleRed.Render("  Error: " + msg)
}

// Thinking is the placeholder shown while a reply is pending.
func Thinking() string {
	return Dim("  Thinking...")
}
