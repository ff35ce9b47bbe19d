package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// routingModes maps the options of the mode-selection question, in order.
var routingModes = []bot.Mode{bot.ModeQA, bot.ModeProject}

func leadflowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// modeOptions builds the picker options from the routing question of cat.
func modeOptions(cat *catalog.Catalog) (*catalog.Question, []huh.Option[bot.Mode], error) {
	q := cat.Question(catalog.ModeSelectionWave, 0)
	if q == nil || len(q.Options) < len(routingModes) {
		return nil, nil, fmt.Errorf("catalog has no mode-selection question with %d options", len(routingModes))
	}
	opts := make([]huh.Option[bot.Mode], 0, len(routingModes))
	for i, mode := range routingModes {
		opts = append(opts, huh.NewOption(q.Options[i], mode))
	}
	return q, opts, nil
}

// modeForm returns the mode-selection form writing into result.
func modeForm(cat *catalog.Catalog, result *bot.Mode) (*huh.Form, error) {
	q, opts, err := modeOptions(cat)
	if err != nil {
		return nil, err
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[bot.Mode]().
				Title(q.Text).
				Description(cat.Wave(catalog.ModeSelectionWave).Description).
				Options(opts...).
				Value(result),
		),
	).WithTheme(leadflowHuhTheme()).WithShowHelp(false), nil
}

// pickMode asks which conversation to start.
func pickMode(ctx context.Context, cat *catalog.Catalog) (bot.Mode, error) {
	mode := bot.ModeQA
	form, err := modeForm(cat, &mode)
	if err != nil {
		return "", err
	}
	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("choosing mode: %w", err)
	}
	return mode, nil
}
