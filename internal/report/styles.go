package report

import (
	"github.com/Veraticus/the-budget-must-flow/internal/advice"
	"github.com/Veraticus/the-budget-must-flow/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all styling definitions for budget report formatting.
type Styles struct {
	// Base styles from CLI package
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	// Report-specific styles
	Box         lipgloss.Style
	Amount      lipgloss.Style
	OverBudget  lipgloss.Style
	TableHeader lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Error:    cli.ErrorStyle,
		Info:     cli.InfoStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 1)

	s.Amount = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor)

	s.OverBudget = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.ErrorColor)

	s.TableHeader = cli.SubtleStyle.Bold(true)

	return s
}

// WithWidth returns a copy adjusted for the given terminal width.
func (s *Styles) WithWidth(width int) *Styles {
	newStyles := *s
	if width > 0 && width < 100 {
		newStyles.Box = s.Box.Width(width - 4)
	}
	return &newStyles
}

// ForOutcome returns the style for the headline advice of an outcome.
func (s *Styles) ForOutcome(outcome advice.Outcome) lipgloss.Style {
	switch outcome {
	case advice.OutcomeOverspend:
		return s.Error
	case advice.OutcomeBoostSavings:
		return s.Warning
	case advice.OutcomeHealthy:
		return s.Success
	default:
		return s.Subtle
	}
}

// RenderBox renders content in a styled box with optional title.
func (s *Styles) RenderBox(content string, title string, style lipgloss.Style) string {
	if title != "" {
		titleStyled := s.Info.Bold(true).Render(" " + title + " ")
		return style.Render(titleStyled + "\n" + content)
	}
	return style.Render(content)
}
