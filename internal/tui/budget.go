package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/GopalTomar/AI-Event-Planner/internal/budget"
)

const budgetPlaceholder = "Your budget summary will be shown here."

// renderBudgetPanel renders the planned budget, expenses, remaining amount
// and a progress bar of expenses against the budget.
func (m Model) renderBudgetPanel(w, h int) string {
	contentW := w - 4
	if contentW < 10 {
		contentW = 10
	}

	lines := []string{panelTitleStyle.Render("Budget Tracker")}

	if m.snapshot.Plan == nil || m.budget == nil {
		lines = append(lines, placeholderStyle.Render(wrapText(budgetPlaceholder, contentW)))
		return renderBorderedPanel(strings.Join(lines, "\n"), w, h)
	}

	s := m.budget.Compute(m.snapshot.Plan)

	lines = append(lines,
		amountLine("Planned Budget", m.format.Format(s.Budget)),
		amountLine("Expenses", m.format.Format(s.Expenses)),
		amountLine("Remaining", m.format.Format(s.Remaining)),
		m.renderBudgetBar(s),
	)

	return renderBorderedPanel(strings.Join(lines, "\n"), w, h)
}

func amountLine(label, amount string) string {
	return labelStyle.Render(fmt.Sprintf("%-15s", label+":")) + " " + amount
}

func (m Model) renderBudgetBar(s budget.Summary) string {
	bar := m.bar
	bar.FullColor = string(barColor(s.Level))
	return bar.ViewAs(s.Fraction()) + " " + levelStyle(s.Level).Render(fmt.Sprintf("%.0f%%", s.Percent))
}

func barColor(l budget.Level) lipgloss.Color {
	switch l {
	case budget.LevelOver:
		return barOverColor
	case budget.LevelWarn:
		return barWarnColor
	default:
		return barOKColor
	}
}

func levelStyle(l budget.Level) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(barColor(l))
}

func wrapText(s string, width int) string {
	return wordwrap.String(s, width)
}
