package tui

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/truncate"
)

const (
	overviewPlaceholder = "Your event details will appear here once you chat with the AI assistant."
	overviewTitle       = "Event Overview"
	notAvailable        = "N/A"
)

func (m Model) renderOverviewPanel(w, h int) string {
	plan := m.snapshot.Plan
	contentW := w - 4
	if contentW < 10 {
		contentW = 10
	}

	if plan == nil {
		content := panelTitleStyle.Render(overviewTitle) + "\n" +
			placeholderStyle.Render(wrapText(overviewPlaceholder, contentW))
		return renderBorderedPanel(content, w, h)
	}

	title := plan.EventName
	if title == "" {
		title = overviewTitle
	}

	guests := notAvailable
	if plan.NumberOfGuests != nil {
		guests = strconv.FormatInt(*plan.NumberOfGuests, 10)
	}
	budget := notAvailable
	if plan.BudgetValue() != 0 {
		budget = m.format.Format(plan.BudgetValue())
	}

	lines := []string{
		panelTitleStyle.Render(truncate.StringWithTail(title, uint(contentW), "…")),
		field("Event Type", orNA(plan.EventType), contentW),
		field("Date", orNA(plan.EventDate), contentW),
		field("Guests", guests, contentW),
		field("Budget", budget, contentW),
	}
	return renderBorderedPanel(strings.Join(lines, "\n"), w, h)
}

func field(label, value string, width int) string {
	line := labelStyle.Render(label+":") + " " + value
	return truncate.StringWithTail(line, uint(width), "…")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
