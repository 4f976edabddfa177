package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
)

const tasksPlaceholder = "Your generated tasks and action items will appear here."

// renderTaskPanel renders one checkbox row per action item. Checkbox state
// lives only in the view and is reset when the plan is replaced.
func (m Model) renderTaskPanel(w, h int) string {
	focused := m.focus == FocusTasks
	style := focusedBorder(focused)

	contentW := w - 4
	if contentW < 10 {
		contentW = 10
	}

	items := m.actionItems()
	lines := []string{panelTitleStyle.Render("Action Items")}

	if len(items) == 0 {
		lines = append(lines, placeholderStyle.Render(wrapText(tasksPlaceholder, contentW)))
		return renderBorderedPanelStyled(strings.Join(lines, "\n"), w, h, style)
	}

	// Window the rows around the cursor.
	visible := h - 3
	overflow := len(items) > visible
	if overflow {
		visible-- // footer
	}
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.taskCursor >= visible {
		start = m.taskCursor - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
	}

	for i := start; i < end; i++ {
		box := "[ ]"
		if m.checked[i] {
			box = "[x]"
		}
		row := truncate.StringWithTail(box+" "+items[i], uint(contentW), "…")

		switch {
		case focused && i == m.taskCursor:
			row = cursorStyle.Render(row)
		case m.checked[i]:
			row = doneStyle.Render(row)
		}
		lines = append(lines, row)
	}

	if overflow {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%d-%d of %d  (%d done)", start+1, end, len(items), m.checkedCount())))
	}

	return renderBorderedPanelStyled(strings.Join(lines, "\n"), w, h, style)
}

func (m Model) checkedCount() int {
	n := 0
	for i := range m.actionItems() {
		if m.checked[i] {
			n++
		}
	}
	return n
}
