package tui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/GopalTomar/AI-Event-Planner/internal/state"
)

const typingIndicator = "Agent is typing..."

// renderChatPanel renders the transcript, the typing indicator and the
// input line.
func (m Model) renderChatPanel(w, h int) string {
	var lines []string
	lines = append(lines, panelTitleStyle.Render("AI Event Planner Chat"))
	lines = append(lines, m.transcript.View())

	if m.snapshot.Loading {
		lines = append(lines, m.spinner.View()+" "+dimStyle.Render(typingIndicator))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.input.View())

	return renderBorderedPanelStyled(strings.Join(lines, "\n"), w, h, focusedBorder(m.focus == FocusChat))
}

// renderTranscript renders every message in the snapshot, word-wrapped to
// width. A width of zero or less disables wrapping.
func (m Model) renderTranscript(width int) string {
	var b strings.Builder
	for i, msg := range m.snapshot.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(senderLabel(msg.Sender))
		b.WriteString("\n")

		text := msg.Text
		if width > 0 {
			text = wordwrap.String(text, width)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

func senderLabel(s state.Sender) string {
	if s == state.SenderUser {
		return userLabelStyle.Render("You")
	}
	return agentLabelStyle.Render("Planiva")
}
