package tui

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type panelDimensions struct {
	chatW, chatH         int
	overviewW, overviewH int
	budgetW, budgetH     int
	tasksW, tasksH       int
	headerH              int
	helpH                int
}

const (
	minWidth  = 60
	minHeight = 20

	headerHeight = 1
	helpHeight   = 1

	// Title plus four fields inside a border.
	overviewHeight = 7

	// Title, three amounts and the bar inside a border.
	budgetHeight = 7

	tasksMinHeight = 4

	// Title, status line and input line inside the chat border.
	chatChromeLines = 3
)

func computeDimensions(totalW, totalH int) panelDimensions {
	if totalW < minWidth {
		totalW = minWidth
	}
	if totalH < minHeight {
		totalH = minHeight
	}

	d := panelDimensions{
		headerH: headerHeight,
		helpH:   helpHeight,
	}

	usableH := totalH - headerHeight - helpHeight

	d.chatW = totalW * 45 / 100
	if d.chatW < 30 {
		d.chatW = 30
	}
	if d.chatW > totalW-30 {
		d.chatW = totalW - 30
	}
	d.chatH = usableH

	rightW := totalW - d.chatW
	d.overviewW, d.budgetW, d.tasksW = rightW, rightW, rightW

	d.overviewH = overviewHeight
	d.budgetH = budgetHeight
	d.tasksH = usableH - d.overviewH - d.budgetH
	if d.tasksH < tasksMinHeight {
		d.tasksH = tasksMinHeight
	}

	return d
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	placeholderStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(lipgloss.Color("245"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	agentLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Strikethrough(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	focusBorderColor = lipgloss.Color("63")

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	detailOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("69")).
				Padding(1, 2)

	barOKColor   = lipgloss.Color("82")
	barWarnColor = lipgloss.Color("226")
	barOverColor = lipgloss.Color("196")
)

func renderBorderedPanel(content string, w, h int) string {
	return renderBorderedPanelStyled(content, w, h, panelBorderStyle)
}

func renderBorderedPanelStyled(content string, w, h int, style lipgloss.Style) string {
	contentH := h - 2
	if contentH < 1 {
		contentH = 1
	}

	lines := strings.Split(content, "\n")
	if len(lines) > contentH {
		lines = lines[:contentH]
		content = strings.Join(lines, "\n")
	}

	return style.
		Width(w - 2).
		Height(contentH).
		Render(content)
}

func focusedBorder(focused bool) lipgloss.Style {
	if focused {
		return panelBorderStyle.BorderForeground(focusBorderColor)
	}
	return panelBorderStyle
}

// resize fits the chat widgets to the current window.
func (m *Model) resize() {
	dims := computeDimensions(m.width, m.height)

	innerW := dims.chatW - 4
	if innerW < 10 {
		innerW = 10
	}
	innerH := dims.chatH - 2 - chatChromeLines
	if innerH < 1 {
		innerH = 1
	}

	m.transcript.Width = innerW
	m.transcript.Height = innerH
	m.transcript.SetContent(m.renderTranscript(innerW))
	m.transcript.GotoBottom()

	m.input.Width = innerW - lipgloss.Width(m.input.Prompt) - 1

	barW := dims.budgetW - 4 - 6
	if barW < 10 {
		barW = 10
	}
	m.bar.Width = barW
}

func (m Model) renderDashboard() string {
	dims := computeDimensions(m.width, m.height)

	header := m.renderHeader()

	chatPanel := m.renderChatPanel(dims.chatW, dims.chatH)
	overview := m.renderOverviewPanel(dims.overviewW, dims.overviewH)
	budgetPanel := m.renderBudgetPanel(dims.budgetW, dims.budgetH)
	tasks := m.renderTaskPanel(dims.tasksW, dims.tasksH)

	rightCol := lipgloss.JoinVertical(lipgloss.Left, overview, budgetPanel, tasks)
	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, rightCol)

	usableH := m.height - dims.headerH - dims.helpH
	if usableH < 4 {
		usableH = 4
	}
	mcLines := strings.Split(mainContent, "\n")
	if len(mcLines) > usableH {
		mcLines = mcLines[:usableH]
		mainContent = strings.Join(mcLines, "\n")
	}

	layout := lipgloss.JoinVertical(lipgloss.Left, header, mainContent, m.renderHelpBar())

	switch m.overlay {
	case overlayPlan:
		layout = m.overlayDetail(layout, "Plan Details", m.planDetailContent())
	case overlayVendors:
		layout = m.overlayDetail(layout, m.vendorOverlayTitle(), m.vendorDetailContent())
	}

	return layout
}

func (m Model) renderHeader() string {
	title := " " + m.cfg.Display.Title

	var indicators []string
	if host := backendHost(m.backend); host != "" {
		indicators = append(indicators, "["+host+"]")
	}
	if m.snapshot.Loading {
		indicators = append(indicators, "[Planning...]")
	}
	ind := ""
	if len(indicators) > 0 {
		ind = " " + strings.Join(indicators, " ")
	}

	padding := m.width - lipgloss.Width(title) - lipgloss.Width(ind)
	if padding < 0 {
		padding = 0
	}

	return headerStyle.Width(m.width).Render(title + ind + strings.Repeat(" ", padding))
}

func backendHost(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return u.Host
}

func (m Model) renderHelpBar() string {
	var help string
	switch {
	case m.overlay == overlayVendors:
		help = "←/→:Directory  ↑/↓:Scroll  Esc:Close"
	case m.overlay == overlayPlan:
		help = "↑/↓:Scroll  Esc:Close"
	case m.focus == FocusTasks:
		help = "↑/↓:Move  Space:Toggle  d:Details  v:Vendors  Tab:Chat  q:Quit"
	case m.snapshot.Loading:
		help = "Waiting for the planner...  PgUp/PgDn:Scroll  Tab:Tasks  Ctrl+C:Quit"
	default:
		help = "Enter:Send  PgUp/PgDn:Scroll  Tab:Tasks  Ctrl+C:Quit"
	}
	return statusBarStyle.Width(m.width).Render(" " + help)
}

// overlayDetail centres a scrollable box over base.
func (m Model) overlayDetail(base, title, content string) string {
	overlayW := m.width * 70 / 100
	if overlayW < 40 {
		overlayW = 40
	}
	if m.width > 0 && overlayW > m.width-4 {
		overlayW = m.width - 4
	}
	overlayH := m.height * 70 / 100
	if overlayH < 10 {
		overlayH = 10
	}
	if m.height > 0 && overlayH > m.height-4 {
		overlayH = m.height - 4
	}

	contentW := overlayW - 6
	if contentW < 10 {
		contentW = 10
	}
	contentH := overlayH - 6
	if contentH < 3 {
		contentH = 3
	}

	wrapped := strings.Split(wordwrap.String(content, contentW), "\n")

	startIdx := m.detailScrollPos
	if startIdx > len(wrapped)-contentH {
		startIdx = len(wrapped) - contentH
	}
	if startIdx < 0 {
		startIdx = 0
	}
	endIdx := startIdx + contentH
	if endIdx > len(wrapped) {
		endIdx = len(wrapped)
	}

	body := strings.Join(wrapped[startIdx:endIdx], "\n")

	footer := dimStyle.Render("Esc: Close")
	if len(wrapped) > contentH {
		footer += dimStyle.Render("  Up/Down: Scroll")
	}

	dialog := detailOverlayStyle.
		Width(overlayW - 2).
		Render(panelTitleStyle.Render(title) + "\n\n" + body + "\n\n" + footer)

	return placeOverlay(dialog, base)
}

func placeOverlay(fg, bg string) string {
	return lipgloss.Place(
		lipgloss.Width(bg),
		lipgloss.Height(bg),
		lipgloss.Center,
		lipgloss.Center,
		fg,
		lipgloss.WithWhitespaceChars(" "),
	)
}
