package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GopalTomar/AI-Event-Planner/internal/budget"
	"github.com/GopalTomar/AI-Event-Planner/internal/chat"
	"github.com/GopalTomar/AI-Event-Planner/internal/config"
	"github.com/GopalTomar/AI-Event-Planner/internal/planner"
	"github.com/GopalTomar/AI-Event-Planner/internal/state"
)

type PanelFocus int

const (
	FocusChat PanelFocus = iota
	FocusTasks
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayPlan
	overlayVendors
)

// stateChangedMsg is delivered when the store reports a mutation.
type stateChangedMsg struct{}

// planResultMsg carries the outcome of a planning request.
type planResultMsg struct {
	plan *state.EventPlan
	err  error
}

// vendorsMsg carries one fetched vendor directory.
type vendorsMsg struct {
	kind    planner.VendorKind
	vendors []planner.Vendor
	err     error
}

type StateProvider interface {
	Snapshot() state.Snapshot
}

// ChatController runs the submit lifecycle. Begin and Complete run on the
// UI goroutine; Request runs inside a tea.Cmd.
type ChatController interface {
	Begin(input string) (query string, ok bool)
	Request(ctx context.Context, query string) (*state.EventPlan, error)
	Complete(plan *state.EventPlan, err error) chat.Reply
}

type BudgetProvider interface {
	Compute(plan *state.EventPlan) budget.Summary
}

type VendorProvider interface {
	ListVendors(ctx context.Context, kind planner.VendorKind) ([]planner.Vendor, error)
}

type vendorResult struct {
	loading bool
	vendors []planner.Vendor
	err     error
}

type Model struct {
	width    int
	height   int
	keys     KeyMap
	quitting bool

	cfg config.Config
	ctx context.Context

	state   StateProvider
	chat    ChatController
	budget  BudgetProvider
	vendors VendorProvider
	changes <-chan state.Change
	format  budget.Formatter
	backend string

	snapshot     state.Snapshot
	renderedMsgs int

	focus      PanelFocus
	input      textinput.Model
	transcript viewport.Model
	spinner    spinner.Model
	bar        progress.Model

	taskCursor int
	checked    map[int]bool

	overlay         overlayKind
	detailScrollPos int
	vendorKind      int
	vendorCache     map[planner.VendorKind]vendorResult

	onShutdown func()
}

func NewModel(cfg config.Config, opts ...ModelOption) Model {
	input := textinput.New()
	input.Placeholder = "Describe your event..."
	input.Prompt = "> "
	input.CharLimit = 2000
	input.Focus()

	m := Model{
		keys:        DefaultKeyMap(),
		cfg:         cfg,
		ctx:         context.Background(),
		budget:      budget.NewCalculator(cfg.Budget.ProvisionalExpenseRatio, budget.DefaultThresholds()),
		format:      budget.NewFormatter(cfg.Display.CurrencySymbol, cfg.Display.Grouping),
		backend:     cfg.Backend.BaseURL,
		input:       input,
		transcript:  viewport.New(0, 0),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		bar:         progress.New(progress.WithSolidFill(string(barOKColor)), progress.WithoutPercentage()),
		checked:     make(map[int]bool),
		vendorCache: make(map[planner.VendorKind]vendorResult),
	}

	for _, opt := range opts {
		opt(&m)
	}

	m.refresh()
	return m
}

type ModelOption func(*Model)

func WithStateProvider(s StateProvider) ModelOption {
	return func(m *Model) { m.state = s }
}

func WithChatController(c ChatController) ModelOption {
	return func(m *Model) { m.chat = c }
}

func WithBudgetProvider(b BudgetProvider) ModelOption {
	return func(m *Model) { m.budget = b }
}

func WithVendorProvider(v VendorProvider) ModelOption {
	return func(m *Model) { m.vendors = v }
}

// WithChangeFeed subscribes the model to store notifications, typically
// MemoryStore.Watch.
func WithChangeFeed(ch <-chan state.Change) ModelOption {
	return func(m *Model) { m.changes = ch }
}

// WithContext sets the context planning and vendor requests run under.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) { m.ctx = ctx }
}

func WithOnShutdown(fn func()) ModelOption {
	return func(m *Model) { m.onShutdown = fn }
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.waitForChange(),
	)
}

// waitForChange blocks on the change feed and re-arms after every
// stateChangedMsg.
func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func (m Model) requestCmd(query string) tea.Cmd {
	ctrl, ctx := m.chat, m.ctx
	return func() tea.Msg {
		plan, err := ctrl.Request(ctx, query)
		return planResultMsg{plan: plan, err: err}
	}
}

func (m Model) fetchVendorsCmd(kind planner.VendorKind) tea.Cmd {
	provider, ctx := m.vendors, m.ctx
	return func() tea.Msg {
		vendors, err := provider.ListVendors(ctx, kind)
		return vendorsMsg{kind: kind, vendors: vendors, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case stateChangedMsg:
		m.refresh()
		return m, m.waitForChange()

	case planResultMsg:
		if m.chat != nil {
			m.chat.Complete(msg.plan, msg.err)
		}
		m.refresh()
		var cmd tea.Cmd
		if m.focus == FocusChat {
			cmd = m.input.Focus()
		}
		return m, cmd

	case vendorsMsg:
		m.vendorCache[msg.kind] = vendorResult{vendors: msg.vendors, err: msg.err}
		return m, nil

	case spinner.TickMsg:
		if !m.snapshot.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh re-reads the store. Checkbox state is dropped when the plan was
// replaced, and the transcript follows the latest message.
func (m *Model) refresh() {
	if m.state == nil {
		return
	}
	snap := m.state.Snapshot()

	if snap.PlanVersion != m.snapshot.PlanVersion {
		m.checked = make(map[int]bool)
		m.taskCursor = 0
	}
	m.snapshot = snap

	if snap.Loading {
		m.input.Blur()
	}

	if len(snap.Messages) != m.renderedMsgs {
		m.renderedMsgs = len(snap.Messages)
		m.transcript.SetContent(m.renderTranscript(m.transcript.Width))
		m.transcript.GotoBottom()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	switch m.overlay {
	case overlayPlan:
		return m.handlePlanOverlayKey(msg)
	case overlayVendors:
		return m.handleVendorOverlayKey(msg)
	}

	if key.Matches(msg, m.keys.Tab) {
		return m.toggleFocus()
	}

	if m.focus == FocusTasks {
		return m.handleTaskKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.onShutdown != nil {
		m.onShutdown()
	}
	return m, tea.Quit
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == FocusChat {
		m.focus = FocusTasks
		m.input.Blur()
		return m, nil
	}
	m.focus = FocusChat
	if m.snapshot.Loading {
		return m, nil
	}
	return m, m.input.Focus()
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ScrollUp):
		m.transcript.ScrollUp(m.transcript.Height / 2)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.transcript.ScrollDown(m.transcript.Height / 2)
		return m, nil
	}

	// The input is disabled while a request is in flight.
	if m.snapshot.Loading {
		return m, nil
	}

	if key.Matches(msg, m.keys.Submit) {
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.chat == nil {
		return m, nil
	}
	query, ok := m.chat.Begin(m.input.Value())
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.refresh()

	return m, tea.Batch(m.requestCmd(query), m.spinner.Tick)
}

func (m Model) handleTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.actionItems()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.taskCursor < len(items)-1 {
			m.taskCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if m.taskCursor >= 0 && m.taskCursor < len(items) {
			checked := make(map[int]bool, len(m.checked)+1)
			for k, v := range m.checked {
				checked[k] = v
			}
			checked[m.taskCursor] = !checked[m.taskCursor]
			m.checked = checked
		}
		return m, nil

	case key.Matches(msg, m.keys.Details):
		m.overlay = overlayPlan
		m.detailScrollPos = 0
		return m, nil

	case key.Matches(msg, m.keys.Vendors):
		m.overlay = overlayVendors
		m.detailScrollPos = 0
		return m.loadVendors()
	}

	return m, nil
}

func (m Model) handlePlanOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Details), key.Matches(msg, m.keys.Quit):
		m.overlay = overlayNone
		m.detailScrollPos = 0
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.detailScrollPos > 0 {
			m.detailScrollPos--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.detailScrollPos++
		return m, nil
	}
	return m, nil
}

func (m Model) handleVendorOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Vendors), key.Matches(msg, m.keys.Quit):
		m.overlay = overlayNone
		m.detailScrollPos = 0
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.vendorKind = (m.vendorKind + len(planner.VendorKinds) - 1) % len(planner.VendorKinds)
		m.detailScrollPos = 0
		return m.loadVendors()

	case key.Matches(msg, m.keys.Right):
		m.vendorKind = (m.vendorKind + 1) % len(planner.VendorKinds)
		m.detailScrollPos = 0
		return m.loadVendors()

	case key.Matches(msg, m.keys.Up):
		if m.detailScrollPos > 0 {
			m.detailScrollPos--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.detailScrollPos++
		return m, nil
	}
	return m, nil
}

// loadVendors fetches the selected directory unless it is cached or a
// failed fetch is being retried by reopening.
func (m Model) loadVendors() (tea.Model, tea.Cmd) {
	if m.vendors == nil {
		return m, nil
	}
	kind := m.currentVendorKind()
	if res, ok := m.vendorCache[kind]; ok && res.err == nil {
		return m, nil
	}
	m.vendorCache[kind] = vendorResult{loading: true}
	return m, m.fetchVendorsCmd(kind)
}

func (m Model) currentVendorKind() planner.VendorKind {
	return planner.VendorKinds[m.vendorKind]
}

func (m Model) actionItems() []string {
	if m.snapshot.Plan == nil {
		return nil
	}
	return m.snapshot.Plan.ActionItems
}

// Focus returns the focused pane.
func (m Model) Focus() PanelFocus {
	return m.focus
}

func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	output := m.renderDashboard()

	if m.height > 0 {
		lines := strings.Split(output, "\n")
		if len(lines) > m.height {
			lines = lines[:m.height]
			output = strings.Join(lines, "\n")
		}
	}

	return output
}
