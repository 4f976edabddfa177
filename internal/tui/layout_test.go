package tui

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/GopalTomar/AI-Event-Planner/internal/budget"
	"github.com/GopalTomar/AI-Event-Planner/internal/config"
	"github.com/GopalTomar/AI-Event-Planner/internal/state"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestComputeDimensions_LargeTerminal(t *testing.T) {
	dims := computeDimensions(120, 40)

	if dims.chatW < 45 || dims.chatW > 60 {
		t.Errorf("chatW = %d, want ~54", dims.chatW)
	}
	if dims.chatW+dims.overviewW != 120 {
		t.Errorf("chatW(%d) + rightW(%d) != 120", dims.chatW, dims.overviewW)
	}

	rightH := dims.overviewH + dims.budgetH + dims.tasksH
	if rightH != dims.chatH {
		t.Errorf("overviewH(%d) + budgetH(%d) + tasksH(%d) = %d, want chatH = %d",
			dims.overviewH, dims.budgetH, dims.tasksH, rightH, dims.chatH)
	}
	totalH := dims.headerH + dims.chatH + dims.helpH
	if totalH != 40 {
		t.Errorf("headerH(%d) + chatH(%d) + helpH(%d) = %d, want 40",
			dims.headerH, dims.chatH, dims.helpH, totalH)
	}
}

func TestComputeDimensions_MinimumTerminal(t *testing.T) {
	dims := computeDimensions(20, 8)

	if dims.chatW < 30 {
		t.Errorf("chatW = %d, want >= 30", dims.chatW)
	}
	if dims.tasksH < tasksMinHeight {
		t.Errorf("tasksH = %d, want >= %d", dims.tasksH, tasksMinHeight)
	}
}

func TestRenderBorderedPanel_ClampsContent(t *testing.T) {
	content := strings.Repeat("line\n", 20)
	out := renderBorderedPanel(content, 20, 6)

	if got := len(strings.Split(out, "\n")); got != 6 {
		t.Errorf("panel height = %d lines, want 6", got)
	}
}

func TestRenderHeader(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.Title = "Wedding Desk"
	cfg.Backend.BaseURL = "http://planner.local:8000"

	store := state.NewMemoryStore()
	m := NewModel(cfg, WithStateProvider(store))
	m.width = 100

	header := stripAnsi(m.renderHeader())
	if !strings.Contains(header, "Wedding Desk") {
		t.Errorf("header missing title: %q", header)
	}
	if !strings.Contains(header, "[planner.local:8000]") {
		t.Errorf("header missing backend host: %q", header)
	}
	if strings.Contains(header, "Planning") {
		t.Error("header should not show the planning badge when idle")
	}

	store.SetLoading(true)
	m.refresh()
	if !strings.Contains(stripAnsi(m.renderHeader()), "[Planning...]") {
		t.Error("header should show the planning badge while loading")
	}
}

func TestRenderHelpBar_ContextSensitive(t *testing.T) {
	m := NewModel(config.DefaultConfig())
	m.width = 120

	tests := []struct {
		name  string
		setup func(*Model)
		want  string
	}{
		{"chat", func(m *Model) {}, "Enter:Send"},
		{"loading", func(m *Model) { m.snapshot.Loading = true }, "Waiting for the planner"},
		{"tasks", func(m *Model) { m.focus = FocusTasks }, "Space:Toggle"},
		{"plan overlay", func(m *Model) { m.overlay = overlayPlan }, "Esc:Close"},
		{"vendor overlay", func(m *Model) { m.overlay = overlayVendors }, "←/→:Directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mm := m
			tt.setup(&mm)
			if got := stripAnsi(mm.renderHelpBar()); !strings.Contains(got, tt.want) {
				t.Errorf("help = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestRenderBudgetPanel_LevelsAndCustomRatio(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.CurrencySymbol = "$"
	cfg.Display.Grouping = "western"

	store := state.NewMemoryStore()
	store.UpdateCurrentEvent(&state.EventPlan{Budget: floatPtr(200000)})

	m := NewModel(cfg,
		WithStateProvider(store),
		WithBudgetProvider(budget.NewCalculator(0.9, budget.DefaultThresholds())),
	)

	out := stripAnsi(m.renderBudgetPanel(80, budgetHeight))
	for _, want := range []string{"$200,000", "$180,000", "$20,000", "90%"} {
		if !strings.Contains(out, want) {
			t.Errorf("budget panel missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTaskPanel_WindowsAroundCursor(t *testing.T) {
	items := make([]string, 30)
	for i := range items {
		items[i] = "task " + string(rune('A'+i%26))
	}
	store := state.NewMemoryStore()
	store.UpdateCurrentEvent(&state.EventPlan{ActionItems: items})

	m := NewModel(config.DefaultConfig(), WithStateProvider(store))
	m.focus = FocusTasks
	m.taskCursor = 29

	out := stripAnsi(m.renderTaskPanel(60, 10))
	if !strings.Contains(out, "of 30") {
		t.Errorf("expected a position footer:\n%s", out)
	}
	if !strings.Contains(out, "task D") {
		t.Errorf("row under the cursor should be visible:\n%s", out)
	}
}

func TestRenderTranscript_WrapsAndLabels(t *testing.T) {
	store := state.NewMemoryStore()
	store.AddMessage(state.SenderUser, strings.Repeat("word ", 30))

	m := NewModel(config.DefaultConfig(), WithStateProvider(store))
	out := stripAnsi(m.renderTranscript(40))

	if !strings.Contains(out, "Planiva") || !strings.Contains(out, "You") {
		t.Errorf("transcript missing sender labels:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 40 {
			t.Errorf("line exceeds wrap width: %q", line)
		}
	}
}

func TestShutdownManager_RunsOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cleanups := 0

	sm := NewShutdownManager()
	sm.CancelRequests = cancel
	sm.Cleanup = func() { cleanups++ }

	sm.Shutdown()
	sm.Shutdown()

	if ctx.Err() == nil {
		t.Error("requests context should be cancelled")
	}
	if cleanups != 1 {
		t.Errorf("Cleanup ran %d times, want 1", cleanups)
	}
}
