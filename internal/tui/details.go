package tui

import (
	"strconv"
	"strings"

	"github.com/GopalTomar/AI-Event-Planner/internal/planner"
)

func (m Model) planDetailContent() string {
	plan := m.snapshot.Plan
	if plan == nil {
		return "No plan yet. Describe your event in the chat to get one."
	}

	guests := notAvailable
	if plan.NumberOfGuests != nil {
		guests = strconv.FormatInt(*plan.NumberOfGuests, 10)
	}
	budget := notAvailable
	if plan.BudgetValue() != 0 {
		budget = m.format.Format(plan.BudgetValue())
	}

	var lines []string
	lines = append(lines, "Event:      "+orNA(plan.EventName))
	lines = append(lines, "Type:       "+orNA(plan.EventType))
	lines = append(lines, "Date:       "+orNA(plan.EventDate))
	lines = append(lines, "Guests:     "+guests)
	lines = append(lines, "Budget:     "+budget)
	lines = append(lines, "")

	lines = append(lines, "Required components:")
	if len(plan.RequiredComponents) == 0 {
		lines = append(lines, "  (none)")
	}
	for _, c := range plan.RequiredComponents {
		lines = append(lines, "  • "+orNA(c.ComponentType))
		if c.Details != "" {
			lines = append(lines, "    "+c.Details)
		}
		if c.Preferences != "" {
			lines = append(lines, "    Preferences: "+c.Preferences)
		}
	}

	lines = append(lines, "")
	lines = append(lines, "Action items:")
	if len(plan.ActionItems) == 0 {
		lines = append(lines, "  (none)")
	}
	for i, item := range plan.ActionItems {
		box := "[ ]"
		if m.checked[i] {
			box = "[x]"
		}
		lines = append(lines, "  "+box+" "+item)
	}

	return strings.Join(lines, "\n")
}

func (m Model) vendorOverlayTitle() string {
	var tabs []string
	for i, k := range planner.VendorKinds {
		if i == m.vendorKind {
			tabs = append(tabs, "["+k.Title()+"]")
		} else {
			tabs = append(tabs, k.Title())
		}
	}
	return "Vendors  " + strings.Join(tabs, "  ")
}

func (m Model) vendorDetailContent() string {
	if m.vendors == nil {
		return "Vendor directory unavailable."
	}

	kind := m.currentVendorKind()
	res, ok := m.vendorCache[kind]
	switch {
	case !ok || res.loading:
		return "Loading " + strings.ToLower(kind.Title()) + "..."
	case res.err != nil:
		return errorStyle.Render("Could not load "+strings.ToLower(kind.Title())+":") + " " + res.err.Error()
	case len(res.vendors) == 0:
		return "No " + strings.ToLower(kind.Title()) + " listed."
	}

	var lines []string
	for i, v := range res.vendors {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "• "+v.DisplayName())
		for _, f := range v.Fields() {
			lines = append(lines, "    "+f.Key+": "+f.Value)
		}
	}
	return strings.Join(lines, "\n")
}
