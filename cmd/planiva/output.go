package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GopalTomar/AI-Event-Planner/internal/budget"
	"github.com/GopalTomar/AI-Event-Planner/internal/planner"
	"github.com/GopalTomar/AI-Event-Planner/internal/state"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	case "":
		return formatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, format outputFormat, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}

// planOutput is the structured form of a plan command result.
type planOutput struct {
	Reply  string           `json:"reply" yaml:"reply"`
	Plan   *state.EventPlan `json:"plan" yaml:"plan"`
	Budget budgetOutput     `json:"budget" yaml:"budget"`
}

type budgetOutput struct {
	Budget    float64 `json:"budget" yaml:"budget"`
	Expenses  float64 `json:"expenses" yaml:"expenses"`
	Remaining float64 `json:"remaining" yaml:"remaining"`
	Percent   float64 `json:"percent" yaml:"percent"`
	Level     string  `json:"level" yaml:"level"`
	// ExpenseRatio is the provisional share of the budget counted as spent.
	ExpenseRatio float64 `json:"provisional_expense_ratio" yaml:"provisional_expense_ratio"`
}

func newPlanOutput(reply string, plan *state.EventPlan, s budget.Summary, ratio float64) planOutput {
	return planOutput{
		Reply: reply,
		Plan:  plan,
		Budget: budgetOutput{
			Budget:    s.Budget,
			Expenses:  s.Expenses,
			Remaining: s.Remaining,
			Percent:   s.Percent,
			Level:     s.Level.String(),

			ExpenseRatio: ratio,
		},
	}
}

// writePlanText prints the dashboard panels as plain text.
func writePlanText(w io.Writer, plan *state.EventPlan, s budget.Summary, f budget.Formatter) {
	title := plan.EventName
	if title == "" {
		title = "Event Overview"
	}
	guests := "N/A"
	if plan.NumberOfGuests != nil {
		guests = strconv.FormatInt(*plan.NumberOfGuests, 10)
	}
	planned := "N/A"
	if plan.BudgetValue() != 0 {
		planned = f.Format(plan.BudgetValue())
	}

	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "  Event Type:     %s\n", orNA(plan.EventType))
	fmt.Fprintf(w, "  Date:           %s\n", orNA(plan.EventDate))
	fmt.Fprintf(w, "  Guests:         %s\n", guests)
	fmt.Fprintf(w, "  Budget:         %s\n", planned)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Budget Tracker")
	fmt.Fprintf(w, "  Planned Budget: %s\n", f.Format(s.Budget))
	fmt.Fprintf(w, "  Expenses:       %s\n", f.Format(s.Expenses))
	fmt.Fprintf(w, "  Remaining:      %s\n", f.Format(s.Remaining))
	fmt.Fprintf(w, "  Used:           %.0f%% (%s)\n", s.Percent, s.Level)

	if len(plan.RequiredComponents) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Required Components")
		for _, c := range plan.RequiredComponents {
			fmt.Fprintf(w, "  • %s\n", orNA(c.ComponentType))
			if c.Details != "" {
				fmt.Fprintf(w, "      %s\n", c.Details)
			}
			if c.Preferences != "" {
				fmt.Fprintf(w, "      Preferences: %s\n", c.Preferences)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Action Items")
	if len(plan.ActionItems) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, item := range plan.ActionItems {
		fmt.Fprintf(w, "  [ ] %s\n", item)
	}
}

func writeVendorsText(w io.Writer, kind planner.VendorKind, vendors []planner.Vendor) {
	if len(vendors) == 0 {
		fmt.Fprintf(w, "No %s listed.\n", strings.ToLower(kind.Title()))
		return
	}
	fmt.Fprintf(w, "%s (%d)\n", kind.Title(), len(vendors))
	for _, v := range vendors {
		fmt.Fprintf(w, "• %s\n", v.DisplayName())
		for _, field := range v.Fields() {
			fmt.Fprintf(w, "    %s: %s\n", field.Key, field.Value)
		}
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
