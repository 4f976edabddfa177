package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GopalTomar/AI-Event-Planner/internal/budget"
	"github.com/GopalTomar/AI-Event-Planner/internal/chat"
	"github.com/GopalTomar/AI-Event-Planner/internal/state"
)

func newPlanCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan <query...>",
		Short: "Request one event plan and print it",
		Long: "Send a single request to the planning service and print the agent reply,\n" +
			"the plan and its budget summary.",
		Example: `  planiva plan "I want to plan a wedding for 100 people in New York"
  planiva plan --format json birthday party for 20 kids`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFmt, err := parseFormat(format)
			if err != nil {
				return err
			}

			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			store := state.NewMemoryStore()
			session := chat.NewSession(store, a.client, a.logger)

			reply, ok := session.Send(cmd.Context(), strings.Join(args, " "))
			if !ok {
				return errors.New("query is empty")
			}
			if reply.Err != nil {
				return reply.Err
			}

			calc := budget.NewCalculator(a.cfg.Budget.ProvisionalExpenseRatio, budget.DefaultThresholds())
			summary := calc.Compute(reply.Plan)

			out := cmd.OutOrStdout()
			if outFmt != formatText {
				return encode(out, outFmt, newPlanOutput(reply.Message.Text, reply.Plan, summary, calc.Ratio()))
			}

			fmt.Fprintln(out, reply.Message.Text)
			fmt.Fprintln(out)
			writePlanText(out, reply.Plan, summary, budget.NewFormatter(a.cfg.Display.CurrencySymbol, a.cfg.Display.Grouping))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}
