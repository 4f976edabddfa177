package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/GopalTomar/AI-Event-Planner/internal/planner"
)

func newVendorsCmd(flags *globalFlags) *cobra.Command {
	var format string

	names := make([]string, len(planner.VendorKinds))
	for i, k := range planner.VendorKinds {
		names[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:       "vendors <kind>",
		Short:     "List a vendor directory",
		Long:      "List the planning service's vendor directory. Kinds: " + strings.Join(names, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFmt, err := parseFormat(format)
			if err != nil {
				return err
			}
			kind, err := planner.ParseVendorKind(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			vendors, err := a.client.ListVendors(cmd.Context(), kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outFmt != formatText {
				if vendors == nil {
					vendors = []planner.Vendor{}
				}
				return encode(out, outFmt, vendors)
			}
			writeVendorsText(out, kind, vendors)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}
