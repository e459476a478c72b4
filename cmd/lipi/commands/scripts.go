package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EasterCompany/dex-lipi-service/script"
)

func scriptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scripts",
		Short: "List detectable writing systems and target selectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Writing systems:")
			for _, l := range script.Labels() {
				id, _ := script.SourceScript(l)
				fmt.Fprintf(out, "  %-18s %s\n", l, id)
			}
			fmt.Fprintln(out, "Targets:")
			for _, s := range script.Selectors() {
				id, _ := script.TargetScript(s)
				fmt.Fprintf(out, "  %-18s %s\n", s, id)
			}
			return nil
		},
	}
}
