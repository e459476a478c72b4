package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EasterCompany/dex-lipi-service/pipeline"
	"github.com/EasterCompany/dex-lipi-service/script"
)

func classifyCmd() *cobra.Command {
	var perLine bool
	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Print the writing system of text (stdin when no text is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !perLine {
				fmt.Fprintln(out, script.Classify(text))
				return nil
			}
			for _, ln := range pipeline.SplitLines(text) {
				fmt.Fprintf(out, "%s\t%s\n", script.Classify(ln), ln)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&perLine, "lines", "l", false, "classify each line separately")
	return cmd
}
