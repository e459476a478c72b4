package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func linesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "lines [text...]",
		Short: "Classify and transliterate a transcript line by line",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			res := newPipeline().Process(cmd.Context(), text, target)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			if res.Transliterated != "" {
				fmt.Fprintln(out, res.Transliterated)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "Latin", "target script selector")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
