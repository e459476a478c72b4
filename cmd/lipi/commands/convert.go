package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [text...]",
		Short: "Transliterate text as a whole; English text is printed unchanged",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			_, out := newPipeline().Text(cmd.Context(), text, target)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "Latin", "target script selector")
	return cmd
}
