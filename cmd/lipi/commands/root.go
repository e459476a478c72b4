// Package commands implements the lipi command line tool, which runs the
// classifier and converter locally without the HTTP service.
package commands

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/EasterCompany/dex-lipi-service/pipeline"
	"github.com/EasterCompany/dex-lipi-service/translit"
)

var (
	serverURL string
	timeout   time.Duration
	target    string
)

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Flags are bound to package state, so
// build a fresh tree per run.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lipi",
		Short:         "Detect the script of text and transliterate it",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&serverURL, "server", translit.DefaultAksharamukhaURL, "Aksharamukha API URL")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "per-conversion timeout")

	root.AddCommand(classifyCmd(), convertCmd(), linesCmd(), scriptsCmd())
	return root
}

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(translit.NewConverter(translit.NewAksharamukha(serverURL, timeout)), nil)
}

// readInput joins args, or reads the command's stdin when there are none.
// A single "-" also means stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	var in io.Reader = cmd.InOrStdin()
	if in == nil {
		in = os.Stdin
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
