package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bibsort/src/cmd/bibsort/checkcmd"
	"bibsort/src/cmd/bibsort/cmdenv"
	"bibsort/src/cmd/bibsort/sortcmd"
	"bibsort/src/cmd/bibsort/trimcmd"
)

// newRootCmd builds the command tree. Run bare, it behaves like "sort".
func newRootCmd() *cobra.Command {
	var f sortcmd.Flags
	root := &cobra.Command{
		Use:           "bibsort",
		Short:         "Prepare a paper's bibliography and PDF for submission",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.Run(cmd)
		},
	}
	f.Bind(root)
	cmdenv.AddPersistentFlags(root)
	root.AddCommand(sortcmd.New())
	root.AddCommand(checkcmd.New())
	root.AddCommand(trimcmd.New())
	return root
}

func execute(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
