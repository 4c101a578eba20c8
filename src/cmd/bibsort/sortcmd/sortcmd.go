package sortcmd

import (
	"github.com/spf13/cobra"

	"bibsort/src/cmd/bibsort/cmdenv"
	"bibsort/src/internal/reconcile"
)

// Flags holds the sort command's path overrides.
type Flags struct {
	Tex      string
	Bib      string
	Output   string
	Commands []string
}

// Bind registers the sort flags on cmd.
func (f *Flags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Tex, "tex", "", "LaTeX document to scan (default main.tex)")
	cmd.Flags().StringVar(&f.Bib, "bib", "", "Bibliography source (default ref.bib)")
	cmd.Flags().StringVarP(&f.Output, "output", "o", "", "Output bibliography (default ref_output.bib)")
	cmd.Flags().StringSliceVar(&f.Commands, "command", nil, "Extra citation command to recognise (repeatable)")
}

// Run reconciles the bibliography with the settings of cmd.
func (f *Flags) Run(cmd *cobra.Command) error {
	cfg, log, err := cmdenv.Load(cmd)
	if err != nil {
		return err
	}
	opts := cfg.Reconcile(f.Tex, f.Bib, f.Output, f.Commands)
	_, err = reconcile.Run(opts, cmd.OutOrStdout(), log)
	return err
}

// New returns the sort command which keeps cited entries in citation order.
func New() *cobra.Command {
	var f Flags
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Keep cited bibliography entries, ordered by first citation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.Run(cmd)
		},
	}
	f.Bind(cmd)
	return cmd
}
