package checkcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bibsort/src/cmd/bibsort/cmdenv"
	"bibsort/src/internal/reconcile"
)

// New returns the check command which reports cited, missing and unused keys as YAML.
func New() *cobra.Command {
	var tex, bib string
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report cited, missing and unused bibliography keys without writing output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := cmdenv.Load(cmd)
			if err != nil {
				return err
			}
			opts := cfg.Reconcile(tex, bib, "", nil)
			rep, err := reconcile.Check(opts, log)
			if err != nil {
				return err
			}
			b, err := yaml.Marshal(rep)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(b); err != nil {
				return err
			}
			if strict && len(rep.Missing) > 0 {
				return fmt.Errorf("%d cited keys have no entry: %s", len(rep.Missing), strings.Join(rep.Missing, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tex, "tex", "", "LaTeX document to scan (default main.tex)")
	cmd.Flags().StringVar(&bib, "bib", "", "Bibliography source (default ref.bib)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when a cited key has no entry")
	return cmd
}
