package trimcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bibsort/src/cmd/bibsort/cmdenv"
	"bibsort/src/internal/pdftrim"
)

// pager is swapped in tests.
var pager pdftrim.Pager = pdftrim.PDFCPU{}

// New returns the trim-pdf command which keeps the first pages of a PDF and
// saves the full document as <name>_with_ref.pdf.
func New() *cobra.Command {
	var pages int
	cmd := &cobra.Command{
		Use:     "trim-pdf <pdf_name>",
		Short:   "Truncate a PDF to its first pages, keeping a full backup",
		Example: "  bibsort trim-pdf main.pdf",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := cmdenv.Load(cmd)
			if err != nil {
				return err
			}
			input, backup := pdftrim.Paths(args[0])
			kept, err := pdftrim.Truncate(args[0], cfg.MaxPages(pages), pager, log)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to %s\nSuccess! Kept %d pages in %s\n", input, backup, kept, input)
			return err
		},
	}
	cmd.Flags().IntVarP(&pages, "pages", "p", 0, fmt.Sprintf("Pages to keep (default %d)", pdftrim.DefaultMaxPages))
	return cmd
}
