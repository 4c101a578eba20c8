// Package pdftrim cuts a compiled paper down to its first pages while
// keeping the complete document alongside it as a backup.
package pdftrim

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxPages = 5
	BackupSuffix    = "_with_ref"
)

var (
	ErrNotFound     = errors.New("file not found")
	ErrInvalidPages = errors.New("page limit must be at least 1")
)

// Pager is the page-level PDF capability the truncation needs.
type Pager interface {
	PageCount(path string) (int, error)
	// Trim writes the first pages of in to out.
	Trim(in, out string, pages int) error
}

// PDFCPU implements Pager with pdfcpu.
type PDFCPU struct {
	Conf *model.Configuration
}

func (p PDFCPU) conf() *model.Configuration {
	if p.Conf != nil {
		return p.Conf
	}
	return model.NewDefaultConfiguration()
}

// PageCount returns the number of pages in the PDF at path.
func (p PDFCPU) PageCount(path string) (int, error) { return api.PageCountFile(path) }

// Trim writes pages 1 through pages of in to out.
func (p PDFCPU) Trim(in, out string, pages int) error {
	return api.TrimFile(in, out, []string{fmt.Sprintf("1-%d", pages)}, p.conf())
}

// Paths derives the input and backup filenames from name, with or without
// its .pdf extension.
func Paths(name string) (input, backup string) {
	base := strings.TrimSuffix(name, ".pdf")
	return base + ".pdf", base + BackupSuffix + ".pdf"
}

// Truncate copies name to its backup, then overwrites name with the first
// maxPages pages of the backup. It returns the number of pages kept.
func Truncate(name string, maxPages int, p Pager, log zerolog.Logger) (int, error) {
	if maxPages < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPages, maxPages)
	}
	input, backup := Paths(name)
	if _, err := os.Stat(input); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, input)
		}
		return 0, err
	}
	if err := copyFile(input, backup); err != nil {
		return 0, fmt.Errorf("backup %s: %w", input, err)
	}
	log.Debug().Str("from", input).Str("to", backup).Msg("backup written")

	total, err := p.PageCount(backup)
	if err != nil {
		return 0, fmt.Errorf("count pages in %s: %w", backup, err)
	}
	kept := min(total, maxPages)
	if err := p.Trim(backup, input, kept); err != nil {
		return 0, fmt.Errorf("trim %s: %w", backup, err)
	}
	log.Debug().Int("pages", total).Int("kept", kept).Str("path", input).Msg("pdf truncated")
	return kept, nil
}

// copyFile copies src to dst, keeping the permission bits and modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
