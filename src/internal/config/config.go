// Package config loads the optional per-project settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"bibsort/src/internal/citations"
	"bibsort/src/internal/pdftrim"
	"bibsort/src/internal/reconcile"
	"bibsort/src/internal/stringsx"
)

// DefaultFile is looked up in the working directory.
const DefaultFile = ".bibsort.yaml"

// PDF holds settings for trim-pdf.
type PDF struct {
	MaxPages int `yaml:"max_pages,omitempty"`
}

// File mirrors .bibsort.yaml.
type File struct {
	Tex      string   `yaml:"tex,omitempty"`
	Bib      string   `yaml:"bib,omitempty"`
	Output   string   `yaml:"output,omitempty"`
	Commands []string `yaml:"commands,omitempty"`
	PDF      PDF      `yaml:"pdf,omitempty"`
}

// Load reads path. A missing file yields an empty File.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return f, err
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if f.PDF.MaxPages < 0 {
		return f, fmt.Errorf("invalid pdf.max_pages in %s: %d", path, f.PDF.MaxPages)
	}
	return f, nil
}

// Require is Load for a path the user named: a missing file is an error.
func Require(path string) (File, error) {
	if _, err := os.Stat(path); err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return Load(path)
}

// Reconcile merges flag values over the file's values. Extra commands from
// either source are appended to the default citation commands.
func (f File) Reconcile(tex, bib, output string, commands []string) reconcile.Options {
	opts := reconcile.Options{
		TexFile:    stringsx.FirstNonEmpty(tex, f.Tex, reconcile.DefaultTexFile),
		BibFile:    stringsx.FirstNonEmpty(bib, f.Bib, reconcile.DefaultBibFile),
		OutputFile: stringsx.FirstNonEmpty(output, f.Output, reconcile.DefaultOutputFile),
	}
	if len(f.Commands) > 0 || len(commands) > 0 {
		all := append([]string{}, citations.DefaultCommands...)
		all = append(all, f.Commands...)
		opts.Commands = stringsx.Dedupe(append(all, commands...))
	}
	return opts
}

// MaxPages returns flag if set, then the file value, then the default.
func (f File) MaxPages(flag int) int {
	if flag > 0 {
		return flag
	}
	if f.PDF.MaxPages > 0 {
		return f.PDF.MaxPages
	}
	return pdftrim.DefaultMaxPages
}
