// Package reconcile keeps the bibliography entries a document cites and
// orders them by first citation.
package reconcile

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"bibsort/src/internal/bibtex"
	"bibsort/src/internal/citations"
)

const (
	DefaultTexFile    = "main.tex"
	DefaultBibFile    = "ref.bib"
	DefaultOutputFile = "ref_output.bib"
)

// Options names the files of one run. Empty fields take the defaults.
type Options struct {
	TexFile    string
	BibFile    string
	OutputFile string
	// Commands overrides citations.DefaultCommands when non-empty.
	Commands []string
}

func (o Options) withDefaults() Options {
	if o.TexFile == "" {
		o.TexFile = DefaultTexFile
	}
	if o.BibFile == "" {
		o.BibFile = DefaultBibFile
	}
	if o.OutputFile == "" {
		o.OutputFile = DefaultOutputFile
	}
	return o
}

// Result is the outcome of reordering a library against a document's citations.
type Result struct {
	// Entries are the cited entries in first-citation order.
	Entries []bibtex.Entry
	// Missing are cited keys without an entry, in citation order.
	Missing []string
	// Unused are entry keys never cited, in bibliography order.
	Unused []string
}

// Reorder selects the entries of lib that cites references.
func Reorder(lib *bibtex.Library, cites citations.Citations) Result {
	var res Result
	for _, k := range cites.Keys() {
		if e, ok := lib.Get(k); ok {
			res.Entries = append(res.Entries, e)
			continue
		}
		res.Missing = append(res.Missing, k)
	}
	for _, k := range lib.Keys() {
		if !cites.Has(k) {
			res.Unused = append(res.Unused, k)
		}
	}
	return res
}

// load reads both inputs. Nothing is written.
func load(opts Options, out io.Writer, log zerolog.Logger) (citations.Citations, *bibtex.Library, error) {
	say := func(format string, args ...any) { _, _ = fmt.Fprintf(out, format+"\n", args...) }

	x, err := citations.NewExtractor(opts.Commands...)
	if err != nil {
		return citations.Citations{}, nil, err
	}
	say("Extracting citations from %s...", opts.TexFile)
	cites, err := x.ExtractFile(opts.TexFile)
	if err != nil {
		return citations.Citations{}, nil, err
	}
	say("Found %d unique citations", cites.Len())
	log.Debug().Str("path", opts.TexFile).Strs("commands", x.Commands()).Int("keys", cites.Len()).Msg("citations extracted")

	say("Parsing bibliography entries from %s...", opts.BibFile)
	lib, err := bibtex.ParseFile(opts.BibFile)
	if err != nil {
		return citations.Citations{}, nil, err
	}
	say("Found %d entries in bibliography", lib.Len())
	log.Debug().Str("path", opts.BibFile).Int("entries", lib.Len()).Msg("bibliography parsed")
	return cites, lib, nil
}

// Run reconciles opts.BibFile against opts.TexFile and writes the cited
// entries to opts.OutputFile, reporting progress to out. Both inputs are read
// before the output is touched.
func Run(opts Options, out io.Writer, log zerolog.Logger) (Result, error) {
	opts = opts.withDefaults()
	say := func(format string, args ...any) { _, _ = fmt.Fprintf(out, format+"\n", args...) }

	cites, lib, err := load(opts, out, log)
	if err != nil {
		return Result{}, err
	}

	say("Filtering and sorting entries...")
	res := Reorder(lib, cites)
	say("Kept %d cited entries", len(res.Entries))
	for _, k := range res.Missing {
		log.Warn().Str("key", k).Msg("cited key has no bibliography entry")
	}
	log.Debug().Int("unused", len(res.Unused)).Msg("uncited entries dropped")

	say("Writing processed bibliography to %s...", opts.OutputFile)
	if err := bibtex.WriteFile(opts.OutputFile, res.Entries); err != nil {
		return res, err
	}
	say("Processing complete!")
	return res, nil
}

// Report summarises a document and bibliography without writing output.
type Report struct {
	Document     string   `yaml:"document"`
	Bibliography string   `yaml:"bibliography"`
	Cited        int      `yaml:"cited"`
	Entries      int      `yaml:"entries"`
	Kept         []string `yaml:"kept"`
	Missing      []string `yaml:"missing"`
	Unused       []string `yaml:"unused"`
}

// Check runs extraction and reordering only and returns the summary.
func Check(opts Options, log zerolog.Logger) (Report, error) {
	opts = opts.withDefaults()
	cites, lib, err := load(opts, io.Discard, log)
	if err != nil {
		return Report{}, err
	}
	res := Reorder(lib, cites)
	kept := make([]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		kept = append(kept, e.Key)
	}
	return Report{
		Document:     opts.TexFile,
		Bibliography: opts.BibFile,
		Cited:        cites.Len(),
		Entries:      lib.Len(),
		Kept:         kept,
		Missing:      nonNil(res.Missing),
		Unused:       nonNil(res.Unused),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
