// Package citations scans LaTeX sources for citation commands and collects
// the cited keys in the order they are first referenced.
package citations

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"bibsort/src/internal/stringsx"
)

var (
	ErrNotFound       = errors.New("file not found")
	ErrDecode         = errors.New("document is not valid UTF-8")
	ErrInvalidCommand = errors.New("invalid citation command")
)

// DefaultCommands are the citation commands recognised without configuration.
var DefaultCommands = []string{
	"cite",
	"citep",
	"citet",
	"citeauthor",
	"citeyear",
	"citeyearpar",
	"autocite",
	"nocite",
}

var commandName = regexp.MustCompile(`^[A-Za-z]+$`)

// Citations is the set of cited keys together with their first-occurrence order.
type Citations struct {
	order []string
	seen  map[string]int
}

func (c *Citations) add(key string) {
	if c.seen == nil {
		c.seen = map[string]int{}
	}
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = len(c.order)
	c.order = append(c.order, key)
}

// Keys returns the distinct keys in order of first citation.
func (c Citations) Keys() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Has reports whether key was cited at least once.
func (c Citations) Has(key string) bool {
	_, ok := c.seen[key]
	return ok
}

// Position returns the zero-based first-citation index of key, or -1.
func (c Citations) Position(key string) int {
	if i, ok := c.seen[key]; ok {
		return i
	}
	return -1
}

// Len returns the number of distinct keys.
func (c Citations) Len() int { return len(c.order) }

// Extractor matches a fixed list of citation commands.
type Extractor struct {
	commands []string
	re       *regexp.Regexp
}

// NewExtractor builds an extractor for commands, or DefaultCommands when none are given.
// Duplicate names are ignored.
func NewExtractor(commands ...string) (*Extractor, error) {
	if len(commands) == 0 {
		commands = DefaultCommands
	}
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		c = strings.TrimPrefix(strings.TrimSpace(c), `\`)
		if !commandName.MatchString(c) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCommand, c)
		}
		names = append(names, c)
	}
	names = stringsx.Dedupe(names)
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	// Argument is single-level: a '}' inside the key list ends the match.
	re := regexp.MustCompile(`\\(?:` + strings.Join(quoted, "|") + `)\{([^}]+)\}`)
	return &Extractor{commands: names, re: re}, nil
}

// Commands returns the command names this extractor recognises.
func (x *Extractor) Commands() []string {
	out := make([]string, len(x.commands))
	copy(out, x.commands)
	return out
}

// Extract returns every key cited in text by a recognised command.
func (x *Extractor) Extract(text string) Citations {
	var c Citations
	for _, m := range x.re.FindAllStringSubmatch(text, -1) {
		for _, key := range stringsx.SplitTrim(m[1], ",") {
			c.add(key)
		}
	}
	return c
}

// ExtractFile reads path and extracts its citations.
func (x *Extractor) ExtractFile(path string) (Citations, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Citations{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Citations{}, err
	}
	if !utf8.Valid(b) {
		return Citations{}, fmt.Errorf("%w: %s", ErrDecode, path)
	}
	return x.Extract(string(b)), nil
}
