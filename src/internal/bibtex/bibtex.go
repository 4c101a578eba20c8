// Package bibtex splits BibTeX sources into verbatim entry blocks keyed by
// citation key, and writes selected blocks back out.
//
// Field contents are never interpreted. An entry is located by its type
// marker and key, then bounded by the delimiter that closes its opening
// brace or parenthesis, counting nested braces along the way.
package bibtex

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

var (
	ErrNotFound = errors.New("file not found")
	ErrDecode   = errors.New("bibliography is not valid UTF-8")
	ErrWrite    = errors.New("cannot write bibliography")
)

// Entry is one record of a bibliography source.
type Entry struct {
	Type string
	Key  string
	// Raw is the original block from '@' through its closing delimiter.
	Raw string
}

// Library maps keys to entries. A repeated key keeps its first position but
// takes the text of the last occurrence.
type Library struct {
	entries map[string]Entry
	order   []string
}

func newLibrary() *Library { return &Library{entries: map[string]Entry{}} }

func (l *Library) put(e Entry) {
	if _, ok := l.entries[e.Key]; !ok {
		l.order = append(l.order, e.Key)
	}
	l.entries[e.Key] = e
}

// Get returns the entry for key.
func (l *Library) Get(key string) (Entry, bool) {
	e, ok := l.entries[key]
	return e, ok
}

// Len returns the number of distinct keys.
func (l *Library) Len() int { return len(l.order) }

// Keys returns keys in order of first appearance in the source.
func (l *Library) Keys() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Entries returns all entries in source order.
func (l *Library) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.entries[k])
	}
	return out
}

// non-record blocks carry no citation key
var skipTypes = map[string]bool{
	"comment":  true,
	"string":   true,
	"preamble": true,
}

// Parse scans s for entry blocks. Malformed or unterminated blocks are
// skipped and scanning resumes just past their '@'.
func Parse(s string) *Library {
	lib := newLibrary()
	i := 0
	for i < len(s) {
		at := strings.IndexByte(s[i:], '@')
		if at < 0 {
			break
		}
		start := i + at
		e, end, ok := scanEntry(s, start)
		if !ok {
			i = start + 1
			continue
		}
		if e.Key != "" {
			lib.put(e)
		}
		i = end
	}
	return lib
}

// scanEntry reads the block starting at s[start] == '@'. It returns the
// entry, the index just past the block, and whether the block was well formed.
// Blocks of skipTypes come back with an empty key.
func scanEntry(s string, start int) (Entry, int, bool) {
	n := len(s)
	i := start + 1
	skipBlank := func() {
		for i < n && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
	}
	tstart := i
	for i < n && isWord(s[i]) {
		i++
	}
	typ := s[tstart:i]
	if typ == "" {
		return Entry{}, 0, false
	}
	skipBlank()
	if i >= n || (s[i] != '{' && s[i] != '(') {
		return Entry{}, 0, false
	}
	open := i
	end := matchClose(s, open)
	if end < 0 {
		return Entry{}, 0, false
	}
	if skipTypes[strings.ToLower(typ)] {
		return Entry{Type: typ}, end + 1, true
	}
	// key runs to the first comma; it may not cross a line or contain the
	// entry's own delimiters
	closer := byte('}')
	if s[open] == '(' {
		closer = ')'
	}
	i = open + 1
	kstart := i
	for i < end && s[i] != ',' {
		if s[i] == '\n' || s[i] == s[open] || s[i] == closer {
			return Entry{}, 0, false
		}
		i++
	}
	if i >= end {
		return Entry{}, 0, false
	}
	key := strings.TrimSpace(s[kstart:i])
	if key == "" {
		return Entry{}, 0, false
	}
	return Entry{Type: typ, Key: key, Raw: s[start : end+1]}, end + 1, true
}

// matchClose returns the index of the delimiter closing s[open], or -1.
// Braces nest; a backslash escapes the following byte.
func matchClose(s string, open int) int {
	paren := s[open] == '('
	depth := 0
	if !paren {
		depth = 1
	}
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			if depth == 0 {
				// stray closer inside a parenthesised entry
				return -1
			}
			depth--
			if !paren && depth == 0 {
				return i
			}
		case ')':
			if paren && depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isWord(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// ParseFile reads and parses the bibliography at path.
func ParseFile(path string) (*Library, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%w: %s", ErrDecode, path)
	}
	return Parse(string(b)), nil
}

// Write emits each entry's raw text followed by a blank line.
func Write(w io.Writer, entries []Entry) error {
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(e.Raw)
		buf.WriteString("\n\n")
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile writes entries to path, replacing any existing file.
func WriteFile(path string, entries []Entry) error {
	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
