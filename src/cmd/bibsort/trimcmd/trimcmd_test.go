package trimcmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

type stubPager struct{ pages, trimmed int }

func (s *stubPager) PageCount(string) (int, error) { return s.pages, nil }

func (s *stubPager) Trim(in, out string, pages int) error {
	s.trimmed = pages
	return os.WriteFile(out, []byte("short"), 0o644)
}

func TestTrimCommand(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(dir)

	stub := &stubPager{pages: 9}
	prev := pager
	pager = stub
	t.Cleanup(func() { pager = prev })

	_ = os.WriteFile("main.pdf", []byte("%PDF-long"), 0o644)
	cmd := New()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"main"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stub.trimmed != 5 {
		t.Fatalf("want 5 pages kept, got %d", stub.trimmed)
	}
	if !strings.Contains(buf.String(), "Success! Kept 5 pages in main.pdf") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if b, _ := os.ReadFile("main_with_ref.pdf"); string(b) != "%PDF-long" {
		t.Fatalf("backup content: %q", string(b))
	}

	cmd = New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"main.pdf", "--pages", "2"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute with pages: %v", err)
	}
	if stub.trimmed != 2 {
		t.Fatalf("want 2 pages kept, got %d", stub.trimmed)
	}

	cmd = New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"absent.pdf"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for missing pdf")
	}
}
