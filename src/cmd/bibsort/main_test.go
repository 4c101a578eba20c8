package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(dir)
}

// execCmd runs the root command with args and captures stdout/stderr.
func execCmd(args ...string) (string, error) {
	root := newRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestExecuteHelp(t *testing.T) {
	out, err := execCmd("--help")
	if err != nil {
		t.Fatalf("execute help: %v", err)
	}
	for _, sub := range []string{"sort", "check", "trim-pdf"} {
		if !strings.Contains(out, sub) {
			t.Fatalf("help missing %q:\n%s", sub, out)
		}
	}
}

func TestBareRootRunsSort(t *testing.T) {
	chdirTemp(t)
	_ = os.WriteFile("main.tex", []byte(`\cite{b}\citep{a}`), 0o644)
	_ = os.WriteFile("ref.bib", []byte("@misc{a,\n  title = {A}\n}\n@misc{b,\n  title = {B}\n}\n@misc{c,\n  title = {C}\n}\n"), 0o644)
	out, err := execCmd()
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Kept 2 cited entries") || !strings.Contains(out, "Processing complete!") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	b, _ := os.ReadFile("ref_output.bib")
	if string(b) != "@misc{b,\n  title = {B}\n}\n\n@misc{a,\n  title = {A}\n}\n\n" {
		t.Fatalf("unexpected bib: %q", string(b))
	}
}

func TestMissingDocumentFails(t *testing.T) {
	chdirTemp(t)
	if err := execute([]string{"sort"}); err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected file not found error, got %v", err)
	}
	if _, err := os.Stat("ref_output.bib"); err == nil {
		t.Fatalf("output created on failure")
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	chdirTemp(t)
	_ = os.WriteFile("paper.tex", []byte(`\parencite{x}`), 0o644)
	_ = os.WriteFile("ref.bib", []byte("@misc{x,\n  title = {X}\n}\n"), 0o644)
	_ = os.WriteFile("settings.yaml", []byte("tex: paper.tex\ncommands: [parencite]\n"), 0o644)
	out, err := execCmd("--config", "settings.yaml", "-o", "final.bib")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Kept 1 cited entries") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat("final.bib"); err != nil {
		t.Fatalf("missing final.bib: %v", err)
	}
}

func TestTrimPDFRequiresArgument(t *testing.T) {
	if _, err := execCmd("trim-pdf"); err == nil {
		t.Fatalf("expected error without pdf name")
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	chdirTemp(t)
	_ = os.WriteFile("main.tex", []byte(`\cite{a}`), 0o644)
	_ = os.WriteFile("ref.bib", []byte("@misc{a,\n  title = {A}\n}\n"), 0o644)
	if _, err := execCmd("--config", "typo.yaml"); err == nil || !strings.Contains(err.Error(), "typo.yaml") {
		t.Fatalf("expected error naming typo.yaml, got %v", err)
	}
	if _, err := os.Stat("ref_output.bib"); err == nil {
		t.Fatalf("output written despite bad config")
	}
	// the implicit default may be absent
	if out, err := execCmd(); err != nil {
		t.Fatalf("run without config: %v\n%s", err, out)
	}
}
