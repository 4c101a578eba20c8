package logx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestResolveLevel(t *testing.T) {
	t.Setenv(EnvLevel, "")
	cases := []struct {
		cfg  Config
		want zerolog.Level
	}{
		{Config{}, zerolog.WarnLevel},
		{Config{Verbose: true}, zerolog.DebugLevel},
		{Config{Level: "error", Verbose: true}, zerolog.ErrorLevel},
		{Config{Level: "warning"}, zerolog.WarnLevel},
		{Config{Level: "off"}, zerolog.Disabled},
		{Config{Level: "bogus"}, zerolog.WarnLevel},
		{Config{Level: "TRACE"}, zerolog.TraceLevel},
	}
	for _, c := range cases {
		if got := ResolveLevel(c.cfg); got != c.want {
			t.Fatalf("ResolveLevel(%+v): want %v, got %v", c.cfg, c.want, got)
		}
	}
}

func TestResolveLevel_Env(t *testing.T) {
	t.Setenv(EnvLevel, "info")
	if got := ResolveLevel(Config{}); got != zerolog.InfoLevel {
		t.Fatalf("env level: got %v", got)
	}
	if got := ResolveLevel(Config{Verbose: true}); got != zerolog.DebugLevel {
		t.Fatalf("verbose over env: got %v", got)
	}
}

func TestNew_WritesToConfiguredOutput(t *testing.T) {
	t.Setenv(EnvLevel, "")
	var buf bytes.Buffer
	log := New(Config{Out: &buf, NoColor: true})
	log.Debug().Msg("hidden")
	log.Warn().Str("key", "x").Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "key=x") {
		t.Fatalf("unexpected log output: %q", out)
	}
}
