package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/kanadrill/internal/drill"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/store"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestResolveConfigFromFile(t *testing.T) {
	cmd := newRootCmd()
	path := writeConfig(t, "[drill]\nsets = [\"Katakana-Digraphs\", \"katakana-digraphs\"]\nduration = 0\nbell = true\n")

	cfg, err := resolveConfig(cmd, path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(cfg.Sets) != 1 || cfg.Sets[0] != "katakana-digraphs" {
		t.Fatalf("unexpected sets %v", cfg.Sets)
	}
	if cfg.TrialSeconds != drill.DefaultTrialSeconds {
		t.Fatalf("expected default duration, got %d", cfg.TrialSeconds)
	}
	if !cfg.Bell {
		t.Fatalf("expected bell from config")
	}
}

func TestResolveConfigFlagsWin(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Parse([]string{"--sets", "hiragana-digraphs", "--duration", "30"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	path := writeConfig(t, "[drill]\nsets = [\"katakana-monographs\"]\nduration = 90\n")

	cfg, err := resolveConfig(cmd, path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(cfg.Sets) != 1 || cfg.Sets[0] != "hiragana-digraphs" || cfg.TrialSeconds != 30 {
		t.Fatalf("flags should override config, got %+v", cfg)
	}
}

func TestResolveConfigMalformedDuration(t *testing.T) {
	for _, value := range []string{`"abc"`, "1.5", "-10"} {
		cmd := newRootCmd()
		path := writeConfig(t, "[drill]\nduration = "+value+"\n")

		cfg, err := resolveConfig(cmd, path)
		if err != nil {
			t.Fatalf("duration = %s: resolve: %v", value, err)
		}
		if cfg.TrialSeconds != drill.DefaultTrialSeconds {
			t.Fatalf("duration = %s: expected default duration, got %d", value, cfg.TrialSeconds)
		}
	}
}

func TestDurationFlagFallsBack(t *testing.T) {
	for _, arg := range []string{"abc", "1.5", "0"} {
		cmd := newRootCmd()
		if err := cmd.Flags().Parse([]string{"--duration", arg}); err != nil {
			t.Fatalf("--duration %s: parse flags: %v", arg, err)
		}
		path := writeConfig(t, "[drill]\nduration = 90\n")

		cfg, err := resolveConfig(cmd, path)
		if err != nil {
			t.Fatalf("--duration %s: resolve: %v", arg, err)
		}
		if cfg.TrialSeconds != drill.DefaultTrialSeconds {
			t.Fatalf("--duration %s: expected default duration, got %d", arg, cfg.TrialSeconds)
		}
	}
}

func TestValidateConfigErrors(t *testing.T) {
	cfg := model.Config{Sets: []string{"kanji"}}
	if err := validateConfig(&cfg); err == nil {
		t.Fatalf("expected unknown set error")
	}
	cfg = model.Config{Sets: []string{" "}}
	if err := validateConfig(&cfg); err == nil {
		t.Fatalf("expected empty selection error")
	}
}

func TestWriteDefaultConfigKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanadrill", "config.toml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "[drill]") {
		t.Fatalf("template missing drill table:\n%s", data)
	}
	if err := os.WriteFile(path, []byte("# mine\n"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "# mine\n" {
		t.Fatalf("existing config was replaced")
	}
}

func TestSetsCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"sets"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 sets, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "hiragana-monographs") || !strings.HasSuffix(lines[0], "71") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func TestTableCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"table", "katakana-digraphs"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "katakana-digraphs (33)") || !strings.Contains(got, "kya") {
		t.Fatalf("unexpected table:\n%s", got)
	}
}

func TestPrintSummary(t *testing.T) {
	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		_ = st.Close()
	}()

	var out bytes.Buffer
	if err := printSummary(context.Background(), &out, st); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if strings.TrimSpace(out.String()) != "No answers yet." {
		t.Fatalf("unexpected empty summary %q", out.String())
	}

	if _, err := st.InsertAnswer(context.Background(), model.Record{Grapheme: "い", Input: "e", Expected: "i"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	out.Reset()
	if err := printSummary(context.Background(), &out, st); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out.String(), "い") {
		t.Fatalf("summary missing kana:\n%s", out.String())
	}
}
