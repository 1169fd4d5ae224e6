package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-automata/utils"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestPositionalProbability(t *testing.T) {
	cfg, _, err := parseArgs([]string{"64", "23/3/2", "0.6"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.Size != 64 || cfg.Rule != "23/3/2" || cfg.Probability != 0.6 || cfg.PatternFile != "" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestPositionalPatternFile(t *testing.T) {
	cfg, _, err := parseArgs([]string{"5", "/2/3", "data/test2.txt"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.PatternFile != "data/test2.txt" || cfg.Rule != "/2/3" || cfg.Size != 5 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestPositionalErrors(t *testing.T) {
	for _, args := range [][]string{
		{"64", "23/3/2"},
		{"big", "23/3/2", "0.5"},
	} {
		if _, _, err := parseArgs(args, io.Discard); !errors.Is(err, utils.ErrParse) {
			t.Fatalf("parseArgs(%v) = %v, expected parse error", args, err)
		}
	}
	if _, _, err := parseArgs([]string{"0", "23/3/2", "0.5"}, io.Discard); !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("size 0 gave %v, expected validation error", err)
	}
	if _, _, err := parseArgs([]string{"8", "23/3/2", "1.5"}, io.Discard); !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("probability 1.5 gave %v, expected validation error", err)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"size": 20, "rule": "/2/3", "probability": 0.3, "workers": 4}`)

	cfg, _, err := parseArgs([]string{"-config", path, "-size", "12"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.Size != 12 {
		t.Fatalf("Size = %d, expected flag value 12", cfg.Size)
	}
	if cfg.Rule != "/2/3" || cfg.Workers != 4 || cfg.Probability != 0.3 {
		t.Fatalf("file values lost: %+v", cfg)
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	_, _, err := parseArgs([]string{"-config", filepath.Join(t.TempDir(), "nope.json")}, io.Discard)
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestRunPrintsFinalPattern(t *testing.T) {
	path := writeFile(t, "column.txt", "0 1\n1 1\n2 1\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-print", "-generations", "1", "3", "23/3/2", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected all 9 cells alive, got %q", stdout.String())
	}
	if lines[0] != "0 0" || lines[8] != "2 2" {
		t.Fatalf("unexpected ordering %q", lines)
	}
}

func TestRunRejectsOutOfBoundsPattern(t *testing.T) {
	path := writeFile(t, "far.txt", "0 0\n7 7\n")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-print", "4", "23/3/2", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, expected 1", code)
	}
	if !strings.Contains(stderr.String(), "index out of range") {
		t.Fatalf("stderr %q does not mention the index error", stderr.String())
	}
}

func TestCheckRestartConditions(t *testing.T) {
	cfg := utils.DefaultConfig()
	if ok, reason := checkRestartConditions(0, 0, 0, cfg); !ok || reason != "extinction" {
		t.Fatalf("empty board: %v %q", ok, reason)
	}
	if ok, _ := checkRestartConditions(0, 2, 0, cfg); ok {
		t.Fatal("a board with dying cells is not extinct")
	}
	if ok, reason := checkRestartConditions(5, 0, cfg.StagnationThreshold, cfg); !ok || reason != "stagnation detected" {
		t.Fatalf("stagnant board: %v %q", ok, reason)
	}
	if ok, _ := checkRestartConditions(5, 0, 1, cfg); ok {
		t.Fatal("unexpected restart")
	}
}
