package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"globe-quiz-service/internal/quality"
)

const lintBatchYAML = `country_id: france
countries:
  - id: france
    name: France
questions:
  - id: good
    text: Which river flows through Paris, the capital of France?
    option_a: The Seine River
    option_b: The Loire River
    option_c: The Rhone River
    option_d: The Garonne River
    correct_answer: The Seine River
    difficulty: easy
  - id: bad
    text: What is the capital?
    option_a: London
    option_b: Berlin
    option_c: Madrid
    option_d: Rome
    correct_answer: Paris
    difficulty: easy
`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestLintReportsFailures(t *testing.T) {
	path := writeTemp(t, "batch.yaml", lintBatchYAML)
	out, err := runCLI(t, "lint", path)
	if err == nil {
		t.Fatalf("expected lint to fail")
	}
	if !strings.Contains(out, "#1 [critical] bad") {
		t.Fatalf("expected bad question reported, got:\n%s", out)
	}
	if strings.Contains(out, "good") {
		t.Fatalf("valid question should not be reported:\n%s", out)
	}
	if !strings.Contains(out, "2 checked, 1 failed") {
		t.Fatalf("missing summary:\n%s", out)
	}
}

func TestLintRejectsUnknownProfile(t *testing.T) {
	path := writeTemp(t, "batch.yaml", lintBatchYAML)
	if _, err := runCLI(t, "lint", path, "--profile", "paranoid"); err == nil {
		t.Fatalf("expected unknown profile error")
	}
}

func TestReadBatchFileAcceptsJSON(t *testing.T) {
	path := writeTemp(t, "batch.json", `{"country_id":"japan","questions":[{"text":"Which mountain is the highest peak in Japan?","difficulty":"medium"}]}`)
	batch, err := readBatchFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if batch.CountryID != "japan" || len(batch.Questions) != 1 || batch.Questions[0].Difficulty != "medium" {
		t.Fatalf("unexpected batch %+v", batch)
	}
}

func TestReadBatchFileRejectsBadDifficulty(t *testing.T) {
	path := writeTemp(t, "batch.yaml", "questions:\n  - text: x\n    difficulty: impossible\n")
	if _, err := readBatchFile(path); err == nil {
		t.Fatalf("expected difficulty error")
	}
}

func TestImportNeedsPostgres(t *testing.T) {
	path := writeTemp(t, "batch.yaml", lintBatchYAML)
	if _, err := runCLI(t, "import", path); err == nil || !strings.Contains(err.Error(), "postgres") {
		t.Fatalf("expected postgres requirement, got %v", err)
	}
}

func TestSampleDataPassesPreCheck(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	batch := batchFile{Countries: sampleCountries(), Questions: sampleQuestions()}
	if failed := lintBatch(cmd, batch, quality.NewPreChecker(quality.ProfileStrict)); failed != 0 {
		t.Fatalf("sample data failed pre-check:\n%s", buf.String())
	}
}

func TestRootOptionsFromEnv(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("APP_ENV", "production")
	cmd := &cobra.Command{Use: "test"}
	opts := bindRootOptions(cmd)
	if opts.port() != "9191" || opts.env() != "production" {
		t.Fatalf("expected env values, got port=%q env=%q", opts.port(), opts.env())
	}
	if opts.configPath() != defaultConfigPath {
		t.Fatalf("unexpected config default %q", opts.configPath())
	}
}

func TestRootOptionsFlagWins(t *testing.T) {
	t.Setenv("PORT", "9191")
	cmd := &cobra.Command{Use: "test"}
	opts := bindRootOptions(cmd)
	if err := cmd.PersistentFlags().Parse([]string{"--port", "7000"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.port() != "7000" {
		t.Fatalf("expected flag to win, got %q", opts.port())
	}
}
