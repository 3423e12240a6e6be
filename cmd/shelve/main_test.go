package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shelve/internal/engine"
)

type cliTestEnv struct {
	baseDir    string
	sourceDir  string
	libraryDir string
	logDir     string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		sourceDir:  filepath.Join(base, "source"),
		libraryDir: filepath.Join(base, "library"),
		logDir:     filepath.Join(base, "logs"),
		configPath: filepath.Join(base, "config.toml"),
	}
	for _, dir := range []string{env.sourceDir, env.libraryDir, env.logDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	writeTestConfig(t, env)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
source_dir = %q
library_dir = %q
log_dir = %q

[journal]
enabled = true

[logging]
level = "error"
`, env.sourceDir, env.libraryDir, env.logDir)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func writeSourceFile(t *testing.T, env *cliTestEnv, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(env.sourceDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestRunCommandOrganizesFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSourceFile(t, env, "report.pdf", "pdf body")
	writeSourceFile(t, env, "photo.png", "png body")
	writeSourceFile(t, env, "mystery.xyz", "unknown")

	out, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Processed 3 files")

	expected := map[string]string{
		"report.pdf":  "documents",
		"photo.png":   "images",
		"mystery.xyz": "other",
	}
	for name, category := range expected {
		dest := filepath.Join(env.libraryDir, category, name)
		if _, err := os.Stat(dest); err != nil {
			t.Fatalf("expected %s at %s: %v", name, dest, err)
		}
	}
}

func TestRunCommandJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSourceFile(t, env, "song.mp3", "audio body")

	out, _, err := runCLI(t, []string{"run", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("run --json: %v", err)
	}

	var summary engine.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("parse summary JSON: %v\noutput: %s", err, out)
	}
	if summary.Moved != 1 {
		t.Fatalf("expected 1 moved file, got %+v", summary)
	}
	if summary.RunID == "" {
		t.Fatal("expected a run ID in the summary")
	}
}

func TestRunCommandPositionalArguments(t *testing.T) {
	env := setupCLITestEnv(t)
	altSource := filepath.Join(env.baseDir, "inbox")
	altDest := filepath.Join(env.baseDir, "sorted")
	if err := os.MkdirAll(altSource, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(altSource, "notes.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, _, err := runCLI(t, []string{"run", altSource, altDest}, env.configPath); err != nil {
		t.Fatalf("run with args: %v", err)
	}
	if _, err := os.Stat(filepath.Join(altDest, "documents", "notes.txt")); err != nil {
		t.Fatalf("expected notes.txt under %s/documents: %v", altDest, err)
	}
}

func TestRunCommandMissingSource(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "absent")

	_, _, err := runCLI(t, []string{"run", missing}, env.configPath)
	if err == nil {
		t.Fatal("expected an error for a missing source directory")
	}
}

func TestHistoryCommandListsRecordedRuns(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSourceFile(t, env, "data.csv", "a,b,c")

	if _, _, err := runCLI(t, []string{"run"}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, env.sourceDir)
}

func TestDupesCommandReportsGroups(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSourceFile(t, env, "a.txt", "same bytes")
	writeSourceFile(t, env, "b.txt", "same bytes")
	writeSourceFile(t, env, "c.txt", "different")

	out, _, err := runCLI(t, []string{"dupes", env.sourceDir}, env.configPath)
	if err != nil {
		t.Fatalf("dupes: %v", err)
	}
	requireContains(t, out, "1 duplicate groups")
	requireContains(t, out, "a.txt")
	requireContains(t, out, "b.txt")
}

func TestDupesCommandJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSourceFile(t, env, "x.bin", "payload")
	writeSourceFile(t, env, "y.bin", "payload")

	out, _, err := runCLI(t, []string{"dupes", "--json", env.sourceDir}, env.configPath)
	if err != nil {
		t.Fatalf("dupes --json: %v", err)
	}
	var groups []engine.DuplicateGroup
	if err := json.Unmarshal([]byte(out), &groups); err != nil {
		t.Fatalf("parse dupes JSON: %v\noutput: %s", err, out)
	}
	if len(groups) != 1 || len(groups[0].Paths) != 2 {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}

func TestCleanCommandRemovesEmptyDirs(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := filepath.Join(env.sourceDir, "old", "deeper")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, _, err := runCLI(t, []string{"clean", env.sourceDir}, env.configPath)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	requireContains(t, out, "Removed 2 empty directories")
	if _, err := os.Stat(filepath.Join(env.sourceDir, "old")); !os.IsNotExist(err) {
		t.Fatalf("expected old/ to be removed, stat err: %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, env.sourceDir)
	requireContains(t, out, "Documents")
}
