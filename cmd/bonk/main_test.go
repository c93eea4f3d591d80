package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bonk/internal/diagfmt"
)

// resetFlags returns every flag of the command tree to its default; cobra
// keeps parsed values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func runBonk(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	err = rootCmd.Execute()
	teardown()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func decodeDiagnostics(t *testing.T, data string) diagfmt.DiagnosticsOutput {
	t.Helper()
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		t.Fatalf("decode json: %v\n%s", err, data)
	}
	return out
}

func TestCheckCleanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.bonk")
	writeFile(t, path, "bowl a = 1;\n")

	stdout, _, err := runBonk(t, "check", "--format", "json", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	out := decodeDiagnostics(t, stdout)
	if out.Count != 0 || out.Errors != 0 {
		t.Fatalf("expected no diagnostics, got %+v", out)
	}
}

func TestCheckReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bonk")
	writeFile(t, path, "bowl a = 1 + \"x\";\n")

	stdout, _, err := runBonk(t, "check", path)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v", err)
	}
	if !strings.Contains(stdout, "bad.bonk:1:") {
		t.Fatalf("missing location in output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "1 error(s)") {
		t.Fatalf("missing summary in output:\n%s", stdout)
	}
}

func TestCheckManifestLimitsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bonk.toml"), "[package]\nname = \"demo\"\n\n[check]\nmax_diagnostics = 1\n")
	path := filepath.Join(dir, "bad.bonk")
	writeFile(t, path, "bowl a = 1 + \"x\";\nbowl b = 2 + \"y\";\n")

	stdout, _, err := runBonk(t, "check", "--format", "json", path)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v", err)
	}
	if out := decodeDiagnostics(t, stdout); out.Count != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", out.Count)
	}

	stdout, _, _ = runBonk(t, "check", "--format", "json", "--max-diagnostics", "0", path)
	if out := decodeDiagnostics(t, stdout); out.Count != 2 {
		t.Fatalf("flag should override manifest, got %d diagnostics", out.Count)
	}
}

func TestCheckBadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bonk.toml"), "[package]\nname = \"demo\"\n[check]\nturbo = true\n")
	path := filepath.Join(dir, "a.bonk")
	writeFile(t, path, "bowl a = 1;\n")

	_, _, err := runBonk(t, "check", path)
	if err == nil || errors.Is(err, errDiagnostics) {
		t.Fatalf("expected manifest error, got %v", err)
	}
}

func TestCheckDirectoryShort(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bonk"), "bowl a = 1;\n")
	writeFile(t, filepath.Join(dir, "b.bonk"), "bowl b = 1 + \"x\";\n")

	stdout, _, err := runBonk(t, "check", "--format", "short", "--jobs", "2", dir)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "b.bonk") {
		t.Fatalf("unexpected short output:\n%s", stdout)
	}
}

func TestCheckTimings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.bonk")
	writeFile(t, path, "bowl a = 1;\n")

	_, stderr, err := runBonk(t, "--timings", "check", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, phase := range []string{"load", "parse", "sema", "total"} {
		if !strings.Contains(stderr, phase) {
			t.Fatalf("timings miss %q:\n%s", phase, stderr)
		}
	}
}

func TestTypesJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defs.bonk")
	writeFile(t, path, "bowl a = 1;\nblok f[bowl x: flot] { bonk x; }\n")

	stdout, _, err := runBonk(t, "types", "--format", "json", path)
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	var mods []diagfmt.ModuleTypesJSON
	if err := json.Unmarshal([]byte(stdout), &mods); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(mods) != 1 || !mods[0].OK {
		t.Fatalf("unexpected modules: %+v", mods)
	}
	names := map[string]string{}
	for _, d := range mods[0].Definitions {
		names[d.Name] = d.Kind
	}
	if names["a"] != "bowl" || names["f"] != "blok" || names["x"] != "param" {
		t.Fatalf("unexpected definitions: %v", names)
	}
}

func TestTypesUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bonk")
	writeFile(t, path, "bowl a = 1;\n")

	if _, _, err := runBonk(t, "types", "--format", "xml", path); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestTokenizeJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bonk")
	writeFile(t, path, "bowl a = 1;\n")

	stdout, _, err := runBonk(t, "tokenize", "--format", "json", path)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var toks []diagfmt.TokenOutput
	if err := json.Unmarshal([]byte(stdout), &toks); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(toks) != 6 {
		t.Fatalf("expected 6 tokens with EOF, got %d", len(toks))
	}
}

func TestInitCreatesProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")

	stdout, _, err := runBonk(t, "init", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(stdout, "bonk.toml") || !strings.Contains(stdout, "main.bonk") {
		t.Fatalf("unexpected init output:\n%s", stdout)
	}
	if _, _, err := runBonk(t, "check", filepath.Join(dir, "main.bonk")); err != nil {
		t.Fatalf("starter module should check cleanly: %v", err)
	}
	if _, _, err := runBonk(t, "init", dir); err == nil {
		t.Fatalf("second init should fail")
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := runBonk(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var v struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal([]byte(stdout), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Version == "" {
		t.Fatalf("empty version")
	}
}

func TestCheckWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.bonk")
	writeFile(t, path, "bowl a = 1;\n")
	cpu := filepath.Join(dir, "cpu.out")
	heap := filepath.Join(dir, "heap.out")

	if _, _, err := runBonk(t, "--cpuprofile", cpu, "--memprofile", heap, "check", path); err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, p := range []string{cpu, heap} {
		if st, err := os.Stat(p); err != nil || st.Size() == 0 {
			t.Fatalf("profile %s not written: %v", filepath.Base(p), err)
		}
	}
}
