package version

import (
	"strings"
	"testing"
)

func override(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })
}

func TestLinePlain(t *testing.T) {
	override(t, "1.2.3", "abc123", "2024-01-15T10:30:00Z")
	got := Line(false)
	want := "bonk 1.2.3 (abc123) built 2024-01-15T10:30:00Z"
	if got != want {
		t.Fatalf("Line = %q, want %q", got, want)
	}
}

func TestColoredKeepsSuffix(t *testing.T) {
	override(t, "0.4.2-rc1", "", "")
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected escape codes in %q", got)
	}
	if !strings.HasSuffix(got, "-rc1") {
		t.Fatalf("suffix lost: %q", got)
	}
	if Colored(false) != "0.4.2-rc1" {
		t.Fatalf("plain = %q", Colored(false))
	}
}

func TestColoredNonSemver(t *testing.T) {
	override(t, "nightly", "", "")
	if got := Colored(true); got != "nightly" {
		t.Fatalf("got %q", got)
	}
}
