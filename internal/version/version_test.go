package version

import (
	"regexp"
	"strings"
	"testing"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestPlain_NoColorCodes(t *testing.T) {
	if Plain == "" {
		t.Fatal("Plain should have a default value")
	}
	if strings.Contains(Plain, "\x1b") {
		t.Errorf("Plain = %q contains ANSI escapes; it is embedded in emitted modules", Plain)
	}
}

func TestPlain_MatchesColoredVersion(t *testing.T) {
	// Version carries color codes for terminal output; stripped of
	// them it must spell the same version as Plain.
	stripped := ansiEscape.ReplaceAllString(Version, "")
	if stripped != Plain {
		t.Errorf("Version without color codes = %q, want Plain = %q", stripped, Plain)
	}
}

func TestProducer(t *testing.T) {
	got := Producer()
	if !strings.HasPrefix(got, "flintc ") {
		t.Errorf("Producer() = %q, want prefix %q", got, "flintc ")
	}
	if !strings.Contains(got, Plain) {
		t.Errorf("Producer() = %q does not contain Plain = %q", got, Plain)
	}
	if strings.Contains(got, "\x1b") {
		t.Errorf("Producer() = %q contains ANSI escapes; it lands in DICompileUnit producer and llvm.ident", got)
	}
}

func TestProducer_TracksPlainOverride(t *testing.T) {
	orig := Plain
	defer func() { Plain = orig }()

	// Simulate a build-time -ldflags override.
	Plain = "9.9.9"
	if got, want := Producer(), "flintc 9.9.9"; got != want {
		t.Errorf("Producer() = %q, want %q", got, want)
	}
}

func TestBuildMetadata_Overridable(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit = "abc123def456"
	BuildDate = "2026-01-15T10:30:00Z"
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", GitCommit, "abc123def456")
	}
	if BuildDate != "2026-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q, want %q", BuildDate, "2026-01-15T10:30:00Z")
	}
}
