package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata of the bonk CLI, overridable via -ldflags "-X bonk/internal/version.Version=...".
var (
	// Version is the semantic version, optionally with a pre-release suffix.
	Version = "0.1.0-dev"

	GitCommit = ""

	// BuildDate is in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with major, minor and patch in distinct colors.
// Non-semver values are returned unchanged.
func Colored(enabled bool) string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if !enabled || len(parts) != len(partColors) {
		return Version
	}
	for i, p := range parts {
		c := *partColors[i]
		c.EnableColor()
		parts[i] = c.Sprint(p)
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Line is what `bonk version` prints.
func Line(colored bool) string {
	var sb strings.Builder
	sb.WriteString("bonk ")
	sb.WriteString(Colored(colored))
	if GitCommit != "" {
		sb.WriteString(" (")
		sb.WriteString(GitCommit)
		sb.WriteString(")")
	}
	if BuildDate != "" {
		sb.WriteString(" built ")
		sb.WriteString(BuildDate)
	}
	return sb.String()
}
