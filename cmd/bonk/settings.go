package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bonk/internal/project"
)

// settings are the effective options of one invocation: bonk.toml values
// overridden by explicitly set flags.
type settings struct {
	manifest  *project.Manifest
	maxDiag   int
	jobs      int
	diskCache bool
	helpPaths []string
	color     bool
	quiet     bool
	timings   bool
}

var current = &settings{}

// setup loads bonk.toml for the command's target, starts profiling and tracing.
func setup(cmd *cobra.Command, args []string) error {
	start := "."
	if len(args) > 0 && args[0] != "-" {
		start = args[0]
	}
	s, err := loadSettings(cmd, start)
	if err != nil {
		return err
	}
	current = s
	if err := setupProfiling(cmd); err != nil {
		return err
	}
	return setupTracing(cmd, s.manifest)
}

func loadSettings(cmd *cobra.Command, start string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	s := &settings{maxDiag: 100}

	manifest, ok, err := project.Load(start)
	if err != nil {
		return nil, err
	}
	if ok {
		s.manifest = manifest
		s.helpPaths = manifest.HelpPaths()
		s.jobs = manifest.Config.Check.Jobs
		s.diskCache = manifest.Config.Check.DiskCache
		if manifest.Config.Check.MaxDiagnostics > 0 {
			s.maxDiag = manifest.Config.Check.MaxDiagnostics
		}
	}

	if flags.Changed("max-diagnostics") || !ok {
		if s.maxDiag, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	extra, err := flags.GetStringSlice("help-path")
	if err != nil {
		return nil, fmt.Errorf("failed to get help-path flag: %w", err)
	}
	s.helpPaths = append(s.helpPaths, extra...)

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(os.Stdout)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	return s, nil
}
