package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bonk/internal/buildpipeline"
	"bonk/internal/diag"
	"bonk/internal/diagfmt"
	"bonk/internal/driver"
	"bonk/internal/observ"
	"bonk/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.bonk|directory>",
	Short: "Type-check a bonk module or every module in a directory",
	Long: `Check loads the module, every module it helps, infers all types and
prints the diagnostics. The exit status is 1 when any error was reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory checks (0 = auto, overrides bonk.toml)")
	checkCmd.Flags().Bool("disk-cache", false, "reuse diagnostics of unchanged files from the disk cache")
	checkCmd.Flags().Bool("ui", false, "show an interactive progress view for directory checks")
}

type checkOutput struct {
	format    string
	withNotes bool
	pathMode  diagfmt.PathMode
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	target := args[0]

	out, err := readCheckOutput(cmd)
	if err != nil {
		return err
	}
	opts, err := diagnoseOptions(cmd)
	if err != nil {
		return err
	}
	useUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	st, err := os.Stat(target)
	if err != nil {
		return err
	}
	var results []*driver.DiagnoseResult
	if st.IsDir() {
		results, err = checkDir(cmd.Context(), target, opts, useUI && !current.quiet && isTerminal(os.Stderr))
	} else {
		var res *driver.DiagnoseResult
		res, err = driver.DiagnoseFile(cmd.Context(), target, opts)
		results = []*driver.DiagnoseResult{res}
	}
	if err != nil {
		return err
	}

	failed, err := renderResults(cmd.OutOrStdout(), results, out)
	if err != nil {
		return err
	}
	if current.timings {
		printTimings(cmd.ErrOrStderr(), results)
	}
	if failed {
		return errDiagnostics
	}
	return nil
}

func readCheckOutput(cmd *cobra.Command) (checkOutput, error) {
	var out checkOutput
	var err error
	if out.format, err = cmd.Flags().GetString("format"); err != nil {
		return out, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch out.format {
	case "pretty", "short", "json":
	default:
		return out, fmt.Errorf("unknown format: %s", out.format)
	}
	if out.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return out, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return out, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	out.pathMode = diagfmt.PathModeAuto
	if fullPath {
		out.pathMode = diagfmt.PathModeAbsolute
	}
	return out, nil
}

func diagnoseOptions(cmd *cobra.Command) (driver.DiagnoseOptions, error) {
	opts := driver.DiagnoseOptions{
		MaxDiagnostics: current.maxDiag,
		HelpPaths:      current.helpPaths,
		Timings:        current.timings,
		Jobs:           current.jobs,
	}
	if cmd.Flags().Changed("jobs") {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		opts.Jobs = jobs
	}
	useCache := current.diskCache
	if cmd.Flags().Changed("disk-cache") {
		v, err := cmd.Flags().GetBool("disk-cache")
		if err != nil {
			return opts, fmt.Errorf("failed to get disk-cache flag: %w", err)
		}
		useCache = v
	}
	if useCache {
		cache, err := driver.OpenDiskCache("bonk")
		if err != nil {
			return opts, fmt.Errorf("open disk cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

// checkDir runs DiagnoseDir, optionally behind the progress view.
func checkDir(ctx context.Context, dir string, opts driver.DiagnoseOptions, interactive bool) ([]*driver.DiagnoseResult, error) {
	if !interactive {
		return driver.DiagnoseDir(ctx, dir, opts)
	}
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	events := make(chan buildpipeline.Event, 64)
	opts.Progress = buildpipeline.ChannelSink{Ch: events}

	uiDone := make(chan error, 1)
	go func() {
		uiDone <- ui.Run(os.Stderr, "checking "+filepath.Base(dir), files, events)
	}()
	results, err := driver.DiagnoseDir(ctx, dir, opts)
	close(events)
	if uiErr := <-uiDone; uiErr != nil && err == nil {
		err = uiErr
	}
	return results, err
}

// renderResults prints every result and reports whether any had errors.
func renderResults(w io.Writer, results []*driver.DiagnoseResult, out checkOutput) (bool, error) {
	failed := false
	for _, res := range results {
		if res.HasErrors() {
			failed = true
		}
	}

	switch out.format {
	case "json":
		return failed, renderJSON(w, results, out)
	case "short":
		for _, res := range results {
			diagfmt.Short(w, res.Bag, res.FileSet, out.pathMode)
		}
	default:
		opts := diagfmt.PrettyOpts{
			Color:     current.color,
			Context:   1,
			PathMode:  out.pathMode,
			ShowNotes: out.withNotes,
		}
		for _, res := range results {
			if res.Bag.Len() == 0 {
				continue
			}
			diagfmt.Pretty(w, res.Bag, res.FileSet, opts)
			fmt.Fprintln(w)
		}
		if !current.quiet {
			fmt.Fprintln(w, summaryLine(results))
		}
	}
	return failed, nil
}

func renderJSON(w io.Writer, results []*driver.DiagnoseResult, out checkOutput) error {
	opts := diagfmt.JSONOpts{IncludePositions: true, PathMode: out.pathMode, IncludeNotes: out.withNotes}
	if len(results) == 1 {
		return diagfmt.JSON(w, results[0].Bag, results[0].FileSet, opts)
	}
	// для каталога - объект с выводом на каждый файл
	type fileOutput struct {
		File string `json:"file"`
		diagfmt.DiagnosticsOutput
	}
	files := make([]fileOutput, 0, len(results))
	for _, res := range results {
		files = append(files, fileOutput{File: res.Path, DiagnosticsOutput: diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, opts)})
	}
	return writeJSON(w, files)
}

func summaryLine(results []*driver.DiagnoseResult) string {
	errs, warns, cached := 0, 0, 0
	for _, res := range results {
		for _, d := range res.Bag.Items() {
			switch {
			case d.Severity >= diag.SevError:
				errs++
			case d.Severity == diag.SevWarning:
				warns++
			}
		}
		if res.Cached {
			cached++
		}
	}
	line := fmt.Sprintf("checked %d file(s): %d error(s), %d warning(s)", len(results), errs, warns)
	if cached > 0 {
		line += fmt.Sprintf(", %d from cache", cached)
	}
	return line
}

func printTimings(w io.Writer, results []*driver.DiagnoseResult) {
	if len(results) == 1 {
		fmt.Fprint(w, results[0].Timer.Summary())
		return
	}
	all := observ.NewTimer()
	for _, res := range results {
		all.Merge(filepath.Base(res.Path)+"/", res.Timer)
	}
	fmt.Fprint(w, all.Summary())
}
