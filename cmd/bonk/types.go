package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bonk/internal/diagfmt"
	"bonk/internal/driver"
)

var typesCmd = &cobra.Command{
	Use:   "types [flags] <file.bonk>",
	Short: "Print the inferred type of every definition",
	Long: `Types checks the module and lists every bowl, blok, hive and parameter
with its inferred type and footprint. Diagnostics go to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().String("format", "text", "output format (text|json|yaml)")
	typesCmd.Flags().Bool("all", false, "also list the definitions of helped modules")
}

func runTypes(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	var write func() error

	opts := driver.DiagnoseOptions{
		MaxDiagnostics: current.maxDiag,
		HelpPaths:      current.helpPaths,
		Timings:        current.timings,
	}
	res, err := driver.DiagnoseFile(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	mods := make([]diagfmt.ModuleTypesJSON, 0, len(res.Modules))
	for i, m := range res.Modules {
		if i > 0 && !all {
			break
		}
		// модуль без дерева не дошёл до sema
		if m.Tree == nil || m.Engine == nil {
			continue
		}
		mods = append(mods, diagfmt.BuildModuleTypes(m.Name, m.Tree, res.FileSet, m.Result(), diagfmt.PathModeAuto))
	}

	out := cmd.OutOrStdout()
	switch format {
	case "text":
		write = func() error { return diagfmt.FormatTypesText(out, mods) }
	case "json":
		write = func() error { return diagfmt.FormatTypesJSON(out, mods) }
	case "yaml":
		write = func() error { return diagfmt.FormatTypesYAML(out, mods) }
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err := write(); err != nil {
		return err
	}

	if res.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     current.color,
			Context:   1,
			ShowNotes: true,
		})
	}
	if current.timings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}
