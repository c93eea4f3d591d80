package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bonk/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bonk version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		switch format {
		case "pretty":
			fmt.Fprintln(cmd.OutOrStdout(), version.Line(current.color))
			return nil
		case "json":
			return writeJSON(cmd.OutOrStdout(), struct {
				Version   string `json:"version"`
				GitCommit string `json:"git_commit,omitempty"`
				BuildDate string `json:"build_date,omitempty"`
			}{version.Version, version.GitCommit, version.BuildDate})
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}
