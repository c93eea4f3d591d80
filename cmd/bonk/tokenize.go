package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bonk/internal/diagfmt"
	"bonk/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.bonk>",
	Short: "Tokenize a bonk source file",
	Long:  `Tokenize prints the token stream of a file, ending with EOF`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	res, err := driver.Tokenize(args[0], current.maxDiag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, res.Tokens, res.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if res.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: current.color, Context: 1})
	}
	if res.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
