package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bonk/internal/project"
)

const starterSource = `blok area[bowl w: flot, bowl h: flot] {
    bonk w * h;
}

bowl a = @area[w = 2, h = 3];
`

var initCmd = &cobra.Command{
	Use:   "init [flags] [directory]",
	Short: "Create bonk.toml and a starter module",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("name", "", "package name (defaults to the directory name)")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("failed to get name flag: %w", err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if name == "" {
		name = filepath.Base(absDir)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	manifestPath, err := project.Init(absDir, name)
	if err != nil {
		if errors.Is(err, project.ErrManifestExists) {
			return fmt.Errorf("%s already contains %s", dir, project.ManifestName)
		}
		return err
	}

	mainPath := filepath.Join(absDir, "main.bonk")
	created := []string{manifestPath}
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(starterSource), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", mainPath, err)
		}
		created = append(created, mainPath)
	}

	if !current.quiet {
		out := cmd.OutOrStdout()
		for _, p := range created {
			fmt.Fprintf(out, "created %s\n", p)
		}
	}
	return nil
}
