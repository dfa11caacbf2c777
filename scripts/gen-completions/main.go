// Command gen-completions writes gantry's shell completion scripts (bash,
// zsh, fish, powershell) into a directory so release archives can ship them.
//
// Usage:
//
//	go run ./scripts/gen-completions [output-dir]
//
// The default output directory is "completions".
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/cli"
)

type completionFile struct {
	name string
	gen  func(root *cobra.Command, w io.Writer) error
}

var completionFiles = []completionFile{
	{name: "gantry.bash", gen: func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) }},
	{name: "_gantry", gen: func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) }},
	{name: "gantry.fish", gen: func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) }},
	{name: "gantry.ps1", gen: func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) }},
}

func main() {
	outDir := "completions"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	if err := run(outDir); err != nil {
		fmt.Fprintf(os.Stderr, "gen-completions: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("All completions written to %s/\n", outDir)
}

func run(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %q: %w", outDir, err)
	}

	root := cli.NewRootCmd()
	for _, cf := range completionFiles {
		path := filepath.Join(outDir, cf.name)
		if err := writeCompletion(root, path, cf.gen); err != nil {
			return err
		}
		fmt.Printf("Generated %s\n", path)
	}
	return nil
}

func writeCompletion(root *cobra.Command, path string, gen func(*cobra.Command, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	if err := gen(root, f); err != nil {
		f.Close()
		return fmt.Errorf("generating %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path, err)
	}
	return nil
}
