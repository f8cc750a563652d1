package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weftml/weft/compiler"
)

var (
	genDryRun  bool
	genVerbose bool
)

var generateCmd = &cobra.Command{
	Use:     "generate [dir]",
	Aliases: []string{"g"},
	Short:   "Compile every .weft template to its _weft.go sibling",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roots := cfg.Generate.Roots
		if len(args) == 1 {
			roots = args
		}
		n, err := generateAll(cmd, roots, genDryRun, genVerbose)
		if err == nil {
			cmd.Printf("compiled %d templates\n", n)
		}
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Compile templates in memory and report diagnostics without writing files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roots := cfg.Generate.Roots
		if len(args) == 1 {
			roots = args
		}
		n, err := generateAll(cmd, roots, true, genVerbose)
		if err == nil {
			cmd.Printf("%d templates ok\n", n)
		}
		return err
	},
}

func init() {
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "compile without writing generated files")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "print a line per compiled file")
	checkCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "print a line per checked file")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
}

// generateAll compiles every template under the roots. With dryRun set
// nothing is written. It returns the number of templates processed; the
// error is non-nil when any template failed.
func generateAll(cmd *cobra.Command, roots []string, dryRun, verbose bool) (int, error) {
	files, err := findTemplates(roots, cfg.Generate.Exclude)
	if err != nil {
		return 0, fmt.Errorf("scanning for templates: %w", err)
	}

	failed := 0
	for _, file := range files {
		if dryRun {
			if _, err := compiler.CompileFile(file); err != nil {
				failed++
				cmd.PrintErrln(err)
				continue
			}
			if verbose {
				cmd.Printf("%s ok\n", file)
			}
			continue
		}
		out, err := compiler.WriteFile(file)
		if err != nil {
			failed++
			cmd.PrintErrln(err)
			continue
		}
		if verbose {
			cmd.Printf("%s -> %s\n", file, out)
		}
	}

	if failed > 0 {
		return len(files), fmt.Errorf("%d of %d templates failed", failed, len(files))
	}
	return len(files), nil
}
