package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/yanggen/bootstrap"
	"github.com/artpar/yanggen/core/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse a schema and report diagnostics without generating",
	Long: `Parse schema text and check the resulting model for structural
problems: duplicate names, key leaves missing from lists, unknown types.
Nothing is generated; the exit code is 1 when any diagnostic has error
severity.

Examples:
  yanggen validate -i router.yang
  yanggen validate -i schemas/`,
	RunE: runValidate,
}

var validateInput string

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "schema file or directory (required)")
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.NewLogger(cfg.Logging)

	p, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}

	modules, all, err := p.LoadPath(validateInput)
	if err != nil {
		return err
	}
	for _, m := range modules {
		all.Merge(schema.Validate(m))
	}

	reportDiagnostics(cfg, all)

	errs := countErrors(all)
	switch {
	case errs > 0:
		fmt.Fprintf(os.Stderr, "%s %d module(s), %d diagnostic(s), %d error(s)\n",
			crossMark, len(modules), len(all), errs)
		return fmt.Errorf("validation failed")
	case len(all) > 0:
		fmt.Fprintf(os.Stderr, "%s %d module(s) valid, %d warning(s)\n",
			checkMark, len(modules), len(all))
	default:
		fmt.Fprintf(os.Stderr, "%s %d module(s) valid\n", checkMark, len(modules))
	}
	return nil
}
