package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/yanggen/bootstrap"
	"github.com/artpar/yanggen/core/formatter"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the tool manifest for a schema",
	Long: `Generate the tool set and print its manifest: one entry per tool
with name, operation and parameters. With --schemas each entry embeds a
JSON Schema draft 2020-12 description of the tool input.

Examples:
  yanggen manifest -i router.yang
  yanggen manifest -i router.yang -f json --schemas
  yanggen manifest -i schemas/ -f yaml -o manifests.yaml`,
	RunE: runManifest,
}

var (
	manifestInput   string
	manifestFormat  string
	manifestSchemas bool
	manifestOutput  string
)

func init() {
	rootCmd.AddCommand(manifestCmd)

	manifestCmd.Flags().StringVarP(&manifestInput, "input", "i", "", "schema file or directory (required)")
	manifestCmd.Flags().StringVarP(&manifestFormat, "format", "f", "", "output format: table, json or yaml")
	manifestCmd.Flags().BoolVar(&manifestSchemas, "schemas", false, "embed JSON Schema input descriptions")
	manifestCmd.Flags().StringVarP(&manifestOutput, "output", "o", "", "output file (default stdout)")
	manifestCmd.MarkFlagRequired("input")
}

func runManifest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.NewLogger(cfg.Logging)

	p, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}

	modules, all, err := p.LoadPath(manifestInput)
	if err != nil {
		return err
	}

	f, err := pickFormatter(cfg, manifestFormat)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for i, m := range modules {
		tools, diags, err := p.Generate(m)
		all.Merge(diags)
		if err != nil {
			reportDiagnostics(cfg, all)
			return err
		}
		man, checkDiags := p.BuildManifest(m, tools, manifestSchemas)
		all.Merge(checkDiags)

		if i > 0 {
			buf.WriteByte('\n')
		}
		if err := f.FormatManifest(&buf, man, formatter.FormatOptions{}); err != nil {
			return fmt.Errorf("render manifest: %w", err)
		}
	}

	if manifestOutput != "" {
		if err := os.WriteFile(manifestOutput, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s Manifest: %s\n", checkMark, manifestOutput)
	} else {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	}

	reportDiagnostics(cfg, all)
	if all.HasErrors() {
		return fmt.Errorf("%d error diagnostic(s)", countErrors(all))
	}
	return nil
}
