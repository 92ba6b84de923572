package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/yanggen/adapters/snapshot"
	"github.com/artpar/yanggen/adapters/sqlite"
	"github.com/artpar/yanggen/bootstrap"
	"github.com/artpar/yanggen/config"
	"github.com/artpar/yanggen/core/capability"
	"github.com/artpar/yanggen/core/formatter"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Generate tools from a model snapshot instead of schema text",
	Long: `Walk a captured model tree, infer the schema from node capabilities,
and generate the same tool set the schema path would produce.

The snapshot comes from a YAML file or from the snapshot cache. Without
--output the tool manifest is printed; with it the Python source is
written to the given file.

Examples:
  yanggen analyze --snapshot router.yaml
  yanggen analyze --name router-v2 -o router_tools.py
  yanggen analyze --cache lab.db --name router-v2 -f json`,
	RunE: runAnalyze,
}

var (
	analyzeSnapshot string
	analyzeCache    string
	analyzeName     string
	analyzeOutput   string
	analyzeFormat   string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeSnapshot, "snapshot", "", "model snapshot file (YAML)")
	analyzeCmd.Flags().StringVar(&analyzeCache, "cache", "", "snapshot cache database (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "snapshot name in the cache")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write generated Python to this file")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "manifest format: table, json or yaml")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.NewLogger(cfg.Logging)

	root, err := loadSnapshotNode(cfg)
	if err != nil {
		return err
	}

	p, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}

	model, diags := p.AnalyzeModel(root.Name(), root)
	res, err := p.Run(model.Module)
	if res != nil {
		diags.Merge(res.Diagnostics)
	}
	if err != nil {
		reportDiagnostics(cfg, diags)
		return err
	}

	if analyzeOutput != "" {
		if err := os.WriteFile(analyzeOutput, []byte(res.Source), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", analyzeOutput, err)
		}
		fmt.Fprintf(os.Stderr, "%s Generated: %s\n", checkMark, analyzeOutput)
	} else {
		f, err := pickFormatter(cfg, analyzeFormat)
		if err != nil {
			return err
		}
		if err := f.FormatManifest(os.Stdout, res.Manifest, formatter.FormatOptions{}); err != nil {
			return fmt.Errorf("render manifest: %w", err)
		}
	}

	reportDiagnostics(cfg, diags)
	if diags.HasErrors() {
		return fmt.Errorf("%d error diagnostic(s)", countErrors(diags))
	}
	return nil
}

// loadSnapshotNode resolves the snapshot source: a YAML file with
// --snapshot, or a named entry in the cache with --name.
func loadSnapshotNode(cfg *config.Config) (capability.Node, error) {
	switch {
	case analyzeSnapshot != "" && analyzeName != "":
		return nil, fmt.Errorf("--snapshot and --name are mutually exclusive")
	case analyzeSnapshot != "":
		return snapshot.Load(analyzeSnapshot)
	case analyzeName != "":
		store, closeStore, err := openSnapshotStore(cfg, analyzeCache)
		if err != nil {
			return nil, err
		}
		defer closeStore()

		snap, err := store.Load(context.Background(), analyzeName)
		if err != nil {
			return nil, fmt.Errorf("load snapshot %q: %w", analyzeName, err)
		}
		return snapshot.Parse(snap.Document)
	default:
		return nil, fmt.Errorf("either --snapshot or --name is required")
	}
}

// openSnapshotStore opens the cache database, running migrations so a
// fresh cache path works on first use.
func openSnapshotStore(cfg *config.Config, path string) (*sqlite.SnapshotStore, func(), error) {
	if path == "" {
		path = cfg.Snapshot.CachePath
	}
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot cache: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate snapshot cache: %w", err)
	}
	return sqlite.NewSnapshotStore(db), func() { db.Close() }, nil
}
