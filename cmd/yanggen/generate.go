package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/artpar/yanggen/bootstrap"
	"github.com/artpar/yanggen/config"
	"github.com/artpar/yanggen/core/formatter"
	"github.com/artpar/yanggen/core/schema"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Python tools from a schema file or directory",
	Long: `Parse schema text, generate the tool set, and emit Python source.

With a directory input every *.yang file is loaded in filename order and
the output flag names a directory. Diagnostics go to stderr; the run fails
when any diagnostic has error severity, or in strict mode when a
generation invariant is violated.

Examples:
  yanggen generate -i router.yang
  yanggen generate -i router.yang -o router_tools.py --manifest router.json
  yanggen generate -i schemas/ -o tools/ --strict
  yanggen generate -i router.yang -o router_tools.py --watch`,
	RunE: runGenerate,
}

var (
	generateInput    string
	generateOutput   string
	generateManifest string
	generateStrict   bool
	generateWatch    bool
	generateIdentity string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "schema file or directory (required)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file, directory for multi-module input (default stdout)")
	generateCmd.Flags().StringVar(&generateManifest, "manifest", "", "write the tool manifest to this path")
	generateCmd.Flags().BoolVar(&generateStrict, "strict", false, "fail on generation invariant violations")
	generateCmd.Flags().BoolVar(&generateWatch, "watch", false, "regenerate when the input or config changes")
	generateCmd.Flags().StringVar(&generateIdentity, "identity-param", "", "name of the identity parameter")
	generateCmd.MarkFlagRequired("input")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cfg)
	logger := bootstrap.NewLogger(cfg.Logging)

	if !generateWatch {
		return generatePass(cfg, logger)
	}

	// In watch mode a failed pass is logged, not fatal.
	if err := generatePass(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("generation failed")
	}
	return watchInput(logger)
}

// applyGenerateFlags layers command flags over the loaded configuration.
func applyGenerateFlags(cfg *config.Config) {
	if generateStrict {
		cfg.Generator.Strict = true
	}
	if generateIdentity != "" {
		cfg.Generator.IdentityParam = generateIdentity
	}
}

// generatePass runs the whole pipeline once.
func generatePass(cfg *config.Config, logger zerolog.Logger) error {
	p, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}

	modules, all, err := p.LoadPath(generateInput)
	if err != nil {
		return err
	}
	multi := len(modules) > 1

	for _, m := range modules {
		res, err := p.Run(m)
		if res != nil {
			all.Merge(res.Diagnostics)
		}
		if err != nil {
			reportDiagnostics(cfg, all)
			return err
		}
		if err := writeGenerated(res, multi); err != nil {
			return err
		}
	}

	reportDiagnostics(cfg, all)
	if all.HasErrors() {
		return fmt.Errorf("%d error diagnostic(s)", countErrors(all))
	}
	return nil
}

func writeGenerated(res *bootstrap.Result, multi bool) error {
	switch {
	case generateOutput == "":
		fmt.Print(res.Source)
	case multi:
		if err := os.MkdirAll(generateOutput, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		path := filepath.Join(generateOutput, res.Module.Name+"_tools.py")
		if err := os.WriteFile(path, []byte(res.Source), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "%s Generated: %s\n", checkMark, path)
	default:
		if err := os.WriteFile(generateOutput, []byte(res.Source), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", generateOutput, err)
		}
		fmt.Fprintf(os.Stderr, "%s Generated: %s\n", checkMark, generateOutput)
	}

	if generateManifest != "" {
		return writeManifestFile(res, multi)
	}
	return nil
}

func writeManifestFile(res *bootstrap.Result, multi bool) error {
	path := generateManifest
	if multi {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create manifest directory: %w", err)
		}
		path = filepath.Join(path, res.Module.Name+"_manifest.json")
	}

	name := "json"
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		name = "yaml"
	}
	f, ok := formatter.Get(name)
	if !ok {
		return fmt.Errorf("unknown manifest format %q", name)
	}

	var buf bytes.Buffer
	if err := f.FormatManifest(&buf, res.Manifest, formatter.FormatOptions{}); err != nil {
		return fmt.Errorf("render manifest: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	fmt.Fprintf(os.Stderr, "%s Manifest: %s\n", checkMark, path)
	return nil
}

func reportDiagnostics(cfg *config.Config, diags schema.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	f, err := pickFormatter(cfg, "")
	if err != nil {
		f, _ = formatter.Get("table")
	}
	f.FormatDiagnostics(os.Stderr, diags, formatter.FormatOptions{})
}

func countErrors(diags schema.Diagnostics) int {
	n := 0
	for _, d := range diags {
		if d.Severity == schema.SeverityError {
			n++
		}
	}
	return n
}

// watchInput reruns generation whenever the input or the config file
// changes, until interrupted.
func watchInput(logger zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(generateInput)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}

	// Watch the directory (atomic saves replace the file)
	watchDir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		watchDir = filepath.Dir(target)
	}
	if err := watcher.Add(watchDir); err != nil {
		return fmt.Errorf("watch input: %w", err)
	}

	// Every rerun is a fresh pass with freshly loaded config.
	var mu sync.Mutex
	rerun := func(reason string) {
		mu.Lock()
		defer mu.Unlock()

		logger.Info().Str("reason", reason).Msg("regenerating")
		cfg, err := loadConfig()
		if err != nil {
			logger.Error().Err(err).Msg("config reload failed, keeping last output")
			return
		}
		applyGenerateFlags(cfg)
		if err := generatePass(cfg, logger); err != nil {
			logger.Error().Err(err).Msg("generation failed")
		}
	}

	if cfgFile != "" {
		holder, err := config.NewHolder(cfgFile, logger)
		if err != nil {
			return err
		}
		holder.OnChange(func(*config.Config) { rerun("config changed") })
		if err := holder.WatchFile(); err != nil {
			return err
		}
		holder.WatchSignals()
		defer holder.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("input", target).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("stopping watch")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event, target) {
				continue
			}
			rerun(filepath.Base(event.Name) + " changed")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watch error")
		}
	}
}

// relevantEvent filters watcher noise down to changes of the input itself.
func relevantEvent(event fsnotify.Event, target string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return strings.HasSuffix(event.Name, ".yang")
	}
	return filepath.Base(event.Name) == filepath.Base(target)
}
