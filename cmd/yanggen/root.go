package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/yanggen/config"
	"github.com/artpar/yanggen/core/formatter"
)

var (
	// Global flags
	cfgFile   string
	logLevel  string
	logPretty bool
)

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yanggen",
	Short: "Generate FastMCP configuration tools from device schemas",
	Long: `yanggen turns YANG-style schema text or captured model snapshots into
Python configuration tools for FastMCP servers, plus a language-neutral
manifest of the generated tool set.

Quick start:
  yanggen generate -i router.yang -o router_tools.py
  yanggen validate -i router.yang

Model snapshots:
  yanggen snapshot save --file router.yaml --name lab
  yanggen analyze --name lab -o router_tools.py`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", false, "human-readable log output")
}

// loadConfig loads configuration and applies global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logPretty {
		cfg.Logging.Pretty = true
	}
	return cfg, nil
}

// pickFormatter resolves the output formatter, letting a flag override the
// configured format.
func pickFormatter(cfg *config.Config, override string) (formatter.Formatter, error) {
	name := cfg.Output.Format
	if override != "" {
		name = override
	}
	f, ok := formatter.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return f, nil
}
