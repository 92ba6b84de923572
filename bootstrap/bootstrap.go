// Package bootstrap wires the generation pipeline from configuration:
// parser, analyzer, tool-spec generator, emitter, and manifest builder
// share one config and one tool registry per pipeline. Watch mode builds
// a fresh pipeline for every rerun.
package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/yanggen/config"
	"github.com/artpar/yanggen/core/analyze"
	"github.com/artpar/yanggen/core/capability"
	"github.com/artpar/yanggen/core/emit"
	"github.com/artpar/yanggen/core/manifest"
	"github.com/artpar/yanggen/core/registry"
	"github.com/artpar/yanggen/core/schema"
	"github.com/artpar/yanggen/core/toolspec"
	"github.com/artpar/yanggen/core/typemap"
	"github.com/artpar/yanggen/core/yang"
)

// Pipeline assembles the generation stages behind one configuration.
// Tool names are registered in a single registry, so modules processed by
// the same pipeline cannot collide silently.
type Pipeline struct {
	logger  zerolog.Logger
	cfg     *config.Config
	parser  *yang.Parser
	emitter *emit.Emitter
	reg     *registry.Registry
}

// Result is the outcome of one module run.
type Result struct {
	// Module is the IR the run started from.
	Module *schema.Module

	// Tools is the generated tool list.
	Tools []*toolspec.Tool

	// Source is the emitted Python source.
	Source string

	// Manifest is the language-neutral tool description.
	Manifest *manifest.Manifest

	// Diagnostics aggregates findings from every stage.
	Diagnostics schema.Diagnostics
}

// New creates a pipeline from configuration.
func New(cfg *config.Config, logger zerolog.Logger) (*Pipeline, error) {
	table, err := typemap.NewTable(cfg.Generator.TypeOverrides)
	if err != nil {
		return nil, fmt.Errorf("type overrides: %w", err)
	}

	return &Pipeline{
		logger: logger,
		cfg:    cfg,
		parser: yang.New(
			yang.WithMaxDepth(cfg.Generator.MaxDepth),
			yang.WithTypeTable(table),
		),
		emitter: emit.New(emit.WithBackendModule(cfg.Emit.BackendModule)),
		reg:     registry.New(),
	}, nil
}

// Parse parses schema text into the IR.
func (p *Pipeline) Parse(text string) (*schema.Module, schema.Diagnostics) {
	return p.parser.Parse(text)
}

// LoadPath loads modules from a schema file, or from every *.yang file in a
// directory, filename-sorted.
func (p *Pipeline) LoadPath(path string) ([]*schema.Module, schema.Diagnostics, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		modules, diags, err := p.parser.ParseDir(path)
		if err != nil {
			return nil, diags, err
		}
		p.logger.Info().Str("dir", path).Int("modules", len(modules)).Msg("loaded schema directory")
		return modules, diags, nil
	}

	m, diags, err := p.parser.ParseFile(path)
	if err != nil {
		return nil, diags, err
	}
	p.logger.Info().Str("file", path).Str("module", m.Name).Msg("loaded schema file")
	return []*schema.Module{m}, diags, nil
}

// AnalyzeModel walks a capability tree and builds the IR for it.
func (p *Pipeline) AnalyzeModel(name string, root capability.Node) (*analyze.Result, schema.Diagnostics) {
	return analyze.Analyze(name, root,
		analyze.WithMaxDepth(p.cfg.Generator.MaxDepth),
		analyze.WithServicePredicate(p.servicePredicate()),
	)
}

// Generate builds the tool list for one module, sharing the pipeline's
// registry.
func (p *Pipeline) Generate(m *schema.Module) ([]*toolspec.Tool, schema.Diagnostics, error) {
	return toolspec.Generate(m,
		toolspec.WithIdentityParam(p.cfg.Generator.IdentityParam),
		toolspec.WithStrict(p.cfg.Generator.Strict),
		toolspec.WithRegistry(p.reg),
	)
}

// Render emits Python source for a module's tools.
func (p *Pipeline) Render(m *schema.Module, tools []*toolspec.Tool) (string, error) {
	return p.emitter.Emit(m.Name, tools)
}

// BuildManifest builds the manifest, optionally embedding per-tool input
// schemas, and runs the schema compile self-check.
func (p *Pipeline) BuildManifest(m *schema.Module, tools []*toolspec.Tool, embedSchemas bool) (*manifest.Manifest, schema.Diagnostics) {
	var opts []manifest.Option
	if embedSchemas {
		opts = append(opts, manifest.WithInputSchemas())
	}
	man := manifest.Build(m.Name, tools, opts...)
	return man, manifest.Check(man)
}

// Run executes the full pipeline for one module: generation, emission,
// manifest, self-check. The Result always carries whatever was produced,
// alongside the accumulated diagnostics.
func (p *Pipeline) Run(m *schema.Module) (*Result, error) {
	start := time.Now()
	res := &Result{Module: m}

	tools, diags, err := p.Generate(m)
	res.Tools = tools
	res.Diagnostics.Merge(diags)
	if err != nil {
		return res, err
	}

	source, err := p.Render(m, tools)
	if err != nil {
		return res, err
	}
	res.Source = source

	man, checkDiags := p.BuildManifest(m, tools, false)
	res.Manifest = man
	res.Diagnostics.Merge(checkDiags)

	p.logger.Info().
		Str("module", m.Name).
		Int("tools", len(tools)).
		Int("diagnostics", len(res.Diagnostics)).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline run complete")

	return res, nil
}

// servicePredicate maps the configured mode onto the analyzer predicate.
func (p *Pipeline) servicePredicate() analyze.Predicate {
	switch p.cfg.Generator.ServicePredicate {
	case config.PredicateCreateOnly:
		return func(s capability.Set) bool { return s.Create }
	case config.PredicateAny:
		return func(s capability.Set) bool { return true }
	default:
		return analyze.DefaultServicePredicate
	}
}

// NewLogger builds the process logger from configuration. Logs go to
// stderr so generated source on stdout stays clean.
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
