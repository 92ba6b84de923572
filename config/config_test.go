package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artpar/yanggen/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yanggen.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeAndLoad(t *testing.T, content string) *config.Config {
	t.Helper()
	cfg, err := config.Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return cfg
}

func validConfig() string {
	return `
logging:
  level: "debug"
  pretty: true

generator:
  identity_param: "device_name"
  strict: true
  max_depth: 16
  type_overrides:
    vendor-percent: integer
  service_predicate: "create-only"

emit:
  backend_module: "acme.backend"

snapshot:
  cache_path: "snapshots.db"

output:
  format: "json"
`
}

func TestLoad_ValidConfig(t *testing.T) {
	cfg := writeAndLoad(t, validConfig())

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if !cfg.Logging.Pretty {
		t.Error("Logging.Pretty = false, want true")
	}
	if cfg.Generator.IdentityParam != "device_name" {
		t.Errorf("IdentityParam = %s, want device_name", cfg.Generator.IdentityParam)
	}
	if !cfg.Generator.Strict {
		t.Error("Strict = false, want true")
	}
	if cfg.Generator.MaxDepth != 16 {
		t.Errorf("MaxDepth = %d, want 16", cfg.Generator.MaxDepth)
	}
	if cfg.Generator.TypeOverrides["vendor-percent"] != "integer" {
		t.Errorf("TypeOverrides[vendor-percent] = %s, want integer",
			cfg.Generator.TypeOverrides["vendor-percent"])
	}
	if cfg.Generator.ServicePredicate != config.PredicateCreateOnly {
		t.Errorf("ServicePredicate = %s, want create-only", cfg.Generator.ServicePredicate)
	}
	if cfg.Emit.BackendModule != "acme.backend" {
		t.Errorf("BackendModule = %s, want acme.backend", cfg.Emit.BackendModule)
	}
	if cfg.Snapshot.CachePath != "snapshots.db" {
		t.Errorf("CachePath = %s, want snapshots.db", cfg.Snapshot.CachePath)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %s, want json", cfg.Output.Format)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := writeAndLoad(t, "")

	if cfg.Logging.Level != "info" {
		t.Errorf("default Level = %s, want info", cfg.Logging.Level)
	}
	if cfg.Generator.IdentityParam != "router_name" {
		t.Errorf("default IdentityParam = %s, want router_name", cfg.Generator.IdentityParam)
	}
	if cfg.Generator.MaxDepth != 64 {
		t.Errorf("default MaxDepth = %d, want 64", cfg.Generator.MaxDepth)
	}
	if cfg.Generator.ServicePredicate != config.PredicateCreateAndDelete {
		t.Errorf("default ServicePredicate = %s, want create-and-delete",
			cfg.Generator.ServicePredicate)
	}
	if cfg.Generator.Strict {
		t.Error("default Strict = true, want false")
	}
	if cfg.Emit.BackendModule != "yanggen_backend" {
		t.Errorf("default BackendModule = %s, want yanggen_backend", cfg.Emit.BackendModule)
	}
	if cfg.Snapshot.CachePath != "yanggen.db" {
		t.Errorf("default CachePath = %s, want yanggen.db", cfg.Snapshot.CachePath)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("default Format = %s, want table", cfg.Output.Format)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"bad log level",
			"logging:\n  level: loud\n",
			"logging.level",
		},
		{
			"negative depth",
			"generator:\n  max_depth: -3\n",
			"max_depth",
		},
		{
			"bad predicate",
			"generator:\n  service_predicate: sometimes\n",
			"service_predicate",
		},
		{
			"bad override type",
			"generator:\n  type_overrides:\n    foo: decimal\n",
			"unknown canonical type",
		},
		{
			"bad output format",
			"output:\n  format: xml\n",
			"output.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("YANGGEN_IDENTITY_PARAM", "hostname")
	t.Setenv("YANGGEN_STRICT", "yes")
	t.Setenv("YANGGEN_MAX_DEPTH", "8")

	cfg := writeAndLoad(t, "generator:\n  identity_param: device_name\n")

	if cfg.Generator.IdentityParam != "hostname" {
		t.Errorf("IdentityParam = %s, want env override hostname", cfg.Generator.IdentityParam)
	}
	if !cfg.Generator.Strict {
		t.Error("Strict = false, want env override true")
	}
	if cfg.Generator.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d, want env override 8", cfg.Generator.MaxDepth)
	}
}

func TestLoad_ExpandsEnvInFile(t *testing.T) {
	t.Setenv("SNAP_DB", "/tmp/snaps.db")

	cfg := writeAndLoad(t, "snapshot:\n  cache_path: ${SNAP_DB}\n")

	if cfg.Snapshot.CachePath != "/tmp/snaps.db" {
		t.Errorf("CachePath = %s, want expanded /tmp/snaps.db", cfg.Snapshot.CachePath)
	}
}

func TestDefault(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("Default error: %v", err)
	}
	if cfg.Generator.IdentityParam != "router_name" {
		t.Errorf("IdentityParam = %s, want router_name", cfg.Generator.IdentityParam)
	}
}

func TestLoadWithFallback(t *testing.T) {
	// Existing file wins.
	path := writeConfig(t, "output:\n  format: yaml\n")
	cfg, err := config.LoadWithFallback(path)
	if err != nil {
		t.Fatalf("LoadWithFallback error: %v", err)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Format = %s, want yaml", cfg.Output.Format)
	}

	// Empty path falls back to defaults.
	cfg, err = config.LoadWithFallback("")
	if err != nil {
		t.Fatalf("LoadWithFallback(\"\") error: %v", err)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("fallback Format = %s, want table", cfg.Output.Format)
	}

	// Explicit but missing path is an error.
	if _, err := config.LoadWithFallback(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadWithFallback of missing explicit path succeeded, want error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load succeeded, want error")
	}
	if !strings.Contains(err.Error(), "read config") {
		t.Errorf("error = %q, want read context", err)
	}
}
