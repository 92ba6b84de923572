// Package example demonstrates how the core packages work together:
// schema text goes in, tool specifications come out, and the emitter and
// manifest builder render them for Python and for machine consumption.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/artpar/yanggen/core/emit"
	"github.com/artpar/yanggen/core/manifest"
	"github.com/artpar/yanggen/core/toolspec"
	"github.com/artpar/yanggen/core/yang"
)

const schemaText = `module dns {
  container resolver {
    description "Recursive resolver settings";
    leaf listen-address {
      type string;
      mandatory true;
    }
    leaf cache-size {
      type uint32;
      default 4096;
    }
  }
  list zone {
    key "name";
    leaf name { type string; }
    leaf ttl {
      type uint32;
      default 3600;
    }
  }
  rpc flush-cache {
    input {
      leaf zone-name { type string; }
    }
  }
}`

func main() {
	// Parse schema text into the IR
	parser := yang.New()
	module, diags := parser.Parse(schemaText)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "diagnostic: %s\n", d)
	}

	// Derive the tool specifications
	tools, diags, err := toolspec.Generate(module)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "diagnostic: %s\n", d)
	}

	fmt.Printf("module %s generated %d tools:\n", module.Name, len(tools))
	for _, t := range tools {
		fmt.Printf("  %-24s %s\n", t.Name, t.Description)
	}

	// Render the Python file
	source, err := emit.New().Emit(module.Name, tools)
	if err != nil {
		log.Fatalf("emit: %v", err)
	}
	if err := os.WriteFile("dns_tools.py", []byte(source), 0o644); err != nil {
		log.Fatalf("write: %v", err)
	}
	fmt.Println("wrote dns_tools.py")

	// Build the manifest with embedded input schemas
	man := manifest.Build(module.Name, tools, manifest.WithInputSchemas())
	if checkDiags := manifest.Check(man); len(checkDiags) != 0 {
		log.Fatalf("manifest check: %v", checkDiags)
	}

	out, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		log.Fatalf("marshal manifest: %v", err)
	}
	fmt.Println(string(out))
}
