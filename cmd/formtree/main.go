// Package main implements the formtree CLI tool: build an editable node
// tree from a JSON Schema, optionally load a data document into it, then
// dump the tree's value and validate it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/engine"
)

const usage = `formtree - JSON Schema form-tree engine

Usage:
  formtree [options] <schema-file>

Examples:
  formtree schema.json
  formtree -data document.json schema.json
  formtree -data document.json -output json schema.yaml
  formtree -uri file:///schemas/root.json schema.json

Options:
`

type config struct {
	schemaFile  string
	dataFile    string
	schemaURI   string
	output      string
	noFormats   bool
	maxErrors   int
	showVersion bool
}

type report struct {
	Schema   string     `json:"schema"`
	Valid    bool       `json:"valid"`
	Errors   int        `json:"errors"`
	Warnings int        `json:"warnings"`
	Value    any        `json:"value"`
	Issues   []ft.Issue `json:"issues,omitempty"`
	Duration string     `json:"duration"`
}

func main() {
	cfg := parseFlags()

	if cfg.showVersion {
		fmt.Printf("formtree v%s\n", ft.Version)
		os.Exit(0)
	}

	if cfg.schemaFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(cfg))
}

func parseFlags() *config {
	cfg := &config{}

	flag.StringVar(&cfg.dataFile, "data", "", "JSON document to load into the tree")
	flag.StringVar(&cfg.schemaURI, "uri", "", "URI the schema document lives at (base for relative $refs)")
	flag.StringVar(&cfg.output, "output", "text", "Output format: text, json")
	flag.BoolVar(&cfg.noFormats, "no-formats", false, "Disable format-tag validation")
	flag.IntVar(&cfg.maxErrors, "max-errors", 0, "Cap reported issues (0 = unlimited)")
	flag.BoolVar(&cfg.showVersion, "v", false, "Show version")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()
	cfg.schemaFile = flag.Arg(0)
	return cfg
}

func run(cfg *config) int {
	ctx := context.Background()

	schemaBytes, err := os.ReadFile(cfg.schemaFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading schema: %v\n", err)
		return 1
	}

	uri := cfg.schemaURI
	if uri == "" {
		// Root relative references at the schema's own location so
		// sibling files resolve without an explicit -uri.
		if abs, absErr := filepath.Abs(cfg.schemaFile); absErr == nil {
			uri = "file://" + filepath.ToSlash(abs)
		}
	}

	eng := engine.New(
		ft.WithFormatValidation(!cfg.noFormats),
		ft.WithMaxErrors(cfg.maxErrors),
	)

	var tree *engine.Tree
	switch strings.ToLower(filepath.Ext(cfg.schemaFile)) {
	case ".yaml", ".yml":
		tree, err = eng.BuildTreeYAML(ctx, schemaBytes, uri)
	default:
		tree, err = eng.BuildTree(ctx, schemaBytes, uri)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building tree: %v\n", err)
		return 1
	}

	if cfg.dataFile != "" {
		data, readErr := os.ReadFile(cfg.dataFile)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "Error reading data: %v\n", readErr)
			return 1
		}
		if loadErr := tree.LoadJSON(ctx, data); loadErr != nil {
			fmt.Fprintf(os.Stderr, "Error loading data: %v\n", loadErr)
			return 1
		}
	}

	start := time.Now()
	result := tree.Validate(ctx)
	duration := time.Since(start)

	out := report{
		Schema:   cfg.schemaFile,
		Valid:    result.Valid,
		Errors:   result.ErrorCount(),
		Warnings: result.WarningCount(),
		Value:    tree.Dump(),
		Issues:   result.Issues,
		Duration: duration.Round(time.Microsecond).String(),
	}

	if strings.EqualFold(cfg.output, "json") {
		encoded, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(encoded))
	} else {
		printText(tree, out)
	}

	if !result.Valid {
		return 1
	}
	return 0
}

func printText(tree *engine.Tree, out report) {
	status := "VALID"
	if !out.Valid {
		status = "INVALID"
	}

	fmt.Printf("== %s ==\n", out.Schema)
	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Errors: %d, Warnings: %d\n", out.Errors, out.Warnings)
	fmt.Printf("Duration: %s\n", out.Duration)

	if encoded, err := tree.DumpJSON(); err == nil {
		fmt.Printf("\nValue:\n%s\n", encoded)
	}

	if len(out.Issues) > 0 {
		fmt.Println("\nIssues:")
		for _, iss := range out.Issues {
			fmt.Printf("  %s [%s] %s @ %s\n",
				severityTag(iss.Severity), iss.Code, iss.Message, iss.InstancePath)
		}
	}

	fmt.Println()
}

func severityTag(s ft.Severity) string {
	switch s {
	case ft.SeverityError:
		return "ERROR"
	case ft.SeverityWarning:
		return "WARN "
	case ft.SeverityInformation:
		return "INFO "
	default:
		return "     "
	}
}
