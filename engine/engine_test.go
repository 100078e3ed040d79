package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/node"
	"github.com/goschema/formtree/schema"
)

const personSchema = `{
	"title": "Person",
	"type": "object",
	"properties": {
		"name": {"type": "string", "maxLength": 32},
		"age": {"type": "integer", "minimum": 0, "maximum": 130},
		"email": {"type": "string", "format": "email"},
		"tags": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["name"]
}`

func TestBuildLoadDumpValidate(t *testing.T) {
	ctx := context.Background()
	eng := New()

	tree, err := eng.BuildTree(ctx, []byte(personSchema), "")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	if tree.Root().Name() != "Person" {
		t.Errorf("root name = %q, want the schema title", tree.Root().Name())
	}

	doc := []byte(`{"name": "ada", "age": 36, "email": "ada@example.com", "tags": ["math"]}`)
	if err := tree.LoadJSON(ctx, doc); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}

	result := tree.Validate(ctx)
	if !result.Valid {
		t.Fatalf("valid document flagged invalid: %v", result.Issues)
	}

	dumped, err := tree.DumpJSON()
	if err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}
	v, err := schema.DecodeValue(dumped)
	if err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	want, _ := schema.DecodeValue(doc)
	if !schema.ValueEqual(v, want) {
		t.Errorf("round trip mismatch: %s", dumped)
	}
}

func TestValidateFlagsViolations(t *testing.T) {
	ctx := context.Background()
	tree, err := New().BuildTree(ctx, []byte(personSchema), "")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	result := tree.ValidateValue(ctx, map[string]any{
		"name":  "ada",
		"age":   200,
		"email": "not-an-address",
	})
	if result.Valid {
		t.Fatal("invalid document passed validation")
	}
	if result.ErrorCount() != 2 {
		t.Errorf("ErrorCount() = %d, want 2: %v", result.ErrorCount(), result.Issues)
	}

	codes := map[ft.IssueType]bool{}
	for _, iss := range result.Issues {
		codes[iss.Code] = true
	}
	if !codes[ft.IssueTypeRange] || !codes[ft.IssueTypeFormat] {
		t.Errorf("issue codes = %v", codes)
	}
}

func TestRootNameFallsBack(t *testing.T) {
	tree, err := New().BuildTree(context.Background(), []byte(`{"type": "boolean"}`), "")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if tree.Root().Name() != "(root)" {
		t.Errorf("root name = %q", tree.Root().Name())
	}
}

func TestBuildTreeYAML(t *testing.T) {
	doc := []byte(`
title: Config
type: object
properties:
  host:
    type: string
    default: localhost
  port:
    type: integer
    default: 8080
`)

	tree, err := New().BuildTreeYAML(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("BuildTreeYAML: %v", err)
	}

	got := tree.Dump().(map[string]any)
	if got["host"] != "localhost" || got["port"] != int64(8080) {
		t.Errorf("Dump() = %#v", got)
	}
}

func TestFileSchemeReferences(t *testing.T) {
	dir := t.TempDir()

	leaf := filepath.Join(dir, "leaf.json")
	if err := os.WriteFile(leaf, []byte(`{
		"definitions": {
			"name": {"type": "string", "default": "from-disk"}
		}
	}`), 0o600); err != nil {
		t.Fatal(err)
	}

	rootSchema := []byte(`{
		"type": "object",
		"properties": {
			"who": {"$ref": "leaf.json#/definitions/name"}
		}
	}`)

	ctx := context.Background()
	uri := "file://" + filepath.ToSlash(filepath.Join(dir, "root.json"))
	tree, err := New().BuildTree(ctx, rootSchema, uri)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	got := tree.Dump().(map[string]any)
	if got["who"] != "from-disk" {
		t.Errorf("who = %#v; relative file reference did not resolve", got["who"])
	}
}

func TestSelfReferenceUsesSeededDocument(t *testing.T) {
	// The schema's own URI points at a file that does not exist on disk;
	// resolution must come from the seeded in-memory document.
	uri := "file:///definitely/not/on/disk.json"
	doc := []byte(`{
		"definitions": {"x": {"type": "integer", "default": 9}},
		"type": "object",
		"properties": {
			"x": {"$ref": "#/definitions/x"}
		}
	}`)

	tree, err := New().BuildTree(context.Background(), doc, uri)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	got := tree.Dump().(map[string]any)
	if got["x"] != int64(9) {
		t.Errorf("x = %#v", got["x"])
	}
}

func TestValidateBatch(t *testing.T) {
	ctx := context.Background()
	tree, err := New(ft.WithWorkerCount(4)).BuildTree(ctx, []byte(personSchema), "")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	values := []any{
		map[string]any{"name": "ok"},
		map[string]any{"age": 5},  // missing required name
		map[string]any{"name": 1}, // mistyped name
		map[string]any{"name": "also fine"},
	}

	results := tree.ValidateBatch(ctx, values)
	if len(results) != len(values) {
		t.Fatalf("got %d results", len(results))
	}
	wantValid := []bool{true, false, false, true}
	for i, r := range results {
		if r.Valid != wantValid[i] {
			t.Errorf("result[%d].Valid = %v, want %v (%v)", i, r.Valid, wantValid[i], r.Issues)
		}
	}
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	eng := New()

	tree, err := eng.BuildTree(ctx, []byte(personSchema), "")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	tree.ValidateValue(ctx, map[string]any{"name": "ok"})
	tree.ValidateValue(ctx, map[string]any{"name": 5})

	snap := eng.Metrics().Snapshot()
	if snap.TreesBuilt != 1 {
		t.Errorf("TreesBuilt = %d", snap.TreesBuilt)
	}
	if snap.ValidationsTotal != 2 {
		t.Errorf("ValidationsTotal = %d", snap.ValidationsTotal)
	}
	if snap.ValidationsValid != 1 {
		t.Errorf("ValidationsValid = %d", snap.ValidationsValid)
	}
	if snap.ErrorsTotal == 0 {
		t.Error("ErrorsTotal = 0, want at least one")
	}
}

func TestFormatValidationToggle(t *testing.T) {
	ctx := context.Background()
	doc := []byte(`{"type": "string", "format": "ipv4"}`)

	strict, err := New().BuildTree(ctx, doc, "")
	if err != nil {
		t.Fatal(err)
	}
	if r := strict.ValidateValue(ctx, "not-an-ip"); r.Valid {
		t.Error("format violation passed with formats enabled")
	}

	lax, err := New(ft.WithFormatValidation(false)).BuildTree(ctx, doc, "")
	if err != nil {
		t.Fatal(err)
	}
	if r := lax.ValidateValue(ctx, "not-an-ip"); !r.Valid {
		t.Errorf("format violation flagged with formats disabled: %v", r.Issues)
	}
}

func TestTreeExposesTypedNodes(t *testing.T) {
	tree, err := New().BuildTree(context.Background(), []byte(personSchema), "")
	if err != nil {
		t.Fatal(err)
	}

	obj, ok := tree.Root().(*node.Object)
	if !ok {
		t.Fatalf("root is %T", tree.Root())
	}
	age, _ := obj.Child("age")
	n, ok := age.(*node.Integer)
	if !ok {
		t.Fatalf("age is %T", age)
	}
	if max, _ := n.Maximum(); max != 130 {
		t.Errorf("Maximum() = %d", max)
	}
}
