package validate

import (
	"context"
	"testing"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/format"
	"github.com/goschema/formtree/loader"
	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

func validateDoc(t *testing.T, schemaJSON string, value any) []ft.Issue {
	t.Helper()

	frag, err := schema.DecodeJSONFragment([]byte(schemaJSON))
	if err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	reg := loader.NewRegistry(16, nil)
	reg.Register("", loader.NewDocumentLoader(frag, ""))
	rctx, err := resolve.NewContext("", reg)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	return New(format.Default()).Validate(context.Background(), frag, value, rctx)
}

func decode(t *testing.T, doc string) any {
	t.Helper()
	v, err := schema.DecodeValue([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}
	return v
}

func TestMaximumViolationAddressesSchemaRule(t *testing.T) {
	issues := validateDoc(t, `{
		"type": "object",
		"properties": {
			"n": {"type": "integer", "maximum": 10}
		}
	}`, decode(t, `{"n": 50}`))

	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1: %v", len(issues), issues)
	}
	iss := issues[0]
	if iss.Code != ft.IssueTypeRange {
		t.Errorf("Code = %q", iss.Code)
	}
	if want := (ft.Path{"properties", "n", "maximum"}); !iss.SchemaPath.Equal(want) {
		t.Errorf("SchemaPath = %v, want %v", iss.SchemaPath, want)
	}
	if want := (ft.Path{"n"}); !iss.InstancePath.Equal(want) {
		t.Errorf("InstancePath = %v, want %v", iss.InstancePath, want)
	}
}

func TestKeywordChecks(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		doc      string
		wantCode ft.IssueType // empty means valid
	}{
		{"type ok", `{"type": "string"}`, `"x"`, ""},
		{"type mismatch", `{"type": "string"}`, `5`, ft.IssueTypeType},
		{"integer accepts integral", `{"type": "integer"}`, `5`, ""},
		{"integer rejects fraction", `{"type": "integer"}`, `5.5`, ft.IssueTypeType},
		{"number accepts fraction", `{"type": "number"}`, `5.5`, ""},
		{"null ok", `{"type": "null"}`, `null`, ""},
		{"null mismatch", `{"type": "null"}`, `0`, ft.IssueTypeType},
		{"enum hit", `{"enum": [1, "two"]}`, `"two"`, ""},
		{"enum numeric hit", `{"enum": [1, "two"]}`, `1.0`, ""},
		{"enum miss", `{"enum": [1, "two"]}`, `"three"`, ft.IssueTypeEnum},
		{"minLength", `{"type": "string", "minLength": 3}`, `"ab"`, ft.IssueTypeLength},
		{"maxLength", `{"type": "string", "maxLength": 2}`, `"abc"`, ft.IssueTypeLength},
		{"pattern", `{"type": "string", "pattern": "^[0-9]+$"}`, `"12a"`, ft.IssueTypePattern},
		{"format", `{"type": "string", "format": "ipv4"}`, `"999.1.1.1"`, ft.IssueTypeFormat},
		{"minimum inclusive ok", `{"type": "number", "minimum": 5}`, `5`, ""},
		{"minimum violated", `{"type": "number", "minimum": 5}`, `4.9`, ft.IssueTypeRange},
		{"exclusiveMinimum", `{"type": "number", "minimum": 5, "exclusiveMinimum": true}`, `5`, ft.IssueTypeRange},
		{"maximum inclusive ok", `{"type": "number", "maximum": 5}`, `5`, ""},
		{"exclusiveMaximum", `{"type": "number", "maximum": 5, "exclusiveMaximum": true}`, `5`, ft.IssueTypeRange},
		{"multipleOf ok", `{"type": "number", "multipleOf": 0.5}`, `2.5`, ""},
		{"multipleOf violated", `{"type": "number", "multipleOf": 0.5}`, `2.7`, ft.IssueTypeRange},
		{"required ok", `{"type": "object", "required": ["a"], "properties": {"a": {"type": "integer"}}}`, `{"a": 1}`, ""},
		{"required missing", `{"type": "object", "required": ["a"], "properties": {"a": {"type": "integer"}}}`, `{}`, ft.IssueTypeRequired},
		{"minItems", `{"type": "array", "items": {"type": "integer"}, "minItems": 2}`, `[1]`, ft.IssueTypeItems},
		{"maxItems", `{"type": "array", "items": {"type": "integer"}, "maxItems": 1}`, `[1, 2]`, ft.IssueTypeItems},
		{"uniqueItems ok", `{"type": "array", "items": {"type": "integer"}, "uniqueItems": true}`, `[1, 2]`, ""},
		{"uniqueItems dup", `{"type": "array", "items": {"type": "integer"}, "uniqueItems": true}`, `[1, 2, 1]`, ft.IssueTypeItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := validateDoc(t, tt.schema, decode(t, tt.doc))
			if tt.wantCode == "" {
				if len(issues) != 0 {
					t.Errorf("issues = %v, want none", issues)
				}
				return
			}
			if len(issues) == 0 {
				t.Fatal("no issues, want one")
			}
			if issues[0].Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", issues[0].Code, tt.wantCode)
			}
		})
	}
}

func TestItemsRecursion(t *testing.T) {
	issues := validateDoc(t, `{
		"type": "array",
		"items": {"type": "integer", "maximum": 10}
	}`, decode(t, `[1, 99, 3]`))

	if len(issues) != 1 {
		t.Fatalf("got %d issues: %v", len(issues), issues)
	}
	if want := (ft.Path{"items", "maximum"}); !issues[0].SchemaPath.Equal(want) {
		t.Errorf("SchemaPath = %v, want %v", issues[0].SchemaPath, want)
	}
	if want := (ft.Path{1}); !issues[0].InstancePath.Equal(want) {
		t.Errorf("InstancePath = %v, want %v", issues[0].InstancePath, want)
	}
}

func TestFixedItemsAndAdditional(t *testing.T) {
	schemaJSON := `{
		"type": "array",
		"items": [{"type": "string"}, {"type": "integer"}],
		"additionalItems": {"type": "boolean"}
	}`

	if issues := validateDoc(t, schemaJSON, decode(t, `["a", 1, true, false]`)); len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}

	issues := validateDoc(t, schemaJSON, decode(t, `["a", 1, "not-bool"]`))
	if len(issues) != 1 || issues[0].Code != ft.IssueTypeType {
		t.Errorf("issues = %v", issues)
	}

	forbidden := `{
		"type": "array",
		"items": [{"type": "string"}],
		"additionalItems": false
	}`
	issues = validateDoc(t, forbidden, decode(t, `["a", "extra"]`))
	if len(issues) != 1 || issues[0].Code != ft.IssueTypeItems {
		t.Errorf("issues = %v", issues)
	}
}

func TestRefResolutionDuringValidation(t *testing.T) {
	issues := validateDoc(t, `{
		"definitions": {
			"port": {"type": "integer", "minimum": 1, "maximum": 65535}
		},
		"type": "object",
		"properties": {
			"port": {"$ref": "#/definitions/port"}
		}
	}`, decode(t, `{"port": 70000}`))

	if len(issues) != 1 {
		t.Fatalf("got %d issues: %v", len(issues), issues)
	}
	if want := (ft.Path{"properties", "port", "$ref", "maximum"}); !issues[0].SchemaPath.Equal(want) {
		t.Errorf("SchemaPath = %v, want %v", issues[0].SchemaPath, want)
	}
}

func TestUnresolvableRefReportsReferenceIssue(t *testing.T) {
	issues := validateDoc(t, `{
		"type": "object",
		"properties": {
			"x": {"$ref": "#/definitions/ghost"}
		}
	}`, decode(t, `{"x": 1}`))

	if len(issues) != 1 || issues[0].Code != ft.IssueTypeReference {
		t.Errorf("issues = %v, want one reference issue", issues)
	}
}

func TestMaxErrorsCapsIssues(t *testing.T) {
	frag, err := schema.DecodeJSONFragment([]byte(`{
		"type": "object",
		"properties": {
			"a": {"type": "string"},
			"b": {"type": "string"},
			"c": {"type": "string"}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	reg := loader.NewRegistry(16, nil)
	reg.Register("", loader.NewDocumentLoader(frag, ""))
	rctx, _ := resolve.NewContext("", reg)

	v := New(nil)
	v.MaxErrors = 2
	issues := v.Validate(context.Background(), frag, decode(t, `{"a": 1, "b": 2, "c": 3}`), rctx)
	if len(issues) != 2 {
		t.Errorf("got %d issues, want the cap of 2", len(issues))
	}
}

func TestNilFormatCheckerSkipsFormats(t *testing.T) {
	frag, err := schema.DecodeJSONFragment([]byte(`{"type": "string", "format": "ipv4"}`))
	if err != nil {
		t.Fatal(err)
	}
	reg := loader.NewRegistry(16, nil)
	reg.Register("", loader.NewDocumentLoader(frag, ""))
	rctx, _ := resolve.NewContext("", reg)

	issues := New(nil).Validate(context.Background(), frag, "not an ip", rctx)
	if len(issues) != 0 {
		t.Errorf("issues = %v, want none with format checking disabled", issues)
	}
}
