package formtree

import (
	"fmt"
	"strings"
)

// Severity classifies how serious a validation issue is.
type Severity string

const (
	// SeverityError marks an issue that makes the value invalid.
	SeverityError Severity = "error"
	// SeverityWarning marks a potential problem that should be reviewed.
	SeverityWarning Severity = "warning"
	// SeverityInformation marks informational feedback.
	SeverityInformation Severity = "information"
)

// IssueType identifies the class of validation issue.
type IssueType string

const (
	// IssueTypeType reports a value of the wrong JSON type.
	IssueTypeType IssueType = "type"
	// IssueTypeEnum reports a value outside the schema's enum list.
	IssueTypeEnum IssueType = "enum"
	// IssueTypeRange reports a numeric bound violation.
	IssueTypeRange IssueType = "range"
	// IssueTypeLength reports a string length violation.
	IssueTypeLength IssueType = "length"
	// IssueTypePattern reports a regex pattern mismatch.
	IssueTypePattern IssueType = "pattern"
	// IssueTypeFormat reports a semantic format violation.
	IssueTypeFormat IssueType = "format"
	// IssueTypeRequired reports a missing required property.
	IssueTypeRequired IssueType = "required"
	// IssueTypeItems reports an array shape violation.
	IssueTypeItems IssueType = "items"
	// IssueTypeReference reports a $ref that could not be resolved.
	IssueTypeReference IssueType = "reference"
	// IssueTypeProcessing reports an internal processing problem.
	IssueTypeProcessing IssueType = "processing"
)

// Path addresses a location either in the schema (sequence of keyword keys
// and item indices) or in the instance document (property names and array
// indices). Segments are string or int.
type Path []any

// Child returns a new Path with seg appended. The receiver is not mutated,
// so sibling branches can extend the same parent path independently.
func (p Path) Child(seg any) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// String renders the path as a /-separated pointer, "/" for the root.
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		fmt.Fprintf(&b, "%v", seg)
	}
	return b.String()
}

// Equal reports whether two paths address the same location.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if fmt.Sprintf("%v", p[i]) != fmt.Sprintf("%v", other[i]) {
			return false
		}
	}
	return true
}

// Issue is a single validation finding. Issues are plain data, produced
// fresh on every validation pass and never persisted across passes.
type Issue struct {
	// Severity of the issue.
	Severity Severity `json:"severity"`

	// Code identifies the violated rule class.
	Code IssueType `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// SchemaPath locates the offending schema rule, e.g.
	// ["properties","n","maximum"].
	SchemaPath Path `json:"schemaPath,omitempty"`

	// InstancePath locates the offending value in the document, e.g.
	// ["n"] or ["tags",2].
	InstancePath Path `json:"instancePath,omitempty"`
}

// IsError reports whether the issue invalidates the document.
func (i Issue) IsError() bool { return i.Severity == SeverityError }

// String returns a human-readable representation of the issue.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (schema %s, instance %s)",
		i.Severity, i.Message, i.SchemaPath, i.InstancePath)
}

// ErrorAt builds an error issue addressing the given schema and instance
// locations.
func ErrorAt(code IssueType, msg string, schemaPath, instancePath Path) Issue {
	return Issue{
		Severity:     SeverityError,
		Code:         code,
		Message:      msg,
		SchemaPath:   schemaPath,
		InstancePath: instancePath,
	}
}

// WarningAt builds a warning issue addressing the given locations.
func WarningAt(code IssueType, msg string, schemaPath, instancePath Path) Issue {
	return Issue{
		Severity:     SeverityWarning,
		Code:         code,
		Message:      msg,
		SchemaPath:   schemaPath,
		InstancePath: instancePath,
	}
}
