package formtree

import "fmt"

// UnknownSchemeError reports a $ref whose URI scheme has no registered
// loader. It is fatal to resolving that one reference, not to the tree:
// the node factory catches it and degrades the subtree to Unsupported.
type UnknownSchemeError struct {
	Scheme string
}

func (e *UnknownSchemeError) Error() string {
	if e.Scheme == "" {
		return "no loader registered for scheme-less references"
	}
	return fmt.Sprintf("no loader registered for scheme %q", e.Scheme)
}

// ReferenceResolutionError reports a $ref that could not be resolved: the
// document fetch failed, or the fragment pointer has no target. Like
// UnknownSchemeError it degrades the affected subtree to Unsupported.
type ReferenceResolutionError struct {
	Ref string
	Err error
}

func (e *ReferenceResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve reference %q: %v", e.Ref, e.Err)
}

func (e *ReferenceResolutionError) Unwrap() error { return e.Err }

// CyclicReferenceError reports a $ref chain that loops back on itself or
// exceeds the configured depth bound.
type CyclicReferenceError struct {
	Ref string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("cyclic $ref chain through %q", e.Ref)
}

// SchemaShapeError reports a schema fragment whose shape is unusable for
// the selected node variant, for example an array schema without "items".
// The node factory catches it and substitutes an Unsupported placeholder.
type SchemaShapeError struct {
	Type   string
	Reason string
}

func (e *SchemaShapeError) Error() string {
	return fmt.Sprintf("unusable %s schema: %s", e.Type, e.Reason)
}

// ValueNotInEnumError reports an attempt to load a value into an Enum node
// whose enum list does not contain it. Unlike schema-shape problems this
// indicates a caller/data mismatch and propagates out of Load.
type ValueNotInEnumError struct {
	Value any
}

func (e *ValueNotInEnumError) Error() string {
	return fmt.Sprintf("value %v is not a member of the enum", e.Value)
}
