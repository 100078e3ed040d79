package node

import (
	"context"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// Enum holds the schema's enum list as the source of truth, with the
// current selection stored as an index into it. A fresh node selects the
// first entry.
type Enum struct {
	base

	values []any // plain copies of the schema's enum entries
	index  int
}

func newEnum(_ context.Context, f *Factory, name string, frag *schema.Fragment, rctx resolve.Context, parent Node) (Node, error) {
	entries, ok := frag.Array("enum")
	if !ok || len(entries) == 0 {
		return nil, &ft.SchemaShapeError{Type: "enum", Reason: "enum is absent or empty"}
	}

	e := &Enum{base: newBase(name, frag, rctx, parent, f)}
	e.values = make([]any, len(entries))
	for i, v := range entries {
		e.values[i] = schema.Plain(v)
	}
	return e, nil
}

// Values returns the enum entries as plain JSON data.
func (e *Enum) Values() []any { return e.values }

// Index returns the current selection index.
func (e *Enum) Index() int { return e.index }

// SetIndex selects an entry by index.
func (e *Enum) SetIndex(i int) error {
	if i < 0 || i >= len(e.values) {
		return &ft.ValueNotInEnumError{Value: i}
	}
	e.index = i
	return nil
}

// Load selects the entry equal to data, by value equality. A value absent
// from the enum list is a caller/data mismatch and fails with
// ValueNotInEnumError.
func (e *Enum) Load(_ context.Context, data any) error {
	for i, v := range e.values {
		if schema.ValueEqual(v, data) {
			e.index = i
			return nil
		}
	}
	return &ft.ValueNotInEnumError{Value: data}
}

// Dump returns the entry at the current index.
func (e *Enum) Dump() any { return e.values[e.index] }
