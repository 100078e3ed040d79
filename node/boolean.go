package node

import (
	"context"
	"fmt"

	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// Boolean holds a two-state value with identity load/dump.
type Boolean struct {
	base

	value bool
}

func newBoolean(_ context.Context, f *Factory, name string, frag *schema.Fragment, rctx resolve.Context, parent Node) (Node, error) {
	return &Boolean{base: newBase(name, frag, rctx, parent, f)}, nil
}

// SetValue replaces the current value.
func (b *Boolean) SetValue(v bool) { b.value = v }

// Value returns the current value.
func (b *Boolean) Value() bool { return b.value }

// Load accepts a bool.
func (b *Boolean) Load(_ context.Context, data any) error {
	v, ok := data.(bool)
	if !ok {
		return fmt.Errorf("boolean %q: cannot load %T", b.name, data)
	}
	b.value = v
	return nil
}

// Dump returns the current bool value.
func (b *Boolean) Dump() any { return b.value }
