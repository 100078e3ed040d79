// Package node implements the typed node tree mirroring a JSON Schema's
// structure. Each node holds one fragment's current value and knows how to
// load itself from, and dump itself back to, plain JSON data.
package node

import (
	"context"

	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// Node is one editable element of the tree. Nodes are created once by the
// factory during tree construction, mutated in place by Load, and read but
// never mutated by Dump. Dump is side-effect-free and reentrant.
type Node interface {
	// Name is the node's display name: the property key, "Item #n" for
	// array elements, or the schema title for the root.
	Name() string

	// Schema returns the (dereferenced) fragment this node was built from.
	Schema() *schema.Fragment

	// Context returns the resolution context the node's references
	// resolve through.
	Context() resolve.Context

	// Parent returns the owning node, nil for the root. The back-reference
	// is read-only; parents own their children, never the reverse.
	Parent() Node

	// Title returns the schema "title", falling back to the name.
	Title() string

	// Description returns the schema "description", empty when absent.
	Description() string

	// Definitions returns the nearest "definitions" map: the node's own,
	// or the one inherited through the parent chain.
	Definitions() *schema.Fragment

	// Load replaces the node's current value with data. Structural
	// mismatches (wrong JSON type, enum miss) return an error and leave
	// unrelated state untouched. Loading may resolve references for newly
	// created array children, hence the context.
	Load(ctx context.Context, data any) error

	// Dump returns the node's current value as plain JSON data.
	Dump() any
}

// base carries the state shared by every node variant.
type base struct {
	name    string
	frag    *schema.Fragment
	rctx    resolve.Context
	parent  Node
	factory *Factory
	defs    *schema.Fragment
}

func newBase(name string, frag *schema.Fragment, rctx resolve.Context, parent Node, factory *Factory) base {
	b := base{
		name:    name,
		frag:    frag,
		rctx:    rctx,
		parent:  parent,
		factory: factory,
	}
	if defs, ok := frag.Object("definitions"); ok {
		b.defs = defs
	} else if parent != nil {
		b.defs = parent.Definitions()
	}
	return b
}

func (b *base) Name() string                  { return b.name }
func (b *base) Schema() *schema.Fragment      { return b.frag }
func (b *base) Context() resolve.Context      { return b.rctx }
func (b *base) Parent() Node                  { return b.parent }
func (b *base) Definitions() *schema.Fragment { return b.defs }

func (b *base) Title() string {
	if t, ok := b.frag.String("title"); ok {
		return t
	}
	return b.name
}

func (b *base) Description() string {
	d, _ := b.frag.String("description")
	return d
}
