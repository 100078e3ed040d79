package node

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// Array holds an ordered, growable sequence of child nodes. The schema
// governing index i is items[i] while i is within a fixed items list,
// additionalItems beyond it, or the single shared items schema.
type Array struct {
	base

	itemsList   []any
	itemsSingle *schema.Fragment
	additional  any

	children []Node
}

func newArray(_ context.Context, f *Factory, name string, frag *schema.Fragment, rctx resolve.Context, parent Node) (Node, error) {
	items, ok := frag.Get("items")
	if !ok {
		return nil, &ft.SchemaShapeError{Type: "array", Reason: "missing items"}
	}

	a := &Array{base: newBase(name, frag, rctx, parent, f)}
	switch t := items.(type) {
	case []any:
		a.itemsList = t
	case *schema.Fragment:
		a.itemsSingle = t
	default:
		return nil, &ft.SchemaShapeError{Type: "array", Reason: fmt.Sprintf("items is %T", items)}
	}
	a.additional, _ = frag.Get("additionalItems")
	return a, nil
}

// itemSchema selects the schema governing index. Indices beyond a fixed
// items list require additionalItems; construction for such an index
// fails when it is absent.
func (a *Array) itemSchema(index int) (any, error) {
	if a.itemsSingle != nil {
		return a.itemsSingle, nil
	}
	if index < len(a.itemsList) {
		return a.itemsList[index], nil
	}
	if a.additional == nil {
		return nil, &ft.SchemaShapeError{
			Type:   "array",
			Reason: fmt.Sprintf("index %d is beyond the fixed items list and additionalItems is absent", index),
		}
	}
	return a.additional, nil
}

// Len returns the current number of children.
func (a *Array) Len() int { return len(a.children) }

// Child returns the node at index.
func (a *Array) Child(index int) (Node, bool) {
	if index < 0 || index >= len(a.children) {
		return nil, false
	}
	return a.children[index], true
}

// Append builds one new child at the next index, optionally loading
// initial into it.
func (a *Array) Append(ctx context.Context, initial any) (Node, error) {
	index := len(a.children)
	sch, err := a.itemSchema(index)
	if err != nil {
		return nil, err
	}

	child, err := a.factory.Build(ctx, fmt.Sprintf("Item #%d", index), sch, a.rctx, a)
	if err != nil {
		return nil, err
	}
	a.children = append(a.children, child)

	if initial != nil {
		if err := child.Load(ctx, initial); err != nil {
			return child, err
		}
	}
	return child, nil
}

// RemoveLast destroys the last child. It reports false, and does nothing,
// when the sequence is empty.
func (a *Array) RemoveLast() bool {
	if len(a.children) == 0 {
		return false
	}
	a.children = a.children[:len(a.children)-1]
	return true
}

// Load walks the incoming sequence positionally: existing children are
// re-loaded in place, elements beyond the current length append new
// children. Existing children past the end of the incoming sequence are
// left untouched; loading never truncates.
func (a *Array) Load(ctx context.Context, data any) error {
	seq, ok := data.([]any)
	if !ok {
		return fmt.Errorf("array %q: cannot load %T, want sequence", a.name, data)
	}

	var errs *multierror.Error
	for i, elem := range seq {
		if i < len(a.children) {
			if err := a.children[i].Load(ctx, elem); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("item %d: %w", i, err))
			}
			continue
		}
		if _, err := a.Append(ctx, elem); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("item %d: %w", i, err))
		}
	}
	return errs.ErrorOrNil()
}

// Dump returns each child's value in index order.
func (a *Array) Dump() any {
	out := make([]any, len(a.children))
	for i, c := range a.children {
		out[i] = c.Dump()
	}
	return out
}
