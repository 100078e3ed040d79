package node

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// Object holds an ordered mapping of property name to child node, built
// once from the schema's "properties" map. A schema without "properties"
// still produces a usable node; the condition is reported through Problem
// rather than failing the build.
type Object struct {
	base

	order    []string
	children map[string]Node
	problem  string
}

func newObject(ctx context.Context, f *Factory, name string, frag *schema.Fragment, rctx resolve.Context, parent Node) (Node, error) {
	o := &Object{
		base:     newBase(name, frag, rctx, parent, f),
		children: make(map[string]Node),
	}

	props, ok := frag.Object("properties")
	if !ok {
		o.problem = "invalid object description (missing properties)"
		return o, nil
	}

	for _, key := range props.Keys() {
		raw, _ := props.Get(key)
		child, err := f.Build(ctx, key, raw, rctx, o)
		if err != nil {
			return nil, err
		}
		o.order = append(o.order, key)
		o.children[key] = child
	}
	return o, nil
}

// Problem reports a non-fatal schema condition, empty when none.
func (o *Object) Problem() string { return o.problem }

// Properties returns the property names in schema declaration order.
func (o *Object) Properties() []string { return o.order }

// Child returns the node for a declared property.
func (o *Object) Child(name string) (Node, bool) {
	c, ok := o.children[name]
	return c, ok
}

// Load delegates each key present in data to the matching child. Keys
// without a declared property are silently ignored. Child failures are
// aggregated so one bad property does not hide its siblings.
func (o *Object) Load(ctx context.Context, data any) error {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("object %q: cannot load %T, want map", o.name, data)
	}

	var errs *multierror.Error
	for k, v := range m {
		child, ok := o.children[k]
		if !ok {
			continue
		}
		if err := child.Load(ctx, v); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("property %q: %w", k, err))
		}
	}
	return errs.ErrorOrNil()
}

// Dump returns a value containing every declared property, whether or not
// it was ever explicitly loaded: untouched properties contribute their
// default or initial state, so objects always dump complete.
func (o *Object) Dump() any {
	out := make(map[string]any, len(o.order))
	for _, k := range o.order {
		out[k] = o.children[k].Dump()
	}
	return out
}
