package node

import (
	"context"
	"errors"
	"fmt"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/format"
	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// Factory builds node trees from schema fragments by recursive descent.
// A fragment is dereferenced, its variant selected from a fixed keyword
// table, and its children built depth-first. A node is either being
// constructed (unreachable) or constructed (fully load/dump-ready); there
// is no intermediate state.
type Factory struct {
	// MaxRefDepth bounds the $ref chain followed for one node. Chains
	// that exceed it, or revisit a reference, fail with
	// CyclicReferenceError and degrade to Unsupported.
	MaxRefDepth int

	// NumberStep is the epsilon converting exclusive number bounds into
	// inclusive input bounds. Integer nodes always step by 1.
	NumberStep float64

	// Formats backs the String variant's live format validators.
	Formats format.Checker
}

type constructor func(ctx context.Context, f *Factory, name string, frag *schema.Fragment, rctx resolve.Context, parent Node) (Node, error)

// typeTable is the closed mapping from the schema "type" keyword to node
// variants. Anything else falls through to Unsupported.
var typeTable map[string]constructor

func init() {
	typeTable = map[string]constructor{
		"object":  newObject,
		"array":   newArray,
		"string":  newString,
		"integer": newInteger,
		"number":  newNumber,
		"boolean": newBoolean,
	}
}

// NewFactory returns a factory with default bounds and formats.
func NewFactory() *Factory {
	return &Factory{
		MaxRefDepth: 32,
		NumberStep:  0.01,
		Formats:     format.Default(),
	}
}

// Build constructs the node for raw, recursing into children for
// composite variants. raw is the not-yet-dereferenced schema value; it is
// typed any because a $ref or a malformed schema may hand us something
// other than an object, which degrades to Unsupported rather than failing
// the build.
//
// Only default-value loading can make Build return an error; every
// structural problem (unresolvable reference, unusable schema shape)
// degrades the affected node to an Unsupported placeholder so the rest of
// the tree stays editable.
func (f *Factory) Build(ctx context.Context, name string, raw any, rctx resolve.Context, parent Node) (Node, error) {
	frag, ok := raw.(*schema.Fragment)
	if !ok {
		return f.fallback(name, schema.NewFragment(), rctx, parent,
			&ft.SchemaShapeError{Type: "schema", Reason: fmt.Sprintf("fragment is %T, not an object", raw)}), nil
	}

	// A declared id re-bases the context before anything else, so nested
	// references resolve relative to this fragment.
	if id, ok := frag.String("id"); ok {
		derived, err := rctx.FollowURI(id)
		if err != nil {
			return f.fallback(name, frag, rctx, parent, &ft.ReferenceResolutionError{Ref: id, Err: err}), nil
		}
		rctx = derived
	}

	frag, err := f.deref(ctx, frag, rctx)
	if err != nil {
		return f.fallback(name, schema.NewFragment(), rctx, parent, err), nil
	}

	var build constructor
	switch {
	case frag.Has("enum"):
		build = newEnum
	case frag.Has("type"):
		if typ, ok := frag.String("type"); ok {
			build = typeTable[typ]
		}
	}
	if build == nil {
		build = newUnsupported
	}

	n, err := build(ctx, f, name, frag, rctx, parent)
	if err != nil {
		var shape *ft.SchemaShapeError
		if !errors.As(err, &shape) {
			return nil, err
		}
		// Schema-shape failures are normal control flow: substitute the
		// placeholder and keep building siblings.
		n = f.fallback(name, frag, rctx, parent, err)
	}

	if err := f.initialise(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// deref follows the $ref chain until the fragment has none, bounded by
// MaxRefDepth and a seen-set so self-referencing chains fail fast instead
// of looping forever.
func (f *Factory) deref(ctx context.Context, frag *schema.Fragment, rctx resolve.Context) (*schema.Fragment, error) {
	depth := f.MaxRefDepth
	if depth <= 0 {
		depth = 32
	}

	seen := make(map[string]struct{})
	for steps := 0; frag.Has("$ref"); steps++ {
		ref, ok := frag.String("$ref")
		if !ok {
			return nil, &ft.SchemaShapeError{Type: "schema", Reason: "$ref is not a string"}
		}

		key := rctx.BaseURI() + "\x00" + ref
		if _, dup := seen[key]; dup || steps >= depth {
			return nil, &ft.CyclicReferenceError{Ref: ref}
		}
		seen[key] = struct{}{}

		target, err := rctx.Dereference(ctx, ref)
		if err != nil {
			return nil, err
		}
		next, ok := target.(*schema.Fragment)
		if !ok {
			return nil, &ft.ReferenceResolutionError{
				Ref: ref,
				Err: fmt.Errorf("referent is %T, not a schema object", target),
			}
		}
		frag = next
	}
	return frag, nil
}

// initialise loads the schema's default value through the node's own Load,
// guaranteeing the initial dumped value matches the default when one
// exists. A default the node cannot load is a schema-authoring error the
// caller should see, not a degradable shape problem.
func (f *Factory) initialise(ctx context.Context, n Node) error {
	def, ok := n.Schema().Get("default")
	if !ok {
		return nil
	}
	if err := n.Load(ctx, schema.Plain(def)); err != nil {
		return fmt.Errorf("load default for %q: %w", n.Name(), err)
	}
	return nil
}

// fallback builds the Unsupported placeholder recording why the intended
// variant could not be built. It never fails; it is itself the fallback.
func (f *Factory) fallback(name string, frag *schema.Fragment, rctx resolve.Context, parent Node, reason error) Node {
	return &Unsupported{
		base:   newBase(name, frag, rctx, parent, f),
		reason: reason,
	}
}
