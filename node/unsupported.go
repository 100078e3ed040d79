package node

import (
	"context"

	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// UnsupportedSentinel is the fixed value an Unsupported node dumps,
// marking the value as unrepresentable.
const UnsupportedSentinel = "(unsupported)"

// Unsupported is the placeholder for schema fragments the engine cannot
// represent: unknown types, unresolvable references, unusable shapes. Its
// construction never fails, because it is itself the fallback for every
// other construction failure.
type Unsupported struct {
	base

	reason error
}

func newUnsupported(_ context.Context, f *Factory, name string, frag *schema.Fragment, rctx resolve.Context, parent Node) (Node, error) {
	return &Unsupported{base: newBase(name, frag, rctx, parent, f)}, nil
}

// Reason returns why the intended variant could not be built, nil when
// the schema simply declared nothing the engine supports.
func (u *Unsupported) Reason() error { return u.reason }

// Load ignores the data; there is nothing to hold it in.
func (u *Unsupported) Load(context.Context, any) error { return nil }

// Dump returns the fixed unsupported sentinel.
func (u *Unsupported) Dump() any { return UnsupportedSentinel }
