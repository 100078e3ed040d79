package node

import (
	"context"
	"fmt"
	"math"

	json "github.com/goccy/go-json"

	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// Integer holds an int64 value. Schema bounds become effective input
// bounds with a step of one: an exclusive minimum of m admits m+1 and up.
// Load is permissive and does not enforce the bounds; they exist for the
// presentation layer's input widgets, while the validator applies the
// schema's exact semantics.
type Integer struct {
	base

	value    int64
	min, max *int64
}

func newInteger(_ context.Context, f *Factory, name string, frag *schema.Fragment, rctx resolve.Context, parent Node) (Node, error) {
	n := &Integer{base: newBase(name, frag, rctx, parent, f)}

	if min, ok := frag.Int("minimum"); ok {
		bound := int64(min)
		if frag.Bool("exclusiveMinimum") {
			bound++
		}
		n.min = &bound
	}
	if max, ok := frag.Int("maximum"); ok {
		bound := int64(max)
		if frag.Bool("exclusiveMaximum") {
			bound--
		}
		n.max = &bound
	}
	return n, nil
}

// Minimum returns the effective lower input bound.
func (n *Integer) Minimum() (int64, bool) {
	if n.min == nil {
		return 0, false
	}
	return *n.min, true
}

// Maximum returns the effective upper input bound.
func (n *Integer) Maximum() (int64, bool) {
	if n.max == nil {
		return 0, false
	}
	return *n.max, true
}

// SetValue replaces the current value.
func (n *Integer) SetValue(v int64) { n.value = v }

// Value returns the current value.
func (n *Integer) Value() int64 { return n.value }

// Load accepts any integral JSON number representation.
func (n *Integer) Load(_ context.Context, data any) error {
	v, err := coerceInt(data)
	if err != nil {
		return fmt.Errorf("integer %q: %w", n.name, err)
	}
	n.value = v
	return nil
}

// Dump returns the current value as int64.
func (n *Integer) Dump() any { return n.value }

// Number holds a float64 value. Exclusive schema bounds are converted to
// inclusive input bounds by one step (a small epsilon); validation still
// applies true exclusivity independent of the epsilon.
type Number struct {
	base

	value    float64
	min, max *float64
}

func newNumber(_ context.Context, f *Factory, name string, frag *schema.Fragment, rctx resolve.Context, parent Node) (Node, error) {
	step := f.NumberStep
	if step <= 0 {
		step = 0.01
	}

	n := &Number{base: newBase(name, frag, rctx, parent, f)}
	if min, ok := frag.Float("minimum"); ok {
		bound := min
		if frag.Bool("exclusiveMinimum") {
			bound += step
		}
		n.min = &bound
	}
	if max, ok := frag.Float("maximum"); ok {
		bound := max
		if frag.Bool("exclusiveMaximum") {
			bound -= step
		}
		n.max = &bound
	}
	return n, nil
}

// Minimum returns the effective lower input bound.
func (n *Number) Minimum() (float64, bool) {
	if n.min == nil {
		return 0, false
	}
	return *n.min, true
}

// Maximum returns the effective upper input bound.
func (n *Number) Maximum() (float64, bool) {
	if n.max == nil {
		return 0, false
	}
	return *n.max, true
}

// SetValue replaces the current value.
func (n *Number) SetValue(v float64) { n.value = v }

// Value returns the current value.
func (n *Number) Value() float64 { return n.value }

// Load accepts any JSON number representation.
func (n *Number) Load(_ context.Context, data any) error {
	v, err := coerceFloat(data)
	if err != nil {
		return fmt.Errorf("number %q: %w", n.name, err)
	}
	n.value = v
	return nil
}

// Dump returns the current value as float64.
func (n *Number) Dump() any { return n.value }

func coerceInt(data any) (int64, error) {
	switch t := data.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("cannot load non-integral number %v", t)
		}
		return int64(t), nil
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0, fmt.Errorf("cannot load %q as integer", t.String())
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot load %T", data)
	}
}

func coerceFloat(data any) (float64, error) {
	switch t := data.(type) {
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case float64:
		return t, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("cannot load %q as number", t.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot load %T", data)
	}
}
