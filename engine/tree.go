package engine

import (
	"context"
	"sync"
	"time"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/cache"
	"github.com/goschema/formtree/loader"
	"github.com/goschema/formtree/node"
	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
	"github.com/goschema/formtree/validate"
)

// Tree is one built node tree together with the schema and resolution
// machinery it was built from. Load mutates the tree; Dump and Validate
// only read it. A Tree is not safe for concurrent mutation.
type Tree struct {
	engine   *Engine
	frag     *schema.Fragment
	root     node.Node
	rctx     resolve.Context
	registry *loader.Registry
}

// Root returns the tree's root node.
func (t *Tree) Root() node.Node { return t.root }

// Schema returns the decoded schema document the tree was built from.
func (t *Tree) Schema() *schema.Fragment { return t.frag }

// Load replaces the tree's values with plain JSON data.
func (t *Tree) Load(ctx context.Context, data any) error {
	return t.root.Load(ctx, data)
}

// LoadJSON decodes data as JSON and loads it into the tree.
func (t *Tree) LoadJSON(ctx context.Context, data []byte) error {
	v, err := schema.DecodeValue(data)
	if err != nil {
		return err
	}
	return t.root.Load(ctx, v)
}

// Dump returns the tree's current value as plain JSON data.
func (t *Tree) Dump() any { return t.root.Dump() }

// DumpJSON returns the tree's current value encoded as JSON.
func (t *Tree) DumpJSON() ([]byte, error) {
	return schema.EncodeValue(t.root.Dump())
}

// Validate runs a full validation pass over the tree's current value and
// returns a fresh result. Nothing is retained between passes.
func (t *Tree) Validate(ctx context.Context) *ft.Result {
	return t.ValidateValue(ctx, t.root.Dump())
}

// ValidateValue validates an arbitrary value against the tree's schema.
func (t *Tree) ValidateValue(ctx context.Context, value any) *ft.Result {
	start := time.Now()

	v := t.validator()
	result := ft.NewResult()
	result.AddAll(v.Validate(ctx, t.frag, value, t.rctx))

	t.engine.metrics.RecordValidation(time.Since(start), result)
	return result
}

// ValidateBatch validates several values against the tree's schema
// concurrently, bounded by the engine's worker count. Results line up
// with the input slice.
func (t *Tree) ValidateBatch(ctx context.Context, values []any) []*ft.Result {
	workers := t.engine.opts.WorkerCount
	if workers < 1 {
		workers = 1
	}

	results := make([]*ft.Result, len(values))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, value := range values {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, value any) {
			defer wg.Done()
			defer func() { <-sem }()

			start := time.Now()
			result := ft.NewResult()
			result.AddAll(t.validator().Validate(ctx, t.frag, value, t.rctx))
			t.engine.metrics.RecordValidation(time.Since(start), result)
			results[i] = result
		}(i, value)
	}
	wg.Wait()

	return results
}

// CacheStats returns the counters of the tree's document cache.
func (t *Tree) CacheStats() cache.Stats {
	return t.registry.CacheStats()
}

func (t *Tree) validator() *validate.Validator {
	v := validate.New(nil)
	if t.engine.opts.ValidateFormats {
		v.Formats = t.engine.formats
	}
	v.MaxErrors = t.engine.opts.MaxErrors
	v.MaxRefDepth = t.engine.opts.MaxRefDepth
	return v
}
