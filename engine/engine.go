// Package engine is the public entry point tying the pieces together:
// decode a schema, wire the loader registry, build the node tree and run
// validation passes over dumped values.
package engine

import (
	"context"
	"fmt"

	ft "github.com/goschema/formtree"
	"github.com/goschema/formtree/format"
	"github.com/goschema/formtree/loader"
	"github.com/goschema/formtree/node"
	"github.com/goschema/formtree/resolve"
	"github.com/goschema/formtree/schema"
)

// Engine builds editable node trees from JSON Schema documents and
// validates their values. An Engine is safe for concurrent use; each
// BuildTree call wires its own loader registry and document cache.
type Engine struct {
	opts    *ft.Options
	metrics *ft.Metrics
	formats format.Checker
	extra   map[string]loader.Loader
}

// New creates an engine with the given options applied over the defaults.
func New(opts ...ft.Option) *Engine {
	o := ft.DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Engine{
		opts:    o,
		metrics: ft.NewMetrics(),
		formats: format.Default(),
		extra:   make(map[string]loader.Loader),
	}
}

// RegisterLoader installs an additional URI-scheme loader, used by every
// subsequent BuildTree. Registering a scheme the engine wires by default
// (file, http, https) overrides the default loader.
func (e *Engine) RegisterLoader(scheme string, l loader.Loader) {
	e.extra[scheme] = l
}

// SetFormatChecker replaces the format checker used for live field
// validation and for the "format" keyword during validation passes.
func (e *Engine) SetFormatChecker(c format.Checker) {
	if c != nil {
		e.formats = c
	}
}

// Metrics returns the engine's activity counters.
func (e *Engine) Metrics() *ft.Metrics { return e.metrics }

// Options returns the engine's effective configuration.
func (e *Engine) Options() ft.Options { return *e.opts }

// BuildTree decodes a JSON schema document and builds its node tree.
// schemaURI is the document's own location, used as the base for relative
// references; it may be empty when the location is unknown.
func (e *Engine) BuildTree(ctx context.Context, schemaJSON []byte, schemaURI string) (*Tree, error) {
	frag, err := schema.DecodeJSONFragment(schemaJSON)
	if err != nil {
		return nil, err
	}
	return e.BuildTreeFromFragment(ctx, frag, schemaURI)
}

// BuildTreeYAML decodes a YAML schema document and builds its node tree.
func (e *Engine) BuildTreeYAML(ctx context.Context, schemaYAML []byte, schemaURI string) (*Tree, error) {
	frag, err := schema.DecodeYAMLFragment(schemaYAML)
	if err != nil {
		return nil, err
	}
	return e.BuildTreeFromFragment(ctx, frag, schemaURI)
}

// BuildTreeFromFragment builds the node tree for an already-decoded
// schema fragment.
func (e *Engine) BuildTreeFromFragment(ctx context.Context, frag *schema.Fragment, schemaURI string) (*Tree, error) {
	registry := loader.NewRegistry(e.opts.CacheSize, e.opts.Logger)

	registry.Register("", loader.NewDocumentLoader(frag, ""))
	registry.Register("file", loader.NewFileLoader())
	httpLoader := loader.NewHTTPLoader(e.opts.HTTPTimeout)
	registry.Register("http", httpLoader)
	registry.Register("https", httpLoader)
	for scheme, l := range e.extra {
		registry.Register(scheme, l)
	}

	if schemaURI != "" {
		// References back into this document must hit the already-parsed
		// fragment, never a refetch.
		if err := registry.Seed(schemaURI, frag); err != nil {
			return nil, err
		}
	}

	rctx, err := resolve.NewContext(schemaURI, registry)
	if err != nil {
		return nil, err
	}

	factory := &node.Factory{
		MaxRefDepth: e.opts.MaxRefDepth,
		NumberStep:  e.opts.NumberStep,
		Formats:     e.formats,
	}

	name := "(root)"
	if title, ok := frag.String("title"); ok && title != "" {
		name = title
	}

	root, err := factory.Build(ctx, name, frag, rctx, nil)
	if err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}

	e.metrics.RecordBuild()
	stats := registry.CacheStats()
	e.metrics.RecordCache(stats.Hits, stats.Misses)

	return &Tree{
		engine:   e,
		frag:     frag,
		root:     root,
		rctx:     rctx,
		registry: registry,
	}, nil
}
