// Package formtree turns a JSON Schema document into a live, editable
// in-memory tree of typed nodes that can be populated from arbitrary JSON
// data and converted back to JSON, while validating the current value
// against the original schema.
//
// # Quick Start
//
//	import (
//	    ft "github.com/goschema/formtree"
//	    "github.com/goschema/formtree/engine"
//	)
//
//	eng := engine.New()
//	tree, err := eng.BuildTree(ctx, schemaJSON, "file:///schemas/person.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = tree.LoadJSON(ctx, dataJSON)
//	current := tree.Dump()
//
//	result := tree.Validate(ctx)
//	for _, iss := range result.Issues {
//	    fmt.Println(iss)
//	}
//
// # Architecture
//
// The engine is layered, leaves first:
//
//   - loader: per-URI-scheme document loaders behind a caching registry
//   - resolve: (base URI, registry) contexts that dereference $ref values
//   - schema: order-preserving schema fragments and JSON Pointer walking
//   - node: the typed node tree (Object, Array, String, Integer, Number,
//     Boolean, Enum, Unsupported) built by a recursive factory
//   - validate: whole-document validation producing path-addressed issues
//   - engine: the caller-facing coordinator wiring everything together
//
// Construction-time structural problems degrade the affected subtree to an
// Unsupported placeholder instead of aborting the build, so one malformed
// fragment never prevents editing the rest of the document. Data-loading
// mismatches (for example a value absent from an enum) propagate to the
// caller as typed errors.
//
// The tree is single-threaded: build, load, dump and validate are
// synchronous calls with no internal parallelism. Dump is side-effect-free
// and reentrant, so validation may run at any cadence.
package formtree
