// Package schema models JSON Schema fragments.
//
// Fragments are decoded from JSON or YAML bytes with document key order
// preserved, because property order drives both node construction order
// and display order downstream. Fragments are read-only inputs: nothing
// in the engine mutates a decoded schema.
package schema
