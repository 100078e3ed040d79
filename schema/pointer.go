package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// WalkPointer resolves a JSON Pointer (RFC 6901) against a decoded
// document. Object segments look up fragment or map keys; numeric segments
// index arrays. An empty pointer returns the document itself.
func WalkPointer(doc any, pointer string) (any, error) {
	if pointer == "" {
		return doc, nil
	}
	pointer = strings.TrimPrefix(pointer, "/")

	current := doc
	for _, raw := range strings.Split(pointer, "/") {
		seg := strings.ReplaceAll(raw, "~1", "/")
		seg = strings.ReplaceAll(seg, "~0", "~")

		switch t := current.(type) {
		case *Fragment:
			next, ok := t.Get(seg)
			if !ok {
				return nil, fmt.Errorf("pointer segment %q not found", seg)
			}
			current = next

		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return nil, fmt.Errorf("pointer segment %q not found", seg)
			}
			current = next

		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return nil, fmt.Errorf("pointer segment %q does not index an array", seg)
			}
			if idx < 0 || idx >= len(t) {
				return nil, fmt.Errorf("pointer index %d out of range (len %d)", idx, len(t))
			}
			current = t[idx]

		default:
			return nil, fmt.Errorf("pointer segment %q cannot descend into %T", seg, current)
		}
	}
	return current, nil
}
