package schema

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestValueEqual(t *testing.T) {
	frag := NewFragment()
	frag.Set("k", json.Number("1"))

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"identical strings", "x", "x", true},
		{"different strings", "x", "y", false},
		{"number representations", json.Number("2"), int64(2), true},
		{"float vs json number", 2.5, json.Number("2.5"), true},
		{"integral float vs int", 3.0, 3, true},
		{"number vs string", json.Number("2"), "2", false},
		{"nil vs nil", nil, nil, true},
		{"nil vs zero", nil, json.Number("0"), false},
		{"bools", true, true, true},
		{"slices element-wise", []any{json.Number("1"), "a"}, []any{1.0, "a"}, true},
		{"slices length mismatch", []any{"a"}, []any{"a", "b"}, false},
		{"maps", map[string]any{"k": 1}, map[string]any{"k": json.Number("1")}, true},
		{"fragment vs map", frag, map[string]any{"k": 1.0}, true},
		{"fragment vs fragment", frag, frag, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("ValueEqual(%#v, %#v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNumberOf(t *testing.T) {
	if _, ok := NumberOf("12"); ok {
		t.Error("strings must not convert to numbers")
	}
	if d, ok := NumberOf(json.Number("10.50")); !ok || d.String() != "10.5" {
		t.Errorf("NumberOf(10.50) = %v, %v", d, ok)
	}
}
