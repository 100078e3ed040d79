package schema

import (
	"reflect"
	"testing"

	json "github.com/goccy/go-json"
)

func TestFragmentKeyOrder(t *testing.T) {
	f := NewFragment()
	f.Set("zebra", "z")
	f.Set("alpha", "a")
	f.Set("mango", "m")
	f.Set("alpha", "a2") // re-set must not reorder

	want := []string{"zebra", "alpha", "mango"}
	if got := f.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	if v, _ := f.String("alpha"); v != "a2" {
		t.Errorf("re-set value = %q, want %q", v, "a2")
	}
}

func TestFragmentAccessors(t *testing.T) {
	f := NewFragment()
	f.Set("name", "widget")
	f.Set("count", json.Number("3"))
	f.Set("ratio", json.Number("0.5"))
	f.Set("flag", true)

	if v, ok := f.String("name"); !ok || v != "widget" {
		t.Errorf("String(name) = %q, %v", v, ok)
	}
	if v, ok := f.Int("count"); !ok || v != 3 {
		t.Errorf("Int(count) = %d, %v", v, ok)
	}
	if v, ok := f.Float("ratio"); !ok || v != 0.5 {
		t.Errorf("Float(ratio) = %v, %v", v, ok)
	}
	if !f.Bool("flag") {
		t.Error("Bool(flag) = false, want true")
	}
	if f.Bool("name") {
		t.Error("Bool(name) = true for a string value")
	}
	if _, ok := f.Int("name"); ok {
		t.Error("Int(name) succeeded for a string value")
	}
	if _, ok := f.Get("absent"); ok {
		t.Error("Get(absent) reported presence")
	}
}

func TestFragmentNilReceiver(t *testing.T) {
	var f *Fragment
	if f.Len() != 0 {
		t.Error("nil fragment has non-zero length")
	}
	if f.Has("anything") {
		t.Error("nil fragment reports a key")
	}
}

func TestPlain(t *testing.T) {
	inner := NewFragment()
	inner.Set("b", json.Number("2"))

	f := NewFragment()
	f.Set("a", json.Number("1"))
	f.Set("nested", inner)
	f.Set("list", []any{"x", inner})

	got := Plain(f)
	want := map[string]any{
		"a":      json.Number("1"),
		"nested": map[string]any{"b": json.Number("2")},
		"list":   []any{"x", map[string]any{"b": json.Number("2")}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Plain() = %#v, want %#v", got, want)
	}
}
