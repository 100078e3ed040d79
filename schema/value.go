package schema

import (
	"reflect"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// NumberOf converts any of the numeric representations that appear in
// decoded documents (json.Number, int, int64, float64) to an exact
// decimal. The second return is false for non-numeric values.
func NumberOf(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case float64:
		return decimal.NewFromFloat(t), true
	default:
		return decimal.Decimal{}, false
	}
}

// ValueEqual compares two decoded JSON values for equality the way JSON
// Schema's "enum" does: numbers compare numerically regardless of their
// Go representation, containers compare element-wise, scalars by value.
func ValueEqual(a, b any) bool {
	if fa, ok := a.(*Fragment); ok {
		a = Plain(fa)
	}
	if fb, ok := b.(*Fragment); ok {
		b = Plain(fb)
	}

	if da, ok := NumberOf(a); ok {
		db, ok := NumberOf(b)
		return ok && da.Equal(db)
	}

	switch ta := a.(type) {
	case nil:
		return b == nil
	case string:
		tb, ok := b.(string)
		return ok && ta == tb
	case bool:
		tb, ok := b.(bool)
		return ok && ta == tb
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !ValueEqual(ta[i], tb[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		tb, ok := b.(map[string]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for k, va := range ta {
			vb, ok := tb[k]
			if !ok || !ValueEqual(va, vb) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
