package schema

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes JSON bytes into the fragment model, preserving object
// key order. Objects become *Fragment, arrays []any, numbers json.Number.
func DecodeJSON(data []byte) (any, error) {
	value, dt, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("decode schema document: %w", err)
	}
	return parseJSONValue(value, dt)
}

// DecodeJSONFragment decodes JSON bytes that must be a JSON object.
func DecodeJSONFragment(data []byte) (*Fragment, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	frag, ok := v.(*Fragment)
	if !ok {
		return nil, fmt.Errorf("schema document is not a JSON object (got %T)", v)
	}
	return frag, nil
}

func parseJSONValue(value []byte, dt jsonparser.ValueType) (any, error) {
	switch dt {
	case jsonparser.Object:
		frag := NewFragment()
		err := jsonparser.ObjectEach(value, func(key, val []byte, vt jsonparser.ValueType, _ int) error {
			k, kerr := jsonparser.ParseString(key)
			if kerr != nil {
				return kerr
			}
			parsed, perr := parseJSONValue(val, vt)
			if perr != nil {
				return perr
			}
			frag.Set(k, parsed)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return frag, nil

	case jsonparser.Array:
		var out []any
		var inner error
		_, err := jsonparser.ArrayEach(value, func(val []byte, vt jsonparser.ValueType, _ int, cbErr error) {
			if inner != nil {
				return
			}
			if cbErr != nil {
				inner = cbErr
				return
			}
			parsed, perr := parseJSONValue(val, vt)
			if perr != nil {
				inner = perr
				return
			}
			out = append(out, parsed)
		})
		if err != nil {
			return nil, err
		}
		if inner != nil {
			return nil, inner
		}
		if out == nil {
			out = []any{}
		}
		return out, nil

	case jsonparser.String:
		return jsonparser.ParseString(value)

	case jsonparser.Number:
		return json.Number(string(value)), nil

	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)

	case jsonparser.Null:
		return nil, nil

	default:
		return nil, fmt.Errorf("unexpected JSON value type %v", dt)
	}
}

// DecodeYAML decodes YAML bytes into the fragment model. The yaml.Node API
// is used because it preserves mapping key order.
func DecodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode schema document: %w", err)
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, nil
		}
		return yamlValue(doc.Content[0])
	}
	return yamlValue(&doc)
}

// DecodeYAMLFragment decodes YAML bytes that must be a mapping.
func DecodeYAMLFragment(data []byte) (*Fragment, error) {
	v, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	frag, ok := v.(*Fragment)
	if !ok {
		return nil, fmt.Errorf("schema document is not a mapping (got %T)", v)
	}
	return frag, nil
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(n.Alias)

	case yaml.MappingNode:
		frag := NewFragment()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			frag.Set(key, val)
		}
		return frag, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil

	case yaml.ScalarNode:
		switch n.Tag {
		case "!!str":
			return n.Value, nil
		case "!!int", "!!float":
			return json.Number(n.Value), nil
		case "!!bool":
			return strconv.ParseBool(n.Value)
		case "!!null":
			return nil, nil
		default:
			return n.Value, nil
		}

	default:
		return nil, fmt.Errorf("unexpected YAML node kind %v", n.Kind)
	}
}

// DecodeValue decodes an instance document (data to load into a tree, not
// a schema). Numbers are kept as json.Number so integer values survive
// round-trips exactly.
func DecodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode value document: %w", err)
	}
	return v, nil
}

// EncodeValue encodes a dumped tree value back to JSON bytes.
func EncodeValue(v any) ([]byte, error) {
	return json.Marshal(v)
}
