// Package mapping decodes untyped JSON objects into validated entities using
// the descriptors of a schema.Registry.
package mapping

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/yungbote/hookupmap/internal/schema"
)

// Decode validates raw against the descriptor of kind and builds the entity,
// recursing into nested and list fields. Undeclared keys land in the entity's
// Extra bag unchanged.
func Decode(reg *schema.Registry, kind schema.Kind, raw json.RawMessage) (*Entity, error) {
	d := reg.Describe(kind)
	if !json.Valid(raw) {
		return nil, &DecodeError{Code: CodeExpectedObject, Kind: kind, Actual: "invalid JSON"}
	}
	return decodeEntity(reg, d, raw)
}

func decodeEntity(reg *schema.Registry, d *schema.Descriptor, raw json.RawMessage) (*Entity, error) {
	if t := JSONType(raw); t != "object" {
		return nil, &DecodeError{Code: CodeExpectedObject, Kind: d.Kind, Actual: t}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &DecodeError{Code: CodeExpectedObject, Kind: d.Kind, Err: err}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e := &Entity{
		Kind:   d.Kind,
		desc:   d,
		values: make([]Value, len(d.Fields)),
		Extra:  Bag{},
	}
	seen := make(map[int]string, len(d.Fields))
	for _, key := range keys {
		idx, ok := d.MatchIndex(key)
		if !ok {
			e.Extra[key] = compact(obj[key])
			continue
		}
		f := d.Fields[idx]
		if prev, dup := seen[idx]; dup {
			return nil, &DecodeError{
				Code:  CodeDuplicateField,
				Kind:  d.Kind,
				Field: f.Name,
				Value: strings.Join([]string{prev, key}, ", "),
			}
		}
		seen[idx] = key
		v, err := decodeField(reg, d, f, obj[key])
		if err != nil {
			return nil, err
		}
		e.values[idx] = v
	}

	for i, f := range d.Fields {
		if f.Type.Required && !e.values[i].Present {
			return nil, &DecodeError{Code: CodeMissingField, Kind: d.Kind, Field: f.Name}
		}
	}
	return e, nil
}

func decodeField(reg *schema.Registry, d *schema.Descriptor, f schema.Field, raw json.RawMessage) (Value, error) {
	actual := JSONType(raw)
	if actual == "null" {
		return Value{}, nil
	}

	switch f.Type.Shape {
	case schema.ShapePrimitive:
		return decodePrimitive(d, f, raw, actual)

	case schema.ShapeEntity:
		child, err := decodeEntity(reg, reg.Describe(f.Type.Entity), raw)
		if err != nil {
			return Value{}, &NestedError{Kind: d.Kind, Field: f.Name, Index: -1, Err: err}
		}
		return Value{Present: true, Data: child}, nil

	case schema.ShapeEntityList:
		if actual != "array" {
			return Value{}, &DecodeError{Code: CodeExpectedList, Kind: d.Kind, Field: f.Name, Expected: "array", Actual: actual}
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return Value{}, &DecodeError{Code: CodeExpectedList, Kind: d.Kind, Field: f.Name, Err: err}
		}
		childDesc := reg.Describe(f.Type.Entity)
		list := make([]*Entity, 0, len(elems))
		for i, elem := range elems {
			child, err := decodeEntity(reg, childDesc, elem)
			if err != nil {
				return Value{}, &NestedError{Kind: d.Kind, Field: f.Name, Index: i, Err: err}
			}
			list = append(list, child)
		}
		return Value{Present: true, Data: list}, nil
	}
	return Value{}, &DecodeError{Code: CodeTypeMismatch, Kind: d.Kind, Field: f.Name, Expected: f.Type.String(), Actual: actual}
}

func decodePrimitive(d *schema.Descriptor, f schema.Field, raw json.RawMessage, actual string) (Value, error) {
	want := f.Type.Primitive.String()
	if actual != want {
		return Value{}, &DecodeError{Code: CodeTypeMismatch, Kind: d.Kind, Field: f.Name, Expected: want, Actual: actual}
	}
	var (
		data any
		err  error
	)
	switch f.Type.Primitive {
	case schema.String:
		var s string
		err = json.Unmarshal(raw, &s)
		data = s
	case schema.Bool:
		var b bool
		err = json.Unmarshal(raw, &b)
		data = b
	case schema.Number:
		var n json.Number
		err = json.Unmarshal(raw, &n)
		data = n
	}
	if err != nil {
		return Value{}, &DecodeError{Code: CodeTypeMismatch, Kind: d.Kind, Field: f.Name, Expected: want, Actual: actual, Err: err}
	}
	if s, ok := data.(string); ok && !f.Type.Allows(s) {
		return Value{}, &DecodeError{
			Code:     CodeInvalidValue,
			Kind:     d.Kind,
			Field:    f.Name,
			Expected: strings.Join(f.Type.Enum, ", "),
			Value:    s,
		}
	}
	return Value{Present: true, Data: data}, nil
}

// JSONType names the JSON type of a valid raw value by its first byte.
func JSONType(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "empty"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
