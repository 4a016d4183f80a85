// Package schema holds the static catalog of entity kinds: their declared
// fields, relational tables, parent links and by-name references.
package schema

import (
	"fmt"
	"strings"
)

// Kind is the closed set of entity kinds a hookup diagram is made of.
type Kind int

const (
	KindNode Kind = iota + 1
	KindConnection
	KindBus
	KindNet
	KindPinMap
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "Node"
	case KindConnection:
		return "Connection"
	case KindBus:
		return "Bus"
	case KindNet:
		return "Net"
	case KindPinMap:
		return "PinMap"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Primitive is the JSON scalar type a primitive field accepts.
type Primitive int

const (
	String Primitive = iota + 1
	Bool
	Number
)

func (p Primitive) String() string {
	switch p {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Number:
		return "number"
	default:
		return fmt.Sprintf("Primitive(%d)", int(p))
	}
}

// Shape tags which variant of FieldType is in use.
type Shape int

const (
	ShapePrimitive Shape = iota + 1
	ShapeEntity
	ShapeEntityList
)

// FieldType is a tagged variant: Primitive is meaningful for ShapePrimitive,
// Entity for ShapeEntity and ShapeEntityList.
type FieldType struct {
	Shape     Shape
	Primitive Primitive
	Entity    Kind
	Required  bool
	// Enum restricts a String primitive to a fixed set of values.
	Enum []string
}

func Required(p Primitive) FieldType {
	return FieldType{Shape: ShapePrimitive, Primitive: p, Required: true}
}

func Optional(p Primitive) FieldType {
	return FieldType{Shape: ShapePrimitive, Primitive: p}
}

func RequiredEntity(k Kind) FieldType {
	return FieldType{Shape: ShapeEntity, Entity: k, Required: true}
}

func OptionalEntity(k Kind) FieldType {
	return FieldType{Shape: ShapeEntity, Entity: k}
}

func RequiredList(k Kind) FieldType {
	return FieldType{Shape: ShapeEntityList, Entity: k, Required: true}
}

func OptionalList(k Kind) FieldType {
	return FieldType{Shape: ShapeEntityList, Entity: k}
}

// OneOf declares a string field limited to values.
func OneOf(required bool, values ...string) FieldType {
	return FieldType{Shape: ShapePrimitive, Primitive: String, Required: required, Enum: values}
}

// Allows reports whether v is an accepted enum value. Non-enum fields accept anything.
func (t FieldType) Allows(v string) bool {
	if len(t.Enum) == 0 {
		return true
	}
	for _, e := range t.Enum {
		if e == v {
			return true
		}
	}
	return false
}

func (t FieldType) String() string {
	var inner string
	switch t.Shape {
	case ShapePrimitive:
		inner = t.Primitive.String()
		if len(t.Enum) > 0 {
			inner = fmt.Sprintf("%s{%s}", inner, strings.Join(t.Enum, "|"))
		}
	case ShapeEntity:
		inner = t.Entity.String()
	case ShapeEntityList:
		inner = "list<" + t.Entity.String() + ">"
	default:
		inner = "?"
	}
	if t.Required {
		return "Required(" + inner + ")"
	}
	return "Optional(" + inner + ")"
}

// Reference marks a primitive string field that names another entity.
// Scope is set when the target name is only unique within a parent of that kind.
type Reference struct {
	Target Kind
	Scope  Kind
}

func (r Reference) Scoped() bool { return r.Scope != 0 }

type Field struct {
	// Name is the canonical JSON key.
	Name string
	Type FieldType
	// Column is the relational column backing a primitive field. For a
	// reference it holds the resolved target id.
	Column string
	Ref    *Reference
}

// Nested reports whether the field owns child entities.
func (f Field) Nested() bool {
	return f.Type.Shape == ShapeEntity || f.Type.Shape == ShapeEntityList
}

// NormalizeKey folds case and drops separators so that "int_cable",
// "int-cable" and "IntCable" all match the field "intCable".
func NormalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range strings.ToLower(key) {
		switch r {
		case '-', '_', ' ', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
