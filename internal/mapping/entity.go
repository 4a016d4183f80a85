package mapping

import (
	"encoding/json"

	"github.com/yungbote/hookupmap/internal/pkg/pointers"
	"github.com/yungbote/hookupmap/internal/schema"
)

// Value is one declared field of a decoded entity. Present is false both for a
// missing optional key and for an explicit null.
type Value struct {
	Present bool
	// Data is a string, bool, json.Number, *Entity or []*Entity.
	Data any
}

// Entity is a validated instance of a registered kind. Its values are laid out
// in the descriptor's field order and never change after decoding.
type Entity struct {
	Kind   schema.Kind
	desc   *schema.Descriptor
	values []Value
	Extra  Bag
}

func (e *Entity) Descriptor() *schema.Descriptor { return e.desc }

func (e *Entity) Value(name string) Value {
	for i, f := range e.desc.Fields {
		if f.Name == name {
			return e.values[i]
		}
	}
	return Value{}
}

func (e *Entity) Has(name string) bool { return e.Value(name).Present }

// String returns a string field, or "" when absent.
func (e *Entity) String(name string) string {
	s, _ := e.Value(name).Data.(string)
	return s
}

func (e *Entity) OptString(name string) *string { return optional[string](e.Value(name)) }

func (e *Entity) OptBool(name string) *bool { return optional[bool](e.Value(name)) }

func optional[T any](v Value) *T {
	if !v.Present {
		return nil
	}
	t, ok := v.Data.(T)
	if !ok {
		return nil
	}
	return pointers.Ptr(t)
}

func (e *Entity) Number(name string) (json.Number, bool) {
	n, ok := e.Value(name).Data.(json.Number)
	return n, ok
}

func (e *Entity) Child(name string) *Entity {
	c, _ := e.Value(name).Data.(*Entity)
	return c
}

// List returns the decoded elements of a list field; nil when absent.
func (e *Entity) List(name string) []*Entity {
	l, _ := e.Value(name).Data.([]*Entity)
	return l
}
