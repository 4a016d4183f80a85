package schema

import (
	"fmt"
	"sort"
)

// Descriptor declares one entity kind.
type Descriptor struct {
	Kind   Kind
	Table  string
	Fields []Field
	// CollectionKey is the top-level document key holding a root array of this kind.
	CollectionKey string
	// Parent is the owning kind by containment; ParentColumn holds its id.
	Parent       Kind
	ParentColumn string
	// NameColumn and ScopeColumn are used when other entities reference this
	// kind by name. ScopeColumn is empty for globally unique names.
	NameColumn  string
	ScopeColumn string
	// Model returns a fresh row value used to create the kind's table.
	Model func() any

	index map[string]int
}

// Field returns the declared field with the canonical name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Match maps an input JSON key to a declared field after normalization.
func (d *Descriptor) Match(key string) (Field, bool) {
	i, ok := d.MatchIndex(key)
	if !ok {
		return Field{}, false
	}
	return d.Fields[i], true
}

// MatchIndex is Match returning the field's position in Fields.
func (d *Descriptor) MatchIndex(key string) (int, bool) {
	i, ok := d.index[NormalizeKey(key)]
	return i, ok
}

// References returns the fields that name other entities.
func (d *Descriptor) References() []Field {
	var out []Field
	for _, f := range d.Fields {
		if f.Ref != nil {
			out = append(out, f)
		}
	}
	return out
}

// Children returns the nested entity and entity-list fields.
func (d *Descriptor) Children() []Field {
	var out []Field
	for _, f := range d.Fields {
		if f.Nested() {
			out = append(out, f)
		}
	}
	return out
}

// Columns returns the relational columns backing primitive fields.
func (d *Descriptor) Columns() []string {
	var out []string
	for _, f := range d.Fields {
		if f.Column != "" {
			out = append(out, f.Column)
		}
	}
	return out
}

// Registry is an immutable set of descriptors kept in dependency order:
// parents and reference targets always precede the kinds that need them.
type Registry struct {
	descs map[Kind]*Descriptor
	order []Kind
}

func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{descs: make(map[Kind]*Descriptor, len(descs))}
	for i := range descs {
		d := descs[i]
		if d.Kind == 0 {
			return nil, fmt.Errorf("descriptor %d: missing kind", i)
		}
		if _, dup := r.descs[d.Kind]; dup {
			return nil, fmt.Errorf("descriptor %s: registered twice", d.Kind)
		}
		d.Fields = append([]Field(nil), d.Fields...)
		d.index = make(map[string]int, len(d.Fields))
		for j, f := range d.Fields {
			if f.Name == "" {
				return nil, fmt.Errorf("descriptor %s: field %d has no name", d.Kind, j)
			}
			norm := NormalizeKey(f.Name)
			if _, dup := d.index[norm]; dup {
				return nil, fmt.Errorf("descriptor %s: field %q collides with another field after normalization", d.Kind, f.Name)
			}
			d.index[norm] = j
			if f.Ref != nil {
				if f.Type.Shape != ShapePrimitive || f.Type.Primitive != String {
					return nil, fmt.Errorf("descriptor %s: reference field %q must be a string", d.Kind, f.Name)
				}
				if _, ok := r.descs[f.Ref.Target]; !ok {
					return nil, fmt.Errorf("descriptor %s: field %q references %s before it is registered", d.Kind, f.Name, f.Ref.Target)
				}
			}
		}
		if d.Parent != 0 {
			if _, ok := r.descs[d.Parent]; !ok {
				return nil, fmt.Errorf("descriptor %s: parent %s must be registered first", d.Kind, d.Parent)
			}
		}
		r.descs[d.Kind] = &d
		r.order = append(r.order, d.Kind)
	}
	// Nested kinds may be registered after the kind that contains them.
	for _, k := range r.order {
		for _, f := range r.descs[k].Children() {
			if _, ok := r.descs[f.Type.Entity]; !ok {
				return nil, fmt.Errorf("descriptor %s: field %q nests unregistered kind %s", k, f.Name, f.Type.Entity)
			}
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for static catalogs.
func MustRegistry(descs ...Descriptor) *Registry {
	r, err := NewRegistry(descs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Describe returns the descriptor for k. Asking for an unregistered kind is a
// programming error and panics.
func (r *Registry) Describe(k Kind) *Descriptor {
	d, ok := r.descs[k]
	if !ok {
		panic(fmt.Sprintf("schema: kind %s is not registered", k))
	}
	return d
}

func (r *Registry) Lookup(k Kind) (*Descriptor, bool) {
	d, ok := r.descs[k]
	return d, ok
}

// Kinds returns every registered kind in dependency order.
func (r *Registry) Kinds() []Kind {
	return append([]Kind(nil), r.order...)
}

// Roots returns the descriptors that appear as top-level collections, in
// dependency order.
func (r *Registry) Roots() []*Descriptor {
	var out []*Descriptor
	for _, k := range r.order {
		if d := r.descs[k]; d.CollectionKey != "" {
			out = append(out, d)
		}
	}
	return out
}

// CollectionKeys returns the required top-level keys, sorted.
func (r *Registry) CollectionKeys() []string {
	var out []string
	for _, d := range r.Roots() {
		out = append(out, d.CollectionKey)
	}
	sort.Strings(out)
	return out
}
