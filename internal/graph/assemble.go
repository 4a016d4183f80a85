package graph

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/yungbote/hookupmap/internal/mapping"
	"github.com/yungbote/hookupmap/internal/schema"
)

// Assemble decodes a whole document. Every root collection declared in reg is
// required; other top-level keys are dropped with a warning. The first entity
// that fails validation aborts assembly and no graph is returned.
func Assemble(doc []byte, reg *schema.Registry) (*Graph, []Warning, error) {
	roots, warnings, err := decodeRoots(doc, reg)
	if err != nil {
		return nil, nil, err
	}
	g := &Graph{}
	for _, e := range roots[schema.KindBus] {
		g.Busses = append(g.Busses, busFrom(e))
	}
	for _, e := range roots[schema.KindNode] {
		g.Nodes = append(g.Nodes, nodeFrom(e))
	}
	return g, warnings, nil
}

func decodeRoots(doc []byte, reg *schema.Registry) (map[schema.Kind][]*mapping.Entity, []Warning, error) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil, &StructuralError{Code: CodeNotAnObject, Actual: mapping.JSONType(trimmed)}
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, nil, &StructuralError{Code: CodeNotAnObject, Err: err}
	}

	required := make(map[string]*schema.Descriptor)
	for _, d := range reg.Roots() {
		required[d.CollectionKey] = d
	}
	for _, key := range reg.CollectionKeys() {
		raw, ok := top[key]
		if !ok {
			return nil, nil, &StructuralError{Code: CodeMissingTopLevelKey, Key: key}
		}
		if t := mapping.JSONType(raw); t != "array" {
			return nil, nil, &StructuralError{Code: CodeTopLevelNotList, Key: key, Actual: t}
		}
	}

	var warnings []Warning
	for key := range top {
		if _, ok := required[key]; !ok {
			warnings = append(warnings, Warning{Code: WarnUnknownTopLevelKey, Key: key})
		}
	}
	sort.Slice(warnings, func(i, j int) bool { return warnings[i].Key < warnings[j].Key })

	out := make(map[schema.Kind][]*mapping.Entity, len(required))
	for _, d := range reg.Roots() {
		var elems []json.RawMessage
		if err := json.Unmarshal(top[d.CollectionKey], &elems); err != nil {
			return nil, nil, &StructuralError{Code: CodeTopLevelNotList, Key: d.CollectionKey, Err: err}
		}
		entities := make([]*mapping.Entity, 0, len(elems))
		for i, elem := range elems {
			e, err := mapping.Decode(reg, d.Kind, elem)
			if err != nil {
				return nil, nil, &mapping.NestedError{Field: d.CollectionKey, Index: i, Err: err}
			}
			entities = append(entities, e)
		}
		out[d.Kind] = entities
	}
	return out, warnings, nil
}
