package graph

import (
	"encoding/json"

	"github.com/yungbote/hookupmap/internal/mapping"
	"github.com/yungbote/hookupmap/internal/schema"
)

// MarshalJSON writes the document shape the graph was assembled from. Absent
// optional fields are omitted; extension data is merged back in.
func (g *Graph) MarshalJSON() ([]byte, error) {
	busses := g.Busses
	if busses == nil {
		busses = []Bus{}
	}
	nodes := g.Nodes
	if nodes == nil {
		nodes = []Node{}
	}
	return json.Marshal(map[string]any{
		schema.KeyBusses: busses,
		schema.KeyNodes:  nodes,
	})
}

func (b Bus) MarshalJSON() ([]byte, error) {
	nets := b.Nets
	if nets == nil {
		nets = []Net{}
	}
	fields := map[string]any{
		schema.FieldName: b.Name,
		schema.FieldNets: nets,
	}
	putString(fields, schema.FieldSignal, b.Signal)
	return mapping.Marshal(fields, b.Extra)
}

func (n Net) MarshalJSON() ([]byte, error) {
	return mapping.Marshal(map[string]any{schema.FieldName: n.Name}, n.Extra)
}

func (n Node) MarshalJSON() ([]byte, error) {
	conns := n.Connections
	if conns == nil {
		conns = []Connection{}
	}
	fields := map[string]any{
		schema.FieldName:        n.Name,
		schema.FieldConnections: conns,
	}
	putString(fields, schema.FieldLocation, n.Location)
	return mapping.Marshal(fields, n.Extra)
}

func (c Connection) MarshalJSON() ([]byte, error) {
	pins := c.Pinout
	if pins == nil {
		pins = []PinMap{}
	}
	fields := map[string]any{
		schema.FieldBus:    c.Bus,
		schema.FieldPinout: pins,
	}
	putString(fields, schema.FieldName, c.Name)
	putString(fields, schema.FieldConnector, c.Connector)
	putString(fields, schema.FieldDirection, c.Direction)
	if c.IntCable != nil {
		fields[schema.FieldIntCable] = *c.IntCable
	}
	if c.IntConnector != nil {
		fields[schema.FieldIntConnector] = *c.IntConnector
	}
	return mapping.Marshal(fields, c.Extra)
}

func (p PinMap) MarshalJSON() ([]byte, error) {
	return mapping.Marshal(map[string]any{
		schema.FieldPin: p.Pin,
		schema.FieldNet: p.Net,
	}, p.Extra)
}

func putString(fields map[string]any, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}
