// Package graph assembles a hookup document into a typed, immutable object
// graph. Cross references (connection to bus, pin map to net) stay as names
// here; they are resolved to row ids only when the graph is persisted.
package graph

import (
	"github.com/yungbote/hookupmap/internal/mapping"
	"github.com/yungbote/hookupmap/internal/schema"
)

type Graph struct {
	Busses []Bus
	Nodes  []Node
}

type Bus struct {
	Name   string
	Signal *string
	Nets   []Net
	Extra  mapping.Bag
}

type Net struct {
	Name  string
	Extra mapping.Bag
}

type Node struct {
	Name        string
	Location    *string
	Connections []Connection
	Extra       mapping.Bag
}

type Connection struct {
	Name         *string
	Bus          string
	IntCable     *bool
	IntConnector *bool
	Connector    *string
	Direction    *string
	Pinout       []PinMap
	Extra        mapping.Bag
}

// PinMap ties a connector pin to a net of the owning connection's bus.
type PinMap struct {
	Pin   string
	Net   string
	Extra mapping.Bag
}

// Counts returns the number of entities of each kind.
func (g *Graph) Counts() map[schema.Kind]int {
	c := map[schema.Kind]int{
		schema.KindBus:        len(g.Busses),
		schema.KindNet:        0,
		schema.KindNode:       len(g.Nodes),
		schema.KindConnection: 0,
		schema.KindPinMap:     0,
	}
	for _, b := range g.Busses {
		c[schema.KindNet] += len(b.Nets)
	}
	for _, n := range g.Nodes {
		c[schema.KindConnection] += len(n.Connections)
		for _, conn := range n.Connections {
			c[schema.KindPinMap] += len(conn.Pinout)
		}
	}
	return c
}

func busFrom(e *mapping.Entity) Bus {
	b := Bus{
		Name:   e.String(schema.FieldName),
		Signal: e.OptString(schema.FieldSignal),
		Extra:  e.Extra,
	}
	for _, n := range e.List(schema.FieldNets) {
		b.Nets = append(b.Nets, Net{Name: n.String(schema.FieldName), Extra: n.Extra})
	}
	return b
}

func nodeFrom(e *mapping.Entity) Node {
	n := Node{
		Name:     e.String(schema.FieldName),
		Location: e.OptString(schema.FieldLocation),
		Extra:    e.Extra,
	}
	for _, c := range e.List(schema.FieldConnections) {
		n.Connections = append(n.Connections, connectionFrom(c))
	}
	return n
}

func connectionFrom(e *mapping.Entity) Connection {
	c := Connection{
		Name:         e.OptString(schema.FieldName),
		Bus:          e.String(schema.FieldBus),
		IntCable:     e.OptBool(schema.FieldIntCable),
		IntConnector: e.OptBool(schema.FieldIntConnector),
		Connector:    e.OptString(schema.FieldConnector),
		Direction:    e.OptString(schema.FieldDirection),
		Extra:        e.Extra,
	}
	for _, p := range e.List(schema.FieldPinout) {
		c.Pinout = append(c.Pinout, PinMap{
			Pin:   p.String(schema.FieldPin),
			Net:   p.String(schema.FieldNet),
			Extra: p.Extra,
		})
	}
	return c
}
