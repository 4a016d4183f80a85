package systemmap

import (
	"context"
	"encoding/json"
	"fmt"

	types "github.com/yungbote/hookupmap/internal/domain"
	"github.com/yungbote/hookupmap/internal/graph"
	"github.com/yungbote/hookupmap/internal/mapping"
	"github.com/yungbote/hookupmap/internal/pkg/dbctx"
)

// Export rebuilds the hookup document from the stored rows, extension data
// included. Entities come out in insertion order.
func (sm *SystemMap) Export(ctx context.Context) ([]byte, error) {
	g, err := sm.Graph(ctx)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return out, nil
}

// Graph loads the stored map back into an object graph.
func (sm *SystemMap) Graph(ctx context.Context) (*graph.Graph, error) {
	if err := sm.checkOpen(); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}

	busses, err := sm.repos.Bus.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("load busses: %w", err)
	}
	nets, err := sm.repos.Net.GetByBusIDs(dbc, rowIDs(busses, func(b *types.Bus) int64 { return b.ID }))
	if err != nil {
		return nil, fmt.Errorf("load nets: %w", err)
	}
	nodes, err := sm.repos.Node.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("load nodes: %w", err)
	}
	conns, err := sm.repos.Connection.GetByNodeIDs(dbc, rowIDs(nodes, func(n *types.Node) int64 { return n.ID }))
	if err != nil {
		return nil, fmt.Errorf("load connections: %w", err)
	}
	pins, err := sm.repos.Pinout.GetByConnectionIDs(dbc, rowIDs(conns, func(c *types.Connection) int64 { return c.ID }))
	if err != nil {
		return nil, fmt.Errorf("load pinouts: %w", err)
	}

	netsByBus := map[int64][]*types.Net{}
	netNames := map[int64]string{}
	for _, n := range nets {
		netsByBus[n.BusID] = append(netsByBus[n.BusID], n)
		netNames[n.ID] = n.Name
	}
	connsByNode := map[int64][]*types.Connection{}
	for _, c := range conns {
		connsByNode[c.NodeID] = append(connsByNode[c.NodeID], c)
	}
	pinsByConn := map[int64][]*types.Pinout{}
	for _, p := range pins {
		pinsByConn[p.ConnectionID] = append(pinsByConn[p.ConnectionID], p)
	}

	g := &graph.Graph{Busses: []graph.Bus{}, Nodes: []graph.Node{}}
	busNames := map[int64]string{}
	for _, b := range busses {
		busNames[b.ID] = b.Name
		bus := graph.Bus{Name: b.Name, Signal: b.Signal, Nets: []graph.Net{}}
		if bus.Extra, err = mapping.BagFromJSON(b.Extra); err != nil {
			return nil, fmt.Errorf("bus %q: %w", b.Name, err)
		}
		for _, n := range netsByBus[b.ID] {
			net := graph.Net{Name: n.Name}
			if net.Extra, err = mapping.BagFromJSON(n.Extra); err != nil {
				return nil, fmt.Errorf("net %q: %w", n.Name, err)
			}
			bus.Nets = append(bus.Nets, net)
		}
		g.Busses = append(g.Busses, bus)
	}

	for _, n := range nodes {
		node := graph.Node{Name: n.Name, Location: n.Location, Connections: []graph.Connection{}}
		if node.Extra, err = mapping.BagFromJSON(n.Extra); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Name, err)
		}
		for _, c := range connsByNode[n.ID] {
			conn := graph.Connection{
				Name:         c.Name,
				Bus:          busNames[c.BusID],
				IntCable:     c.IntCable,
				IntConnector: c.IntConnector,
				Connector:    c.Connector,
				Direction:    c.Direction,
				Pinout:       []graph.PinMap{},
			}
			if conn.Extra, err = mapping.BagFromJSON(c.Extra); err != nil {
				return nil, fmt.Errorf("connection of node %q: %w", n.Name, err)
			}
			for _, p := range pinsByConn[c.ID] {
				pin := graph.PinMap{Pin: p.Pin, Net: netNames[p.NetID]}
				if pin.Extra, err = mapping.BagFromJSON(p.Extra); err != nil {
					return nil, fmt.Errorf("pin %q of node %q: %w", p.Pin, n.Name, err)
				}
				conn.Pinout = append(conn.Pinout, pin)
			}
			node.Connections = append(node.Connections, conn)
		}
		g.Nodes = append(g.Nodes, node)
	}
	return g, nil
}

func rowIDs[T any](rows []*T, id func(*T) int64) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, id(r))
	}
	return out
}
