package persist

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/hookupmap/internal/data/repos"
	types "github.com/yungbote/hookupmap/internal/domain"
	"github.com/yungbote/hookupmap/internal/graph"
	"github.com/yungbote/hookupmap/internal/mapping"
	"github.com/yungbote/hookupmap/internal/pkg/dbctx"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
	"github.com/yungbote/hookupmap/internal/schema"
)

// Handle names one entity of a graph by its position in the document.
type Handle struct {
	Kind schema.Kind
	Path string
}

func (h Handle) String() string { return h.Kind.String() + "@" + h.Path }

// Identifiers maps every written entity to the id its row received.
type Identifiers map[Handle]int64

// Count returns how many entities of kind were written.
func (ids Identifiers) Count(kind schema.Kind) int {
	n := 0
	for h := range ids {
		if h.Kind == kind {
			n++
		}
	}
	return n
}

type Writer struct {
	repos    repos.Set
	resolver *Resolver
	log      *logger.Logger
}

func NewWriter(db *gorm.DB, reg *schema.Registry, baseLog *logger.Logger) *Writer {
	return &Writer{
		repos:    repos.NewSet(db, baseLog),
		resolver: NewResolver(db, reg, baseLog),
		log:      baseLog.With("component", "Writer"),
	}
}

// Persist writes g one row at a time: busses with their nets, then nodes with
// their connections and pin maps. The first failure stops the sequence;
// rows already written stay unless dbc carries a transaction the caller
// rolls back.
func (w *Writer) Persist(dbc dbctx.Context, g *graph.Graph) (Identifiers, error) {
	ids := Identifiers{}

	for i, b := range g.Busses {
		path := fmt.Sprintf("%s[%d]", schema.KeyBusses, i)
		busID, err := w.writeBus(dbc, b, path)
		if err != nil {
			return ids, err
		}
		ids[Handle{schema.KindBus, path}] = busID

		for j, n := range b.Nets {
			netPath := fmt.Sprintf("%s.%s[%d]", path, schema.FieldNets, j)
			netID, err := w.writeNet(dbc, busID, n, netPath)
			if err != nil {
				return ids, err
			}
			ids[Handle{schema.KindNet, netPath}] = netID
		}
	}

	for i, n := range g.Nodes {
		path := fmt.Sprintf("%s[%d]", schema.KeyNodes, i)
		nodeID, err := w.writeNode(dbc, n, path)
		if err != nil {
			return ids, err
		}
		ids[Handle{schema.KindNode, path}] = nodeID

		for j, c := range n.Connections {
			connPath := fmt.Sprintf("%s.%s[%d]", path, schema.FieldConnections, j)
			busID, err := w.resolve(dbc, schema.KindBus, c.Bus, nil, connPath+"."+schema.FieldBus)
			if err != nil {
				return ids, err
			}
			connID, err := w.writeConnection(dbc, nodeID, busID, c, connPath)
			if err != nil {
				return ids, err
			}
			ids[Handle{schema.KindConnection, connPath}] = connID

			for k, p := range c.Pinout {
				pinPath := fmt.Sprintf("%s.%s[%d]", connPath, schema.FieldPinout, k)
				netID, err := w.resolve(dbc, schema.KindNet, p.Net, &busID, pinPath+"."+schema.FieldNet)
				if err != nil {
					return ids, err
				}
				pinID, err := w.writePinout(dbc, connID, netID, p, pinPath)
				if err != nil {
					return ids, err
				}
				ids[Handle{schema.KindPinMap, pinPath}] = pinID
			}
		}
	}

	w.log.Debug("Graph persisted", "rows", len(ids))
	return ids, nil
}

func (w *Writer) resolve(dbc dbctx.Context, kind schema.Kind, name string, scope *int64, path string) (int64, error) {
	id, err := w.resolver.Resolve(dbc, kind, name, scope)
	if err != nil {
		switch e := err.(type) {
		case *ReferenceError:
			e.Path = path
		case *StoreError:
			e.Path = path
		}
		return 0, err
	}
	return id, nil
}

func (w *Writer) writeBus(dbc dbctx.Context, b graph.Bus, path string) (int64, error) {
	extra, err := extraOf(b.Extra, types.TableBusses, path)
	if err != nil {
		return 0, err
	}
	row := &types.Bus{Name: b.Name, Signal: b.Signal, Extra: extra}
	if _, err := w.repos.Bus.Create(dbc, []*types.Bus{row}); err != nil {
		return 0, &StoreError{Op: "insert", Table: types.TableBusses, Path: path, Err: err}
	}
	return row.ID, nil
}

func (w *Writer) writeNet(dbc dbctx.Context, busID int64, n graph.Net, path string) (int64, error) {
	extra, err := extraOf(n.Extra, types.TableNets, path)
	if err != nil {
		return 0, err
	}
	row := &types.Net{BusID: busID, Name: n.Name, Extra: extra}
	if _, err := w.repos.Net.Create(dbc, []*types.Net{row}); err != nil {
		return 0, &StoreError{Op: "insert", Table: types.TableNets, Path: path, Err: err}
	}
	return row.ID, nil
}

func (w *Writer) writeNode(dbc dbctx.Context, n graph.Node, path string) (int64, error) {
	extra, err := extraOf(n.Extra, types.TableNodes, path)
	if err != nil {
		return 0, err
	}
	row := &types.Node{Name: n.Name, Location: n.Location, Extra: extra}
	if _, err := w.repos.Node.Create(dbc, []*types.Node{row}); err != nil {
		return 0, &StoreError{Op: "insert", Table: types.TableNodes, Path: path, Err: err}
	}
	return row.ID, nil
}

func (w *Writer) writeConnection(dbc dbctx.Context, nodeID, busID int64, c graph.Connection, path string) (int64, error) {
	extra, err := extraOf(c.Extra, types.TableConnections, path)
	if err != nil {
		return 0, err
	}
	row := &types.Connection{
		Name:         c.Name,
		NodeID:       nodeID,
		BusID:        busID,
		IntCable:     c.IntCable,
		IntConnector: c.IntConnector,
		Connector:    c.Connector,
		Direction:    c.Direction,
		Extra:        extra,
	}
	if _, err := w.repos.Connection.Create(dbc, []*types.Connection{row}); err != nil {
		return 0, &StoreError{Op: "insert", Table: types.TableConnections, Path: path, Err: err}
	}
	return row.ID, nil
}

func (w *Writer) writePinout(dbc dbctx.Context, connID, netID int64, p graph.PinMap, path string) (int64, error) {
	extra, err := extraOf(p.Extra, types.TablePinouts, path)
	if err != nil {
		return 0, err
	}
	row := &types.Pinout{ConnectionID: connID, NetID: netID, Pin: p.Pin, Extra: extra}
	if _, err := w.repos.Pinout.Create(dbc, []*types.Pinout{row}); err != nil {
		return 0, &StoreError{Op: "insert", Table: types.TablePinouts, Path: path, Err: err}
	}
	return row.ID, nil
}

func extraOf(bag mapping.Bag, table, path string) (datatypes.JSON, error) {
	raw, err := bag.JSON()
	if err != nil {
		return nil, &StoreError{Op: "encode extra", Table: table, Path: path, Err: err}
	}
	return datatypes.JSON(raw), nil
}
