package schema

import (
	"github.com/yungbote/hookupmap/internal/domain"
)

// Canonical JSON field names.
const (
	FieldName         = "name"
	FieldLocation     = "location"
	FieldConnections  = "connections"
	FieldBus          = "bus"
	FieldIntCable     = "intCable"
	FieldIntConnector = "intConnector"
	FieldConnector    = "connector"
	FieldDirection    = "direction"
	FieldPinout       = "pinout"
	FieldSignal       = "signal"
	FieldNets         = "nets"
	FieldPin          = "pin"
	FieldNet          = "net"
)

// Connection directions, stored as two-character codes.
const (
	DirectionIn   = "I"
	DirectionOut  = "O"
	DirectionBoth = "IO"
)

const (
	KeyNodes  = "nodes"
	KeyBusses = "busses"
)

var defaultRegistry = MustRegistry(
	Descriptor{
		Kind:          KindBus,
		Table:         domain.TableBusses,
		CollectionKey: KeyBusses,
		NameColumn:    "name",
		Model:         func() any { return &domain.Bus{} },
		Fields: []Field{
			{Name: FieldName, Type: Required(String), Column: "name"},
			{Name: FieldSignal, Type: Optional(String), Column: "signal"},
			{Name: FieldNets, Type: OptionalList(KindNet)},
		},
	},
	Descriptor{
		Kind:         KindNet,
		Table:        domain.TableNets,
		Parent:       KindBus,
		ParentColumn: "bus",
		NameColumn:   "name",
		ScopeColumn:  "bus",
		Model:        func() any { return &domain.Net{} },
		Fields: []Field{
			{Name: FieldName, Type: Required(String), Column: "name"},
		},
	},
	Descriptor{
		Kind:          KindNode,
		Table:         domain.TableNodes,
		CollectionKey: KeyNodes,
		NameColumn:    "name",
		Model:         func() any { return &domain.Node{} },
		Fields: []Field{
			{Name: FieldName, Type: Required(String), Column: "name"},
			{Name: FieldLocation, Type: Optional(String), Column: "location"},
			{Name: FieldConnections, Type: RequiredList(KindConnection)},
		},
	},
	Descriptor{
		Kind:         KindConnection,
		Table:        domain.TableConnections,
		Parent:       KindNode,
		ParentColumn: "node",
		NameColumn:   "name",
		Model:        func() any { return &domain.Connection{} },
		Fields: []Field{
			{Name: FieldName, Type: Optional(String), Column: "name"},
			{Name: FieldBus, Type: Required(String), Column: "bus", Ref: &Reference{Target: KindBus}},
			{Name: FieldIntCable, Type: Optional(Bool), Column: "intcable"},
			{Name: FieldIntConnector, Type: Optional(Bool), Column: "intconn"},
			{Name: FieldConnector, Type: Optional(String), Column: "connector"},
			{Name: FieldDirection, Type: OneOf(false, DirectionIn, DirectionOut, DirectionBoth), Column: "direction"},
			{Name: FieldPinout, Type: RequiredList(KindPinMap)},
		},
	},
	Descriptor{
		Kind:         KindPinMap,
		Table:        domain.TablePinouts,
		Parent:       KindConnection,
		ParentColumn: "connection",
		Model:        func() any { return &domain.Pinout{} },
		Fields: []Field{
			{Name: FieldPin, Type: Required(String), Column: "pin"},
			{Name: FieldNet, Type: Required(String), Column: "net", Ref: &Reference{Target: KindNet, Scope: KindBus}},
		},
	},
)

// Default returns the hookup diagram catalog.
func Default() *Registry { return defaultRegistry }
