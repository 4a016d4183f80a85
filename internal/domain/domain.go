package domain

import "github.com/yungbote/hookupmap/internal/domain/hookup"

type (
	Node       = hookup.Node
	Bus        = hookup.Bus
	Net        = hookup.Net
	Connection = hookup.Connection
	Pinout     = hookup.Pinout
)

const (
	TableNodes       = hookup.TableNodes
	TableBusses      = hookup.TableBusses
	TableNets        = hookup.TableNets
	TableConnections = hookup.TableConnections
	TablePinouts     = hookup.TablePinouts
)
