package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/hookupmap/internal/data/repos/hookup"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
)

type BusRepo = hookup.BusRepo
type NetRepo = hookup.NetRepo
type NodeRepo = hookup.NodeRepo
type ConnectionRepo = hookup.ConnectionRepo
type PinoutRepo = hookup.PinoutRepo

func NewBusRepo(db *gorm.DB, baseLog *logger.Logger) BusRepo {
	return hookup.NewBusRepo(db, baseLog)
}

func NewNetRepo(db *gorm.DB, baseLog *logger.Logger) NetRepo {
	return hookup.NewNetRepo(db, baseLog)
}

func NewNodeRepo(db *gorm.DB, baseLog *logger.Logger) NodeRepo {
	return hookup.NewNodeRepo(db, baseLog)
}

func NewConnectionRepo(db *gorm.DB, baseLog *logger.Logger) ConnectionRepo {
	return hookup.NewConnectionRepo(db, baseLog)
}

func NewPinoutRepo(db *gorm.DB, baseLog *logger.Logger) PinoutRepo {
	return hookup.NewPinoutRepo(db, baseLog)
}

// Set is every repo bound to one store.
type Set struct {
	Bus        BusRepo
	Net        NetRepo
	Node       NodeRepo
	Connection ConnectionRepo
	Pinout     PinoutRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Bus:        NewBusRepo(db, baseLog),
		Net:        NewNetRepo(db, baseLog),
		Node:       NewNodeRepo(db, baseLog),
		Connection: NewConnectionRepo(db, baseLog),
		Pinout:     NewPinoutRepo(db, baseLog),
	}
}
