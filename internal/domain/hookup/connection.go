package hookup

import "gorm.io/datatypes"

type Connection struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         *string        `gorm:"column:name;uniqueIndex:idx_connections_name" json:"name,omitempty"`
	NodeID       int64          `gorm:"column:node;not null;index" json:"node"`
	Node         *Node          `gorm:"constraint:OnDelete:CASCADE;foreignKey:NodeID;references:ID" json:"-"`
	BusID        int64          `gorm:"column:bus;not null;index" json:"bus"`
	Bus          *Bus           `gorm:"constraint:OnDelete:CASCADE;foreignKey:BusID;references:ID" json:"-"`
	IntCable     *bool          `gorm:"column:intcable" json:"intcable,omitempty"`
	IntConnector *bool          `gorm:"column:intconn" json:"intconn,omitempty"`
	Connector    *string        `gorm:"column:connector" json:"connector,omitempty"`
	Direction    *string        `gorm:"column:direction;size:2" json:"direction,omitempty"`
	Extra        datatypes.JSON `gorm:"column:extra" json:"extra,omitempty"`
}

func (Connection) TableName() string { return TableConnections }
