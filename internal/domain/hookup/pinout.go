package hookup

import "gorm.io/datatypes"

// Pinout is the persisted form of a connection's pin map entry.
type Pinout struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ConnectionID int64          `gorm:"column:connection;not null;index" json:"connection"`
	Connection   *Connection    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConnectionID;references:ID" json:"-"`
	NetID        int64          `gorm:"column:net;not null;index" json:"net"`
	Net          *Net           `gorm:"constraint:OnDelete:CASCADE;foreignKey:NetID;references:ID" json:"-"`
	Pin          string         `gorm:"column:pin;not null" json:"pin"`
	Extra        datatypes.JSON `gorm:"column:extra" json:"extra,omitempty"`
}

func (Pinout) TableName() string { return TablePinouts }
