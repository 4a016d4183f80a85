package hookup

import "gorm.io/datatypes"

type Bus struct {
	ID     int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name   string         `gorm:"column:name;not null;uniqueIndex:idx_busses_name" json:"name"`
	Signal *string        `gorm:"column:signal" json:"signal,omitempty"`
	Extra  datatypes.JSON `gorm:"column:extra" json:"extra,omitempty"`
}

func (Bus) TableName() string { return TableBusses }
