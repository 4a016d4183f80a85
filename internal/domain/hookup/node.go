package hookup

import "gorm.io/datatypes"

type Node struct {
	ID       int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string         `gorm:"column:name;not null;uniqueIndex:idx_nodes_name" json:"name"`
	Location *string        `gorm:"column:location" json:"location,omitempty"`
	Extra    datatypes.JSON `gorm:"column:extra" json:"extra,omitempty"`
}

func (Node) TableName() string { return TableNodes }
