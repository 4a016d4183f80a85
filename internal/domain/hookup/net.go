package hookup

import "gorm.io/datatypes"

// Net names are unique within their owning bus only.
type Net struct {
	ID    int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BusID int64          `gorm:"column:bus;not null;uniqueIndex:idx_nets_bus_name,priority:1" json:"bus"`
	Bus   *Bus           `gorm:"constraint:OnDelete:CASCADE;foreignKey:BusID;references:ID" json:"-"`
	Name  string         `gorm:"column:name;not null;uniqueIndex:idx_nets_bus_name,priority:2" json:"name"`
	Extra datatypes.JSON `gorm:"column:extra" json:"extra,omitempty"`
}

func (Net) TableName() string { return TableNets }
