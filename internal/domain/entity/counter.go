package entity

import "time"

// Counter holds the last value handed out for a named sequence
// (boleta numbers, per supplier/category product sequences).
type Counter struct {
	Name      string    `gorm:"size:100;primary_key"`
	Value     int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName returns the table name for the Counter model
func (Counter) TableName() string {
	return "counters"
}
