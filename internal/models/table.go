package models

import "time"

type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableOccupied    TableStatus = "occupied"
	TableReserved    TableStatus = "reserved"
	TableCleaning    TableStatus = "cleaning"
	TableUnavailable TableStatus = "unavailable"
)

type Table struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	RestaurantID uint        `gorm:"not null;index" json:"restaurant_id"`
	TableNumber  string      `gorm:"type:varchar(50);not null" json:"table_number"`
	Capacity     int         `gorm:"not null" json:"capacity"`
	MinCapacity  int         `gorm:"not null;default:1" json:"min_capacity"`
	Section      string      `gorm:"type:varchar(100)" json:"section,omitempty"`
	Status       TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	Active       bool        `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
}

// Fits reports whether a party of the given size is within the table's
// seating bounds.
func (t *Table) Fits(partySize int) bool {
	return partySize >= t.MinCapacity && partySize <= t.Capacity
}
