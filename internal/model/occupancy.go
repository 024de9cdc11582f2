package model

import "time"

// OccupancySnapshot is a periodic record of the actual occupancy rate,
// written by the recorder loop. The latest snapshot doubles as the
// fallback answer when the occupancy model artifact is unavailable.
type OccupancySnapshot struct {
	ID            int64     `gorm:"autoIncrement;primaryKey"`
	ObservedAt    time.Time `gorm:"index;not null" json:"observedAt"`
	Rate          float64   `gorm:"not null" json:"rate"` // percent, 0-100
	ActiveBeds    int       `gorm:"not null" json:"activeBeds"`
	TotalCapacity int       `gorm:"not null" json:"totalCapacity"`
}
