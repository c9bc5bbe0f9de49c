package models

import "time"

// DashboardCounts aggregates a photographer's resources.
type DashboardCounts struct {
	Schools     int       `db:"schools" json:"schools"`
	Classes     int       `db:"classes" json:"classes"`
	Students    int       `db:"students" json:"students"`
	Sessions    int       `db:"sessions" json:"sessions"`
	GeneratedAt time.Time `db:"-" json:"generatedAt"`
}
