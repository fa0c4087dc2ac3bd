package domain

import "time"

// Hospital is referenced by cases; it is not owned by them.
type Hospital struct {
	ID        string
	Code      string
	Name      string
	Province  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
