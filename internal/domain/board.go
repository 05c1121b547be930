package domain

import "time"

// Board is one tracked piece of equipment. Name is unique across the team;
// SerialNumber is optional but unique when set.
type Board struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	SerialNumber *string   `json:"serial_number"`
	Location     string    `json:"location"`
	UpdatedBy    string    `json:"updated_by"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateHistory records one location or holder change of a board.
type UpdateHistory struct {
	ID               uint      `json:"id"`
	BoardID          uint      `json:"board_id"`
	PreviousLocation string    `json:"previous_location"`
	NewLocation      string    `json:"new_location"`
	UpdatedBy        string    `json:"updated_by"`
	CreatedAt        time.Time `json:"created_at"`
}
