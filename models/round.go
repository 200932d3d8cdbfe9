package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoundActive   = "active"
	RoundFinished = "finished"
)

// Round is one game session with its own draw history. DrawnNumbers is
// append-only, duplicate-free and capped at 75; at most one round is
// active at a time.
type Round struct {
	ID           uint                     `gorm:"primaryKey" json:"id"`
	Status       string                   `gorm:"size:16;not null;index" json:"status"`
	DrawnNumbers datatypes.JSONSlice[int] `gorm:"type:json" json:"drawn_numbers"`
	CreatedAt    time.Time                `json:"created_at"`
	FinishedAt   *time.Time               `json:"finished_at"`
}

// HasDrawn reports whether n is in the round's draw history.
func (r *Round) HasDrawn(n int) bool {
	for _, d := range r.DrawnNumbers {
		if d == n {
			return true
		}
	}
	return false
}
