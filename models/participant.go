package models

import (
	"time"

	"github.com/bingolive/bingo-backend/game"
	"gorm.io/datatypes"
)

// Participant is one user's entry in a round: the card generated at
// join time plus the mark ledger. MarkedNumbers stays a subset of the
// round's drawn numbers; HasBingo is write-once.
type Participant struct {
	ID             uint                           `gorm:"primaryKey" json:"id"`
	RoundID        uint                           `gorm:"not null;uniqueIndex:idx_participants_round_user;index" json:"round_id"`
	UserID         uint                           `gorm:"not null;uniqueIndex:idx_participants_round_user;index" json:"user_id"`
	Card           datatypes.JSONType[game.Card]  `gorm:"type:json" json:"card"`
	MarkedNumbers  datatypes.JSONSlice[int]       `gorm:"type:json" json:"marked_numbers"`
	HasBingo       bool                           `gorm:"not null;default:false;index" json:"has_bingo"`
	BingoClaimedAt *time.Time                     `json:"bingo_claimed_at"`
	CreatedAt      time.Time                      `json:"created_at"`
}

// IsMarked reports whether n is in the participant's mark ledger.
func (p *Participant) IsMarked(n int) bool {
	for _, m := range p.MarkedNumbers {
		if m == n {
			return true
		}
	}
	return false
}
