// Package store is the durable holder of rounds, participants and
// profiles. Implementations must serialize concurrent writes to the
// same record; cross-record coordination is the caller's problem.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/bingolive/bingo-backend/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated,
	// e.g. a second participant row for the same user and round.
	ErrDuplicate = errors.New("record already exists")
)

// ParticipantOrder selects the sort column for participant listings.
type ParticipantOrder string

const (
	OrderByJoined ParticipantOrder = "created_at"
	// OrderByClaimed orders by claim timestamp with the record id as
	// tie-break, so near-simultaneous winners rank deterministically.
	OrderByClaimed ParticipantOrder = "bingo_claimed_at"
)

// ParticipantFilter narrows and orders ListParticipants results.
type ParticipantFilter struct {
	WinnersOnly bool
	Order       ParticipantOrder
}

// Store is the data-store contract the engine operates against. Every
// mutation is a single-record update; conditional mutations report
// whether the guard matched instead of failing.
type Store interface {
	CreateRound(ctx context.Context) (*models.Round, error)
	GetRound(ctx context.Context, id uint) (*models.Round, error)
	// GetActiveRound returns (nil, nil) when no round is active.
	GetActiveRound(ctx context.Context) (*models.Round, error)
	ListRounds(ctx context.Context, ids []uint) ([]models.Round, error)
	// SetRoundDraws overwrites the draw history of an active round.
	// Returns false when the round is missing or already finished.
	SetRoundDraws(ctx context.Context, id uint, drawn []int) (bool, error)
	// FinishRound moves an active round to finished. Returns false when
	// no active round matched (already finished or missing).
	FinishRound(ctx context.Context, id uint, at time.Time) (bool, error)
	// FinishActiveRounds finishes every active round and returns how
	// many were affected. Compensating write behind round creation.
	FinishActiveRounds(ctx context.Context, at time.Time) (int64, error)

	CreateParticipant(ctx context.Context, p *models.Participant) error
	GetParticipant(ctx context.Context, id uint) (*models.Participant, error)
	SetParticipantMarks(ctx context.Context, id uint, marked []int) error
	// SetParticipantBingo stamps the win exactly once. Returns false if
	// the participant already has bingo.
	SetParticipantBingo(ctx context.Context, id uint, at time.Time) (bool, error)
	DeleteParticipant(ctx context.Context, id uint) error
	ListParticipants(ctx context.Context, roundID uint, f ParticipantFilter) ([]models.Participant, error)
	ListParticipantsByUser(ctx context.Context, userID uint) ([]models.Participant, error)

	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, id uint) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id uint, fields map[string]any) error
}
