package services

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/bingolive/bingo-backend/game"
	"github.com/bingolive/bingo-backend/models"
	"github.com/bingolive/bingo-backend/store"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ErrAlreadyJoined means the user already holds a card in this round.
var ErrAlreadyJoined = errors.New("user already joined this round")

// ParticipantService owns the mark ledger and claim verification for
// participants. Like RoundService it is stateless between operations.
type ParticipantService struct {
	store store.Store
	log   *zap.SugaredLogger

	randMu sync.Mutex
	rand   *rand.Rand
}

func NewParticipantService(st store.Store, log *zap.SugaredLogger) *ParticipantService {
	return &ParticipantService{
		store: st,
		log:   log,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Join enters a user into an active round with a freshly generated
// card. The card is generated exactly once; a second join by the same
// user fails with ErrAlreadyJoined.
func (s *ParticipantService) Join(ctx context.Context, roundID, userID uint) (*models.Participant, error) {
	round, err := s.store.GetRound(ctx, roundID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, game.ErrStaleRound
		}
		return nil, err
	}
	if round.Status != models.RoundActive {
		return nil, game.ErrStaleRound
	}

	s.randMu.Lock()
	card := game.NewCard(s.rand)
	s.randMu.Unlock()

	participant := &models.Participant{
		RoundID:       roundID,
		UserID:        userID,
		Card:          datatypes.NewJSONType(card),
		MarkedNumbers: datatypes.JSONSlice[int]{},
	}
	if err := s.store.CreateParticipant(ctx, participant); err != nil {
		if err == store.ErrDuplicate {
			return nil, ErrAlreadyJoined
		}
		return nil, err
	}
	s.log.Infow("participant joined", "round_id", roundID, "user_id", userID,
		"participant_id", participant.ID)
	return participant, nil
}

// ToggleMark flips one number in the participant's mark ledger.
// Unmarking is allowed; the FREE cell is not toggleable; the ledger is
// frozen after a win; the number must have been drawn.
func (s *ParticipantService) ToggleMark(ctx context.Context, participantID uint, number int) (*models.Participant, error) {
	if number == game.FreeCell {
		return nil, game.ErrFreeCell
	}
	participant, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if participant.HasBingo {
		return nil, game.ErrLedgerFrozen
	}
	round, err := s.store.GetRound(ctx, participant.RoundID)
	if err != nil {
		return nil, err
	}
	if !round.HasDrawn(number) {
		return nil, game.ErrNotDrawn
	}

	var marked []int
	if participant.IsMarked(number) {
		marked = make([]int, 0, len(participant.MarkedNumbers)-1)
		for _, n := range participant.MarkedNumbers {
			if n != number {
				marked = append(marked, n)
			}
		}
	} else {
		marked = append(append([]int(nil), participant.MarkedNumbers...), number)
	}

	if err := s.store.SetParticipantMarks(ctx, participantID, marked); err != nil {
		return nil, err
	}
	participant.MarkedNumbers = marked
	return participant, nil
}

// ClaimBingo re-verifies a claim server side against the card, the
// mark ledger and the authoritative draw history, then stamps the win
// exactly once. Winner ranking comes purely from the claim timestamp.
func (s *ParticipantService) ClaimBingo(ctx context.Context, participantID uint) (*models.Participant, error) {
	participant, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if participant.HasBingo {
		return nil, game.ErrLedgerFrozen
	}
	round, err := s.store.GetRound(ctx, participant.RoundID)
	if err != nil {
		return nil, err
	}

	if err := game.VerifyClaim(participant.Card.Data(), participant.MarkedNumbers, round.DrawnNumbers); err != nil {
		s.log.Infow("bingo claim rejected", "participant_id", participantID,
			"round_id", round.ID, "reason", err)
		return nil, err
	}

	now := time.Now().UTC()
	ok, err := s.store.SetParticipantBingo(ctx, participantID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent claim won the single write-once update.
		return nil, game.ErrLedgerFrozen
	}
	participant.HasBingo = true
	participant.BingoClaimedAt = &now
	s.log.Infow("bingo confirmed", "participant_id", participantID, "round_id", round.ID)
	return participant, nil
}

// Remove deletes a participant and their card. Operator action.
func (s *ParticipantService) Remove(ctx context.Context, participantID uint) error {
	if err := s.store.DeleteParticipant(ctx, participantID); err != nil {
		return err
	}
	s.log.Infow("participant removed", "participant_id", participantID)
	return nil
}

// List returns a round's participants, optionally winners only ordered
// by claim time.
func (s *ParticipantService) List(ctx context.Context, roundID uint, f store.ParticipantFilter) ([]models.Participant, error) {
	return s.store.ListParticipants(ctx, roundID, f)
}

// ListByUser returns a user's cards across rounds, newest first.
func (s *ParticipantService) ListByUser(ctx context.Context, userID uint) ([]models.Participant, error) {
	return s.store.ListParticipantsByUser(ctx, userID)
}
