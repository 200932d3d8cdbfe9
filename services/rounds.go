package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/bingolive/bingo-backend/game"
	"github.com/bingolive/bingo-backend/models"
	"github.com/bingolive/bingo-backend/store"
	"go.uber.org/zap"
)

// RoundService owns the round lifecycle and is the single authority
// allowed to append a draw. It holds no round state in memory; every
// operation is one read-modify-write against the store.
type RoundService struct {
	store store.Store
	log   *zap.SugaredLogger

	randMu sync.Mutex
	rand   *rand.Rand
}

func NewRoundService(st store.Store, log *zap.SugaredLogger) *RoundService {
	return &RoundService{
		store: st,
		log:   log,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create finishes any currently active rounds, then opens a fresh one
// with an empty draw history. The finish is a compensating write, not
// a transaction: a narrow race at creation is tolerated by design.
func (s *RoundService) Create(ctx context.Context) (*models.Round, error) {
	finished, err := s.store.FinishActiveRounds(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if finished > 0 {
		s.log.Infow("finished prior active rounds", "count", finished)
	}
	round, err := s.store.CreateRound(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Infow("round created", "round_id", round.ID)
	return round, nil
}

// DrawNext selects uniformly among the numbers not yet drawn, appends
// the pick and persists it. Fails with game.ErrExhaustedPool once all
// 75 numbers are out, and game.ErrStaleRound when the round is not
// active anymore.
func (s *RoundService) DrawNext(ctx context.Context, roundID uint) (int, error) {
	round, err := s.store.GetRound(ctx, roundID)
	if err != nil {
		if err == store.ErrNotFound {
			return 0, game.ErrStaleRound
		}
		return 0, err
	}
	if round.Status != models.RoundActive {
		return 0, game.ErrStaleRound
	}

	available := make([]int, 0, game.MaxNumber-len(round.DrawnNumbers))
	for n := 1; n <= game.MaxNumber; n++ {
		if !round.HasDrawn(n) {
			available = append(available, n)
		}
	}
	if len(available) == 0 {
		return 0, game.ErrExhaustedPool
	}

	s.randMu.Lock()
	num := available[s.rand.Intn(len(available))]
	s.randMu.Unlock()

	drawn := append([]int(nil), round.DrawnNumbers...)
	drawn = append(drawn, num)
	ok, err := s.store.SetRoundDraws(ctx, roundID, drawn)
	if err != nil {
		return 0, err
	}
	if !ok {
		// Round was finished between the read and the write.
		return 0, game.ErrStaleRound
	}
	s.log.Infow("number drawn", "round_id", roundID, "number", num,
		"column", game.ColumnLetter(num), "drawn_count", len(drawn))
	return num, nil
}

// Finish moves an active round to finished and stamps FinishedAt.
// Finishing a round that is missing or already finished reports
// game.ErrStaleRound so the caller refetches.
func (s *RoundService) Finish(ctx context.Context, roundID uint) error {
	ok, err := s.store.FinishRound(ctx, roundID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		return game.ErrStaleRound
	}
	s.log.Infow("round finished", "round_id", roundID)
	return nil
}

// Active returns the current active round, or nil when there is none.
func (s *RoundService) Active(ctx context.Context) (*models.Round, error) {
	return s.store.GetActiveRound(ctx)
}

func (s *RoundService) Get(ctx context.Context, roundID uint) (*models.Round, error) {
	round, err := s.store.GetRound(ctx, roundID)
	if err == store.ErrNotFound {
		return nil, game.ErrStaleRound
	}
	return round, err
}

func (s *RoundService) List(ctx context.Context, ids []uint) ([]models.Round, error) {
	return s.store.ListRounds(ctx, ids)
}
