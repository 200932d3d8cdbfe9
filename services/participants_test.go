package services

import (
	"context"
	"testing"
	"time"

	"github.com/bingolive/bingo-backend/game"
	"github.com/bingolive/bingo-backend/models"
	"github.com/bingolive/bingo-backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func newParticipantService(t *testing.T) (*ParticipantService, *RoundService, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	log := zap.NewNop().Sugar()
	return NewParticipantService(st, log), NewRoundService(st, log), st
}

func testCard() game.Card {
	return game.Card{
		B: []int{1, 2, 3, 4, 5},
		I: []int{16, 17, 18, 19, 20},
		N: []int{31, 32, game.FreeCell, 34, 35},
		G: []int{46, 47, 48, 49, 50},
		O: []int{61, 62, 63, 64, 65},
	}
}

// the 24 non-free cell values of testCard
func testCardNumbers() []int {
	return []int{
		1, 2, 3, 4, 5,
		16, 17, 18, 19, 20,
		31, 32, 34, 35,
		46, 47, 48, 49, 50,
		61, 62, 63, 64, 65,
	}
}

// seedParticipant creates an active round with the given draw history
// and a participant holding testCard.
func seedParticipant(t *testing.T, st *store.Memory, drawn []int) (*models.Round, *models.Participant) {
	t.Helper()
	ctx := context.Background()
	round, err := st.CreateRound(ctx)
	require.NoError(t, err)
	if len(drawn) > 0 {
		ok, err := st.SetRoundDraws(ctx, round.ID, drawn)
		require.NoError(t, err)
		require.True(t, ok)
	}
	p := &models.Participant{
		RoundID:       round.ID,
		UserID:        1,
		Card:          datatypes.NewJSONType(testCard()),
		MarkedNumbers: datatypes.JSONSlice[int]{},
	}
	require.NoError(t, st.CreateParticipant(ctx, p))
	return round, p
}

func TestJoinGeneratesCardOnce(t *testing.T) {
	svc, rounds, _ := newParticipantService(t)
	ctx := context.Background()

	round, err := rounds.Create(ctx)
	require.NoError(t, err)

	p, err := svc.Join(ctx, round.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, round.ID, p.RoundID)
	assert.Equal(t, uint(7), p.UserID)
	assert.False(t, p.HasBingo)
	assert.Empty(t, []int(p.MarkedNumbers))

	card := p.Card.Data()
	assert.Len(t, card.B, 5)
	assert.Equal(t, game.FreeCell, card.N[2])

	_, err = svc.Join(ctx, round.ID, 7)
	assert.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestJoinRequiresActiveRound(t *testing.T) {
	svc, rounds, _ := newParticipantService(t)
	ctx := context.Background()

	round, err := rounds.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, rounds.Finish(ctx, round.ID))

	_, err = svc.Join(ctx, round.ID, 7)
	assert.ErrorIs(t, err, game.ErrStaleRound)

	_, err = svc.Join(ctx, 999, 7)
	assert.ErrorIs(t, err, game.ErrStaleRound)
}

func TestToggleMarkRejectsFreeCell(t *testing.T) {
	svc, _, st := newParticipantService(t)
	_, p := seedParticipant(t, st, []int{5})

	_, err := svc.ToggleMark(context.Background(), p.ID, game.FreeCell)
	assert.ErrorIs(t, err, game.ErrFreeCell)
}

func TestToggleMarkRejectsUndrawnNumber(t *testing.T) {
	svc, _, st := newParticipantService(t)
	_, p := seedParticipant(t, st, []int{5, 12})
	ctx := context.Background()

	_, err := svc.ToggleMark(ctx, p.ID, 31)
	assert.ErrorIs(t, err, game.ErrNotDrawn)

	fetched, err := st.GetParticipant(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, []int(fetched.MarkedNumbers), "rejected mark must not mutate the ledger")
}

func TestToggleMarkFlipsMembership(t *testing.T) {
	svc, _, st := newParticipantService(t)
	_, p := seedParticipant(t, st, []int{5, 16})
	ctx := context.Background()

	marked, err := svc.ToggleMark(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, []int(marked.MarkedNumbers))

	marked, err = svc.ToggleMark(ctx, p.ID, 16)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 16}, []int(marked.MarkedNumbers))

	// Toggling again unmarks and restores the original set.
	marked, err = svc.ToggleMark(ctx, p.ID, 16)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, []int(marked.MarkedNumbers))
}

func TestToggleMarkFrozenAfterBingo(t *testing.T) {
	svc, _, st := newParticipantService(t)
	_, p := seedParticipant(t, st, testCardNumbers())
	ctx := context.Background()

	require.NoError(t, st.SetParticipantMarks(ctx, p.ID, testCardNumbers()))
	_, err := svc.ClaimBingo(ctx, p.ID)
	require.NoError(t, err)

	_, err = svc.ToggleMark(ctx, p.ID, 5)
	assert.ErrorIs(t, err, game.ErrLedgerFrozen)
}

func TestClaimBingoSuccess(t *testing.T) {
	svc, _, st := newParticipantService(t)
	_, p := seedParticipant(t, st, testCardNumbers())
	ctx := context.Background()

	for _, n := range testCardNumbers() {
		_, err := svc.ToggleMark(ctx, p.ID, n)
		require.NoError(t, err)
	}

	winner, err := svc.ClaimBingo(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, winner.HasBingo)
	require.NotNil(t, winner.BingoClaimedAt)

	fetched, err := st.GetParticipant(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, fetched.HasBingo)
	require.NotNil(t, fetched.BingoClaimedAt)
}

func TestClaimBingoIncompleteReportsRemaining(t *testing.T) {
	svc, _, st := newParticipantService(t)
	_, p := seedParticipant(t, st, testCardNumbers())
	ctx := context.Background()

	nums := testCardNumbers()
	require.NoError(t, st.SetParticipantMarks(ctx, p.ID, nums[:23]))

	_, err := svc.ClaimBingo(ctx, p.ID)
	var incomplete *game.IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 1, incomplete.Remaining)

	fetched, err := st.GetParticipant(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, fetched.HasBingo)
}

func TestClaimBingoRejectsDesyncedMarks(t *testing.T) {
	svc, _, st := newParticipantService(t)
	_, p := seedParticipant(t, st, testCardNumbers())
	ctx := context.Background()

	// 24 marks, one of which was never drawn.
	nums := testCardNumbers()
	marked := append(append([]int(nil), nums[:23]...), 70)
	require.NoError(t, st.SetParticipantMarks(ctx, p.ID, marked))

	_, err := svc.ClaimBingo(ctx, p.ID)
	assert.ErrorIs(t, err, game.ErrUnverifiedMark)
}

func TestClaimBingoSecondClaimRejected(t *testing.T) {
	svc, _, st := newParticipantService(t)
	_, p := seedParticipant(t, st, testCardNumbers())
	ctx := context.Background()

	require.NoError(t, st.SetParticipantMarks(ctx, p.ID, testCardNumbers()))
	_, err := svc.ClaimBingo(ctx, p.ID)
	require.NoError(t, err)

	_, err = svc.ClaimBingo(ctx, p.ID)
	assert.ErrorIs(t, err, game.ErrLedgerFrozen)
}

func TestRemoveDeletesParticipant(t *testing.T) {
	svc, _, st := newParticipantService(t)
	_, p := seedParticipant(t, st, nil)
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, p.ID))
	_, err := st.GetParticipant(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, svc.Remove(ctx, p.ID), store.ErrNotFound)
}

func TestWinnerOrderingByClaimTime(t *testing.T) {
	svc, rounds, st := newParticipantService(t)
	ctx := context.Background()

	round, err := rounds.Create(ctx)
	require.NoError(t, err)
	ok, err := st.SetRoundDraws(ctx, round.ID, testCardNumbers())
	require.NoError(t, err)
	require.True(t, ok)

	var ids []uint
	for userID := uint(1); userID <= 3; userID++ {
		p := &models.Participant{
			RoundID:       round.ID,
			UserID:        userID,
			Card:          datatypes.NewJSONType(testCard()),
			MarkedNumbers: datatypes.JSONSlice[int](testCardNumbers()),
		}
		require.NoError(t, st.CreateParticipant(ctx, p))
		ids = append(ids, p.ID)
	}

	// Claims land in reverse join order, spaced out so the timestamps
	// are strictly increasing.
	for i := len(ids) - 1; i >= 0; i-- {
		_, err := svc.ClaimBingo(ctx, ids[i])
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	winners, err := svc.List(ctx, round.ID, store.ParticipantFilter{
		WinnersOnly: true,
		Order:       store.OrderByClaimed,
	})
	require.NoError(t, err)
	require.Len(t, winners, 3)
	assert.Equal(t, ids[2], winners[0].ID)
	assert.Equal(t, ids[0], winners[2].ID)
}
