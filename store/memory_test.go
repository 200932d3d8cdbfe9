package store

import (
	"context"
	"testing"
	"time"

	"github.com/bingolive/bingo-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMemoryRoundGuards(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	round, err := st.CreateRound(ctx)
	require.NoError(t, err)

	ok, err := st.SetRoundDraws(ctx, round.ID, []int{5, 12})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.FinishRound(ctx, round.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	// Finished rounds are immutable.
	ok, err = st.FinishRound(ctx, round.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = st.SetRoundDraws(ctx, round.ID, []int{5, 12, 31})
	require.NoError(t, err)
	assert.False(t, ok)

	fetched, err := st.GetRound(ctx, round.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 12}, []int(fetched.DrawnNumbers))
}

func TestMemoryFinishActiveRounds(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	a, err := st.CreateRound(ctx)
	require.NoError(t, err)
	b, err := st.CreateRound(ctx)
	require.NoError(t, err)

	n, err := st.FinishActiveRounds(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for _, id := range []uint{a.ID, b.ID} {
		round, err := st.GetRound(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.RoundFinished, round.Status)
		assert.NotNil(t, round.FinishedAt)
	}

	n, err = st.FinishActiveRounds(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryParticipantBingoWriteOnce(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	round, err := st.CreateRound(ctx)
	require.NoError(t, err)
	p := &models.Participant{RoundID: round.ID, UserID: 1}
	require.NoError(t, st.CreateParticipant(ctx, p))

	first := time.Now().UTC()
	ok, err := st.SetParticipantBingo(ctx, p.ID, first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.SetParticipantBingo(ctx, p.ID, first.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, ok, "bingo must be write-once")

	fetched, err := st.GetParticipant(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.BingoClaimedAt)
	assert.Equal(t, first, *fetched.BingoClaimedAt)
}

func TestMemoryDuplicateParticipantRejected(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	round, err := st.CreateRound(ctx)
	require.NoError(t, err)
	require.NoError(t, st.CreateParticipant(ctx, &models.Participant{RoundID: round.ID, UserID: 1}))

	err = st.CreateParticipant(ctx, &models.Participant{RoundID: round.ID, UserID: 1})
	assert.ErrorIs(t, err, ErrDuplicate)

	// Same user in another round is fine.
	other, err := st.CreateRound(ctx)
	require.NoError(t, err)
	assert.NoError(t, st.CreateParticipant(ctx, &models.Participant{RoundID: other.ID, UserID: 1}))
}

func TestMemoryReturnsCopies(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	round, err := st.CreateRound(ctx)
	require.NoError(t, err)
	ok, err := st.SetRoundDraws(ctx, round.ID, []int{5})
	require.NoError(t, err)
	require.True(t, ok)

	fetched, err := st.GetRound(ctx, round.ID)
	require.NoError(t, err)
	fetched.DrawnNumbers = append(fetched.DrawnNumbers, 99)
	fetched.Status = models.RoundFinished

	again, err := st.GetRound(ctx, round.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, []int(again.DrawnNumbers))
	assert.Equal(t, models.RoundActive, again.Status)
}

func TestMemoryWinnerOrderTieBreak(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	round, err := st.CreateRound(ctx)
	require.NoError(t, err)

	ts := time.Now().UTC()
	for userID := uint(1); userID <= 3; userID++ {
		p := &models.Participant{
			RoundID:       round.ID,
			UserID:        userID,
			MarkedNumbers: datatypes.JSONSlice[int]{},
		}
		require.NoError(t, st.CreateParticipant(ctx, p))
		// Identical claim timestamps: record id breaks the tie.
		ok, err := st.SetParticipantBingo(ctx, p.ID, ts)
		require.NoError(t, err)
		require.True(t, ok)
	}

	winners, err := st.ListParticipants(ctx, round.ID, ParticipantFilter{
		WinnersOnly: true,
		Order:       OrderByClaimed,
	})
	require.NoError(t, err)
	require.Len(t, winners, 3)
	assert.True(t, winners[0].ID < winners[1].ID && winners[1].ID < winners[2].ID)
}
