package game

import (
	"errors"
	"fmt"
)

var (
	// ErrExhaustedPool means all 75 numbers have been drawn. An auto-draw
	// loop must stop on this signal; the round itself stays valid.
	ErrExhaustedPool = errors.New("all 75 numbers have been drawn")

	// ErrNotDrawn means a mark was attempted on a number that is not in
	// the round's draw history.
	ErrNotDrawn = errors.New("number has not been drawn yet")

	// ErrFreeCell means the FREE cell was targeted. It is always marked
	// and never toggled.
	ErrFreeCell = errors.New("free cell cannot be toggled")

	// ErrLedgerFrozen means the participant already has bingo; marks and
	// further claims are rejected.
	ErrLedgerFrozen = errors.New("participant already has bingo")

	// ErrUnverifiedMark means a marked number does not appear in the
	// draw history. Defends against stale or tampered client state.
	ErrUnverifiedMark = errors.New("marked number was never drawn")

	// ErrIncompleteCard means at least one non-free card cell is not
	// marked even though 24 marks exist.
	ErrIncompleteCard = errors.New("card is not fully covered")

	// ErrStaleRound means the operation targeted a round that no longer
	// matches the expected state, e.g. drawing on a finished round.
	// Callers should refetch.
	ErrStaleRound = errors.New("round is not active")
)

// IncompleteError reports a claim with fewer than the 24 required marks.
type IncompleteError struct {
	Remaining int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%d more numbers needed to complete the card", e.Remaining)
}
