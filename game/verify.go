package game

// RequiredMarks is the number of non-free cells on a card.
const RequiredMarks = 24

// VerifyClaim validates a bingo claim against the authoritative draw
// history. Checks run in order and short-circuit:
//
//  1. at least 24 numbers marked, else *IncompleteError with the
//     remaining count
//  2. every marked number appears in the draw history, else
//     ErrUnverifiedMark
//  3. every non-free card cell is marked, else ErrIncompleteCard
//
// A nil return means the card is fully covered by verified marks.
func VerifyClaim(card Card, marked, drawn []int) error {
	if len(marked) < RequiredMarks {
		return &IncompleteError{Remaining: RequiredMarks - len(marked)}
	}

	drawnSet := toSet(drawn)
	for _, n := range marked {
		if !drawnSet[n] {
			return ErrUnverifiedMark
		}
	}

	markedSet := toSet(marked)
	grid := card.Grid()
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			n := grid[row][col]
			if n == FreeCell {
				continue
			}
			if !markedSet[n] {
				return ErrIncompleteCard
			}
		}
	}
	return nil
}

func toSet(nums []int) map[int]bool {
	set := make(map[int]bool, len(nums))
	for _, n := range nums {
		set[n] = true
	}
	return set
}
