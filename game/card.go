package game

import "math/rand"

// FreeCell is the sentinel value of the card's center cell.
const FreeCell = 0

// MaxNumber is the highest drawable number.
const MaxNumber = 75

// Card is a 5x5 bingo card stored column by column. Each column holds
// 5 distinct numbers from its fixed range: B 1-15, I 16-30, N 31-45,
// G 46-60, O 61-75. N[2] is the FREE cell (0). Cards are immutable
// once generated.
type Card struct {
	B []int `json:"B"`
	I []int `json:"I"`
	N []int `json:"N"`
	G []int `json:"G"`
	O []int `json:"O"`
}

// NewCard generates a random card. Each column draws 5 numbers without
// replacement from a shrinking candidate pool, so every subset of the
// 15 range values is equally likely.
func NewCard(r *rand.Rand) Card {
	n := drawFromRange(r, 31, 45, 5)
	n[2] = FreeCell
	return Card{
		B: drawFromRange(r, 1, 15, 5),
		I: drawFromRange(r, 16, 30, 5),
		N: n,
		G: drawFromRange(r, 46, 60, 5),
		O: drawFromRange(r, 61, 75, 5),
	}
}

func drawFromRange(r *rand.Rand, min, max, count int) []int {
	available := make([]int, 0, max-min+1)
	for n := min; n <= max; n++ {
		available = append(available, n)
	}
	nums := make([]int, 0, count)
	for i := 0; i < count; i++ {
		idx := r.Intn(len(available))
		nums = append(nums, available[idx])
		available = append(available[:idx], available[idx+1:]...)
	}
	return nums
}

// Grid lays the card out row by row: Grid()[row][col], with columns in
// B, I, N, G, O order. The FREE cell sits at [2][2].
func (c Card) Grid() [5][5]int {
	cols := [5][]int{c.B, c.I, c.N, c.G, c.O}
	var grid [5][5]int
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			grid[row][col] = cols[col][row]
		}
	}
	return grid
}

// ColumnLetter reports which column a drawn number belongs to, or ""
// if the number is outside 1-75.
func ColumnLetter(n int) string {
	switch {
	case n < 1 || n > MaxNumber:
		return ""
	case n <= 15:
		return "B"
	case n <= 30:
		return "I"
	case n <= 45:
		return "N"
	case n <= 60:
		return "G"
	default:
		return "O"
	}
}
