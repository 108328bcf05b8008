package bot

import (
	"math"

	"github.com/iamasit07/connect4-solo/internal/domain"
)

const MINIMAX_DEPTH = 5

// Minimax is the hard opponent: a full-width search with no pruning.
// Every drop made while searching is undone before the next sibling is tried,
// so the board comes back exactly as it went in.
type Minimax struct {
	// Depth is the number of plies searched below each root move.
	Depth int
}

func NewMinimax(depth int) Minimax {
	if depth < 0 {
		depth = 0
	}
	return Minimax{Depth: depth}
}

func (m Minimax) Name() Strategy {
	return StrategyMinimax
}

// ChooseMove tries every legal column for the computer and keeps the first one
// with the strictly best score.
func (m Minimax) ChooseMove(board *domain.Board, rng Rand) Choice {
	s := &searcher{board: board}

	bestCol := -1
	bestScore := math.MinInt

	for col := 0; col < domain.Columns; col++ {
		if !board.IsLegal(col) {
			continue
		}
		if _, err := board.Drop(col, domain.AI); err != nil {
			continue
		}
		s.nodes++

		score := s.minimax(m.Depth, false)
		_ = board.Undo(col)

		if score > bestScore {
			bestScore = score
			bestCol = col
		}
	}

	if bestCol == -1 {
		return Choice{Column: randomLegalMove(board, rng), Reason: ReasonFallback, Nodes: s.nodes}
	}

	return Choice{Column: bestCol, Score: bestScore, Reason: ReasonSearch, Nodes: s.nodes}
}

// Search returns the minimax value of board with depth plies left and the given
// side to move. maximizing means the computer moves next.
func (m Minimax) Search(board *domain.Board, depth int, maximizing bool) int {
	s := &searcher{board: board}
	return s.minimax(depth, maximizing)
}

type searcher struct {
	board *domain.Board
	nodes int
}

func (s *searcher) minimax(depth int, maximizing bool) int {
	score := Evaluate(s.board)
	if isDecided(score) || depth == 0 || s.board.IsFull() {
		return score
	}

	mark := domain.Player
	best := math.MaxInt
	if maximizing {
		mark = domain.AI
		best = math.MinInt
	}

	for col := 0; col < domain.Columns; col++ {
		if !s.board.IsLegal(col) {
			continue
		}
		if _, err := s.board.Drop(col, mark); err != nil {
			continue
		}
		s.nodes++

		val := s.minimax(depth-1, !maximizing)
		_ = s.board.Undo(col)

		// strict comparison keeps the lowest column among equals
		if maximizing && val > best {
			best = val
		} else if !maximizing && val < best {
			best = val
		}
	}

	return best
}
