package bot

import (
	"github.com/iamasit07/connect4-solo/internal/domain"
)

// Heuristic is the easy opponent. It looks a single ply ahead: win if it can,
// block the first immediate threat it finds, otherwise play at random.
type Heuristic struct{}

func (Heuristic) Name() Strategy {
	return StrategyHeuristic
}

func (Heuristic) ChooseMove(board *domain.Board, rng Rand) Choice {
	if col, ok := findWinningMove(board, domain.AI); ok {
		return Choice{Column: col, Score: SCORE_AI_WIN, Reason: ReasonWin}
	}

	if col, ok := findWinningMove(board, domain.Player); ok {
		return Choice{Column: col, Reason: ReasonBlock}
	}

	return Choice{Column: randomLegalMove(board, rng), Reason: ReasonRandom}
}

// findWinningMove returns the lowest column where mark completes four in a row
// with its next drop. The board is restored before returning.
func findWinningMove(board *domain.Board, mark domain.Mark) (int, bool) {
	for col := 0; col < domain.Columns; col++ {
		if !board.IsLegal(col) {
			continue
		}
		if _, err := board.Drop(col, mark); err != nil {
			continue
		}
		won := domain.HasFourInRow(board, mark)
		_ = board.Undo(col)

		if won {
			return col, true
		}
	}
	return -1, false
}

// randomLegalMove picks uniformly among the legal columns, or 0 when there are none.
func randomLegalMove(board *domain.Board, rng Rand) int {
	valid := board.LegalMoves()
	if len(valid) == 0 {
		return 0
	}
	return valid[rng.IntN(len(valid))]
}
