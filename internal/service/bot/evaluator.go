package bot

import (
	"github.com/iamasit07/connect4-solo/internal/domain"
)

const (
	// Scores from the computer's point of view
	SCORE_AI_WIN     = 1000
	SCORE_PLAYER_WIN = -1000
	SCORE_NEUTRAL    = 0
)

// Evaluate scores a board for the search. Only finished lines count:
// anything short of four in a row is worth exactly zero.
func Evaluate(board *domain.Board) int {
	if domain.HasFourInRow(board, domain.AI) {
		return SCORE_AI_WIN
	}
	if domain.HasFourInRow(board, domain.Player) {
		return SCORE_PLAYER_WIN
	}
	return SCORE_NEUTRAL
}

func isDecided(score int) bool {
	return score == SCORE_AI_WIN || score == SCORE_PLAYER_WIN
}
