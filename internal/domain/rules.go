package domain

// HasFourInRow scans the whole board for four consecutive disks of mark in
// any of the four directions.
func HasFourInRow(b *Board, mark Mark) bool {
	if mark == Empty {
		return false
	}

	// horizontal
	for r := 0; r < Rows; r++ {
		for c := 0; c <= Columns-ToWin; c++ {
			if b[r][c] == mark && b[r][c+1] == mark && b[r][c+2] == mark && b[r][c+3] == mark {
				return true
			}
		}
	}

	// vertical
	for r := 0; r <= Rows-ToWin; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] == mark && b[r+1][c] == mark && b[r+2][c] == mark && b[r+3][c] == mark {
				return true
			}
		}
	}

	// diagonal / (going up and to the right from the lower end)
	for r := ToWin - 1; r < Rows; r++ {
		for c := 0; c <= Columns-ToWin; c++ {
			if b[r][c] == mark && b[r-1][c+1] == mark && b[r-2][c+2] == mark && b[r-3][c+3] == mark {
				return true
			}
		}
	}

	// diagonal \ (going down and to the right from the upper end)
	for r := 0; r <= Rows-ToWin; r++ {
		for c := 0; c <= Columns-ToWin; c++ {
			if b[r][c] == mark && b[r+1][c+1] == mark && b[r+2][c+2] == mark && b[r+3][c+3] == mark {
				return true
			}
		}
	}

	return false
}

// EvaluateOutcome classifies the board. A win outranks a full board.
// Legal play can never give both sides four in a row, so that case panics.
func EvaluateOutcome(b *Board) Outcome {
	playerWon := HasFourInRow(b, Player)
	aiWon := HasFourInRow(b, AI)

	switch {
	case playerWon && aiWon:
		panic(ErrDoubleWin)
	case aiWon:
		return AIWin
	case playerWon:
		return PlayerWin
	case b.IsFull():
		return Draw
	default:
		return Ongoing
	}
}

// CheckPosition is the non-panicking form of EvaluateOutcome used on boards
// that arrive from outside the process.
func CheckPosition(b *Board) (Outcome, error) {
	if err := b.Validate(); err != nil {
		return Ongoing, err
	}
	if HasFourInRow(b, Player) && HasFourInRow(b, AI) {
		return Ongoing, ErrDoubleWin
	}
	return EvaluateOutcome(b), nil
}
