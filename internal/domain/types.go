package domain

// Mark is the content of a single cell on the board.
type Mark int

const (
	Empty  Mark = 0
	Player Mark = 1
	AI     Mark = 2
)

func (m Mark) String() string {
	switch m {
	case Player:
		return "X"
	case AI:
		return "O"
	default:
		return "."
	}
}

// Opponent returns the other side. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case Player:
		return AI
	case AI:
		return Player
	default:
		return Empty
	}
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Outcome is the state of a game as seen from the board alone
type Outcome string

const (
	Ongoing   Outcome = "ongoing"
	PlayerWin Outcome = "player_win"
	AIWin     Outcome = "ai_win"
	Draw      Outcome = "draw"
)

// IsTerminal reports whether the outcome ends the game.
func (o Outcome) IsTerminal() bool {
	return o == PlayerWin || o == AIWin || o == Draw
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove      Error = "invalid move"
	ErrColumnFull       Error = "column is full"
	ErrColumnOutOfRange Error = "column out of range"
	ErrColumnEmpty      Error = "column is empty"
	ErrInvalidMark      Error = "invalid mark"
	ErrNoLegalMoves     Error = "no legal moves"
	ErrDoubleWin        Error = "both sides have four in a row"
	ErrFloatingDisk     Error = "disk above an empty cell"
)
