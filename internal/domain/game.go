package domain

// Move records one drop made during a game.
type Move struct {
	Mark   Mark `json:"mark"`
	Column int  `json:"column"`
	Row    int  `json:"row"`
}

type Game struct {
	Board       Board
	CurrentTurn Mark
	Outcome     Outcome
	Moves       []Move
}

// NewGame returns an empty board with the human to move, as in every game
// against the computer.
func NewGame() *Game {
	return &Game{
		Board:       NewBoard(),
		CurrentTurn: Player,
		Outcome:     Ongoing,
		Moves:       make([]Move, 0, Rows*Columns),
	}
}

// MakeMove drops a disk for mark, which must be the side to move.
func (g *Game) MakeMove(mark Mark, column int) (int, error) {
	if g.Outcome.IsTerminal() {
		return -1, ErrInvalidMove
	}
	if mark != g.CurrentTurn {
		return -1, ErrInvalidMove
	}

	row, err := g.Board.Drop(column, mark)
	if err != nil {
		return -1, err
	}

	g.Moves = append(g.Moves, Move{Mark: mark, Column: column, Row: row})
	g.Outcome = EvaluateOutcome(&g.Board)
	if !g.Outcome.IsTerminal() {
		g.CurrentTurn = mark.Opponent()
	}

	return row, nil
}

func (g *Game) MoveCount() int {
	return len(g.Moves)
}

func (g *Game) IsFinished() bool {
	return g.Outcome.IsTerminal()
}

// Reset clears the game in place.
func (g *Game) Reset() {
	g.Board = NewBoard()
	g.CurrentTurn = Player
	g.Outcome = Ongoing
	g.Moves = g.Moves[:0]
}
