package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
	"github.com/iamasit07/connect4-solo/pkg/uid"
)

const (
	ErrGameOver        domain.Error = "game is already over"
	ErrNotYourTurn     domain.Error = "not your turn"
	ErrAIThinking      domain.Error = "computer is still thinking"
	ErrSessionReset    domain.Error = "game was reset while the computer was thinking"
	ErrSessionNotFound domain.Error = "session not found"
)

// MoveSelector picks the computer's column. *bot.Engine implements it.
type MoveSelector interface {
	Choose(ctx context.Context, board *domain.Board, strategy bot.Strategy) bot.Choice
}

// GameSession is one human-vs-computer game. It owns the board: the search
// only ever sees a copy, so the session stays readable while the AI thinks.
type GameSession struct {
	GameID       string
	Strategy     bot.Strategy
	Game         *domain.Game
	CreatedAt    time.Time
	LastActivity time.Time
	FinishedAt   time.Time

	mu         sync.Mutex
	selector   MoveSelector
	rng        bot.Rand
	now        func() time.Time
	thinking   bool
	generation int
}

// Snapshot is a copy of the session state safe to hand to other goroutines.
type Snapshot struct {
	GameID      string         `json:"gameId"`
	Strategy    bot.Strategy   `json:"strategy"`
	Board       [][]int        `json:"board"`
	CurrentTurn domain.Mark    `json:"currentTurn"`
	Outcome     domain.Outcome `json:"outcome"`
	Moves       []domain.Move  `json:"moves"`
	Thinking    bool           `json:"thinking"`
	LegalMoves  []int          `json:"legalMoves"`
	// Heights is the number of disks in each column, left to right.
	Heights []int `json:"heights"`
}

// TurnResult is what one round of Play produced.
type TurnResult struct {
	Player  domain.Move    `json:"player"`
	AI      *domain.Move   `json:"ai,omitempty"`
	Outcome domain.Outcome `json:"outcome"`
}

func NewGameSession(strategy bot.Strategy, selector MoveSelector, rng bot.Rand, now func() time.Time) *GameSession {
	if now == nil {
		now = time.Now
	}
	created := now()
	return &GameSession{
		GameID:       uid.GenerateGameID(),
		Strategy:     strategy,
		Game:         domain.NewGame(),
		CreatedAt:    created,
		LastActivity: created,
		selector:     selector,
		rng:          rng,
		now:          now,
	}
}

// PlayerMove drops the human's disk.
func (gs *GameSession) PlayerMove(column int) (domain.Move, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Game.IsFinished() {
		return domain.Move{}, ErrGameOver
	}
	if gs.thinking || gs.Game.CurrentTurn != domain.Player {
		return domain.Move{}, ErrNotYourTurn
	}

	return gs.applyLocked(domain.Player, column)
}

// AIMove asks the selector for the computer's column and plays it. The search
// runs on its own goroutine and hands its answer back over a one-shot channel;
// if ctx ends first the wait is abandoned and the session is left as it was.
func (gs *GameSession) AIMove(ctx context.Context) (domain.Move, error) {
	gs.mu.Lock()
	if gs.Game.IsFinished() {
		gs.mu.Unlock()
		return domain.Move{}, ErrGameOver
	}
	if gs.thinking {
		gs.mu.Unlock()
		return domain.Move{}, ErrAIThinking
	}
	if gs.Game.CurrentTurn != domain.AI {
		gs.mu.Unlock()
		return domain.Move{}, ErrNotYourTurn
	}
	board := gs.Game.Board
	strategy := gs.Strategy
	generation := gs.generation
	gs.thinking = true
	gs.mu.Unlock()

	result := make(chan bot.Choice, 1)
	go func() {
		result <- gs.selector.Choose(ctx, &board, strategy)
	}()

	var choice bot.Choice
	select {
	case <-ctx.Done():
		gs.mu.Lock()
		if gs.generation == generation {
			gs.thinking = false
		}
		gs.mu.Unlock()
		return domain.Move{}, ctx.Err()
	case choice = <-result:
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.generation != generation {
		return domain.Move{}, ErrSessionReset
	}
	gs.thinking = false

	column := choice.Column
	if !gs.Game.Board.IsLegal(column) {
		valid := gs.Game.Board.LegalMoves()
		slog.Warn("[BOT] Strategy returned an illegal column, picking at random",
			"game_id", gs.GameID, "column", column, "strategy", string(strategy))
		if len(valid) == 0 {
			return domain.Move{}, domain.ErrNoLegalMoves
		}
		column = valid[gs.rng.IntN(len(valid))]
	}

	return gs.applyLocked(domain.AI, column)
}

// Play is one full round: the human's move and, unless that ended the game,
// the computer's reply.
func (gs *GameSession) Play(ctx context.Context, column int) (TurnResult, error) {
	playerMove, err := gs.PlayerMove(column)
	if err != nil {
		return TurnResult{}, err
	}

	res := TurnResult{Player: playerMove, Outcome: gs.Outcome()}
	if res.Outcome.IsTerminal() {
		return res, nil
	}

	aiMove, err := gs.AIMove(ctx)
	if err != nil {
		return res, err
	}
	res.AI = &aiMove
	res.Outcome = gs.Outcome()
	return res, nil
}

func (gs *GameSession) applyLocked(mark domain.Mark, column int) (domain.Move, error) {
	row, err := gs.Game.MakeMove(mark, column)
	if err != nil {
		return domain.Move{}, err
	}

	gs.LastActivity = gs.now()
	if gs.Game.IsFinished() {
		gs.FinishedAt = gs.LastActivity
		slog.Info("[SESSION] Game finished",
			"game_id", gs.GameID, "outcome", string(gs.Game.Outcome), "moves", gs.Game.MoveCount())
	}

	return domain.Move{Mark: mark, Column: column, Row: row}, nil
}

// Reset starts a fresh game with the same strategy. A search still in flight
// for the old game is discarded when it returns.
func (gs *GameSession) Reset() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.Game.Reset()
	gs.generation++
	gs.thinking = false
	gs.FinishedAt = time.Time{}
	gs.LastActivity = gs.now()
}

func (gs *GameSession) SetStrategy(strategy bot.Strategy) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.Strategy = strategy
	gs.LastActivity = gs.now()
}

func (gs *GameSession) Outcome() domain.Outcome {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Game.Outcome
}

func (gs *GameSession) Snapshot() Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	moves := make([]domain.Move, len(gs.Game.Moves))
	copy(moves, gs.Game.Moves)

	heights := make([]int, domain.Columns)
	for col := range heights {
		heights[col] = gs.Game.Board.Height(col)
	}

	return Snapshot{
		GameID:      gs.GameID,
		Strategy:    gs.Strategy,
		Board:       gs.Game.Board.Cells(),
		CurrentTurn: gs.Game.CurrentTurn,
		Outcome:     gs.Game.Outcome,
		Moves:       moves,
		Thinking:    gs.thinking,
		LegalMoves:  gs.Game.Board.LegalMoves(),
		Heights:     heights,
	}
}

// isStale reports whether the session should be dropped by the cleanup pass.
func (gs *GameSession) isStale(now time.Time, maxIdle time.Duration) bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.thinking {
		return false
	}
	return now.Sub(gs.LastActivity) > maxIdle
}
