package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/iamasit07/connect4-solo/internal/domain"
)

// Strategy names one of the computer opponents.
type Strategy string

const (
	StrategyMinimax   Strategy = "minimax"
	StrategyHeuristic Strategy = "heuristic"
)

const ErrUnknownStrategy domain.Error = "unknown strategy"

// ParseStrategy accepts the strategy names used by clients. "hard" and
// "easy" map onto the two opponents, and "bfs" is kept for the easy mode.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimax", "hard":
		return StrategyMinimax, nil
	case "heuristic", "easy", "bfs":
		return StrategyHeuristic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Reason tells why a column was picked.
type Reason string

const (
	ReasonSearch   Reason = "search"
	ReasonWin      Reason = "win"
	ReasonBlock    Reason = "block"
	ReasonRandom   Reason = "random"
	ReasonFallback Reason = "fallback"
)

// Choice is the column a strategy settled on.
type Choice struct {
	Column int
	Score  int
	Reason Reason
	// Nodes counts positions visited by the search; zero for the heuristic.
	Nodes int
}

// Rand is the random source used for fallback picks. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Chooser is implemented by Minimax and Heuristic. ChooseMove may mutate the
// board while working but must hand it back unchanged.
type Chooser interface {
	Name() Strategy
	ChooseMove(board *domain.Board, rng Rand) Choice
}

// MoveReport describes one completed move selection.
type MoveReport struct {
	Strategy Strategy
	Choice   Choice
	Disks    int
	Duration time.Duration
}

// Observer is notified after every move selection.
type Observer interface {
	MoveSelected(ctx context.Context, report MoveReport)
}

type ObserverFunc func(ctx context.Context, report MoveReport)

func (f ObserverFunc) MoveSelected(ctx context.Context, report MoveReport) {
	f(ctx, report)
}

type Option func(*Engine)

// WithDepth sets the minimax depth below each root move.
func WithDepth(depth int) Option {
	return func(e *Engine) {
		e.minimax = NewMinimax(depth)
	}
}

// WithRand replaces the random source. The engine serialises access to it.
func WithRand(r Rand) Option {
	return func(e *Engine) {
		e.rng = &lockedRand{r: r}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// Engine picks the computer's column. It is safe for concurrent use: every
// call searches its own copy of the board.
type Engine struct {
	minimax   Minimax
	heuristic Heuristic
	rng       Rand
	observers []Observer
	logger    *slog.Logger
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		minimax: NewMinimax(MINIMAX_DEPTH),
		rng:     globalRand{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

func (e *Engine) Depth() int {
	return e.minimax.Depth
}

func (e *Engine) chooser(strategy Strategy) Chooser {
	switch strategy {
	case StrategyHeuristic:
		return e.heuristic
	case StrategyMinimax:
		return e.minimax
	default:
		e.log().Warn("[BOT] unknown strategy, using minimax", "strategy", string(strategy))
		return e.minimax
	}
}

// SelectMove returns the column the computer plays on board. The caller's
// board is never modified. On a full board the result is 0.
func (e *Engine) SelectMove(ctx context.Context, board *domain.Board, strategy Strategy) int {
	return e.Choose(ctx, board, strategy).Column
}

// Choose is SelectMove with the full Choice.
func (e *Engine) Choose(ctx context.Context, board *domain.Board, strategy Strategy) Choice {
	work := *board
	c := e.chooser(strategy)

	start := time.Now()
	choice := c.ChooseMove(&work, e.rng)
	elapsed := time.Since(start)

	report := MoveReport{
		Strategy: c.Name(),
		Choice:   choice,
		Disks:    board.DiskCount(),
		Duration: elapsed,
	}

	e.log().InfoContext(ctx, "[BOT] move selected",
		"strategy", string(report.Strategy),
		"column", choice.Column,
		"reason", string(choice.Reason),
		"score", choice.Score,
		"nodes", choice.Nodes,
		"duration", elapsed,
	)

	for _, o := range e.observers {
		o.MoveSelected(ctx, report)
	}

	return choice
}

var defaultEngine = NewEngine()

// SelectAIMove uses a shared engine with the default depth.
func SelectAIMove(board *domain.Board, strategy Strategy) int {
	return defaultEngine.SelectMove(context.Background(), board, strategy)
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
