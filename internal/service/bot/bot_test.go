package bot

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// open right end at column 3
var aiThreeInRow = domain.MustParseBoard(
	".......",
	".......",
	".......",
	".......",
	"XX.....",
	"OOO.XX.",
)

var playerThreeInRow = domain.MustParseBoard(
	".......",
	".......",
	".......",
	".......",
	".......",
	"XXX.OO.",
)

var playerThreeVertical = domain.MustParseBoard(
	".......",
	".......",
	".......",
	"....X..",
	"....X.O",
	"....XOO",
)

// only column 6 still has room
var oneColumnLeft = domain.MustParseBoard(
	"XOXOXO.",
	"XOXOXOX",
	"OXOXOXO",
	"OXOXOXO",
	"XOXOXOX",
	"XOXOXOX",
)

var fullDraw = domain.MustParseBoard(
	"XOXOXOX",
	"XOXOXOX",
	"OXOXOXO",
	"OXOXOXO",
	"XOXOXOX",
	"XOXOXOX",
)

// fixedRand always returns the same index, clamped to the range asked for.
type fixedRand int

func (f fixedRand) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func TestEvaluate(t *testing.T) {
	empty := domain.NewBoard()
	assert.Equal(t, SCORE_NEUTRAL, Evaluate(&empty))
	assert.Equal(t, SCORE_NEUTRAL, Evaluate(&aiThreeInRow), "three in a row earns nothing")

	aiWin := aiThreeInRow
	require.NoError(t, domain.ApplyMove(&aiWin, 3, domain.AI))
	assert.Equal(t, SCORE_AI_WIN, Evaluate(&aiWin))

	playerWin := playerThreeInRow
	require.NoError(t, domain.ApplyMove(&playerWin, 3, domain.Player))
	assert.Equal(t, SCORE_PLAYER_WIN, Evaluate(&playerWin))
}

func TestMinimaxSearchTerminalAndHorizon(t *testing.T) {
	m := NewMinimax(MINIMAX_DEPTH)

	aiWin := aiThreeInRow
	require.NoError(t, domain.ApplyMove(&aiWin, 3, domain.AI))
	assert.Equal(t, SCORE_AI_WIN, m.Search(&aiWin, 4, false))

	b := playerThreeInRow
	assert.Equal(t, SCORE_NEUTRAL, m.Search(&b, 0, true), "horizon returns the static score")
	assert.Equal(t, SCORE_PLAYER_WIN, m.Search(&b, 1, false), "player to move wins at once")
	assert.Equal(t, SCORE_NEUTRAL, Evaluate(&b))
	assert.Equal(t, playerThreeInRow, b, "search restores the board")
}

func TestMinimaxChoosesImmediateWin(t *testing.T) {
	for _, depth := range []int{1, 2, MINIMAX_DEPTH} {
		b := aiThreeInRow
		choice := NewMinimax(depth).ChooseMove(&b, fixedRand(0))

		assert.Equal(t, 3, choice.Column, "depth %d", depth)
		assert.Equal(t, SCORE_AI_WIN, choice.Score)
		assert.Equal(t, ReasonSearch, choice.Reason)
		assert.Equal(t, aiThreeInRow, b, "board restored at depth %d", depth)
	}
}

func TestMinimaxBlocksImmediateThreat(t *testing.T) {
	tests := []struct {
		name  string
		board domain.Board
		want  int
	}{
		{name: "horizontal", board: playerThreeInRow, want: 3},
		{name: "vertical", board: playerThreeVertical, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.board
			choice := NewMinimax(1).ChooseMove(&b, fixedRand(0))
			assert.Equal(t, tt.want, choice.Column)
			assert.Equal(t, SCORE_NEUTRAL, choice.Score)
			assert.Equal(t, tt.board, b)
		})
	}
}

func TestMinimaxPrefersLowestColumnOnTies(t *testing.T) {
	b := domain.NewBoard()
	choice := NewMinimax(2).ChooseMove(&b, fixedRand(0))
	assert.Equal(t, 0, choice.Column, "every column scores zero on an empty board")
	assert.Equal(t, SCORE_NEUTRAL, choice.Score)
	assert.Positive(t, choice.Nodes)
}

func TestMinimaxFallbackOnFullBoard(t *testing.T) {
	b := fullDraw
	choice := NewMinimax(MINIMAX_DEPTH).ChooseMove(&b, fixedRand(0))
	assert.Equal(t, 0, choice.Column)
	assert.Equal(t, ReasonFallback, choice.Reason)
}

func TestHeuristicChooseMove(t *testing.T) {
	tests := []struct {
		name       string
		board      domain.Board
		wantColumn int
		wantReason Reason
	}{
		{name: "takes the win", board: aiThreeInRow, wantColumn: 3, wantReason: ReasonWin},
		{name: "blocks horizontal threat", board: playerThreeInRow, wantColumn: 3, wantReason: ReasonBlock},
		{name: "blocks vertical threat", board: playerThreeVertical, wantColumn: 4, wantReason: ReasonBlock},
		{
			name: "win beats block",
			board: domain.MustParseBoard(
				".......",
				".......",
				".......",
				"......O",
				"......O",
				"XXX...O",
			),
			wantColumn: 6,
			wantReason: ReasonWin,
		},
		{
			name: "first threat in column order",
			board: domain.MustParseBoard(
				".......",
				".......",
				".......",
				"......X",
				"......X",
				".XXX.OX",
			),
			wantColumn: 0,
			wantReason: ReasonBlock,
		},
		{name: "full board falls back to zero", board: fullDraw, wantColumn: 0, wantReason: ReasonRandom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.board
			choice := Heuristic{}.ChooseMove(&b, fixedRand(0))
			assert.Equal(t, tt.wantColumn, choice.Column)
			assert.Equal(t, tt.wantReason, choice.Reason)
			assert.Equal(t, tt.board, b, "board restored")
		})
	}
}

func TestHeuristicRandomIsLegal(t *testing.T) {
	b := domain.MustParseBoard(
		"X.....X",
		"O.....O",
		"X.....O",
		"O.....X",
		"X.....O",
		"O.....X",
	)
	rng := rand.New(rand.NewPCG(1, 2))
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		choice := Heuristic{}.ChooseMove(&b, rng)
		require.Equal(t, ReasonRandom, choice.Reason)
		require.True(t, b.IsLegal(choice.Column), "column %d is full", choice.Column)
		seen[choice.Column] = true
	}
	assert.Len(t, seen, 5, "all five open columns get picked")
}

func TestSelectMoveOneLegalColumn(t *testing.T) {
	e := NewEngine(WithRand(rand.New(rand.NewPCG(7, 7))))
	for _, s := range []Strategy{StrategyMinimax, StrategyHeuristic} {
		b := oneColumnLeft
		assert.Equal(t, 6, e.SelectMove(context.Background(), &b, s), "strategy %s", s)
		assert.Equal(t, oneColumnLeft, b)
	}
}

func TestSelectAIMove(t *testing.T) {
	b := aiThreeInRow
	assert.Equal(t, 3, SelectAIMove(&b, StrategyMinimax))

	b = playerThreeInRow
	assert.Equal(t, 3, SelectAIMove(&b, StrategyHeuristic))
}

func TestSelectMoveUnknownStrategyUsesMinimax(t *testing.T) {
	e := NewEngine(WithDepth(1))
	b := playerThreeInRow
	choice := e.Choose(context.Background(), &b, Strategy("nope"))
	assert.Equal(t, 3, choice.Column)
	assert.Equal(t, ReasonSearch, choice.Reason)
}

func TestEngineNotifiesObservers(t *testing.T) {
	var reports []MoveReport
	e := NewEngine(
		WithDepth(2),
		WithObserver(ObserverFunc(func(_ context.Context, r MoveReport) {
			reports = append(reports, r)
		})),
	)

	b := aiThreeInRow
	e.SelectMove(context.Background(), &b, StrategyMinimax)
	e.SelectMove(context.Background(), &b, StrategyHeuristic)

	require.Len(t, reports, 2)
	assert.Equal(t, StrategyMinimax, reports[0].Strategy)
	assert.Equal(t, 3, reports[0].Choice.Column)
	assert.Equal(t, 7, reports[0].Disks)
	assert.Positive(t, reports[0].Choice.Nodes)
	assert.Equal(t, StrategyHeuristic, reports[1].Strategy)
	assert.Equal(t, ReasonWin, reports[1].Choice.Reason)
	assert.Equal(t, 2, e.Depth())
}

func TestParseStrategy(t *testing.T) {
	tests := map[string]Strategy{
		"minimax":   StrategyMinimax,
		"Minimax":   StrategyMinimax,
		"hard":      StrategyMinimax,
		"heuristic": StrategyHeuristic,
		" easy ":    StrategyHeuristic,
		"bfs":       StrategyHeuristic,
	}
	for in, want := range tests {
		got, err := ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStrategy("alphabeta")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
