package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameAlternatesTurns(t *testing.T) {
	g := NewGame()
	assert.Equal(t, Player, g.CurrentTurn)
	assert.Equal(t, Ongoing, g.Outcome)

	row, err := g.MakeMove(Player, 3)
	require.NoError(t, err)
	assert.Equal(t, Rows-1, row)
	assert.Equal(t, AI, g.CurrentTurn)

	_, err = g.MakeMove(Player, 3)
	assert.ErrorIs(t, err, ErrInvalidMove, "player cannot move twice")

	_, err = g.MakeMove(AI, 3)
	require.NoError(t, err)
	assert.Equal(t, Player, g.CurrentTurn)
	assert.Equal(t, 2, g.MoveCount())
	assert.Equal(t, Move{Mark: AI, Column: 3, Row: Rows - 2}, g.Moves[1])
}

func TestGameDetectsWinAndStops(t *testing.T) {
	g := NewGame()
	for i := 0; i < 3; i++ {
		_, err := g.MakeMove(Player, 0)
		require.NoError(t, err)
		_, err = g.MakeMove(AI, 1)
		require.NoError(t, err)
	}
	_, err := g.MakeMove(Player, 0)
	require.NoError(t, err)

	assert.Equal(t, PlayerWin, g.Outcome)
	assert.True(t, g.IsFinished())
	assert.Equal(t, Player, g.CurrentTurn, "turn does not pass after the game ends")

	_, err = g.MakeMove(Player, 2)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestGameRejectsFullColumn(t *testing.T) {
	g := NewGame()
	mark := Player
	for i := 0; i < Rows; i++ {
		_, err := g.MakeMove(mark, 2)
		require.NoError(t, err)
		mark = mark.Opponent()
	}

	_, err := g.MakeMove(Player, 2)
	assert.ErrorIs(t, err, ErrColumnFull)
	assert.Equal(t, Player, g.CurrentTurn)
	assert.Equal(t, Rows, g.MoveCount())
}

func TestGameReset(t *testing.T) {
	g := NewGame()
	_, _ = g.MakeMove(Player, 0)
	g.Reset()

	assert.Equal(t, NewBoard(), g.Board)
	assert.Equal(t, Player, g.CurrentTurn)
	assert.Equal(t, Ongoing, g.Outcome)
	assert.Zero(t, g.MoveCount())
}
