package websocket

import (
	"github.com/iamasit07/connect4-solo/internal/domain"
)

// client -> server
const (
	MsgStart = "start"
	MsgMove  = "move"
	MsgReset = "reset"
)

// server -> client
const (
	MsgSessionStarted = "session_started"
	MsgMoveMade       = "move_made"
	MsgAIThinking     = "ai_thinking"
	MsgGameOver       = "game_over"
	MsgError          = "error"
)

const errNoGame domain.Error = "no game in progress, send start first"

type ClientMessage struct {
	Type     string `json:"type" validate:"required,oneof=start move reset"`
	Strategy string `json:"strategy,omitempty"`
	Column   *int   `json:"column,omitempty" validate:"required_if=Type move"`
}

type ServerMessage struct {
	Type     string         `json:"type"`
	GameID   string         `json:"gameId,omitempty"`
	Strategy string         `json:"strategy,omitempty"`
	Player   domain.Mark    `json:"player,omitempty"`
	Column   *int           `json:"column,omitempty"`
	Row      *int           `json:"row,omitempty"`
	Board    [][]int        `json:"board,omitempty"`
	Outcome  domain.Outcome `json:"outcome,omitempty"`
	Message  string         `json:"message,omitempty"`
}

func moveMessage(move domain.Move, board [][]int) ServerMessage {
	column, row := move.Column, move.Row
	return ServerMessage{
		Type:   MsgMoveMade,
		Player: move.Mark,
		Column: &column,
		Row:    &row,
		Board:  board,
	}
}

func errorMessage(message string) ServerMessage {
	return ServerMessage{Type: MsgError, Message: message}
}
