package game

import (
	"context"
	"math/rand/v2"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
)

// Service is the entry point for game logic (facade)
type Service struct {
	Sessions        *SessionManager
	Selector        MoveSelector
	DefaultStrategy bot.Strategy
}

func NewService(sessions *SessionManager, selector MoveSelector, defaultStrategy bot.Strategy) *Service {
	return &Service{
		Sessions:        sessions,
		Selector:        selector,
		DefaultStrategy: defaultStrategy,
	}
}

// Analysis is the answer for a free-standing position.
type Analysis struct {
	Outcome    domain.Outcome `json:"outcome"`
	Column     *int           `json:"column,omitempty"`
	Reason     bot.Reason     `json:"reason,omitempty"`
	Score      int            `json:"score"`
	LegalMoves []int          `json:"legalMoves"`
}

// Analyze validates a position supplied from outside and, when the game is
// still open, picks the column the computer would play.
func (s *Service) Analyze(ctx context.Context, board domain.Board, strategy bot.Strategy) (Analysis, error) {
	outcome, err := domain.CheckPosition(&board)
	if err != nil {
		return Analysis{}, err
	}

	res := Analysis{Outcome: outcome, LegalMoves: board.LegalMoves()}
	if outcome.IsTerminal() {
		return res, nil
	}
	if strategy == "" {
		strategy = s.DefaultStrategy
	}

	choice := s.Selector.Choose(ctx, &board, strategy)
	res.Column = &choice.Column
	res.Reason = choice.Reason
	res.Score = choice.Score
	return res, nil
}

// StartSession opens a new game, falling back to the configured strategy.
func (s *Service) StartSession(strategy bot.Strategy) *GameSession {
	if strategy == "" {
		strategy = s.DefaultStrategy
	}
	return s.Sessions.CreateSession(strategy)
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int {
	return rand.IntN(n)
}
