package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	"github.com/iamasit07/connect4-solo/pkg/uid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("transport/http")

type GameHandler struct {
	Service *game.Service
}

func NewGameHandler(svc *game.Service) *GameHandler {
	return &GameHandler{Service: svc}
}

type analyzeRequest struct {
	Board    [][]int `json:"board" binding:"required"`
	Strategy string  `json:"strategy"`
}

type createSessionRequest struct {
	Strategy string `json:"strategy"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	Turn    game.TurnResult `json:"turn"`
	Session game.Snapshot   `json:"session"`
}

type aiMoveResponse struct {
	Move    domain.Move   `json:"move"`
	Session game.Snapshot `json:"session"`
}

func (h *GameHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze answers for a position the caller supplies; nothing is stored.
func (h *GameHandler) Analyze(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "http.Analyze")
	defer span.End()

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, span, http.StatusBadRequest, err)
		return
	}

	board, err := domain.BoardFromCells(req.Board)
	if err != nil {
		respondError(c, span, http.StatusBadRequest, err)
		return
	}

	strategy, err := parseStrategy(req.Strategy)
	if err != nil {
		respondError(c, span, http.StatusBadRequest, err)
		return
	}

	res, err := h.Service.Analyze(ctx, board, strategy)
	if err != nil {
		respondServiceError(c, span, err)
		return
	}

	span.SetAttributes(attribute.String("game.outcome", string(res.Outcome)))
	c.JSON(http.StatusOK, res)
}

func (h *GameHandler) CreateSession(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "http.CreateSession")
	defer span.End()

	var req createSessionRequest
	// an empty body is fine and means the default strategy
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, span, http.StatusBadRequest, err)
			return
		}
	}

	strategy, err := parseStrategy(req.Strategy)
	if err != nil {
		respondError(c, span, http.StatusBadRequest, err)
		return
	}

	session := h.Service.StartSession(strategy)
	span.SetAttributes(attribute.String("game.id", session.GameID))
	c.JSON(http.StatusCreated, session.Snapshot())
}

func (h *GameHandler) GetSession(c *gin.Context) {
	session, err := h.lookupSession(c)
	if err != nil {
		respondServiceError(c, trace.SpanFromContext(c.Request.Context()), err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// Move plays the human's column and, unless that ends the game, waits for
// the computer's reply before answering.
func (h *GameHandler) Move(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "http.Move", trace.WithAttributes(
		attribute.String("game.id", c.Param("id")),
	))
	defer span.End()

	session, err := h.lookupSession(c)
	if err != nil {
		respondServiceError(c, span, err)
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, span, http.StatusBadRequest, err)
		return
	}
	span.SetAttributes(attribute.Int("game.column", *req.Column))

	turn, err := session.Play(ctx, *req.Column)
	if err != nil {
		respondServiceError(c, span, err)
		return
	}

	span.SetAttributes(attribute.String("game.outcome", string(turn.Outcome)))
	c.JSON(http.StatusOK, moveResponse{Turn: turn, Session: session.Snapshot()})
}

// AIMove plays the computer's turn on its own. A move request whose client
// gave up during the search leaves the session waiting on the computer, and
// this is how it gets going again.
func (h *GameHandler) AIMove(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "http.AIMove", trace.WithAttributes(
		attribute.String("game.id", c.Param("id")),
	))
	defer span.End()

	session, err := h.lookupSession(c)
	if err != nil {
		respondServiceError(c, span, err)
		return
	}

	move, err := session.AIMove(ctx)
	if err != nil {
		respondServiceError(c, span, err)
		return
	}

	span.SetAttributes(attribute.Int("game.column", move.Column))
	c.JSON(http.StatusOK, aiMoveResponse{Move: move, Session: session.Snapshot()})
}

func (h *GameHandler) Reset(c *gin.Context) {
	session, err := h.lookupSession(c)
	if err != nil {
		respondServiceError(c, trace.SpanFromContext(c.Request.Context()), err)
		return
	}
	session.Reset()
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GameHandler) DeleteSession(c *gin.Context) {
	if err := h.Service.Sessions.RemoveSession(c.Param("id")); err != nil {
		respondServiceError(c, trace.SpanFromContext(c.Request.Context()), err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) lookupSession(c *gin.Context) (*game.GameSession, error) {
	id := c.Param("id")
	if !uid.IsGameID(id) {
		return nil, game.ErrSessionNotFound
	}
	return h.Service.Sessions.GetSession(id)
}

// parseStrategy leaves an empty name empty so the service default applies.
func parseStrategy(name string) (bot.Strategy, error) {
	if name == "" {
		return "", nil
	}
	return bot.ParseStrategy(name)
}
