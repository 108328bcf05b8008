package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// statusFor maps service and domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrAIThinking),
		errors.Is(err, game.ErrSessionReset):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidMove),
		errors.Is(err, domain.ErrInvalidMark),
		errors.Is(err, domain.ErrFloatingDisk),
		errors.Is(err, domain.ErrDoubleWin),
		errors.Is(err, bot.ErrUnknownStrategy):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(c *gin.Context, span trace.Span, err error) {
	respondError(c, span, statusFor(err), err)
}

func respondError(c *gin.Context, span trace.Span, status int, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if status >= http.StatusInternalServerError {
		slog.Error("[HTTP] Request failed", "path", c.FullPath(), "status", status, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
