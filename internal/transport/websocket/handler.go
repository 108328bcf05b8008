package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	"github.com/iamasit07/connect4-solo/pkg/uid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

var tracer = otel.Tracer("transport/websocket")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Handler runs one game per connection between the client and the computer.
type Handler struct {
	ConnManager *ConnectionManager
	GameService *game.Service
	Upgrader    websocket.Upgrader

	// parent of every connection context
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHandler(cm *ConnectionManager, gs *game.Service, allowedOrigins []string) *Handler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		ConnManager: cm,
		GameService: gs,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Shutdown abandons every search in flight and closes the open sockets.
// Register it with http.Server.RegisterOnShutdown.
func (h *Handler) Shutdown() {
	h.cancel()
	h.ConnManager.CloseAll()
}

// originChecker allows requests without an Origin (non-browser clients) and
// browsers on the allowed list.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		slog.Warn("[WS] Origin rejected", "origin", origin)
		return false
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("[WS] Upgrade error", "error", err)
		return
	}

	connID, err := uid.GenerateConnectionID()
	if err != nil {
		slog.Error("[WS] Could not assign connection ID", "error", err)
		conn.Close()
		return
	}

	h.handleConnection(connID, conn)
}

// connState is what one connection is playing. Only the read loop touches it.
type connState struct {
	connID  string
	session *game.GameSession
}

func (h *Handler) handleConnection(connID string, conn *websocket.Conn) {
	// searches in flight are abandoned when the client goes away
	ctx, cancel := context.WithCancel(h.ctx)

	h.ConnManager.AddConnection(connID, conn)
	state := &connState{connID: connID}
	slog.Info("[WS] Connection opened", "conn_id", connID)

	defer func() {
		cancel()
		if state.session != nil {
			_ = h.GameService.Sessions.RemoveSession(state.session.GameID)
		}
		h.ConnManager.RemoveConnection(connID)
		slog.Info("[WS] Connection closed", "conn_id", connID)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("[WS] Client disconnected unexpectedly", "conn_id", connID, "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("[WS] Invalid message format", "conn_id", connID, "error", err)
			h.send(connID, errorMessage("invalid message format"))
			continue
		}
		if err := validate.Struct(&msg); err != nil {
			h.send(connID, errorMessage("invalid message: "+err.Error()))
			continue
		}

		h.processMessage(ctx, state, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(ctx context.Context, state *connState, msg ClientMessage) {
	ctx, span := tracer.Start(ctx, "ws.HandleMessage", trace.WithAttributes(
		attribute.String("ws.conn_id", state.connID),
		attribute.String("ws.message_type", msg.Type),
	))
	defer span.End()

	var err error
	switch msg.Type {
	case MsgStart:
		err = h.handleStart(state, msg.Strategy)
	case MsgMove:
		err = h.handleMove(ctx, state, *msg.Column)
	case MsgReset:
		err = h.handleReset(state)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.send(state.connID, errorMessage(err.Error()))
	}
}

func (h *Handler) handleStart(state *connState, name string) error {
	var strategy bot.Strategy
	if name != "" {
		parsed, err := bot.ParseStrategy(name)
		if err != nil {
			return err
		}
		strategy = parsed
	}

	// a new start replaces whatever this connection was playing
	if state.session != nil {
		state.session.Reset()
		_ = h.GameService.Sessions.RemoveSession(state.session.GameID)
	}
	state.session = h.GameService.StartSession(strategy)

	h.sendStarted(state)
	return nil
}

func (h *Handler) handleReset(state *connState) error {
	if state.session == nil {
		return errNoGame
	}
	state.session.Reset()
	h.sendStarted(state)
	return nil
}

func (h *Handler) handleMove(ctx context.Context, state *connState, column int) error {
	session := state.session
	if session == nil {
		return errNoGame
	}

	move, err := session.PlayerMove(column)
	if err != nil {
		return err
	}
	snap := session.Snapshot()
	h.send(state.connID, moveMessage(move, snap.Board))

	if snap.Outcome.IsTerminal() {
		h.send(state.connID, ServerMessage{Type: MsgGameOver, GameID: snap.GameID, Outcome: snap.Outcome})
		return nil
	}

	h.send(state.connID, ServerMessage{Type: MsgAIThinking, GameID: snap.GameID})
	go h.playAI(ctx, state.connID, session)
	return nil
}

// playAI waits for the computer's move off the read loop so reset and
// disconnect stay responsive.
func (h *Handler) playAI(ctx context.Context, connID string, session *game.GameSession) {
	move, err := session.AIMove(ctx)
	switch {
	case errors.Is(err, game.ErrSessionReset), errors.Is(err, context.Canceled):
		return
	case err != nil:
		slog.Error("[WS] AI move failed", "conn_id", connID, "game_id", session.GameID, "error", err)
		h.send(connID, errorMessage(err.Error()))
		return
	}

	snap := session.Snapshot()
	h.send(connID, moveMessage(move, snap.Board))
	if snap.Outcome.IsTerminal() {
		h.send(connID, ServerMessage{Type: MsgGameOver, GameID: snap.GameID, Outcome: snap.Outcome})
	}
}

func (h *Handler) sendStarted(state *connState) {
	snap := state.session.Snapshot()
	h.send(state.connID, ServerMessage{
		Type:     MsgSessionStarted,
		GameID:   snap.GameID,
		Strategy: string(snap.Strategy),
		Board:    snap.Board,
	})
}

func (h *Handler) send(connID string, msg ServerMessage) {
	if err := h.ConnManager.SendMessage(connID, msg); err != nil {
		slog.Debug("[WS] Write failed", "conn_id", connID, "type", msg.Type, "error", err)
	}
}
