package game

import (
	"log/slog"
	"sync"
	"time"

	"github.com/iamasit07/connect4-solo/internal/service/bot"
)

// SessionManager keeps the games in progress. Nothing outlives the process.
type SessionManager struct {
	sessions map[string]*GameSession
	mu       sync.RWMutex
	selector MoveSelector
	rng      bot.Rand
	now      func() time.Time
}

type ManagerOption func(*SessionManager)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(sm *SessionManager) {
		sm.now = now
	}
}

// WithRand sets the random source used when a strategy returns a full column.
func WithRand(r bot.Rand) ManagerOption {
	return func(sm *SessionManager) {
		sm.rng = r
	}
}

func NewSessionManager(selector MoveSelector, opts ...ManagerOption) *SessionManager {
	sm := &SessionManager{
		sessions: make(map[string]*GameSession),
		selector: selector,
		rng:      defaultRand{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

func (sm *SessionManager) CreateSession(strategy bot.Strategy) *GameSession {
	session := NewGameSession(strategy, sm.selector, sm.rng, sm.now)

	sm.mu.Lock()
	sm.sessions[session.GameID] = session
	sm.mu.Unlock()

	slog.Info("[SESSION] Created session", "game_id", session.GameID, "strategy", string(strategy))
	return session
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[gameID]; !exists {
		return ErrSessionNotFound
	}
	delete(sm.sessions, gameID)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupIdleSessions drops sessions untouched for longer than maxIdle and
// returns how many were removed. Sessions with a search in flight are kept.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := sm.now()
	count := 0
	for gameID, session := range sm.sessions {
		if session.isStale(now, maxIdle) {
			delete(sm.sessions, gameID)
			count++
		}
	}

	if count > 0 {
		slog.Info("[SESSION] Memory cleanup: removed stale game sessions", "count", count)
	}
	return count
}
