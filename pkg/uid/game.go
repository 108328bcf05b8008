package uid

import (
	"github.com/google/uuid"
)

// GenerateGameID returns a random UUID identifying a game session
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether id looks like something GenerateGameID produced.
func IsGameID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
