package uid

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateConnectionID returns an ID for a websocket connection
func GenerateConnectionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate connection ID: %w", err)
	}
	return "conn_" + id.String(), nil
}
