package uid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGameID(t *testing.T) {
	a, b := GenerateGameID(), GenerateGameID()
	assert.NotEqual(t, a, b)
	assert.True(t, IsGameID(a))
	assert.False(t, IsGameID("not-a-game"))
}

func TestGenerateConnectionID(t *testing.T) {
	id, err := GenerateConnectionID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "conn_"))
	assert.True(t, IsGameID(strings.TrimPrefix(id, "conn_")))
}
