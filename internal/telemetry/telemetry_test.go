package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitOtelWithoutEndpoint(t *testing.T) {
	shutdown, err := InitOtel(context.Background(), Options{ServiceName: "connect4"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestShutdownStackUnwindsEverything(t *testing.T) {
	var order []string
	errConn := errors.New("conn busy")
	errTrace := errors.New("trace flush")

	var s shutdownStack
	s.push(func(context.Context) error { order = append(order, "conn"); return errConn })
	s.push(func(context.Context) error { order = append(order, "traces"); return errTrace })
	s.push(func(context.Context) error { order = append(order, "metrics"); return nil })

	err := s.run(context.Background())
	assert.Equal(t, []string{"metrics", "traces", "conn"}, order, "released in reverse")
	assert.ErrorIs(t, err, errConn)
	assert.ErrorIs(t, err, errTrace)

	assert.NoError(t, s.run(context.Background()), "second run has nothing left")
	assert.Len(t, order, 3)
}

func TestShutdownStackEmpty(t *testing.T) {
	var s shutdownStack
	assert.NoError(t, s.run(context.Background()))
}
