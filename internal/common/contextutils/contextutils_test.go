package contextutils

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCancellation_ActiveContext(t *testing.T) {
	err := CheckCancellation(context.Background(), zerolog.Nop(), "hash cache write")

	assert.NoError(t, err)
}

func TestCheckCancellation_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CheckCancellation(ctx, zerolog.Nop(), "diff workflow")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "diff workflow")
}
