package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineSums(t *testing.T) {
	for _, tc := range []struct {
		a, b, want int
	}{
		{3, 2, 5},
		{5, 7, 12},
		{-1, 1, 0},
	} {
		result, err := NewCombine(tc.a, tc.b, 0).Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tc.want, result)
	}
}

func TestCombineWaitsOutDelay(t *testing.T) {
	start := time.Now()
	result, err := NewCombine(1, 2, 20*time.Millisecond).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestCombineHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCombine(1, 2, time.Hour).Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
