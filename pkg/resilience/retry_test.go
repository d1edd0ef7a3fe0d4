package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithResult(t *testing.T) {
	config := &RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, BackoffFactor: 2}

	t.Run("succeeds after failures", func(t *testing.T) {
		attempts := 0
		got, err := RetryWithResult(context.Background(), config, func(context.Context) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("not yet")
			}
			return "connected", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "connected", got)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up", func(t *testing.T) {
		_, err := RetryWithResult(context.Background(), config, func(context.Context) (int, error) {
			return 0, errors.New("refused")
		})
		assert.ErrorContains(t, err, "gave up after 3 attempts: refused")
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := RetryWithResult(ctx, config, func(context.Context) (int, error) {
			return 1, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDefaultRetryConfig_CapsDelay(t *testing.T) {
	config := DefaultRetryConfig()

	total := time.Duration(0)
	delay := config.InitialDelay
	for i := 1; i < config.MaxAttempts; i++ {
		total += delay
		delay = min(time.Duration(float64(delay)*config.BackoffFactor), config.MaxDelay)
	}
	assert.LessOrEqual(t, total, 40*time.Second)
	assert.Equal(t, config.MaxDelay, delay)
}
