package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiter(t *testing.T) {
	t.Run("burst allowed then limited", func(t *testing.T) {
		l := NewLimiter(2, time.Minute, 2)
		defer l.Close()

		require.True(t, l.Allow("client").Allowed)
		require.True(t, l.Allow("client").Allowed)

		res := l.Allow("client")
		require.False(t, res.Allowed)
		require.GreaterOrEqual(t, res.RetryAfter, time.Second)
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := NewLimiter(1, time.Minute, 1)
		defer l.Close()

		require.True(t, l.Allow("a").Allowed)
		require.False(t, l.Allow("a").Allowed)
		require.True(t, l.Allow("b").Allowed)
	})

	t.Run("retry after has a one second floor", func(t *testing.T) {
		l := NewLimiter(600, time.Minute, 1)
		defer l.Close()

		require.True(t, l.Allow("client").Allowed)
		res := l.Allow("client")
		require.False(t, res.Allowed)
		require.Equal(t, time.Second, res.RetryAfter)
	})
}
