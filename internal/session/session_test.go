package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

func redisStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, logging.New("error"))
}

func TestSelectAndSelected(t *testing.T) {
	for name, s := range map[string]*Store{
		"redis":  redisStore(t),
		"memory": NewStore(nil, logging.New("error")),
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := s.Selected(ctx, "desk-1")
			require.NoError(t, err)
			assert.Empty(t, got, "idle session has no selection")

			require.NoError(t, s.Select(ctx, "desk-1", "Plasma pen"))
			got, err = s.Selected(ctx, "desk-1")
			require.NoError(t, err)
			assert.Equal(t, "Plasma pen", got)

			// Re-selecting replaces; at most one selection per session.
			require.NoError(t, s.Select(ctx, "desk-1", "Criolipólisis"))
			got, err = s.Selected(ctx, "desk-1")
			require.NoError(t, err)
			assert.Equal(t, "Criolipólisis", got)

			require.NoError(t, s.Clear(ctx, "desk-1"))
			got, err = s.Selected(ctx, "desk-1")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestSelectRejectsUnknownService(t *testing.T) {
	s := NewStore(nil, logging.New("error"))
	err := s.Select(context.Background(), "desk-1", "Manicura")
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestClearIdleSession(t *testing.T) {
	s := redisStore(t)
	assert.NoError(t, s.Clear(context.Background(), "desk-9"))
}

func TestSessionsAreIndependent(t *testing.T) {
	s := redisStore(t)
	ctx := context.Background()
	require.NoError(t, s.Select(ctx, "desk-1", "Plasma pen"))

	got, err := s.Selected(ctx, "desk-2")
	require.NoError(t, err)
	assert.Empty(t, got)
}
