package supersede

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewerGenerationCancelsOlder(t *testing.T) {
	g := NewGroup()

	oldCtx, oldTicket := g.Start(context.Background(), "sess:products")
	newCtx, newTicket := g.Start(context.Background(), "sess:products")

	assert.ErrorIs(t, oldCtx.Err(), context.Canceled)
	assert.NoError(t, newCtx.Err())
	assert.False(t, oldTicket.Current())
	assert.True(t, newTicket.Current())

	assert.ErrorIs(t, oldTicket.Done(), ErrSuperseded)
	assert.Equal(t, 1, g.Pending(), "older completion must not clear the newer generation")

	assert.NoError(t, newTicket.Done())
	assert.Equal(t, 0, g.Pending())
}

func TestKeysAreIndependent(t *testing.T) {
	g := NewGroup()

	ctxA, a := g.Start(context.Background(), "sess:users")
	_, b := g.Start(context.Background(), "sess:faqs")

	assert.NoError(t, ctxA.Err())
	assert.NoError(t, a.Done())
	assert.NoError(t, b.Done())
}

func TestDoDiscardsSupersededResult(t *testing.T) {
	g := NewGroup()

	got, err := Do(context.Background(), g, "k", func(ctx context.Context) (string, error) {
		// a newer search arrives while this one is in flight
		_, newer := g.Start(context.Background(), "k")
		defer newer.Done()
		return "stale rows", nil
	})
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Empty(t, got)
}

func TestDoReturnsLatestResult(t *testing.T) {
	g := NewGroup()

	got, err := Do(context.Background(), g, "k", func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 0, g.Pending())
}
