package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ryanoneill/envision-sub004/pkg/ui/overlay"
)

func TestHandlerRecordsOverlayOps(t *testing.T) {
	h := &Handler[int]{}
	o := overlay.NewConfirm("t", "p", 1, 2)

	h.Apply(PushOverlay[int](o).And(PopOverlay[int]()).And(PopOverlay[int]()))

	pushes := h.TakePushes()
	require.Len(t, pushes, 1)
	assert.Equal(t, 2, h.TakePops())

	// Drained.
	assert.Empty(t, h.TakePushes())
	assert.Zero(t, h.TakePops())
}

func TestHandlerQuitIsSticky(t *testing.T) {
	h := &Handler[int]{}
	h.Apply(Quit[int]())
	h.TakePending()
	h.TakePushes()
	assert.True(t, h.ShouldQuit())

	h.Reset()
	assert.False(t, h.ShouldQuit())
}

func TestAsyncHandlerAccumulatesFutures(t *testing.T) {
	h := &AsyncHandler[int]{}
	h.Apply(PerformAsync(func(context.Context) (int, bool) { return 1, true }))
	h.Apply(PerformAsyncFallible(func(context.Context) (int, bool, error) { return 0, false, nil }))
	assert.True(t, h.HasPendingTasks())

	h.Reset()
	assert.False(t, h.HasPendingTasks())
}

func TestSpawnPendingDeliversMessagesAndErrors(t *testing.T) {
	h := &AsyncHandler[int]{}
	boom := errors.New("boom")
	h.Apply(Combine(
		PerformAsync(func(context.Context) (int, bool) { return 11, true }),
		PerformAsync(func(context.Context) (int, bool) { return 0, false }),
		PerformAsyncFallible(func(context.Context) (int, bool, error) { return 22, true, nil }),
		PerformAsyncFallible(func(context.Context) (int, bool, error) { return 0, false, boom }),
	))

	ctx := context.Background()
	g, gctx := errgroup.WithContext(ctx)
	msgCh := make(chan int, 8)
	errCh := make(chan error, 8)

	h.SpawnPending(gctx, g, msgCh, errCh)
	assert.False(t, h.HasPendingTasks())
	require.NoError(t, g.Wait())
	close(msgCh)
	close(errCh)

	var msgs []int
	for m := range msgCh {
		msgs = append(msgs, m)
	}
	assert.ElementsMatch(t, []int{11, 22}, msgs)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
}

func TestSpawnPendingDropsResultsOnCancel(t *testing.T) {
	h := &AsyncHandler[int]{}
	started := make(chan struct{})
	h.Apply(PerformAsync(func(ctx context.Context) (int, bool) {
		close(started)
		<-ctx.Done()
		return 99, true
	}))

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	msgCh := make(chan int) // unbuffered: a send would block forever
	errCh := make(chan error, 1)

	h.SpawnPending(gctx, g, msgCh, errCh)
	<-started
	cancel()

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("spawned future blocked on send after cancellation")
	}
	assert.Empty(t, errCh)
}
