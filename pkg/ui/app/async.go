package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AsyncHandler extends Handler with ownership of pending futures. The
// async runtime applies commands through it, then calls SpawnPending
// once per tick to schedule whatever accumulated.
type AsyncHandler[M any] struct {
	Handler[M]

	futures   []Future[M]
	fallibles []FallibleFuture[M]
}

// Apply runs cmd's synchronous actions and retains its async actions
// for the next SpawnPending.
func (h *AsyncHandler[M]) Apply(cmd Command[M]) {
	futures, fallibles := h.Handler.Apply(cmd)
	h.futures = append(h.futures, futures...)
	h.fallibles = append(h.fallibles, fallibles...)
}

// HasPendingTasks reports whether unscheduled futures remain.
func (h *AsyncHandler[M]) HasPendingTasks() bool {
	return len(h.futures) > 0 || len(h.fallibles) > 0
}

// SpawnPending consumes the pending future lists and schedules each on
// g. A future completing with a message sends it on msgCh; fallible
// futures send failures on errCh. Sends race runtime teardown, so a
// cancelled ctx drops the result instead of blocking.
func (h *AsyncHandler[M]) SpawnPending(ctx context.Context, g *errgroup.Group, msgCh chan<- M, errCh chan<- error) {
	futures := h.futures
	fallibles := h.fallibles
	h.futures = nil
	h.fallibles = nil

	for _, f := range futures {
		f := f
		g.Go(func() error {
			m, ok := f(ctx)
			if !ok {
				return nil
			}
			select {
			case msgCh <- m:
			case <-ctx.Done():
			}
			return nil
		})
	}

	for _, f := range fallibles {
		f := f
		g.Go(func() error {
			m, ok, err := f(ctx)
			if err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
				}
				return nil
			}
			if !ok {
				return nil
			}
			select {
			case msgCh <- m:
			case <-ctx.Done():
			}
			return nil
		})
	}
}

// Reset clears sync outputs and drops unscheduled futures.
func (h *AsyncHandler[M]) Reset() {
	h.Handler.Reset()
	h.futures = nil
	h.fallibles = nil
}
