package app

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
)

// Subscription is a long-lived message source. Run blocks, sending
// messages on out until the source is exhausted or ctx is cancelled,
// then returns. Implementations must select on ctx for every send so
// cancellation never strands them; after cancellation no further
// messages may be emitted.
type Subscription[M any] interface {
	Run(ctx context.Context, out chan<- M)
}

// SubscriptionFunc adapts a function to the Subscription interface.
type SubscriptionFunc[M any] func(ctx context.Context, out chan<- M)

func (f SubscriptionFunc[M]) Run(ctx context.Context, out chan<- M) {
	f(ctx, out)
}

// Stream pulls messages from next until it returns false.
func Stream[M any](next func(ctx context.Context) (M, bool)) Subscription[M] {
	return SubscriptionFunc[M](func(ctx context.Context, out chan<- M) {
		for {
			if ctx.Err() != nil {
				return
			}
			m, ok := next(ctx)
			if !ok {
				return
			}
			select {
			case out <- m:
			case <-ctx.Done():
				return
			}
		}
	})
}

// Values emits the given items in order, then completes.
func Values[M any](items ...M) Subscription[M] {
	i := 0
	return Stream(func(context.Context) (M, bool) {
		if i >= len(items) {
			var zero M
			return zero, false
		}
		m := items[i]
		i++
		return m, true
	})
}

// Tick emits f() every period until cancelled.
func Tick[M any](period time.Duration, f func() M) Subscription[M] {
	return SubscriptionFunc[M](func(ctx context.Context, out chan<- M) {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case out <- f():
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})
}

// After emits f() once after d, then completes.
func After[M any](d time.Duration, f func() M) Subscription[M] {
	return SubscriptionFunc[M](func(ctx context.Context, out chan<- M) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			select {
			case out <- f():
			case <-ctx.Done():
			}
		case <-ctx.Done():
		}
	})
}

// TerminalEvents wraps a raw event source; h translates each event,
// returning false to skip it. The subscription completes when the
// source fails or ctx is cancelled.
func TerminalEvents[M any](src backend.EventSource, h func(terminal.Event) (M, bool)) Subscription[M] {
	return SubscriptionFunc[M](func(ctx context.Context, out chan<- M) {
		for {
			ev, err := src.NextEvent(ctx)
			if err != nil {
				return
			}
			m, ok := h(ev)
			if !ok {
				continue
			}
			select {
			case out <- m:
			case <-ctx.Done():
				return
			}
		}
	})
}

// Channel forwards messages from ch until it closes.
func Channel[M any](ch <-chan M) Subscription[M] {
	return SubscriptionFunc[M](func(ctx context.Context, out chan<- M) {
		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- m:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})
}

// Watch emits a message for each filesystem event under path; h
// returns false to skip an event. Watcher errors end the subscription.
func Watch[M any](path string, h func(fsnotify.Event) (M, bool)) Subscription[M] {
	return SubscriptionFunc[M](func(ctx context.Context, out chan<- M) {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return
		}
		defer watcher.Close()
		if err := watcher.Add(path); err != nil {
			return
		}
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				m, keep := h(ev)
				if !keep {
					continue
				}
				select {
				case out <- m:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})
}

// pump runs inner on its own goroutine, exposing its output as a
// receive channel that closes when inner completes.
func pump[M any](ctx context.Context, inner Subscription[M]) (<-chan M, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan M)
	go func() {
		defer close(ch)
		inner.Run(ctx, ch)
	}()
	return ch, cancel
}

// Filter yields only messages matching p.
func Filter[M any](inner Subscription[M], p func(M) bool) Subscription[M] {
	return SubscriptionFunc[M](func(ctx context.Context, out chan<- M) {
		ch, cancel := pump(ctx, inner)
		defer cancel()
		for m := range ch {
			if !p(m) {
				continue
			}
			select {
			case out <- m:
			case <-ctx.Done():
				return
			}
		}
	})
}

// Take yields at most n messages, then completes and cancels inner.
// n <= 0 yields nothing.
func Take[M any](inner Subscription[M], n int) Subscription[M] {
	return SubscriptionFunc[M](func(ctx context.Context, out chan<- M) {
		if n <= 0 {
			return
		}
		ch, cancel := pump(ctx, inner)
		defer cancel()
		sent := 0
		for m := range ch {
			select {
			case out <- m:
			case <-ctx.Done():
				return
			}
			sent++
			if sent >= n {
				cancel()
				for range ch {
				}
				return
			}
		}
	})
}

// MapSubscription applies f to every message from inner.
func MapSubscription[A, B any](inner Subscription[A], f func(A) B) Subscription[B] {
	return SubscriptionFunc[B](func(ctx context.Context, out chan<- B) {
		ch, cancel := pump(ctx, inner)
		defer cancel()
		for m := range ch {
			select {
			case out <- f(m):
			case <-ctx.Done():
				return
			}
		}
	})
}

// Debounce delays each message by d, emitting it only when no newer
// message arrived in that window. A message still pending when inner
// completes is flushed.
func Debounce[M any](inner Subscription[M], d time.Duration) Subscription[M] {
	return SubscriptionFunc[M](func(ctx context.Context, out chan<- M) {
		ch, cancel := pump(ctx, inner)
		defer cancel()

		var pending M
		hasPending := false
		timer := time.NewTimer(d)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					if hasPending {
						select {
						case out <- pending:
						case <-ctx.Done():
						}
					}
					return
				}
				pending = m
				hasPending = true
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(d)
			case <-timer.C:
				if hasPending {
					select {
					case out <- pending:
					case <-ctx.Done():
						return
					}
					hasPending = false
				}
			case <-ctx.Done():
				return
			}
		}
	})
}

// Throttle emits the first message immediately, then drops messages
// until d has elapsed (leading edge).
func Throttle[M any](inner Subscription[M], d time.Duration) Subscription[M] {
	return SubscriptionFunc[M](func(ctx context.Context, out chan<- M) {
		ch, cancel := pump(ctx, inner)
		defer cancel()
		var last time.Time
		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}
				now := time.Now()
				if !last.IsZero() && now.Sub(last) < d {
					continue
				}
				select {
				case out <- m:
					last = now
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})
}
