package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ryanoneill/envision-sub004/pkg/logging"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/overlay"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
)

// AsyncRuntime drives the same state machine as Runtime but
// cooperatively: terminal events, async command results, subscription
// messages and tick deadlines all feed one select loop. Update and
// View still run on the loop goroutine only.
type AsyncRuntime[M any] struct {
	app      App[M]
	target   backend.Backend
	source   backend.EventSource
	overlays *overlay.Stack[M]
	handler  AsyncHandler[M]
	cfg      RuntimeConfig
	subs     []Subscription[M]

	extErrs chan error
	pending []M
	quit    bool
	dirty   bool
}

// NewAsyncRuntime creates an async runtime drawing to target. source
// supplies terminal events and may be nil for driver-less runs.
func NewAsyncRuntime[M any](a App[M], target backend.Backend, source backend.EventSource, cfg RuntimeConfig) *AsyncRuntime[M] {
	cfg = cfg.withDefaults()
	return &AsyncRuntime[M]{
		app:      a,
		target:   target,
		source:   source,
		overlays: overlay.NewStack[M](),
		cfg:      cfg,
		extErrs:  make(chan error, cfg.MessageBuffer),
	}
}

// Subscribe registers s to start when Run begins. Not safe to call
// after Run.
func (r *AsyncRuntime[M]) Subscribe(s Subscription[M]) {
	r.subs = append(r.subs, s)
}

// Errors exposes async command failures under ErrorPolicyChannel. The
// buffer is bounded; unread errors beyond it are dropped.
func (r *AsyncRuntime[M]) Errors() <-chan error {
	return r.extErrs
}

// Run executes the loop until a command requests exit, ctx is
// cancelled, or a fatal error occurs under ErrorPolicyAbort.
func (r *AsyncRuntime[M]) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	msgCh := make(chan M, r.cfg.MessageBuffer)
	errCh := make(chan error, r.cfg.MessageBuffer)
	evCh := make(chan terminal.Event, 64)

	sessionID := uuid.NewString()
	r.cfg.Logger.Info(logging.CategoryRuntime, "start", "async runtime starting", map[string]any{
		"run_id":        sessionID,
		"subscriptions": len(r.subs),
	})

	for _, s := range r.subs {
		s := s
		r.cfg.Metrics.SubscriptionStarted()
		g.Go(func() error {
			defer r.cfg.Metrics.SubscriptionEnded()
			s.Run(gctx, msgCh)
			return nil
		})
	}

	if r.source != nil {
		g.Go(func() error {
			for {
				ev, err := r.source.NextEvent(gctx)
				if err != nil {
					if gctx.Err() != nil || errors.Is(err, context.Canceled) {
						return nil
					}
					select {
					case errCh <- err:
					case <-gctx.Done():
					}
					return nil
				}
				select {
				case evCh <- ev:
				case <-gctx.Done():
					return nil
				}
			}
		})
	}

	var tickCh <-chan time.Time
	if r.cfg.TickInterval > 0 {
		ticker := time.NewTicker(r.cfg.TickInterval)
		defer ticker.Stop()
		tickCh = ticker.C
	}

	// First pass: Init command, then an initial render.
	r.dirty = true
	r.handler.Apply(r.app.Init())
	r.afterApply(gctx, g, msgCh, errCh)
	if err := r.finishTick(gctx, g, msgCh, errCh); err != nil {
		cancel()
		g.Wait()
		return err
	}

	for !r.quit {
		tickStart := time.Now()
		select {
		case ev := <-evCh:
			r.dispatchEvent(ev)
		case m := <-msgCh:
			r.pending = append(r.pending, m)
		case err := <-errCh:
			if fatal := r.handleAsyncError(err); fatal != nil {
				cancel()
				g.Wait()
				return fatal
			}
		case <-tickCh:
			// Periodic wakeup; pending work below.
		case <-gctx.Done():
			g.Wait()
			r.cfg.Logger.Info(logging.CategoryRuntime, "stop", "async runtime cancelled", nil)
			return ctx.Err()
		}

		r.drainChannels(evCh, msgCh)
		if err := r.finishTick(gctx, g, msgCh, errCh); err != nil {
			cancel()
			g.Wait()
			return err
		}
		r.cfg.Metrics.ObserveTick(time.Since(tickStart))
	}

	cancel()
	g.Wait()
	r.cfg.Logger.Info(logging.CategoryRuntime, "stop", "async runtime exiting", nil)
	return nil
}

// drainChannels soaks up whatever else is immediately ready so one
// tick batches bursts instead of rendering per message.
func (r *AsyncRuntime[M]) drainChannels(evCh <-chan terminal.Event, msgCh <-chan M) {
	for {
		select {
		case ev := <-evCh:
			r.dispatchEvent(ev)
		case m := <-msgCh:
			r.pending = append(r.pending, m)
		default:
			return
		}
	}
}

// finishTick runs the update loop, spawns new futures, and renders.
// The quitting tick still renders so the final state reaches the
// screen.
func (r *AsyncRuntime[M]) finishTick(ctx context.Context, g *errgroup.Group, msgCh chan<- M, errCh chan<- error) error {
	r.drainMessages(ctx, g, msgCh, errCh)
	if r.dirty {
		r.dirty = false
		if err := r.render(); err != nil {
			if fatal := r.handleAsyncError(err); fatal != nil {
				return fatal
			}
		}
	}
	return nil
}

func (r *AsyncRuntime[M]) dispatchEvent(ev terminal.Event) {
	r.cfg.Metrics.EventDispatched()
	if _, ok := ev.(terminal.ResizeEvent); ok {
		r.dirty = true
	}
	act := r.overlays.HandleEvent(ev)
	if act.Kind != overlay.ActionPropagate {
		r.dirty = true
		if act.HasMessage() {
			r.pending = append(r.pending, act.Msg)
		}
		return
	}
	if msg, ok := r.app.HandleEvent(ev); ok {
		r.pending = append(r.pending, msg)
	}
}

func (r *AsyncRuntime[M]) drainMessages(ctx context.Context, g *errgroup.Group, msgCh chan<- M, errCh chan<- error) {
	processed := 0
	for len(r.pending) > 0 {
		if processed >= r.cfg.MaxMessagesPerTick {
			r.cfg.Metrics.LoopGuardTripped()
			r.cfg.Logger.Warn(logging.CategoryRuntime, "loop_guard", "message loop bound exceeded", map[string]any{
				"bound":   r.cfg.MaxMessagesPerTick,
				"pending": len(r.pending),
			})
			break
		}
		msg := r.pending[0]
		r.pending = r.pending[1:]
		processed++
		r.dirty = true
		r.cfg.Metrics.MessageProcessed()
		r.handler.Apply(r.app.Update(msg))
		r.pending = append(r.pending, r.handler.TakePending()...)
	}
	r.afterApply(ctx, g, msgCh, errCh)
}

// afterApply applies end-of-pass overlay operations, spawns pending
// futures, and latches the quit flag.
func (r *AsyncRuntime[M]) afterApply(ctx context.Context, g *errgroup.Group, msgCh chan<- M, errCh chan<- error) {
	r.pending = append(r.pending, r.handler.TakePending()...)
	for _, o := range r.handler.TakePushes() {
		r.overlays.Push(o)
		r.dirty = true
	}
	for i := r.handler.TakePops(); i > 0; i-- {
		if _, ok := r.overlays.Pop(); ok {
			r.dirty = true
		}
	}
	r.cfg.Metrics.SetOverlayDepth(r.overlays.Len())
	r.handler.SpawnPending(ctx, g, msgCh, errCh)
	if r.handler.ShouldQuit() {
		r.quit = true
	}
}

// handleAsyncError applies the configured policy. A non-nil return is
// fatal and stops the runtime.
func (r *AsyncRuntime[M]) handleAsyncError(err error) error {
	r.cfg.Metrics.AsyncCommandError()
	switch r.cfg.ErrorPolicy {
	case ErrorPolicyAbort:
		r.cfg.Logger.Error(logging.CategoryRuntime, "abort", err.Error(), nil)
		return err
	case ErrorPolicyLog:
		r.cfg.Logger.Error(logging.CategoryCommand, "async_failure", err.Error(), nil)
		return nil
	default:
		select {
		case r.extErrs <- err:
		default:
			// Caller is not keeping up; drop rather than stall the loop.
		}
		return nil
	}
}

func (r *AsyncRuntime[M]) render() error {
	r.target.Clear()
	f := backend.NewFrame(r.target)
	r.app.View(f, r.cfg.Theme)
	r.overlays.Render(f, f.Area(), r.cfg.Theme)
	if err := r.target.Flush(); err != nil {
		return err
	}
	r.cfg.Metrics.FrameRendered()
	return nil
}
