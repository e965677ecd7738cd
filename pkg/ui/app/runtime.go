package app

import (
	"context"
	"errors"

	"github.com/ryanoneill/envision-sub004/pkg/logging"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/overlay"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
)

// ErrLoopGuard signals that one tick processed more messages than
// MaxMessagesPerTick allows. The tick ends early; unprocessed messages
// stay queued and the loop resumes on the next tick.
var ErrLoopGuard = errors.New("message loop exceeded per-tick bound")

// Runtime is the headless, single-goroutine driver. Events are
// injected through its queue, ticks are explicit Step calls, and async
// command actions run inline so every run is deterministic.
type Runtime[M any] struct {
	app      App[M]
	target   backend.Backend
	queue    *terminal.EventQueue
	overlays *overlay.Stack[M]
	handler  Handler[M]
	cfg      RuntimeConfig

	pending     []M
	errs        []error
	quit        bool
	dirty       bool
	initialized bool
}

// NewRuntime creates a headless runtime drawing to target.
func NewRuntime[M any](a App[M], target backend.Backend, cfg RuntimeConfig) *Runtime[M] {
	return &Runtime[M]{
		app:      a,
		target:   target,
		queue:    terminal.NewEventQueue(),
		overlays: overlay.NewStack[M](),
		cfg:      cfg.withDefaults(),
	}
}

// Events returns the injection queue. Push events, then Step.
func (r *Runtime[M]) Events() *terminal.EventQueue {
	return r.queue
}

// Overlays returns the runtime's overlay stack.
func (r *Runtime[M]) Overlays() *overlay.Stack[M] {
	return r.overlays
}

// ShouldQuit reports whether a processed command requested exit.
func (r *Runtime[M]) ShouldQuit() bool {
	return r.quit
}

// TakeErrors drains errors collected under ErrorPolicyChannel.
func (r *Runtime[M]) TakeErrors() []error {
	out := r.errs
	r.errs = nil
	return out
}

// Dispatch feeds msg directly into the update loop and processes it to
// completion, rendering if anything changed.
func (r *Runtime[M]) Dispatch(msg M) error {
	r.ensureInit()
	r.pending = append(r.pending, msg)
	err := r.drainMessages()
	return errors.Join(err, r.renderIfDirty())
}

// Step runs one tick: drain injected events, process resulting
// messages, apply overlay changes, render if dirty, flush.
func (r *Runtime[M]) Step() error {
	r.ensureInit()
	for {
		ev, ok := r.queue.Pop()
		if !ok {
			break
		}
		r.dispatchEvent(ev)
	}
	err := r.drainMessages()
	return errors.Join(err, r.renderIfDirty())
}

// Run steps until a command requests exit or no work remains. Loop
// guard trips are recoverable and do not stop the run.
func (r *Runtime[M]) Run() error {
	for {
		err := r.Step()
		if err != nil && !errors.Is(err, ErrLoopGuard) {
			return err
		}
		if r.quit {
			return nil
		}
		if r.queue.IsEmpty() && len(r.pending) == 0 {
			return nil
		}
	}
}

func (r *Runtime[M]) ensureInit() {
	if r.initialized {
		return
	}
	r.initialized = true
	r.dirty = true
	r.execute(r.app.Init())
	r.applyOverlayOps()
}

func (r *Runtime[M]) dispatchEvent(ev terminal.Event) {
	r.cfg.Metrics.EventDispatched()
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

// drainMessages runs the update loop over pending messages, bounded by
// the per-tick guard. Overlay pushes and pops apply after the pass,
// never mid-iteration.
func (r *Runtime[M]) drainMessages() error {
	var guardErr error
	processed := 0
	for len(r.pending) > 0 {
		if processed >= r.cfg.MaxMessagesPerTick {
			guardErr = ErrLoopGuard
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
		r.execute(r.app.Update(msg))
	}
	r.applyOverlayOps()
	if r.handler.ShouldQuit() {
		r.quit = true
	}
	return guardErr
}

// execute applies cmd and runs any async actions inline with a
// background context, which keeps headless runs deterministic.
func (r *Runtime[M]) execute(cmd Command[M]) {
	futures, fallibles := r.handler.Apply(cmd)
	ctx := context.Background()
	for _, f := range futures {
		if m, ok := f(ctx); ok {
			r.pending = append(r.pending, m)
		}
	}
	for _, f := range fallibles {
		m, ok, err := f(ctx)
		if err != nil {
			r.handleAsyncError(err)
			continue
		}
		if ok {
			r.pending = append(r.pending, m)
		}
	}
	r.pending = append(r.pending, r.handler.TakePending()...)
}

func (r *Runtime[M]) handleAsyncError(err error) {
	r.cfg.Metrics.AsyncCommandError()
	switch r.cfg.ErrorPolicy {
	case ErrorPolicyLog:
		r.cfg.Logger.Error(logging.CategoryCommand, "async_failure", err.Error(), nil)
	default:
		// Abort has no runtime to stop here; both remaining policies
		// leave consumption to the caller.
		r.errs = append(r.errs, err)
	}
}

func (r *Runtime[M]) applyOverlayOps() {
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
}

func (r *Runtime[M]) renderIfDirty() error {
	if !r.dirty {
		return nil
	}
	r.dirty = false
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
