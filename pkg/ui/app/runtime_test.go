package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend/capture"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

func newCounterRuntime() (*counterApp, *capture.Backend, *Runtime[counterMsg]) {
	a := &counterApp{}
	b := capture.New(20, 4)
	r := NewRuntime[counterMsg](a, b, RuntimeConfig{Theme: theme.PlainTheme()})
	return a, b, r
}

func TestCounterLifecycle(t *testing.T) {
	a, b, r := newCounterRuntime()

	require.NoError(t, r.Step())
	assert.Equal(t, 0, a.count)
	assert.True(t, b.ContainsText("count: 0"))

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Dispatch(incMsg))
	}
	assert.Equal(t, 3, a.count)
	require.Len(t, a.history, 3)
	assert.Equal(t, "increment to 1", a.history[0])
	assert.Equal(t, "increment to 3", a.history[2])
	assert.True(t, b.ContainsText("count: 3"))

	require.NoError(t, r.Dispatch(quitMsg))
	assert.True(t, r.ShouldQuit())
}

func TestEventsDriveTheApp(t *testing.T) {
	a, b, r := newCounterRuntime()

	r.Events().TypeString("++")
	r.Events().Rune('-')
	require.NoError(t, r.Step())

	assert.Equal(t, 1, a.count)
	assert.True(t, b.ContainsText("count: 1"))
}

func TestRunExitsOnQuit(t *testing.T) {
	_, _, r := newCounterRuntime()
	r.Events().TypeString("++q")
	require.NoError(t, r.Run())
	assert.True(t, r.ShouldQuit())
}

func TestRunStopsWhenQueueEmpties(t *testing.T) {
	a, _, r := newCounterRuntime()
	r.Events().Rune('+')
	require.NoError(t, r.Run())
	assert.False(t, r.ShouldQuit())
	assert.Equal(t, 1, a.count)
}

func TestOverlayInterceptsEvents(t *testing.T) {
	a, b, r := newCounterRuntime()

	r.Events().Rune('?')
	require.NoError(t, r.Step())
	assert.Equal(t, 1, r.Overlays().Len())
	assert.True(t, b.ContainsText("Really quit?"), "dialog not rendered:\n%s", b.ToString())

	// The dialog consumes '+' so the counter must not move.
	r.Events().Rune('+')
	require.NoError(t, r.Step())
	assert.Equal(t, 0, a.count)

	// Reject: dialog dismissed, message delivered, app visible again.
	r.Events().Rune('n')
	require.NoError(t, r.Step())
	assert.Equal(t, 0, r.Overlays().Len())
	assert.Contains(t, a.history, "stayed")
	assert.False(t, r.ShouldQuit())

	// Events flow to the app again.
	r.Events().Rune('+')
	require.NoError(t, r.Step())
	assert.Equal(t, 1, a.count)
}

func TestOverlayAcceptQuits(t *testing.T) {
	_, _, r := newCounterRuntime()
	r.Events().Rune('?')
	r.Events().Rune('y')
	require.NoError(t, r.Run())
	assert.True(t, r.ShouldQuit())
}

// loopApp reproduces itself forever; the guard must break the tick.
type loopApp struct{}

func (loopApp) Init() Command[int]    { return Message(0) }
func (loopApp) Update(int) Command[int] { return Message(0) }
func (loopApp) HandleEvent(terminal.Event) (int, bool) { return 0, false }
func (loopApp) View(*backend.Frame, *theme.Theme)      {}

func TestLoopGuardBreaksTick(t *testing.T) {
	b := capture.New(4, 2)
	r := NewRuntime[int](loopApp{}, b, RuntimeConfig{MaxMessagesPerTick: 16, Theme: theme.PlainTheme()})

	err := r.Step()
	assert.ErrorIs(t, err, ErrLoopGuard)

	// Recoverable: the next tick proceeds and trips again.
	assert.ErrorIs(t, r.Step(), ErrLoopGuard)
}

// inlineApp exercises async actions in headless mode.
type inlineApp struct {
	got  []int
	errs int
}

func (a *inlineApp) Init() Command[int] { return None[int]() }

func (a *inlineApp) Update(msg int) Command[int] {
	switch msg {
	case 1:
		return PerformAsync(func(context.Context) (int, bool) { return 100, true })
	case 2:
		return PerformAsyncFallible(func(context.Context) (int, bool, error) {
			return 0, false, errors.New("fallible failed")
		})
	default:
		a.got = append(a.got, msg)
	}
	return None[int]()
}

func (a *inlineApp) HandleEvent(terminal.Event) (int, bool) { return 0, false }
func (a *inlineApp) View(*backend.Frame, *theme.Theme)      {}

func TestHeadlessRunsAsyncInline(t *testing.T) {
	a := &inlineApp{}
	b := capture.New(4, 2)
	r := NewRuntime[int](a, b, RuntimeConfig{ErrorPolicy: ErrorPolicyChannel, Theme: theme.PlainTheme()})

	require.NoError(t, r.Dispatch(1))
	assert.Equal(t, []int{100}, a.got)

	require.NoError(t, r.Dispatch(2))
	errs := r.TakeErrors()
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "fallible failed")
	assert.Empty(t, r.TakeErrors())
}

func TestRenderOnlyWhenDirty(t *testing.T) {
	_, b, r := newCounterRuntime()

	require.NoError(t, r.Step())
	frames := b.FrameCount()

	// No events, no messages: nothing to redraw.
	require.NoError(t, r.Step())
	assert.Equal(t, frames, b.FrameCount())

	r.Events().Rune('+')
	require.NoError(t, r.Step())
	assert.Equal(t, frames+1, b.FrameCount())
}
