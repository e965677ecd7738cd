package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend/capture"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
)

// collect runs s to completion (or timeout) and returns everything it
// emitted.
func collect[M any](t *testing.T, s Subscription[M], timeout time.Duration) []M {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out := make(chan M)
	var got []M
	done := make(chan struct{})
	go func() {
		defer close(done)
		for m := range out {
			got = append(got, m)
		}
	}()

	s.Run(ctx, out)
	close(out)
	<-done
	return got
}

func even(n int) bool { return n%2 == 0 }

func TestValuesEmitsInOrder(t *testing.T) {
	got := collect(t, Values(1, 2, 3), time.Second)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestFilterTakePipeline(t *testing.T) {
	s := Take(Filter(Values(1, 2, 3, 4, 5), even), 2)
	got := collect(t, s, time.Second)
	assert.Equal(t, []int{2, 4}, got)
}

func TestTakeZeroEmitsNothing(t *testing.T) {
	got := collect(t, Take(Values(1, 2, 3), 0), time.Second)
	assert.Empty(t, got)
}

func TestTakeOfTakeEmitsMin(t *testing.T) {
	s := Take(Take(Values(1, 2, 3, 4, 5), 4), 2)
	assert.Len(t, collect(t, s, time.Second), 2)

	s = Take(Take(Values(1, 2, 3, 4, 5), 2), 4)
	assert.Len(t, collect(t, s, time.Second), 2)
}

func TestFilterComposes(t *testing.T) {
	positive := func(n int) bool { return n > 0 }
	composed := Filter(Filter(Values(-2, -1, 0, 1, 2, 3, 4), even), positive)
	single := Filter(Values(-2, -1, 0, 1, 2, 3, 4), func(n int) bool { return even(n) && positive(n) })

	assert.Equal(t,
		collect(t, single, time.Second),
		collect(t, composed, time.Second))
}

func TestMapSubscription(t *testing.T) {
	s := MapSubscription(Values(1, 2, 3), func(n int) int { return n * 10 })
	assert.Equal(t, []int{10, 20, 30}, collect(t, s, time.Second))
}

func TestCancelledBeforeFirstEmission(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan int, 8)
	Values(1, 2, 3).Run(ctx, out)
	close(out)

	var got []int
	for m := range out {
		got = append(got, m)
	}
	assert.Empty(t, got)
}

func TestTickEmitsPeriodically(t *testing.T) {
	n := 0
	s := Take(Tick(5*time.Millisecond, func() int { n++; return n }), 3)
	got := collect(t, s, 5*time.Second)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestAfterEmitsOnce(t *testing.T) {
	s := After(time.Millisecond, func() string { return "done" })
	assert.Equal(t, []string{"done"}, collect(t, s, time.Second))
}

func TestDebounceFlushesPendingOnCompletion(t *testing.T) {
	// Upstream completes immediately; a 10s window would otherwise
	// swallow both values. Only the newest survives.
	s := Debounce(Values("v1", "v2"), 10*time.Second)
	got := collect(t, s, 5*time.Second)
	assert.Equal(t, []string{"v2"}, got)
}

func TestDebounceEmitsAfterQuietWindow(t *testing.T) {
	ch := make(chan int)
	go func() {
		ch <- 1
		close(ch)
	}()
	s := Debounce(Channel(ch), time.Millisecond)
	got := collect(t, s, 5*time.Second)
	assert.Equal(t, []int{1}, got)
}

func TestThrottleIsLeadingEdge(t *testing.T) {
	// All three arrive within the window: only the first passes.
	s := Throttle(Values(1, 2, 3), time.Minute)
	got := collect(t, s, time.Second)
	assert.Equal(t, []int{1}, got)
}

func TestChannelCompletesOnClose(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 7
	ch <- 8
	close(ch)
	assert.Equal(t, []int{7, 8}, collect(t, Channel(ch), time.Second))
}

func TestTerminalEventsTranslates(t *testing.T) {
	b := capture.New(4, 2)
	require.NoError(t, b.InjectRune('a'))
	require.NoError(t, b.InjectRune('b'))

	s := Take(TerminalEvents(b, func(ev terminal.Event) (rune, bool) {
		key, ok := ev.(terminal.KeyEvent)
		if !ok {
			return 0, false
		}
		return key.Rune, true
	}), 2)

	assert.Equal(t, []rune{'a', 'b'}, collect(t, s, 5*time.Second))
}

func TestWatchSeesFileChanges(t *testing.T) {
	dir := t.TempDir()
	s := Take(Watch(dir, func(ev fsnotify.Event) (string, bool) {
		return filepath.Base(ev.Name), true
	}), 1)

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(filepath.Join(dir, "touched"), []byte("x"), 0644)
	}()

	got := collect(t, s, 10*time.Second)
	require.Len(t, got, 1)
	assert.Equal(t, "touched", got[0])
}
