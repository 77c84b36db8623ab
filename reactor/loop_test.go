//go:build linux

package reactor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momentics/hioload-nio/api"
	"github.com/momentics/hioload-nio/control"
	"github.com/momentics/hioload-nio/fake"
	"github.com/momentics/hioload-nio/reactor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func runLoop(t *testing.T, loop *reactor.Loop) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()
	return cancel, done
}

func waitRead(t *testing.T, h *fake.ReadHandler, want string) {
	t.Helper()
	select {
	case got := <-h.Reads:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func TestLoopIsolatesFailingHandler(t *testing.T) {
	sel := newSelector(t)
	reg := prometheus.NewRegistry()
	loop := reactor.NewLoop(sel, reactor.WithMetrics(control.NewMetrics(reg)))

	badA, badB := socketPair(t)
	goodA, goodB := socketPair(t)
	bad := fake.NewReadHandler()
	bad.Fail = api.IOError("read", unix.ECONNRESET)
	good := fake.NewReadHandler()
	badKey, err := sel.Register(badA, api.OpRead, bad)
	require.NoError(t, err)
	_, err = sel.Register(goodA, api.OpRead, good)
	require.NoError(t, err)

	cancel, done := runLoop(t, loop)

	unix.Write(badB, []byte("x"))
	unix.Write(goodB, []byte("first"))
	waitRead(t, good, "first")

	require.Eventually(t, func() bool { return bad.Closed() == 1 }, 2*time.Second, 5*time.Millisecond)

	// The loop keeps serving the healthy registration.
	unix.Write(goodB, []byte("second"))
	waitRead(t, good, "second")

	cancel()
	require.NoError(t, <-done)
	assert.False(t, badKey.Valid())
	assert.Equal(t, 1, bad.Closed(), "failing handler closed exactly once")
	assert.Equal(t, 1, good.Closed(), "remaining handler closed on loop exit")

	families, err := reg.Gather()
	require.NoError(t, err)
	var failures float64
	for _, mf := range families {
		if mf.GetName() == "hioload_nio_handler_failures_total" {
			for _, m := range mf.GetMetric() {
				failures += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, failures)
}

func TestLoopRecoversHandlerPanic(t *testing.T) {
	sel := newSelector(t)
	loop := reactor.NewLoop(sel)
	a, b := socketPair(t)
	h := fake.NewReadHandler()
	h.Panic = true
	_, err := sel.Register(a, api.OpRead, h)
	require.NoError(t, err)

	cancel, done := runLoop(t, loop)
	defer func() {
		cancel()
		<-done
	}()
	unix.Write(b, []byte("x"))
	require.Eventually(t, func() bool { return h.Closed() == 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestLoopSelectorFailureIsFatal(t *testing.T) {
	sel, err := reactor.NewSelector(0)
	require.NoError(t, err)
	require.NoError(t, sel.Close())

	err = reactor.NewLoop(sel).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrSelector), "got %v", err)
	assert.Equal(t, api.KindSelector, api.KindOf(err))
}

func TestLoopStopWhenIdle(t *testing.T) {
	sel := newSelector(t)
	done := make(chan error, 1)
	go func() { done <- reactor.NewLoop(sel, reactor.WithStopWhenIdle()).Run(context.Background()) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("idle loop did not return")
	}
}

func TestLoopCancelWakesBlockedWait(t *testing.T) {
	sel := newSelector(t)
	a, _ := socketPair(t)
	h := fake.NewReadHandler()
	key, err := sel.Register(a, api.OpRead, h)
	require.NoError(t, err)

	cancel, done := runLoop(t, reactor.NewLoop(sel))
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on cancel")
	}
	assert.Equal(t, 1, h.Closed())
	assert.False(t, key.Valid())
}
