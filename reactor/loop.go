// File: reactor/loop.go
// Author: momentics <momentics@gmail.com>
//
// Single-threaded dispatch loop over a Selector.

package reactor

import (
	"context"
	"fmt"

	"github.com/momentics/hioload-nio/api"
	"github.com/momentics/hioload-nio/control"
	"go.uber.org/zap"
)

// Loop waits on its selector and dispatches every ready key once per wake-up.
type Loop struct {
	sel          *Selector
	log          *zap.Logger
	metrics      *control.Metrics
	stopWhenIdle bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the loop logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// WithMetrics records wake-ups and handler failures.
func WithMetrics(m *control.Metrics) Option {
	return func(l *Loop) { l.metrics = m }
}

// WithStopWhenIdle makes Run return once no registration is left.
func WithStopWhenIdle() Option {
	return func(l *Loop) { l.stopWhenIdle = true }
}

// NewLoop creates a loop owning sel.
func NewLoop(sel *Selector, opts ...Option) *Loop {
	l := &Loop{sel: sel, log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Selector returns the selector driven by the loop.
func (l *Loop) Selector() *Selector { return l.sel }

// Run blocks until ctx is done, the selector fails, or (with
// WithStopWhenIdle) the last registration is gone. A selector failure is
// returned as an *api.Error of KindSelector. Handlers still registered
// when Run returns are closed.
func (l *Loop) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		if err := l.sel.Wakeup(); err != nil {
			l.log.Debug("wakeup after cancel failed", zap.Error(err))
		}
	})
	defer stop()
	defer l.closeAll()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if l.stopWhenIdle && l.sel.Len() == 0 {
			l.log.Debug("no registrations left, loop exiting")
			return nil
		}
		if _, err := l.sel.Select(); err != nil {
			serr := api.SelectorError("wait", err)
			l.log.Error("readiness wait failed", zap.Error(serr))
			return serr
		}
		l.metrics.Wakeup()
		for k, ok := l.sel.Next(); ok; k, ok = l.sel.Next() {
			l.dispatch(k)
		}
	}
}

func (l *Loop) dispatch(k *Key) {
	op := pick(k.Ready())
	h := k.Handler()
	err := invoke(h, k, op)
	if err == nil {
		return
	}
	l.metrics.HandlerFailed(api.KindOf(err).String())
	l.log.Warn("handler failed, closing registration",
		zap.Int("fd", k.Fd()),
		zap.Stringer("op", op),
		zap.Error(err),
	)
	if cerr := h.Close(); cerr != nil {
		l.log.Debug("close after failure", zap.Int("fd", k.Fd()), zap.Error(cerr))
	}
	// The handler is expected to cancel its key; make sure it is gone.
	_ = k.Cancel()
}

// invoke shields the loop from a panicking handler.
func invoke(h Handler, k *Key, op api.Interest) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = api.IOError("dispatch "+op.String(), fmt.Errorf("handler panic: %v", r))
		}
	}()
	return h.Handle(k, op)
}

func (l *Loop) closeAll() {
	for _, k := range l.sel.Keys() {
		if err := k.Handler().Close(); err != nil {
			l.log.Debug("close on loop exit", zap.Int("fd", k.Fd()), zap.Error(err))
		}
		_ = k.Cancel()
	}
}
