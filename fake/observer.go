// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"testing"
	"time"

	"github.com/momentics/hioload-nio/api"
)

// Recorder buffers connection events emitted on a loop goroutine.
type Recorder chan api.ConnEvent

// NewRecorder returns a recorder large enough for a test exchange.
func NewRecorder() Recorder { return make(Recorder, 256) }

// Observe implements api.Observer.
func (r Recorder) Observe(ev api.ConnEvent) { r <- ev }

// Next returns the next event of the given kind, skipping others, and
// fails tb after timeout.
func (r Recorder) Next(tb testing.TB, kind api.EventKind, timeout time.Duration) api.ConnEvent {
	tb.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-r:
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			tb.Fatalf("timed out waiting for %s event", kind)
			return api.ConnEvent{}
		}
	}
}

// Drain closes r and returns the events left in it. Only call once the
// emitting loop has stopped.
func (r Recorder) Drain() []api.ConnEvent {
	close(r)
	var out []api.ConnEvent
	for ev := range r {
		out = append(out, ev)
	}
	return out
}
