// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync/atomic"

	"github.com/momentics/hioload-nio/api"
	"github.com/momentics/hioload-nio/reactor"
	"github.com/momentics/hioload-nio/transport/tcp"
)

// ReadHandler is a reactor.Handler that reads whatever is pending and
// reports it on Reads. Fail and Panic make every dispatch misbehave.
type ReadHandler struct {
	Reads  chan string
	Fail   error
	Panic  bool
	closed atomic.Int32
}

// NewReadHandler returns a handler with a buffered Reads channel.
func NewReadHandler() *ReadHandler {
	return &ReadHandler{Reads: make(chan string, 16)}
}

// Handle implements reactor.Handler.
func (h *ReadHandler) Handle(k *reactor.Key, op api.Interest) error {
	if h.Panic {
		panic("fake: handler panic")
	}
	if h.Fail != nil {
		return h.Fail
	}
	buf := make([]byte, 64)
	n, err := tcp.Read(k.Fd(), buf)
	if err != nil {
		return err
	}
	h.Reads <- string(buf[:n])
	return nil
}

// Close implements reactor.Handler and counts calls.
func (h *ReadHandler) Close() error {
	h.closed.Add(1)
	return nil
}

// Closed returns how many times Close was called.
func (h *ReadHandler) Closed() int { return int(h.closed.Load()) }

// NopHandler ignores every event.
type NopHandler struct{}

func (NopHandler) Handle(*reactor.Key, api.Interest) error { return nil }
func (NopHandler) Close() error                            { return nil }
