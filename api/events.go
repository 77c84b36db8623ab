// File: api/events.go
// Package api defines connection lifecycle events.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// EventKind identifies a connection lifecycle event.
type EventKind int

const (
	EventConnected EventKind = iota + 1
	EventSent
	EventReceived
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventSent:
		return "sent"
	case EventReceived:
		return "received"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ConnEvent is emitted by a connection on every observable transition.
type ConnEvent struct {
	Kind    EventKind
	ConnID  string
	Role    Role
	Peer    string
	Message string // decoded payload for EventSent/EventReceived
	Bytes   int
	Err     error // set on EventClosed when the close was caused by a failure
}

// Observer receives connection events on the loop goroutine; it must not block.
type Observer func(ConnEvent)
