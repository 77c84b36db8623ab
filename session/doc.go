// File: session/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package session implements the per-socket state machine driven by the
// reactor loop.
//
// A client connection moves AwaitingConnect -> AwaitingWrite -> AwaitingRead
// -> AwaitingWrite ... and closes after writing the sentinel. A server
// connection starts in AwaitingRead, replies to every message except the
// sentinel, and closes on the sentinel or end-of-stream. Each handled event
// performs one step and sets exactly one next interest.
//
// Messages are raw UTF-8 with no framing: one successful read is taken to
// be one message.
package session
