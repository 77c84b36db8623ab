// File: session/conn.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Connection state machine for both roles.

package session

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/momentics/hioload-nio/api"
	"github.com/momentics/hioload-nio/reactor"
	"github.com/momentics/hioload-nio/transport/tcp"
	"go.uber.org/zap"
)

// Close reasons reported to metrics and logs.
const (
	reasonSentinel = "sentinel"
	reasonEOF      = "eof"
	reasonError    = "error"
	reasonShutdown = "shutdown"
)

var errUnexpectedReadiness = errors.New("readiness does not match phase")

// Conn is one connected socket owned by the loop goroutine.
type Conn struct {
	id    string
	role  api.Role
	fd    int
	peer  string
	phase api.Phase
	key   *reactor.Key
	cfg   Config
	log   *zap.Logger

	buf    []byte
	out    []byte // unsent remainder of outMsg
	outMsg string

	closed      bool
	closeReason string
	lastErr     error
}

func newConn(fd int, role api.Role, phase api.Phase, peer string, cfg Config) *Conn {
	id := uuid.NewString()
	return &Conn{
		id:    id,
		role:  role,
		fd:    fd,
		peer:  peer,
		phase: phase,
		cfg:   cfg,
		log: cfg.Logger.With(
			zap.String("conn", id),
			zap.Stringer("role", role),
			zap.String("peer", peer),
		),
	}
}

// register hands the socket to sel with the interest of the current phase.
func (c *Conn) register(sel *reactor.Selector) error {
	key, err := sel.Register(c.fd, c.phase.Interest(), c)
	if err != nil {
		return err
	}
	c.key = key
	c.buf = c.cfg.Buffers.GetBuffer()
	c.cfg.Metrics.ConnOpened(c.role.String())
	return nil
}

// ID returns the connection identifier used in logs and events.
func (c *Conn) ID() string { return c.id }

// Role returns the side this connection plays.
func (c *Conn) Role() api.Role { return c.role }

// Peer returns the remote address.
func (c *Conn) Peer() string { return c.peer }

// Phase returns the current state.
func (c *Conn) Phase() api.Phase { return c.phase }

// Handle implements reactor.Handler.
func (c *Conn) Handle(_ *reactor.Key, op api.Interest) error {
	if c.closed {
		return api.ErrClosed
	}
	var err error
	switch {
	case op == api.OpConnect && c.phase == api.AwaitingConnect:
		err = c.finishConnect()
	case op == api.OpWrite && c.phase == api.AwaitingWrite:
		err = c.write()
	case op == api.OpRead && c.phase == api.AwaitingRead:
		err = c.read()
	default:
		err = api.IOError("dispatch "+op.String(), errUnexpectedReadiness)
	}
	if err != nil {
		var e *api.Error
		if errors.As(err, &e) && e.Peer == "" {
			e.WithPeer(c.peer, c.phase)
		}
		c.lastErr = err
	}
	return err
}

func (c *Conn) finishConnect() error {
	if err := tcp.FinishConnect(c.fd); err != nil {
		return api.ConnectError("finish-connect", err)
	}
	c.log.Info("connection established")
	c.cfg.emit(api.ConnEvent{Kind: api.EventConnected, ConnID: c.id, Role: c.role, Peer: c.peer})
	return c.transition(api.AwaitingWrite)
}

// write sends the pending message, taking a new one from the payload
// source only when nothing is pending. A full socket buffer keeps the
// write interest and resumes from the remainder on the next event.
func (c *Conn) write() error {
	if c.out == nil {
		c.outMsg = c.cfg.Payload.Next()
		c.out = []byte(c.outMsg)
	}
	for len(c.out) > 0 {
		n, err := tcp.Write(c.fd, c.out)
		if errors.Is(err, tcp.ErrWouldBlock) {
			return nil
		}
		if err != nil {
			return api.IOError("write", err)
		}
		c.out = c.out[n:]
	}
	msg := c.outMsg
	c.out, c.outMsg = nil, ""

	c.log.Info("message sent", zap.String("msg", msg), zap.Int("bytes", len(msg)))
	c.cfg.Metrics.Sent(c.role.String(), len(msg))
	c.cfg.emit(api.ConnEvent{Kind: api.EventSent, ConnID: c.id, Role: c.role, Peer: c.peer, Message: msg, Bytes: len(msg)})

	if c.role == api.RoleClient && msg == api.Sentinel {
		c.closeReason = reasonSentinel
		return c.Close()
	}
	return c.transition(api.AwaitingRead)
}

// read takes what one call returns as a whole message.
func (c *Conn) read() error {
	n, err := tcp.Read(c.fd, c.buf)
	switch {
	case errors.Is(err, tcp.ErrWouldBlock):
		return nil
	case errors.Is(err, io.EOF):
		c.closeReason = reasonEOF
		return c.Close()
	case err != nil:
		return api.IOError("read", err)
	case n == 0:
		return nil
	}
	data := c.buf[:n]
	if !utf8.Valid(data) {
		return api.DecodeError(n)
	}
	msg := string(data)

	c.log.Info("message received", zap.String("msg", msg), zap.Int("bytes", n))
	c.cfg.Metrics.Received(c.role.String(), n)
	c.cfg.emit(api.ConnEvent{Kind: api.EventReceived, ConnID: c.id, Role: c.role, Peer: c.peer, Message: msg, Bytes: n})

	if c.role == api.RoleServer && msg == api.Sentinel {
		c.closeReason = reasonSentinel
		return c.Close()
	}
	return c.transition(api.AwaitingWrite)
}

func (c *Conn) transition(next api.Phase) error {
	if err := c.key.SetInterest(next.Interest()); err != nil {
		return api.IOError("set-interest", err)
	}
	c.phase = next
	return nil
}

// Close deregisters the socket, releases it and reports the closure once.
// Later calls return nil.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	prev := c.phase
	c.phase = api.Closed

	var err error
	if c.key != nil {
		err = c.key.Cancel()
	}
	if cerr := tcp.Close(c.fd); cerr != nil && err == nil {
		err = cerr
	}
	if c.buf != nil {
		c.cfg.Buffers.PutBuffer(c.buf)
		c.buf = nil
	}

	reason := c.closeReason
	if reason == "" {
		reason = reasonShutdown
		if c.lastErr != nil {
			reason = reasonError
		}
	}
	if c.key != nil {
		c.cfg.Metrics.ConnClosed(c.role.String(), reason)
	}
	fields := []zap.Field{zap.String("reason", reason), zap.Stringer("phase", prev)}
	if c.lastErr != nil {
		fields = append(fields, zap.Error(c.lastErr))
	}
	c.log.Info("disconnected", fields...)
	c.cfg.emit(api.ConnEvent{Kind: api.EventClosed, ConnID: c.id, Role: c.role, Peer: c.peer, Err: c.lastErr})
	return err
}
