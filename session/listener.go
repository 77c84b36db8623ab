// File: session/listener.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Accept handler and client dialer.

package session

import (
	"errors"
	"fmt"

	"github.com/momentics/hioload-nio/api"
	"github.com/momentics/hioload-nio/reactor"
	"github.com/momentics/hioload-nio/transport/tcp"
	"go.uber.org/zap"
)

// Listener owns the bound socket and stays in the Listening phase until
// closed. Every accepted connection is registered for read-readiness.
type Listener struct {
	fd     int
	addr   string
	key    *reactor.Key
	cfg    Config
	log    *zap.Logger
	closed bool
}

// Listen binds addr and registers the socket with sel for accept-readiness.
func Listen(sel *reactor.Selector, addr string, backlog int, cfg Config) (*Listener, error) {
	cfg = cfg.withDefaults(api.RoleServer)
	fd, err := tcp.Listen(addr, backlog)
	if err != nil {
		return nil, api.IOError("bind", err)
	}
	local, err := tcp.LocalAddr(fd)
	if err != nil {
		local = addr
	}
	l := &Listener{
		fd:   fd,
		addr: local,
		cfg:  cfg,
		log:  cfg.Logger.With(zap.String("listener", local)),
	}
	key, err := sel.Register(fd, api.OpAccept, l)
	if err != nil {
		tcp.Close(fd)
		return nil, fmt.Errorf("register listener: %w", err)
	}
	l.key = key
	l.log.Info("listening")
	return l, nil
}

// Addr returns the bound address, with the actual port when 0 was requested.
func (l *Listener) Addr() string { return l.addr }

// Phase reports Listening until the listener is closed.
func (l *Listener) Phase() api.Phase {
	if l.closed {
		return api.Closed
	}
	return api.Listening
}

// Handle accepts at most one pending connection per accept-ready event.
// Accept failures are logged and leave the listener registered.
func (l *Listener) Handle(k *reactor.Key, op api.Interest) error {
	if op != api.OpAccept {
		return api.IOError("dispatch "+op.String(), errUnexpectedReadiness)
	}
	fd, peer, err := tcp.Accept(l.fd)
	if errors.Is(err, tcp.ErrWouldBlock) {
		return nil
	}
	if err != nil {
		l.log.Warn("accept failed", zap.Error(api.IOError("accept", err)))
		return nil
	}

	c := newConn(fd, api.RoleServer, api.AwaitingRead, peer, l.cfg)
	if err := c.register(k.Selector()); err != nil {
		l.log.Warn("register accepted connection", zap.String("peer", peer), zap.Error(err))
		tcp.Close(fd)
		return nil
	}
	c.log.Info("client connected")
	l.cfg.emit(api.ConnEvent{Kind: api.EventConnected, ConnID: c.id, Role: c.role, Peer: peer})
	return k.SetInterest(api.OpAccept)
}

// Close stops accepting. Connections already accepted are unaffected.
func (l *Listener) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	var err error
	if l.key != nil {
		err = l.key.Cancel()
	}
	if cerr := tcp.Close(l.fd); cerr != nil && err == nil {
		err = cerr
	}
	l.log.Info("listener closed")
	return err
}

// Dial starts a non-blocking connect to addr and registers the connection
// with sel for connect-readiness. The outcome of the handshake is reported
// by the first dispatched event.
func Dial(sel *reactor.Selector, addr string, cfg Config) (*Conn, error) {
	cfg = cfg.withDefaults(api.RoleClient)
	fd, err := tcp.Connect(addr)
	if err != nil {
		return nil, api.ConnectError("connect", err).WithPeer(addr, api.AwaitingConnect)
	}
	c := newConn(fd, api.RoleClient, api.AwaitingConnect, addr, cfg)
	if err := c.register(sel); err != nil {
		tcp.Close(fd)
		return nil, fmt.Errorf("register connection: %w", err)
	}
	c.log.Debug("connecting")
	return c, nil
}
