// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy for the readiness loop and the connection state machine.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the module.
var (
	ErrConnect         = errors.New("connect failed")
	ErrIO              = errors.New("i/o failure")
	ErrDecode          = errors.New("invalid utf-8 payload")
	ErrSelector        = errors.New("selector failure")
	ErrClosed          = errors.New("registration is closed")
	ErrNotSupported    = errors.New("operation not supported")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrorKind classifies a failure by the layer that produced it.
type ErrorKind int

const (
	KindConnect ErrorKind = iota + 1
	KindIO
	KindDecode
	KindSelector
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindIO:
		return "io"
	case KindDecode:
		return "decode"
	case KindSelector:
		return "selector"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindConnect:
		return ErrConnect
	case KindIO:
		return ErrIO
	case KindDecode:
		return ErrDecode
	case KindSelector:
		return ErrSelector
	default:
		return nil
	}
}

// Error carries enough context to diagnose a single failed operation.
type Error struct {
	Kind  ErrorKind
	Op    string // syscall or step name, e.g. "read", "finish-connect"
	Peer  string
	Phase Phase
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg += " during " + e.Op
	}
	if e.Peer != "" {
		msg += fmt.Sprintf(" (peer %s, phase %s)", e.Peer, e.Phase)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause, usually a syscall errno.
func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the kind sentinels (ErrConnect, ErrIO, ...).
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// WithPeer annotates the error with the connection it belongs to.
func (e *Error) WithPeer(peer string, phase Phase) *Error {
	e.Peer = peer
	e.Phase = phase
	return e
}

// ConnectError reports an asynchronous connect that did not succeed.
func ConnectError(op string, err error) *Error {
	return &Error{Kind: KindConnect, Op: op, Err: err}
}

// IOError reports a read, write, accept or bind failure.
func IOError(op string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Err: err}
}

// DecodeError reports received bytes that are not valid UTF-8.
func DecodeError(n int) *Error {
	return &Error{Kind: KindDecode, Op: "decode", Err: fmt.Errorf("%d bytes", n)}
}

// SelectorError reports a failure of the readiness wait itself.
func SelectorError(op string, err error) *Error {
	return &Error{Kind: KindSelector, Op: op, Err: err}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
