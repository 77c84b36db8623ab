//go:build !linux

// File: reactor/selector_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import "github.com/momentics/hioload-nio/api"

// Selector is unavailable on this platform.
type Selector struct{}

// NewSelector returns an error for unsupported platforms.
func NewSelector(maxEvents int) (*Selector, error) {
	return nil, api.ErrNotSupported
}

func (s *Selector) Register(fd int, op api.Interest, h Handler) (*Key, error) {
	return nil, api.ErrNotSupported
}
func (s *Selector) modify(k *Key, op api.Interest) error { return api.ErrNotSupported }
func (s *Selector) deregister(k *Key) error             { return nil }
func (s *Selector) Select() (int, error)                { return 0, api.ErrNotSupported }
func (s *Selector) Next() (*Key, bool)                  { return nil, false }
func (s *Selector) Keys() []*Key                        { return nil }
func (s *Selector) Len() int                            { return 0 }
func (s *Selector) Registrations() int64                { return 0 }
func (s *Selector) Wakeup() error                       { return api.ErrNotSupported }
func (s *Selector) Close() error                        { return nil }
