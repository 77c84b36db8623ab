// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Registration keys and the handler contract.

package reactor

import (
	"fmt"

	"github.com/momentics/hioload-nio/api"
)

// DefaultMaxEvents caps the number of readiness events taken per wait.
const DefaultMaxEvents = 128

// Handler owns one registered descriptor. Handle performs exactly one step
// for the ready operation and sets the next interest before returning.
// A returned error makes the loop close that handler and nothing else.
type Handler interface {
	Handle(k *Key, op api.Interest) error
	Close() error
}

// Key is the registration of one descriptor with a Selector.
type Key struct {
	fd       int
	interest api.Interest
	ready    api.Interest
	handler  Handler
	sel      *Selector
	valid    bool
}

// Fd returns the registered descriptor.
func (k *Key) Fd() int { return k.fd }

// Interest returns the operation the key currently waits for.
func (k *Key) Interest() api.Interest { return k.interest }

// Ready returns the operations reported ready by the last wait.
func (k *Key) Ready() api.Interest { return k.ready }

// Handler returns the handler attached at registration.
func (k *Key) Handler() Handler { return k.handler }

// Selector returns the selector the key belongs to.
func (k *Key) Selector() *Selector { return k.sel }

// Valid reports whether the key is still registered.
func (k *Key) Valid() bool { return k.valid }

// SetInterest replaces the key's interest with exactly one operation.
func (k *Key) SetInterest(op api.Interest) error {
	if !k.valid {
		return api.ErrClosed
	}
	if !op.Single() {
		return fmt.Errorf("interest %s: %w", op, api.ErrInvalidArgument)
	}
	if op == k.interest {
		return nil
	}
	if err := k.sel.modify(k, op); err != nil {
		return err
	}
	k.interest = op
	return nil
}

// Cancel removes the registration. Cancelling twice is a no-op.
func (k *Key) Cancel() error {
	if !k.valid {
		return nil
	}
	k.valid = false
	k.ready = 0
	return k.sel.deregister(k)
}

// pick reduces a ready set to the single operation to dispatch.
func pick(ready api.Interest) api.Interest {
	for _, op := range []api.Interest{api.OpConnect, api.OpAccept, api.OpRead, api.OpWrite} {
		if ready&op != 0 {
			return op
		}
	}
	return 0
}
