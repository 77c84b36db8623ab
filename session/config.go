// File: session/config.go
// Author: momentics <momentics@gmail.com>

package session

import (
	"github.com/momentics/hioload-nio/api"
	"github.com/momentics/hioload-nio/control"
	"github.com/momentics/hioload-nio/payload"
	"github.com/momentics/hioload-nio/pool"
	"go.uber.org/zap"
)

// Config carries the collaborators shared by the connections of one loop.
// Zero values are replaced with defaults.
type Config struct {
	// Payload supplies outgoing messages. Nil selects the role's default
	// vocabulary.
	Payload  api.PayloadSource
	Buffers  *pool.BytePool
	Logger   *zap.Logger
	Metrics  *control.Metrics
	Observer api.Observer
}

func (c Config) withDefaults(role api.Role) Config {
	if c.Payload == nil {
		if role == api.RoleClient {
			c.Payload = payload.NewRandom(payload.ClientVocabulary)
		} else {
			c.Payload = payload.NewRandom(payload.ServerVocabulary)
		}
	}
	if c.Buffers == nil {
		c.Buffers = pool.NewBytePool(pool.DefaultReadBufferSize)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

func (c Config) emit(ev api.ConnEvent) {
	if c.Observer != nil {
		c.Observer(ev)
	}
}
