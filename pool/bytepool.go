// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>

package pool

import "sync"

// DefaultReadBufferSize bounds a single read on a connection.
const DefaultReadBufferSize = 1024

// BytePool recycles fixed-size read buffers between connections.
type BytePool struct {
	size int
	pool sync.Pool
}

// NewBytePool creates a pool handing out buffers of exactly size bytes.
func NewBytePool(size int) *BytePool {
	if size <= 0 {
		size = DefaultReadBufferSize
	}
	b := &BytePool{size: size}
	b.pool.New = func() any {
		buf := make([]byte, size)
		return &buf
	}
	return b
}

// Size returns the length of buffers handed out by the pool.
func (b *BytePool) Size() int { return b.size }

// GetBuffer returns a buffer from the pool.
func (b *BytePool) GetBuffer() []byte {
	return *(b.pool.Get().(*[]byte))
}

// PutBuffer returns a buffer to the pool. Foreign sizes are left to the GC.
func (b *BytePool) PutBuffer(buf []byte) {
	if cap(buf) != b.size {
		return
	}
	buf = buf[:b.size]
	b.pool.Put(&buf)
}
