package pool_test

import (
	"testing"

	"github.com/momentics/hioload-nio/pool"
)

func TestBytePoolSize(t *testing.T) {
	bp := pool.NewBytePool(0)
	if bp.Size() != pool.DefaultReadBufferSize {
		t.Fatalf("default size = %d, want %d", bp.Size(), pool.DefaultReadBufferSize)
	}
	buf := bp.GetBuffer()
	if len(buf) != pool.DefaultReadBufferSize {
		t.Fatalf("buffer len = %d", len(buf))
	}
}

func TestBytePoolReuse(t *testing.T) {
	bp := pool.NewBytePool(64)
	b1 := bp.GetBuffer()
	bp.PutBuffer(b1[:10])
	b2 := bp.GetBuffer()
	// A resliced buffer must come back at full length.
	if len(b2) != 64 {
		t.Errorf("buffer len = %d, want 64", len(b2))
	}
	bp.PutBuffer(make([]byte, 32)) // foreign size is ignored
	if got := len(bp.GetBuffer()); got != 64 {
		t.Errorf("buffer len = %d after foreign put, want 64", got)
	}
}
