package api_test

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/momentics/hioload-nio/api"
)

func TestErrorKindsMatchSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want error
		kind api.ErrorKind
	}{
		{api.ConnectError("finish-connect", syscall.ECONNREFUSED), api.ErrConnect, api.KindConnect},
		{api.IOError("read", syscall.ECONNRESET), api.ErrIO, api.KindIO},
		{api.DecodeError(3), api.ErrDecode, api.KindDecode},
		{api.SelectorError("wait", syscall.EBADF), api.ErrSelector, api.KindSelector},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("conn: %w", c.err)
		if !errors.Is(wrapped, c.want) {
			t.Errorf("%v does not match %v", c.err, c.want)
		}
		if got := api.KindOf(wrapped); got != c.kind {
			t.Errorf("KindOf(%v) = %v, want %v", c.err, got, c.kind)
		}
	}
	if errors.Is(api.IOError("read", nil), api.ErrConnect) {
		t.Error("io error must not match ErrConnect")
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	err := api.ConnectError("finish-connect", syscall.ECONNREFUSED)
	if !errors.Is(err, syscall.ECONNREFUSED) {
		t.Error("cause should be reachable through Unwrap")
	}
}

func TestErrorMessageCarriesContext(t *testing.T) {
	err := api.IOError("write", syscall.EPIPE).WithPeer("127.0.0.1:9999", api.AwaitingWrite)
	msg := err.Error()
	for _, part := range []string{"io error", "write", "127.0.0.1:9999", "awaiting-write"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q lacks %q", msg, part)
		}
	}
	if api.KindOf(errors.New("plain")) != 0 {
		t.Error("plain errors have no kind")
	}
}
