package api_test

import (
	"testing"

	"github.com/momentics/hioload-nio/api"
)

func TestPhaseInterest(t *testing.T) {
	cases := map[api.Phase]api.Interest{
		api.AwaitingConnect: api.OpConnect,
		api.AwaitingRead:    api.OpRead,
		api.AwaitingWrite:   api.OpWrite,
		api.Listening:       api.OpAccept,
		api.Closed:          0,
	}
	for phase, want := range cases {
		if got := phase.Interest(); got != want {
			t.Errorf("%s.Interest() = %s, want %s", phase, got, want)
		}
	}
}

func TestInterestSingle(t *testing.T) {
	for _, op := range []api.Interest{api.OpConnect, api.OpAccept, api.OpRead, api.OpWrite} {
		if !op.Single() {
			t.Errorf("%s should be single", op)
		}
	}
	if (api.OpRead | api.OpWrite).Single() {
		t.Error("read|write is not a single interest")
	}
	if api.Interest(0).Single() {
		t.Error("empty interest is not single")
	}
	if got := (api.OpRead | api.OpWrite).String(); got != "read|write" {
		t.Errorf("String() = %q", got)
	}
}
