package control_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/momentics/hioload-nio/control"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	dp.RegisterProbe("registrations", func() any { return 3 })
	control.RegisterPlatformProbes(dp)

	state := dp.DumpState()
	assert.Equal(t, 3, state["registrations"])
	assert.Contains(t, state, "platform.cpus")
}

func TestDebugServer(t *testing.T) {
	reg := prometheus.NewRegistry()
	control.NewMetrics(reg).ConnOpened("server")
	dp := control.NewDebugProbes()
	dp.RegisterProbe("registrations", func() any { return 1 })

	srv, err := control.NewDebugServer("127.0.0.1:0", reg, dp, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + srv.Addr() + "/debug/probes")
	require.NoError(t, err)
	var state map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	resp.Body.Close()
	assert.Equal(t, float64(1), state["registrations"])

	resp, err = client.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "hioload_nio_connections_opened_total"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("debug server did not stop")
	}
}
