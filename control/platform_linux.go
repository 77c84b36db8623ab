//go:build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Runtime probes available on every Linux process.

package control

import (
	"os"
	"runtime"
)

// RegisterPlatformProbes sets process-level debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("runtime.goroutines", func() any {
		return runtime.NumGoroutine()
	})
	dp.RegisterProbe("process.pid", func() any {
		return os.Getpid()
	})
}
