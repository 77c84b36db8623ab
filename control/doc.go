// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and debug introspection for the client and
// server processes.
//
// Provides:
//   - YAML configuration with compiled-in defaults
//   - Prometheus counters for connection lifecycle and traffic
//   - Named debug probes and an HTTP endpoint exporting them with /metrics
package control
