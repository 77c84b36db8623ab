// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the readiness selector and the single-threaded
// loop that dispatches ready registrations to their handlers.
//
// A Selector is owned by exactly one goroutine, the one running Loop.Run.
// Handlers receive their *Key and reach the selector through it, so
// registering a freshly accepted socket never needs shared state.
// Wakeup is the only method safe to call from other goroutines.
package reactor
