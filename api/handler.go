// File: api/handler.go
// Package api defines the payload source contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// PayloadSource supplies the next outgoing message of a connection.
type PayloadSource interface {
	Next() string
}
