// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Readiness operations a registration can ask the selector about.

package api

import "strings"

// Interest is a set of readiness operations. A registration holds one at a time.
type Interest uint8

const (
	OpConnect Interest = 1 << iota
	OpAccept
	OpRead
	OpWrite
)

func (i Interest) String() string {
	if i == 0 {
		return "none"
	}
	var parts []string
	for _, op := range []struct {
		bit  Interest
		name string
	}{{OpConnect, "connect"}, {OpAccept, "accept"}, {OpRead, "read"}, {OpWrite, "write"}} {
		if i&op.bit != 0 {
			parts = append(parts, op.name)
		}
	}
	return strings.Join(parts, "|")
}

// Single reports whether exactly one operation is set.
func (i Interest) Single() bool {
	return i != 0 && i&(i-1) == 0
}
