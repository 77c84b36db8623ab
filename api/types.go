// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

// Phase enumerates the lifecycle state of a registered socket.
type Phase int

const (
	PhaseUnknown Phase = iota
	AwaitingConnect
	AwaitingRead
	AwaitingWrite
	Listening
	Closed
)

func (p Phase) String() string {
	switch p {
	case AwaitingConnect:
		return "awaiting-connect"
	case AwaitingRead:
		return "awaiting-read"
	case AwaitingWrite:
		return "awaiting-write"
	case Listening:
		return "listening"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Interest returns the readiness operation a socket in phase p waits for.
func (p Phase) Interest() Interest {
	switch p {
	case AwaitingConnect:
		return OpConnect
	case AwaitingRead:
		return OpRead
	case AwaitingWrite:
		return OpWrite
	case Listening:
		return OpAccept
	default:
		return 0
	}
}

// Role tells which side of the exchange a connection plays.
type Role int

const (
	RoleClient Role = iota + 1
	RoleServer
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleServer:
		return "server"
	default:
		return "unknown"
	}
}

// Sentinel terminates a connection instead of starting a reply cycle.
const Sentinel = "bye"
