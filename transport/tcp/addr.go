// File: transport/tcp/addr.go
// Author: momentics <momentics@gmail.com>

package tcp

import (
	"errors"
	"net"
)

// ErrWouldBlock signals that the socket is not ready for the requested call.
var ErrWouldBlock = errors.New("tcp: operation would block")

// resolve turns "host:port" into a TCP address, defaulting the host to loopback.
func resolve(addr string) (*net.TCPAddr, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	if host == "" {
		host = "0.0.0.0"
	}
	return net.ResolveTCPAddr("tcp", net.JoinHostPort(host, port))
}
