//go:build linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Non-blocking listening socket: bind, listen, accept one connection per call.

package tcp

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DefaultBacklog is used when Listen is given a non-positive backlog.
const DefaultBacklog = 128

// Listen opens a non-blocking listening socket bound to addr.
func Listen(addr string, backlog int) (int, error) {
	tcpAddr, err := resolve(addr)
	if err != nil {
		return -1, fmt.Errorf("resolve %s: %w", addr, err)
	}
	if backlog <= 0 {
		backlog = DefaultBacklog
	}
	domain, sa := toSockaddr(tcpAddr)
	fd, err := unix.Socket(domain, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return -1, fmt.Errorf("socket create: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("bind %s: %w", addr, err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("listen %s: %w", addr, err)
	}
	return fd, nil
}

// Accept takes at most one pending connection off lfd. The accepted socket
// is already non-blocking. ErrWouldBlock means the queue was empty.
func Accept(lfd int) (int, string, error) {
	for {
		fd, sa, err := unix.Accept4(lfd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		switch err {
		case nil:
			return fd, sockaddrString(sa), nil
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			return -1, "", ErrWouldBlock
		default:
			return -1, "", err
		}
	}
}

// LocalAddr reports the address fd is bound to, e.g. to learn an ephemeral port.
func LocalAddr(fd int) (string, error) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return "", err
	}
	return sockaddrString(sa), nil
}
