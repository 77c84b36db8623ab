//go:build !linux

// File: transport/tcp/socket_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package tcp

import "github.com/momentics/hioload-nio/api"

const DefaultBacklog = 128

func Listen(addr string, backlog int) (int, error) { return -1, api.ErrNotSupported }

func Accept(lfd int) (int, string, error) { return -1, "", api.ErrNotSupported }

func LocalAddr(fd int) (string, error) { return "", api.ErrNotSupported }

func Connect(addr string) (int, error) { return -1, api.ErrNotSupported }

func FinishConnect(fd int) error { return api.ErrNotSupported }

func Read(fd int, buf []byte) (int, error) { return 0, api.ErrNotSupported }

func Write(fd int, p []byte) (int, error) { return 0, api.ErrNotSupported }

func Close(fd int) error { return api.ErrNotSupported }

func PeerAddr(fd int) string { return "" }
