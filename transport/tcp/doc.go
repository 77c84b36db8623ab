// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package tcp wraps the non-blocking TCP socket calls the reactor drives:
// listen, accept, connect and its completion check, read and write.
// Would-block outcomes surface as ErrWouldBlock and are never failures.
package tcp
