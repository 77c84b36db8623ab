// Package pool
// Author: momentics <momentics@gmail.com>
//
// Buffer recycling for connection reads. Each connection borrows one bounded
// read buffer for its lifetime and returns it on close.
package pool
