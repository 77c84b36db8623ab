//go:build linux

// File: reactor/selector_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based selector. Level-triggered: a key stays ready until
// its handler performs the operation or flips the interest.

package reactor

import (
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/momentics/hioload-nio/api"
	"golang.org/x/sys/unix"
)

// Selector multiplexes registered descriptors over one epoll instance.
type Selector struct {
	epfd   int
	events []unix.EpollEvent
	keys   map[int]*Key
	ready  *queue.Queue // of *Key, resolved at wait time

	wmu    sync.Mutex // guards wakefd against a concurrent Close
	wakefd int

	registered atomic.Int64
	closed     bool
}

// NewSelector creates an epoll instance able to report maxEvents per wait.
func NewSelector(maxEvents int) (*Selector, error) {
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	wakefd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		unix.Close(epfd)
		return nil, fmt.Errorf("eventfd: %w", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakefd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakefd, &ev); err != nil {
		unix.Close(wakefd)
		unix.Close(epfd)
		return nil, fmt.Errorf("epoll ctl add eventfd: %w", err)
	}
	return &Selector{
		epfd:   epfd,
		events: make([]unix.EpollEvent, maxEvents),
		keys:   make(map[int]*Key),
		ready:  queue.New(),
		wakefd: wakefd,
	}, nil
}

// Register adds fd with a single interest and attaches h to it.
func (s *Selector) Register(fd int, op api.Interest, h Handler) (*Key, error) {
	if s.closed {
		return nil, api.ErrClosed
	}
	if !op.Single() || h == nil || fd < 0 {
		return nil, fmt.Errorf("register fd %d for %s: %w", fd, op, api.ErrInvalidArgument)
	}
	if _, dup := s.keys[fd]; dup {
		return nil, fmt.Errorf("fd %d already registered: %w", fd, api.ErrInvalidArgument)
	}
	ev := unix.EpollEvent{Events: epollEvents(op), Fd: int32(fd)}
	if err := unix.EpollCtl(s.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return nil, fmt.Errorf("epoll ctl add: %w", err)
	}
	k := &Key{fd: fd, interest: op, handler: h, sel: s, valid: true}
	s.keys[fd] = k
	s.registered.Add(1)
	return k, nil
}

func (s *Selector) modify(k *Key, op api.Interest) error {
	ev := unix.EpollEvent{Events: epollEvents(op), Fd: int32(k.fd)}
	if err := unix.EpollCtl(s.epfd, unix.EPOLL_CTL_MOD, k.fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl mod: %w", err)
	}
	return nil
}

func (s *Selector) deregister(k *Key) error {
	if s.keys[k.fd] != k {
		return nil
	}
	delete(s.keys, k.fd)
	s.registered.Add(-1)
	if s.closed {
		return nil
	}
	if err := unix.EpollCtl(s.epfd, unix.EPOLL_CTL_DEL, k.fd, nil); err != nil {
		return fmt.Errorf("epoll ctl del: %w", err)
	}
	return nil
}

// Select blocks until at least one registration is ready or Wakeup is
// called, then queues the ready keys for Next. It returns how many keys
// were queued; zero means the wait was woken up.
func (s *Selector) Select() (int, error) {
	for {
		n, err := unix.EpollWait(s.epfd, s.events, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		queued := 0
		for i := 0; i < n; i++ {
			ev := s.events[i]
			fd := int(ev.Fd)
			if fd == s.wakefd {
				s.drainWakeup()
				continue
			}
			k, ok := s.keys[fd]
			if !ok || !k.valid {
				continue
			}
			k.ready = readyOps(ev.Events, k.interest)
			if k.ready == 0 {
				continue
			}
			s.ready.Add(k)
			queued++
		}
		return queued, nil
	}
}

// Next pops the next ready key. Keys cancelled after the wait are skipped.
func (s *Selector) Next() (*Key, bool) {
	for s.ready.Length() > 0 {
		k := s.ready.Remove().(*Key)
		if k.valid && k.ready != 0 {
			return k, true
		}
	}
	return nil, false
}

// Keys returns a snapshot of the live registrations.
func (s *Selector) Keys() []*Key {
	out := make([]*Key, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, k)
	}
	return out
}

// Len returns the number of live registrations.
func (s *Selector) Len() int { return len(s.keys) }

// Registrations is Len readable from any goroutine.
func (s *Selector) Registrations() int64 { return s.registered.Load() }

// Wakeup interrupts a blocked Select. Safe for concurrent use.
func (s *Selector) Wakeup() error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.wakefd < 0 {
		return api.ErrClosed
	}
	var one [8]byte
	binary.NativeEndian.PutUint64(one[:], 1)
	if _, err := unix.Write(s.wakefd, one[:]); err != nil && err != unix.EAGAIN {
		return fmt.Errorf("eventfd write: %w", err)
	}
	return nil
}

func (s *Selector) drainWakeup() {
	var buf [8]byte
	_, _ = unix.Read(s.wakefd, buf[:])
}

// Close invalidates every key and releases the epoll instance. The
// registered descriptors themselves stay open; their handlers own them.
func (s *Selector) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	for fd, k := range s.keys {
		k.valid = false
		delete(s.keys, fd)
	}
	s.registered.Store(0)
	for s.ready.Length() > 0 {
		s.ready.Remove()
	}
	s.wmu.Lock()
	werr := unix.Close(s.wakefd)
	s.wakefd = -1
	s.wmu.Unlock()
	err := unix.Close(s.epfd)
	s.epfd = -1
	if err != nil {
		return err
	}
	return werr
}

func epollEvents(op api.Interest) uint32 {
	switch op {
	case api.OpRead, api.OpAccept:
		return unix.EPOLLIN
	case api.OpWrite, api.OpConnect:
		return unix.EPOLLOUT
	default:
		return 0
	}
}

// readyOps maps epoll flags onto the key's interest. Error and hang-up
// conditions report the current interest so the handler runs its call
// and observes the failure or end-of-stream itself.
func readyOps(events uint32, interest api.Interest) api.Interest {
	var ready api.Interest
	if events&unix.EPOLLIN != 0 {
		ready |= interest & (api.OpRead | api.OpAccept)
	}
	if events&unix.EPOLLOUT != 0 {
		ready |= interest & (api.OpWrite | api.OpConnect)
	}
	if events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
		ready |= interest
	}
	return ready
}
