// Package fd maps small integers to open resources.
package fd

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
	"github.com/bulldog-os/bulldog/go/kernel/file"
)

const (
	Stdin  = 0
	Stdout = 1
	Stderr = 2

	// FirstFd is the lowest descriptor the allocator hands out.
	FirstFd = 3
	// MaxFd is the highest descriptor the allocator hands out.
	MaxFd = 64
)

// Entry is one open descriptor.
type Entry struct {
	File   file.FileOps
	Flags  uint64
	Offset uint64
}

// Table is the descriptor table. Allocation always returns the lowest free
// descriptor at or above FirstFd.
type Table struct {
	mu      sync.Mutex
	entries map[int]*Entry
}

func NewTable() *Table {
	return &Table{entries: make(map[int]*Entry)}
}

// Alloc installs e at the lowest free descriptor.
func (t *Table) Alloc(e *Entry) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for fd := FirstFd; fd <= MaxFd; fd++ {
		if _, ok := t.entries[fd]; !ok {
			t.entries[fd] = e
			return fd, nil
		}
	}
	return -1, errno.EMFILE
}

func (t *Table) Get(fd int) (*Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[fd]; ok {
		return e, nil
	}
	return nil, errno.EBADF
}

// Close removes fd and closes its backend. The reserved descriptors cannot
// be closed.
func (t *Table) Close(fd int) error {
	if fd < FirstFd {
		return errno.EBADF
	}
	t.mu.Lock()
	e, ok := t.entries[fd]
	delete(t.entries, fd)
	t.mu.Unlock()
	if !ok {
		return errno.EBADF
	}
	return e.File.Close()
}

// ClearAll closes every descriptor, reserved ones included. The first
// backend error is returned after all entries are gone.
func (t *Table) ClearAll() error {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[int]*Entry)
	t.mu.Unlock()

	var first error
	for _, fd := range sortedFds(entries) {
		if err := entries[fd].File.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "closing fd %d", fd)
		}
	}
	return first
}

// SeedStdio installs descriptors 0, 1 and 2, replacing whatever was there.
func (t *Table) SeedStdio(in, out, err file.FileOps) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[Stdin] = &Entry{File: in}
	t.entries[Stdout] = &Entry{File: out}
	t.entries[Stderr] = &Entry{File: err}
}

// HasStdio reports whether the reserved descriptors are installed.
func (t *Table) HasStdio() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for fd := Stdin; fd <= Stderr; fd++ {
		if _, ok := t.entries[fd]; !ok {
			return false
		}
	}
	return true
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Fds lists the open descriptors in ascending order.
func (t *Table) Fds() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return sortedFds(t.entries)
}

func sortedFds(entries map[int]*Entry) []int {
	fds := make([]int, 0, len(entries))
	for fd := range entries {
		fds = append(fds, fd)
	}
	sort.Ints(fds)
	return fds
}
