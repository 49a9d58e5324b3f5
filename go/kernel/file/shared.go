package file

import (
	"sync"
	"sync/atomic"
)

// Shared is a reference-counted handle to one backend. Every holder sees the
// same state; operations serialize on the handle's lock. Close drops the
// caller's reference and closes the backend when it was the last one.
type Shared struct {
	mu   sync.Mutex
	ops  FileOps
	refs int32
}

// NewShared returns a handle holding one reference.
func NewShared(ops FileOps) *Shared {
	return &Shared{ops: ops, refs: 1}
}

// Retain adds a reference and returns the same handle.
func (s *Shared) Retain() *Shared {
	atomic.AddInt32(&s.refs, 1)
	return s
}

func (s *Shared) Refs() int {
	return int(atomic.LoadInt32(&s.refs))
}

// Backend exposes the wrapped backend, for identity checks.
func (s *Shared) Backend() FileOps {
	return s.ops
}

func (s *Shared) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ops.Read(p)
}

func (s *Shared) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ops.Write(p)
}

func (s *Shared) Close() error {
	if atomic.AddInt32(&s.refs, -1) > 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ops.Close()
}

func (s *Shared) Rewind() {
	s.mu.Lock()
	s.ops.Rewind()
	s.mu.Unlock()
}

// Clone copies the backend into a fresh, unshared handle.
func (s *Shared) Clone() (FileOps, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops, err := s.ops.Clone()
	if err != nil {
		return nil, err
	}
	return NewShared(ops), nil
}

func (s *Shared) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sz, ok := s.ops.(Sizer); ok {
		return sz.Size()
	}
	return -1
}
