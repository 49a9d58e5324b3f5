// Package file holds the resource backends reachable through descriptors
// and the filesystem tree.
package file

import (
	"github.com/bulldog-os/bulldog/go/kernel/errno"
)

// FileOps is implemented by every resource kind. Embed Base to inherit
// failing defaults for the capabilities a backend lacks.
type FileOps interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	// Rewind resets any internal cursor to the start.
	Rewind()
	// Clone returns an independent copy of the backend's state.
	Clone() (FileOps, error)
}

// Sizer is implemented by backends that know their length.
type Sizer interface {
	Size() int64
}

// Base supplies the default capability set.
type Base struct{}

func (Base) Read(p []byte) (int, error)  { return 0, errno.ENOSYS }
func (Base) Write(p []byte) (int, error) { return 0, errno.ENOSYS }
func (Base) Close() error                { return nil }
func (Base) Rewind()                     {}
func (Base) Clone() (FileOps, error)     { return nil, errno.ENOSYS }
