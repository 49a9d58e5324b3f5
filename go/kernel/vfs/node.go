// Package vfs is the in-memory filesystem tree: directories, files holding
// shared backend handles, and symlinks, under a single root mount.
package vfs

import (
	"github.com/bulldog-os/bulldog/go/kernel/file"
)

// Node is one of *Dir, *File or *Symlink.
type Node interface {
	Kind() Kind
}

type Kind int

const (
	KindDir Kind = iota
	KindFile
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	}
	return "unknown"
}

type Dir struct {
	Children map[string]Node
}

type File struct {
	Handle *file.Shared
}

type Symlink struct {
	Target string
}

func NewDir() *Dir {
	return &Dir{Children: make(map[string]Node)}
}

func (*Dir) Kind() Kind     { return KindDir }
func (*File) Kind() Kind    { return KindFile }
func (*Symlink) Kind() Kind { return KindSymlink }

// Mount attaches a tree at a path prefix. Only "/" is mounted.
type Mount struct {
	Path string
	Root *Dir
}
