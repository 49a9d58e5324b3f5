package vfs

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/pkg/errors"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
	"github.com/bulldog-os/bulldog/go/kernel/file"
)

// MaxSymlinks bounds how many links one lookup may traverse.
const MaxSymlinks = 8

// Tree is the mount table plus the namespace below it. Every operation
// holds the tree lock for its whole duration.
type Tree struct {
	// FollowSymlinks enables link traversal. When off, any lookup that
	// meets a symlink fails with ENOSYS.
	FollowSymlinks bool

	mu     sync.Mutex
	mounts []Mount
}

func NewTree() *Tree {
	return &Tree{mounts: []Mount{{Path: "/", Root: NewDir()}}}
}

func (t *Tree) root() *Dir {
	for _, m := range t.mounts {
		if m.Path == "/" {
			return m.Root
		}
	}
	panic("vfs: no root mount")
}

// Mounts lists the mount table.
func (t *Tree) Mounts() []Mount {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Mount(nil), t.mounts...)
}

// walk finds the directory named by p, following links and creating missing
// directories when create is set. It also returns the canonical components
// of the directory it reached, for resolving relative links.
func (t *Tree) walk(p string, create bool, links *int) (*Dir, []string, error) {
outer:
	for {
		comps := Split(p)
		dir := t.root()
		var cwd []string
		for i, c := range comps {
			child, ok := dir.Children[c]
			if !ok {
				if !create {
					return nil, nil, errno.ENOENT
				}
				child = NewDir()
				dir.Children[c] = child
			}
			switch n := child.(type) {
			case *Dir:
				dir = n
				cwd = append(cwd, c)
			case *File:
				return nil, nil, errno.ENOTDIR
			case *Symlink:
				if err := t.follow(links); err != nil {
					return nil, nil, err
				}
				p = joinLink(cwd, n.Target, comps[i+1:])
				continue outer
			}
		}
		return dir, cwd, nil
	}
}

func (t *Tree) follow(links *int) error {
	if !t.FollowSymlinks {
		return errno.ENOSYS
	}
	*links++
	if *links > MaxSymlinks {
		return errno.ELOOP
	}
	return nil
}

// splitLeaf separates the parent directory from the final component.
func splitLeaf(p string) (string, string) {
	comps := Split(p)
	if len(comps) == 0 {
		return "/", ""
	}
	return "/" + strings.Join(comps[:len(comps)-1], "/"), comps[len(comps)-1]
}

// Mkdir creates p and any missing parents. Existing directories are fine.
func (t *Tree) Mkdir(p string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	links := 0
	if _, _, err := t.walk(Normalize(p), true, &links); err != nil {
		return errors.Wrapf(err, "mkdir %s", p)
	}
	return nil
}

// CreateFile places ops at p, creating missing parents and replacing any
// file or link already there. A *file.Shared is stored as-is; anything
// else is wrapped in a new shared handle owned by the tree.
func (t *Tree) CreateFile(p string, ops file.FileOps) (*file.Shared, error) {
	parent, name := splitLeaf(Normalize(p))
	if name == "" {
		return nil, errors.Wrapf(errno.EINVAL, "create %s", p)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	links := 0
	dir, _, err := t.walk(parent, true, &links)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", p)
	}
	switch old := dir.Children[name].(type) {
	case *Dir:
		return nil, errors.Wrapf(errno.EISDIR, "create %s", p)
	case *File:
		old.Handle.Close()
	}
	handle, ok := ops.(*file.Shared)
	if !ok {
		handle = file.NewShared(ops)
	}
	dir.Children[name] = &File{Handle: handle}
	return handle, nil
}

// Symlink creates a link at p pointing to target. Targets are not checked.
func (t *Tree) Symlink(p, target string) error {
	parent, name := splitLeaf(Normalize(p))
	if name == "" || target == "" {
		return errors.Wrapf(errno.EINVAL, "symlink %s", p)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	links := 0
	dir, _, err := t.walk(parent, true, &links)
	if err != nil {
		return errors.Wrapf(err, "symlink %s", p)
	}
	if _, ok := dir.Children[name]; ok {
		return errors.Wrapf(errno.EEXIST, "symlink %s", p)
	}
	dir.Children[name] = &Symlink{Target: target}
	return nil
}

// Resolve returns a new reference to the file at p. Every caller shares the
// same backend state. The caller must Close the handle when done.
func (t *Tree) Resolve(p string) (*file.Shared, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	links := 0
	p = Normalize(p)
	for {
		parent, name := splitLeaf(p)
		if name == "" {
			return nil, errno.EISDIR
		}
		dir, cwd, err := t.walk(parent, false, &links)
		if err != nil {
			return nil, err
		}
		switch n := dir.Children[name].(type) {
		case nil:
			return nil, errno.ENOENT
		case *Dir:
			return nil, errno.EISDIR
		case *File:
			return n.Handle.Retain(), nil
		case *Symlink:
			if err := t.follow(&links); err != nil {
				return nil, err
			}
			p = joinLink(cwd, n.Target, nil)
		}
	}
}

// List returns the names in directory p in natural order.
func (t *Tree) List(p string) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	links := 0
	dir, _, err := t.walk(Normalize(p), false, &links)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(dir.Children))
	for name := range dir.Children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return sortorder.NaturalLess(names[i], names[j]) })
	return names, nil
}

// Info describes one node.
type Info struct {
	Name   string
	Kind   Kind
	Size   int64
	Target string
}

// Stat describes the node at p without following a final symlink. Size is
// -1 for files whose backend has no length.
func (t *Tree) Stat(p string) (Info, error) {
	parent, name := splitLeaf(Normalize(p))
	if name == "" {
		return Info{Name: "/", Kind: KindDir}, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	links := 0
	dir, _, err := t.walk(parent, false, &links)
	if err != nil {
		return Info{}, err
	}
	info := Info{Name: name}
	switch n := dir.Children[name].(type) {
	case nil:
		return Info{}, errno.ENOENT
	case *Dir:
		info.Kind = KindDir
	case *File:
		info.Kind = KindFile
		info.Size = n.Handle.Size()
	case *Symlink:
		info.Kind = KindSymlink
		info.Target = n.Target
	}
	return info, nil
}

// Copy places an independent clone of src's backend at dst.
func (t *Tree) Copy(src, dst string) error {
	h, err := t.Resolve(src)
	if err != nil {
		return errors.Wrapf(err, "copy %s", src)
	}
	clone, err := h.Clone()
	h.Close()
	if err != nil {
		return errors.Wrapf(err, "copy %s", src)
	}
	if _, err := t.CreateFile(dst, clone); err != nil {
		clone.Close()
		return err
	}
	return nil
}

// Dump writes an indented listing of the whole tree.
func (t *Tree) Dump(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(w, "/")
	dump(w, t.root(), 1)
}

func dump(w io.Writer, dir *Dir, depth int) {
	names := make([]string, 0, len(dir.Children))
	for name := range dir.Children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return sortorder.NaturalLess(names[i], names[j]) })
	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		switch n := dir.Children[name].(type) {
		case *Dir:
			fmt.Fprintf(w, "%s%s/\n", indent, name)
			dump(w, n, depth+1)
		case *File:
			fmt.Fprintf(w, "%s%s (%d bytes)\n", indent, name, n.Handle.Size())
		case *Symlink:
			fmt.Fprintf(w, "%s%s -> %s\n", indent, name, n.Target)
		}
	}
}
