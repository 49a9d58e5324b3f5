package bulldog

import (
	co "github.com/bulldog-os/bulldog/go/kernel/common"
	"github.com/bulldog-os/bulldog/go/kernel/errno"
	fdt "github.com/bulldog-os/bulldog/go/kernel/fd"
	"github.com/bulldog-os/bulldog/go/kernel/file"
	"github.com/bulldog-os/bulldog/go/models/cpu"
)

// Open syscall. Paths under the VFS prefix open the named file; any other
// path gets a descriptor on the console.
func (k *Kernel) Open(path string, flags co.Flags, mode co.Mode) uint64 {
	if path == "" || uint64(flags) == InvalidFlags {
		return errno.Encode(errno.EINVAL)
	}
	var f file.FileOps
	if p, ok := k.vfsPath(path); ok {
		shared, err := k.Vfs.Resolve(p)
		if err != nil {
			k.logf("[OPEN] %s: %v", path, err)
			return errno.Ret(0, err)
		}
		f = shared
	} else {
		f = k.stdout.Retain()
	}
	fd, err := k.Fds.Alloc(&fdt.Entry{File: f, Flags: uint64(flags)})
	if err != nil {
		f.Close()
		k.logf("[OPEN] %s: %v", path, err)
		return errno.Ret(0, err)
	}
	k.logf("[OPEN] %s -> fd %d", path, fd)
	return uint64(fd)
}

// Read syscall
func (k *Kernel) Read(fd co.Fd, buf co.Obuf, size co.Len) uint64 {
	if size == 0 {
		return 0
	}
	e, err := k.Fds.Get(int(fd))
	if err != nil {
		return errno.Ret(0, err)
	}
	n := uint64(size)
	if n > ScratchSize {
		n = ScratchSize
	}
	if err := co.AccessOK(k.Mem, buf.Addr, n, cpu.PROT_WRITE); err != nil {
		return errno.Ret(0, err)
	}
	tmp := make([]byte, n)
	got, err := e.File.Read(tmp)
	if err != nil {
		return errno.Ret(0, err)
	}
	if err := buf.Write(tmp[:got]); err != nil {
		return errno.Ret(0, err)
	}
	e.Offset += uint64(got)
	return uint64(got)
}

// Write syscall
func (k *Kernel) Write(fd co.Fd, buf co.Buf, size co.Len) uint64 {
	if fd == fdt.Stdin {
		return errno.Encode(errno.EBADF)
	}
	if size == 0 {
		return 0
	}
	e, err := k.Fds.Get(int(fd))
	if err != nil {
		return errno.Ret(0, err)
	}
	n := uint64(size)
	if n > ScratchSize {
		n = ScratchSize
	}
	tmp, err := buf.Read(n)
	if err != nil {
		return errno.Ret(0, err)
	}
	wrote, err := e.File.Write(tmp)
	if err != nil {
		return errno.Ret(0, err)
	}
	e.Offset += uint64(wrote)
	return uint64(wrote)
}

// Close syscall
func (k *Kernel) Close(fd co.Fd) uint64 {
	if err := k.Fds.Close(int(fd)); err != nil {
		k.logf("[CLOSE] fd %d: %v", fd, err)
		return errno.Ret(0, err)
	}
	k.logf("[CLOSE] fd %d", fd)
	return 0
}
