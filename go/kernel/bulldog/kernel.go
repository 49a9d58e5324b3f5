// Package bulldog is the syscall layer of the kernel: a descriptor table, a
// VFS tree and the user heap, reached through a fixed syscall table.
package bulldog

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/pkg/errors"

	co "github.com/bulldog-os/bulldog/go/kernel/common"
	fdt "github.com/bulldog-os/bulldog/go/kernel/fd"
	"github.com/bulldog-os/bulldog/go/kernel/file"
	"github.com/bulldog-os/bulldog/go/kernel/heap"
	"github.com/bulldog-os/bulldog/go/kernel/vfs"
	"github.com/bulldog-os/bulldog/go/models"
	"github.com/bulldog-os/bulldog/go/models/cpu"
	"github.com/bulldog-os/bulldog/go/syscalls"
)

// ScratchSize bounds how many bytes one read or write moves.
const ScratchSize = 4096

// InvalidFlags is rejected by open.
const InvalidFlags = 0xFFFF_FFFF

// Recorder receives every completed syscall.
type Recorder interface {
	Record(num uint64, args [3]uint64, ret uint64) error
}

type Kernel struct {
	*co.KernelBase
	Fds   *fdt.Table
	Vfs   *vfs.Tree
	Heap  *heap.Heap
	Table syscalls.Table
	Log   *log.Logger
	// Recorder, if set, is handed every syscall after it returns.
	Recorder Recorder

	// Exited is set by exit, along with Status.
	Exited bool
	Status models.ExitStatus

	stdin   io.Reader
	console *file.Console
	stdout  *file.Shared
}

// NewKernel builds a kernel over mem. The heap arena named by the config is
// mapped into mem. Descriptor 0 reads from stdin; 1 and 2 share one console
// writing to stdout.
func NewKernel(mem *cpu.Mem, config *models.Config, stdin io.Reader, stdout io.Writer) (*Kernel, error) {
	k := &Kernel{
		KernelBase: co.NewKernelBase(mem, config),
		Fds:        fdt.NewTable(),
		Vfs:        vfs.NewTree(),
		stdin:      stdin,
	}
	config = k.Config
	k.Log = log.New(config.Output, "", 0)
	k.Table.Log = k.Log
	if stdout == nil {
		stdout = config.Output
	}
	k.console = file.NewConsole(stdout, config.ConsoleWidth)
	k.stdout = file.NewShared(k.console)

	if err := mem.MemMapProt(config.HeapBase, config.HeapSize, cpu.PROT_READ|cpu.PROT_WRITE, "heap"); err != nil {
		return nil, errors.Wrap(err, "failed to map heap")
	}
	k.Heap = heap.New(config.HeapBase, config.HeapSize)

	k.Vfs.FollowSymlinks = config.FollowSymlinks
	if err := k.Vfs.Seed(config.Hostname); err != nil {
		return nil, errors.Wrap(err, "failed to seed vfs")
	}
	k.logf("[VFS] mounted / (hostname %q, symlinks %v)", config.Hostname, config.FollowSymlinks)

	k.seedStdio()
	k.bind()
	return k, nil
}

func (k *Kernel) bind() {
	handlers := []struct {
		num uint64
		fn  interface{}
	}{
		{syscalls.SYS_WRITE, k.Write},
		{syscalls.SYS_EXIT, k.Exit},
		{syscalls.SYS_OPEN, k.Open},
		{syscalls.SYS_READ, k.Read},
		{syscalls.SYS_ALLOC, k.Alloc},
		{syscalls.SYS_FREE, k.Free},
		{syscalls.SYS_CLOSE, k.Close},
	}
	for _, h := range handlers {
		k.Table.Bind(h.num, k.Bind(syscalls.Name(h.num), h.fn))
	}
}

func (k *Kernel) seedStdio() {
	var in file.FileOps = file.Base{}
	if k.stdin != nil {
		in = file.NewInput(k.stdin)
	}
	k.Fds.SeedStdio(file.NewShared(in), k.stdout.Retain(), k.stdout.Retain())
}

// logf logs only in verbose mode.
func (k *Kernel) logf(format string, args ...interface{}) {
	if k.Config.Verbose {
		k.Log.Printf(format, args...)
	}
}

// Syscall is the kernel entry point for the trap shim.
func (k *Kernel) Syscall(num, a0, a1, a2 uint64) uint64 {
	// exit leaves the table empty; stdio comes back on the next entry
	if !k.Fds.HasStdio() {
		k.seedStdio()
	}
	args := []uint64{a0, a1, a2}
	var pre string
	if k.Config.TraceSys {
		pre = k.traceCall(num, args)
	}
	ret := k.Table.Dispatch(num, a0, a1, a2)
	if k.Config.TraceSys {
		fmt.Fprintln(k.Config.Output, pre+k.traceRet(num, args, ret))
	}
	if k.Recorder != nil {
		if err := k.Recorder.Record(num, [3]uint64{a0, a1, a2}, ret); err != nil {
			k.Log.Printf("trace recording stopped: %v", err)
			k.Recorder = nil
		}
	}
	return ret
}

func (k *Kernel) traceCall(num uint64, args []uint64) string {
	if e := k.Table.Entry(num); e != nil && e.Sys != nil {
		return e.Sys.Trace(args)
	}
	raw := make([]string, len(args))
	for i, a := range args {
		raw[i] = fmt.Sprintf("%#x", a)
	}
	return fmt.Sprintf("%s(%s)", k.Color.Name(syscalls.Name(num)), strings.Join(raw, ", "))
}

func (k *Kernel) traceRet(num uint64, args []uint64, ret uint64) string {
	if e := k.Table.Entry(num); e != nil && e.Sys != nil {
		return e.Sys.TraceRet(args, ret)
	}
	return " = " + co.TraceRet(k.KernelBase, nil, args, ret)
}

// vfsPath strips the VFS prefix. Paths outside the prefix are not VFS paths.
func (k *Kernel) vfsPath(p string) (string, bool) {
	prefix := strings.TrimRight(k.Config.VfsPrefix, "/")
	if p == prefix {
		return "/", true
	}
	if strings.HasPrefix(p, prefix+"/") {
		return p[len(prefix):], true
	}
	return "", false
}

// Console returns the sink behind descriptors 1 and 2.
func (k *Kernel) Console() *file.Console {
	return k.console
}
