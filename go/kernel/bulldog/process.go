package bulldog

import (
	co "github.com/bulldog-os/bulldog/go/kernel/common"
	"github.com/bulldog-os/bulldog/go/kernel/errno"
	"github.com/bulldog-os/bulldog/go/models"
)

// Exit syscall. Every descriptor is closed, the reserved ones included, and
// the status is recorded for whoever drives the machine.
func (k *Kernel) Exit(code co.Code) uint64 {
	k.Log.Printf("[EXIT] code %d", code)
	if err := k.Fds.ClearAll(); err != nil {
		k.Log.Printf("[EXIT] %v", err)
	}
	if err := k.console.Flush(); err != nil {
		k.Log.Printf("[EXIT] console: %v", err)
	}
	k.Exited = true
	k.Status = models.ExitStatus(code)
	return 0
}

// Alloc syscall
func (k *Kernel) Alloc(size co.Len) uint64 {
	return errno.Ret(k.Heap.Alloc(uint64(size)))
}

// Free syscall
func (k *Kernel) Free(ptr co.Ptr, size co.Len) uint64 {
	return errno.Ret(0, k.Heap.Free(uint64(ptr), uint64(size)))
}
