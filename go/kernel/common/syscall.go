package common

import (
	"reflect"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
)

var uint64Type = reflect.TypeOf(uint64(0))

// Syscall is a typed handler bound to the raw three-register convention.
type Syscall struct {
	Name   string
	Kernel *KernelBase
	Func   reflect.Value
	In     []reflect.Type
}

// Call converts the raw registers and invokes the handler. Arguments that
// cannot be converted (an unreadable string pointer) fail with EFAULT
// before the handler runs.
func (sys *Syscall) Call(args []uint64) uint64 {
	converted, err := sys.Kernel.Argjoy.Convert(sys.In, false, args[:len(sys.In)])
	if err != nil {
		return errno.Encode(errno.EFAULT)
	}
	out := sys.Func.Call(converted)
	return out[0].Uint()
}

// Handler returns a trampoline with the uniform table signature. Slots the
// handler does not use are discarded.
func (sys *Syscall) Handler() func(a0, a1, a2 uint64) uint64 {
	return func(a0, a1, a2 uint64) uint64 {
		return sys.Call([]uint64{a0, a1, a2})
	}
}
