// Package syscalls holds the syscall numbers and the dispatch table.
package syscalls

import (
	"fmt"
	"log"

	co "github.com/bulldog-os/bulldog/go/kernel/common"
	"github.com/bulldog-os/bulldog/go/kernel/errno"
)

// TableSize bounds the syscall numbers the table can hold.
const TableSize = 512

// Handler is the uniform calling convention of every table slot.
type Handler func(a0, a1, a2 uint64) uint64

type Entry struct {
	Name string
	Fn   Handler
	// Sys is the typed binding behind Fn, if any. It drives tracing.
	Sys *co.Syscall
}

// Table maps syscall numbers to handlers.
type Table struct {
	// Log receives a warning for every unknown syscall, if set.
	Log *log.Logger

	slots [TableSize]*Entry
}

// Register installs fn at num. Registering outside the table or twice on the
// same number is a programming error.
func (t *Table) Register(num uint64, name string, fn Handler) *Entry {
	if num >= TableSize {
		panic(fmt.Sprintf("syscall %s: number %d outside table", name, num))
	}
	if t.slots[num] != nil {
		panic(fmt.Sprintf("syscall %s: number %d already bound to %s", name, num, t.slots[num].Name))
	}
	e := &Entry{Name: name, Fn: fn}
	t.slots[num] = e
	return e
}

// Bind installs a typed syscall through its trampoline.
func (t *Table) Bind(num uint64, sys *co.Syscall) {
	t.Register(num, sys.Name, sys.Handler()).Sys = sys
}

// Entry returns the slot at num, or nil.
func (t *Table) Entry(num uint64) *Entry {
	if num >= TableSize {
		return nil
	}
	return t.slots[num]
}

func (t *Table) Lookup(num uint64) (Handler, bool) {
	if e := t.Entry(num); e != nil {
		return e.Fn, true
	}
	return nil, false
}

// Dispatch runs the handler for num and returns its raw result. Unknown
// numbers return ENOSYS.
func (t *Table) Dispatch(num, a0, a1, a2 uint64) uint64 {
	fn, ok := t.Lookup(num)
	if !ok {
		if t.Log != nil {
			t.Log.Printf("unknown syscall %d", num)
		}
		return errno.Encode(errno.ENOSYS)
	}
	return fn(a0, a1, a2)
}
