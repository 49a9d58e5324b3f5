package syscalls

import "fmt"

// Syscall numbers. These are the public ABI and never change.
const (
	SYS_WRITE = 1
	SYS_EXIT  = 2
	SYS_OPEN  = 3
	SYS_READ  = 4
	SYS_ALLOC = 5
	SYS_FREE  = 6
	SYS_CLOSE = 7
)

var names = map[uint64]string{
	SYS_WRITE: "write",
	SYS_EXIT:  "exit",
	SYS_OPEN:  "open",
	SYS_READ:  "read",
	SYS_ALLOC: "alloc",
	SYS_FREE:  "free",
	SYS_CLOSE: "close",
}

// Name returns the ABI name for num, or syscall_<num> for unknown numbers.
func Name(num uint64) string {
	if name, ok := names[num]; ok {
		return name
	}
	return fmt.Sprintf("syscall_%d", num)
}

// Number looks up a syscall by name.
func Number(name string) (uint64, bool) {
	for num, n := range names {
		if n == name {
			return num, true
		}
	}
	return 0, false
}
