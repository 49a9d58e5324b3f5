package trace

import (
	"fmt"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
	"github.com/bulldog-os/bulldog/go/syscalls"
)

// String renders the record with raw arguments, e.g.
// read(0x3, 0x600000, 0x10) = 8
func (r *Record) String() string {
	ret := fmt.Sprintf("%d", r.Ret)
	if errno.IsErr(r.Ret) {
		e := errno.Errno(-int64(r.Ret))
		ret = fmt.Sprintf("-1 %s (%s)", e.Name(), errno.Strerror(e))
	}
	return fmt.Sprintf("%s(%#x, %#x, %#x) = %s", syscalls.Name(r.Num), r.Args[0], r.Args[1], r.Args[2], ret)
}
