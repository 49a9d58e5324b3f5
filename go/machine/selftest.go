package machine

import (
	"bytes"
	"fmt"
	"log"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
	"github.com/bulldog-os/bulldog/go/sys"
	"github.com/bulldog-os/bulldog/go/syscalls"
)

const bogusPtr = 0xFFFF_FFFF_FFFF_FFFF

// SelfTest returns a program that exercises every syscall from user mode,
// logs one [HARNESS] line per check and exits with the number of failures.
func SelfTest(hostname string, logger *log.Logger) Program {
	return func(s *sys.Client) error {
		h := &harness{s: s, log: logger, hostname: hostname}
		h.writes()
		h.opens()
		h.reads()
		h.heap()
		h.table()
		if h.failed > 0 {
			h.log.Printf("[HARNESS] %d checks failed", h.failed)
		} else {
			h.log.Printf("[HARNESS] all checks passed")
		}
		return s.Exit(h.failed)
	}
}

type harness struct {
	s        *sys.Client
	log      *log.Logger
	hostname string
	failed   int
}

func formatRet(raw uint64) string {
	if !errno.IsErr(raw) {
		return fmt.Sprintf("%d", int64(raw))
	}
	e := errno.Errno(-int64(raw))
	return fmt.Sprintf("-%d (%s) [raw=%#x]", e.Num(), e.Name(), raw)
}

func (h *harness) check(call, name string, raw uint64, ok bool) {
	status := "ok"
	if !ok {
		status = "FAIL"
		h.failed++
	}
	h.log.Printf("[HARNESS] call=%s case=%s ret=%s %s", call, name, formatRet(raw), status)
}

func (h *harness) expect(call, name string, raw uint64, want errno.Errno) {
	h.check(call, name, raw, raw == errno.Encode(want))
}

func (h *harness) syscall(num, a0, a1, a2 uint64) uint64 {
	ret, err := h.s.Syscall(num, a0, a1, a2)
	if err != nil {
		h.log.Printf("[HARNESS] %s: %v", syscalls.Name(num), err)
		h.failed++
		return errno.Encode(errno.EIO)
	}
	return ret
}

func (h *harness) stage(s string) uint64 {
	addr, err := h.s.StageString(s)
	if err != nil {
		h.log.Printf("[HARNESS] stage: %v", err)
		h.failed++
	}
	return addr
}

// buf is user memory past the staging area.
func (h *harness) buf() uint64 {
	return h.s.Scratch + 0x1000
}

func (h *harness) open(path string, flags uint64) uint64 {
	return h.syscall(syscalls.SYS_OPEN, h.stage(path), flags, 0)
}

func (h *harness) close(fd uint64) uint64 {
	return h.syscall(syscalls.SYS_CLOSE, fd, 0, 0)
}

func (h *harness) writes() {
	msg := "Hello from harness!\n"
	ret := h.syscall(syscalls.SYS_WRITE, 1, h.stage(msg), uint64(len(msg)))
	h.check("write", "happy", ret, ret == uint64(len(msg)))
	h.expect("write", "bogus_ptr", h.syscall(syscalls.SYS_WRITE, 1, bogusPtr, 8), errno.EFAULT)
	h.expect("write", "invalid_fd", h.syscall(syscalls.SYS_WRITE, 99, h.stage("Hello"), 6), errno.EBADF)
	h.expect("write", "stdin_fd0", h.syscall(syscalls.SYS_WRITE, 0, h.stage("Input?"), 7), errno.EBADF)
	ret = h.syscall(syscalls.SYS_WRITE, 1, h.stage("Hello"), 0)
	h.check("write", "zero_len", ret, ret == 0)

	// oversized writes are clamped, not rejected
	fd := h.open("/vfs/var/log/test_write.txt", 0)
	h.check("open", "log_file", fd, !errno.IsErr(fd))
	ret = h.syscall(syscalls.SYS_WRITE, fd, h.stage("Hello"), 0xFFFF_FFFF)
	h.check("write", "huge_len", ret, !errno.IsErr(ret) && ret <= 4096)
	h.close(fd)
}

func (h *harness) opens() {
	legacy := h.open("foo.txt", 0)
	h.check("open", "happy", legacy, !errno.IsErr(legacy) && legacy >= 3)
	h.expect("open", "bogus_ptr", h.syscall(syscalls.SYS_OPEN, bogusPtr, 0, 0), errno.EFAULT)
	h.expect("open", "empty_path", h.open("", 0), errno.EINVAL)
	h.expect("open", "bad_flags", h.open("bar.txt", 0xFFFF_FFFF), errno.EINVAL)

	var fds []uint64
	for i := 0; i < 128; i++ {
		fd := h.open("fd_exhaust.txt", 0)
		if errno.IsErr(fd) {
			h.expect("open", "fd_exhaustion", fd, errno.EMFILE)
			break
		}
		fds = append(fds, fd)
	}
	if len(fds) == 0 {
		h.check("open", "fd_exhaustion_open", 0, false)
		return
	}
	lowest := fds[0]
	for _, fd := range fds {
		if fd < lowest {
			lowest = fd
		}
	}
	h.check("close", "close_lowest_fd", h.close(lowest), true)
	reused := h.open("fd_reuse.txt", 0)
	h.check("open", "fd_reuse", reused, reused == lowest)

	for _, fd := range append(fds, legacy) {
		h.close(fd)
	}
}

func (h *harness) reads() {
	fd := h.open("/vfs/etc/hostname", 0)
	h.check("open", "hostname", fd, fd == 3)
	want := []byte(h.hostname + "\n")
	ret := h.syscall(syscalls.SYS_READ, fd, h.buf(), 16)
	ok := ret == uint64(len(want))
	if ok {
		got, err := h.s.Cpu.Mem.MemRead(h.buf(), ret)
		ok = err == nil && bytes.Equal(got, want)
	}
	h.check("read", "hostname", ret, ok)

	ret = h.syscall(syscalls.SYS_READ, 0, h.buf(), 0)
	h.check("read", "zero_len", ret, ret == 0)
	h.expect("read", "invalid_fd", h.syscall(syscalls.SYS_READ, 99, h.buf(), 16), errno.EBADF)
	h.expect("read", "bogus_ptr", h.syscall(syscalls.SYS_READ, fd, bogusPtr, 16), errno.EFAULT)

	ret = h.close(fd)
	h.check("close", "happy", ret, ret == 0)
	h.expect("close", "twice", h.close(fd), errno.EBADF)
	h.expect("close", "reserved", h.close(1), errno.EBADF)
}

func (h *harness) heap() {
	const size = 64
	ptr := h.syscall(syscalls.SYS_ALLOC, size, 0, 0)
	h.check("alloc", "happy", ptr, ptr != 0 && !errno.IsErr(ptr))
	ret := h.syscall(syscalls.SYS_FREE, ptr, size, 0)
	h.check("free", "happy", ret, ret == 0)
	h.expect("alloc", "zero_size", h.syscall(syscalls.SYS_ALLOC, 0, 0, 0), errno.EINVAL)
	h.expect("free", "zero_ptr", h.syscall(syscalls.SYS_FREE, 0, size, 0), errno.EINVAL)
	h.expect("free", "zero_size", h.syscall(syscalls.SYS_FREE, ptr, 0, 0), errno.EINVAL)
}

func (h *harness) table() {
	h.expect("unknown", "num_999", h.syscall(999, 0, 0, 0), errno.ENOSYS)
	// exit is left out: it would tear down the descriptor table mid-run
	implemented := []uint64{
		syscalls.SYS_WRITE, syscalls.SYS_OPEN, syscalls.SYS_READ,
		syscalls.SYS_ALLOC, syscalls.SYS_FREE, syscalls.SYS_CLOSE,
	}
	for _, num := range implemented {
		ret := h.syscall(num, 0, 0, 0)
		h.check("table", syscalls.Name(num), ret, ret != errno.Encode(errno.ENOSYS))
	}
	for _, num := range []uint64{0, 8, 9, 500} {
		h.expect("table", syscalls.Name(num), h.syscall(num, 0, 0, 0), errno.ENOSYS)
	}
}
