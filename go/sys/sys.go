// Package sys is the user side of the syscall ABI. A Client stages
// arguments in a user scratch region, raises the syscall interrupt and
// decodes the result.
package sys

import (
	"github.com/pkg/errors"

	"github.com/bulldog-os/bulldog/go/arch/x86_64"
	"github.com/bulldog-os/bulldog/go/kernel/errno"
	"github.com/bulldog-os/bulldog/go/syscalls"
)

// DecodeRet splits a raw return value into a result or an errno.Errno.
func DecodeRet(raw uint64) (uint64, error) {
	return errno.Decode(raw)
}

type Client struct {
	Cpu *x86_64.Cpu
	// Scratch..Scratch+ScratchSize is user memory the client may clobber.
	Scratch     uint64
	ScratchSize uint64
}

func NewClient(c *x86_64.Cpu, scratch, size uint64) *Client {
	return &Client{Cpu: c, Scratch: scratch, ScratchSize: size}
}

// Syscall traps with the raw register convention and returns rax. The
// error is only set when the trap itself could not be delivered.
func (c *Client) Syscall(num, a0, a1, a2 uint64) (uint64, error) {
	regs := []struct {
		enum int
		val  uint64
	}{
		{x86_64.RAX, num},
		{x86_64.AbiRegs[0], a0},
		{x86_64.AbiRegs[1], a1},
		{x86_64.AbiRegs[2], a2},
	}
	for _, r := range regs {
		if err := c.Cpu.RegWrite(r.enum, r.val); err != nil {
			return 0, err
		}
	}
	if err := c.Cpu.Int(x86_64.SyscallVector); err != nil {
		return 0, errors.Wrapf(err, "%s trap failed", syscalls.Name(num))
	}
	return c.Cpu.RegRead(x86_64.RAX)
}

func (c *Client) call(num, a0, a1, a2 uint64) (uint64, error) {
	raw, err := c.Syscall(num, a0, a1, a2)
	if err != nil {
		return 0, err
	}
	return DecodeRet(raw)
}

// Stage copies p to the start of the scratch region and returns its address.
func (c *Client) Stage(p []byte) (uint64, error) {
	if uint64(len(p)) > c.ScratchSize {
		return 0, errors.Errorf("%d bytes do not fit in scratch", len(p))
	}
	if err := c.Cpu.Mem.MemWrite(c.Scratch, p); err != nil {
		return 0, errors.Wrap(err, "failed to stage argument")
	}
	return c.Scratch, nil
}

// StageString stages s with a NUL terminator.
func (c *Client) StageString(s string) (uint64, error) {
	return c.Stage(append([]byte(s), 0))
}

func (c *Client) Open(path string, flags, mode uint64) (int, error) {
	addr, err := c.StageString(path)
	if err != nil {
		return -1, err
	}
	fd, err := c.call(syscalls.SYS_OPEN, addr, flags, mode)
	if err != nil {
		return -1, err
	}
	return int(fd), nil
}

// Read reads up to size bytes from fd.
func (c *Client) Read(fd int, size uint64) ([]byte, error) {
	if size > c.ScratchSize {
		size = c.ScratchSize
	}
	n, err := c.call(syscalls.SYS_READ, uint64(int64(fd)), c.Scratch, size)
	if err != nil {
		return nil, err
	}
	return c.Cpu.Mem.MemRead(c.Scratch, n)
}

func (c *Client) Write(fd int, p []byte) (int, error) {
	addr, err := c.Stage(p)
	if err != nil {
		return 0, err
	}
	n, err := c.call(syscalls.SYS_WRITE, uint64(int64(fd)), addr, uint64(len(p)))
	return int(n), err
}

func (c *Client) Close(fd int) error {
	_, err := c.call(syscalls.SYS_CLOSE, uint64(int64(fd)), 0, 0)
	return err
}

func (c *Client) Exit(code int) error {
	_, err := c.call(syscalls.SYS_EXIT, uint64(int64(code)), 0, 0)
	return err
}

// Alloc returns the address of a new heap block.
func (c *Client) Alloc(size uint64) (uint64, error) {
	return c.call(syscalls.SYS_ALLOC, size, 0, 0)
}

func (c *Client) Free(ptr, size uint64) error {
	_, err := c.call(syscalls.SYS_FREE, ptr, size, 0)
	return err
}
