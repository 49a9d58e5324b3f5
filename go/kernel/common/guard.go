package common

import (
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
	"github.com/bulldog-os/bulldog/go/models/cpu"
)

// IsUserPtr rejects null, non-canonical and kernel-half addresses.
// It says nothing about whether addr is mapped.
func IsUserPtr(addr uint64) bool {
	return addr != 0 && addr <= cpu.USER_TOP
}

func checkUserRange(addr, size uint64) error {
	if !IsUserPtr(addr) {
		return errors.Wrapf(errno.EFAULT, "bad user pointer %#x", addr)
	}
	end := addr + size
	if end < addr || end-1 > cpu.USER_TOP {
		return errors.Wrapf(errno.EFAULT, "user range %#x+%#x overflows", addr, size)
	}
	return nil
}

// CopyFromUser copies size bytes at src into a new kernel buffer. The whole
// range must be mapped readable.
func CopyFromUser(mem *cpu.Mem, src, size uint64) ([]byte, error) {
	if err := checkUserRange(src, size); err != nil {
		return nil, err
	}
	p := make([]byte, size)
	if err := mem.ReadProt(p, src, cpu.PROT_READ); err != nil {
		return nil, errors.Wrap(errno.EFAULT, err.Error())
	}
	return p, nil
}

// CopyToUser writes p to dst. The whole range must be mapped writable.
func CopyToUser(mem *cpu.Mem, dst uint64, p []byte) error {
	if err := checkUserRange(dst, uint64(len(p))); err != nil {
		return err
	}
	if err := mem.WriteProt(dst, p, cpu.PROT_WRITE); err != nil {
		return errors.Wrap(errno.EFAULT, err.Error())
	}
	return nil
}

// CopyCStrFromUser reads a NUL-terminated string into scratch. A string that
// does not fit in scratch is a fault, not a truncation.
func CopyCStrFromUser(mem *cpu.Mem, ptr uint64, scratch []byte) (string, error) {
	var b [1]byte
	for i := range scratch {
		addr := ptr + uint64(i)
		if !IsUserPtr(addr) {
			return "", errors.Wrapf(errno.EFAULT, "bad user string %#x", ptr)
		}
		if err := mem.ReadProt(b[:], addr, cpu.PROT_READ); err != nil {
			return "", errors.Wrap(errno.EFAULT, err.Error())
		}
		if b[0] == 0 {
			if !utf8.Valid(scratch[:i]) {
				return "", errors.Wrapf(errno.EFAULT, "user string %#x is not utf-8", ptr)
			}
			return string(scratch[:i]), nil
		}
		scratch[i] = b[0]
	}
	return "", errors.Wrapf(errno.EFAULT, "user string %#x longer than %d bytes", ptr, len(scratch))
}

// AccessOK checks that addr..addr+size is a user range mapped with prot,
// without touching it.
func AccessOK(mem *cpu.Mem, addr, size uint64, prot int) error {
	if err := checkUserRange(addr, size); err != nil {
		return err
	}
	if mapped, allowed := mem.RangeValid(addr, size, prot); !mapped || !allowed {
		return errors.Wrapf(errno.EFAULT, "user range %#x+%#x not accessible", addr, size)
	}
	return nil
}
