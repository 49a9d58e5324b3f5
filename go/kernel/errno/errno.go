// Package errno defines the kernel's error taxonomy and the return-value
// encoding used at the syscall boundary.
package errno

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errno is a Linux-compatible error number.
type Errno uint64

const (
	EPERM           Errno = 1
	ENOENT          Errno = 2
	ESRCH           Errno = 3
	EINTR           Errno = 4
	EIO             Errno = 5
	ENXIO           Errno = 6
	E2BIG           Errno = 7
	ENOEXEC         Errno = 8
	EBADF           Errno = 9
	ECHILD          Errno = 10
	EAGAIN          Errno = 11
	ENOMEM          Errno = 12
	EACCES          Errno = 13
	EFAULT          Errno = 14
	ENOTBLK         Errno = 15
	EBUSY           Errno = 16
	EEXIST          Errno = 17
	EXDEV           Errno = 18
	ENODEV          Errno = 19
	ENOTDIR         Errno = 20
	EISDIR          Errno = 21
	EINVAL          Errno = 22
	ENFILE          Errno = 23
	EMFILE          Errno = 24
	ENOTTY          Errno = 25
	ETXTBSY         Errno = 26
	EFBIG           Errno = 27
	ENOSPC          Errno = 28
	ESPIPE          Errno = 29
	EROFS           Errno = 30
	EMLINK          Errno = 31
	EPIPE           Errno = 32
	EDOM            Errno = 33
	ERANGE          Errno = 34
	EDEADLK         Errno = 35
	ENAMETOOLONG    Errno = 36
	ENOLCK          Errno = 37
	ENOSYS          Errno = 38
	ENOTEMPTY       Errno = 39
	ELOOP           Errno = 40
	ENOMSG          Errno = 42
	EIDRM           Errno = 43
	ENODATA         Errno = 61
	ETIME           Errno = 62
	EPROTO          Errno = 71
	EBADMSG         Errno = 74
	EOVERFLOW       Errno = 75
	EBADFD          Errno = 77
	EILSEQ          Errno = 84
	ENOTSOCK        Errno = 88
	EMSGSIZE        Errno = 90
	EOPNOTSUPP      Errno = 95
	ENOBUFS         Errno = 105
	ETIMEDOUT       Errno = 110
	EALREADY        Errno = 114
	EINPROGRESS     Errno = 115
	ESTALE          Errno = 116
	EDQUOT          Errno = 122
	ECANCELED       Errno = 125
	EOWNERDEAD      Errno = 130
	ENOTRECOVERABLE Errno = 131
)

// MaxErrno bounds the range of raw return values that decode as errors.
// Anything above -MaxErrno (as signed) is a successful result.
const MaxErrno = 4095

func (e Errno) Error() string {
	return fmt.Sprintf("%s (%s)", e.Name(), Strerror(e))
}

// Num returns the positive errno number.
func (e Errno) Num() uint64 {
	return uint64(e)
}

// Encode returns the two's-complement negation of e, so the raw value read as
// an int64 is -e.
func Encode(e Errno) uint64 {
	return uint64(-int64(e))
}

// Decode splits a raw syscall return into a result or an error.
func Decode(raw uint64) (uint64, error) {
	if IsErr(raw) {
		return 0, Errno(-int64(raw))
	}
	return raw, nil
}

// IsErr reports whether raw encodes a failure.
func IsErr(raw uint64) bool {
	signed := int64(raw)
	return signed < 0 && signed >= -MaxErrno
}

// From extracts the Errno carried by err. Wrapped errors are unwrapped with
// errors.Cause; any other cause is reported as EIO.
func From(err error) Errno {
	if err == nil {
		return 0
	}
	if e, ok := errors.Cause(err).(Errno); ok {
		return e
	}
	return EIO
}

// Ret converts a handler's (value, error) pair into a raw return value.
func Ret(n uint64, err error) uint64 {
	if err != nil {
		return Encode(From(err))
	}
	return n
}
