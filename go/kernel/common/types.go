package common

type (
	// Buf is a user pointer the kernel reads from.
	Buf struct {
		Addr uint64
		K    *KernelBase
	}
	// Obuf is a user pointer the kernel writes into.
	Obuf struct{ Buf }
	Len  uint64
	Fd   int32
	Ptr  uint64
	// Code is an exit status, taken from the whole register.
	Code  int64
	Flags uint64
	Mode  uint64
)

// BadFd stands in for a register value outside the descriptor range. No
// table ever holds it.
const BadFd Fd = -1

func NewBuf(k *KernelBase, addr uint64) Buf {
	return Buf{K: k, Addr: addr}
}

func (b Buf) Read(size uint64) ([]byte, error) {
	return CopyFromUser(b.K.Mem, b.Addr, size)
}

func (b Buf) Write(p []byte) error {
	return CopyToUser(b.K.Mem, b.Addr, p)
}
