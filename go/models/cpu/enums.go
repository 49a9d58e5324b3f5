package cpu

// memory protections, matching the mmap PROT_* values
const (
	PROT_NONE  = 0
	PROT_READ  = 1
	PROT_WRITE = 2
	PROT_EXEC  = 4
	PROT_ALL   = 7
)

// fault kinds reported in MemError.Enum
const (
	MEM_READ_UNMAPPED  = 19
	MEM_WRITE_UNMAPPED = 20
	MEM_FETCH_UNMAPPED = 21
	MEM_WRITE_PROT     = 12
	MEM_READ_PROT      = 13
	MEM_FETCH_PROT     = 14
)

// Address space layout of the simulated machine. The lower half belongs to
// user space, the upper half to the kernel.
const (
	PAGE_SIZE = 0x1000

	// last canonical lower-half address
	USER_TOP = 0x0000_7fff_ffff_ffff
	// first canonical upper-half address
	KERNEL_BASE = 0xffff_8000_0000_0000
)

// Canonical reports whether addr is a canonical 48-bit virtual address.
func Canonical(addr uint64) bool {
	return addr <= USER_TOP || addr >= KERNEL_BASE
}

func PageAlign(addr uint64) uint64 {
	return addr &^ (PAGE_SIZE - 1)
}

func PageRoundUp(size uint64) uint64 {
	return (size + PAGE_SIZE - 1) &^ (PAGE_SIZE - 1)
}
