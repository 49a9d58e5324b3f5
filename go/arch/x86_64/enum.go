package x86_64

const (
	RAX = iota + 1
	RBX
	RCX
	RDX
	RSI
	RDI
	RBP
	RSP
	R8
	R9
	R10
	R11
	RIP
	RFLAGS
	CS
	SS
)

var RegNames = map[int]string{
	RAX:    "rax",
	RBX:    "rbx",
	RCX:    "rcx",
	RDX:    "rdx",
	RSI:    "rsi",
	RDI:    "rdi",
	RBP:    "rbp",
	RSP:    "rsp",
	R8:     "r8",
	R9:     "r9",
	R10:    "r10",
	R11:    "r11",
	RIP:    "rip",
	RFLAGS: "rflags",
	CS:     "cs",
	SS:     "ss",
}

// AbiRegs carry syscall arguments, in order.
var AbiRegs = []int{RDI, RSI, RDX, R10, R8, R9}

// Segment selectors. The low two bits are the privilege level.
const (
	KernelCS = 0x08
	KernelSS = 0x10
	UserCS   = 0x18 | 3
	UserSS   = 0x20 | 3
)

const (
	FLAG_IF = 1 << 9
	// bit 1 of RFLAGS always reads as set
	FLAG_RESERVED = 1 << 1
)

// Exception vectors raised by the trap path.
const (
	VecDoubleFault = 8
	VecGP          = 13
	VecNP          = 11
)
