package x86_64

// SyscallVector is the software interrupt user code raises for a syscall.
const SyscallVector = 0x80

// Syscaller receives decoded syscalls.
type Syscaller interface {
	Syscall(num, a0, a1, a2 uint64) uint64
}

// SyscallGate returns the vector 0x80 gate. It is the only place the
// register convention matters: the number arrives in rax, arguments in
// rdi, rsi and rdx, and the result goes back in rax.
func SyscallGate(k Syscaller) *Gate {
	return &Gate{
		DPL: 3,
		Handler: func(c *Cpu) error {
			rax, _ := c.RegRead(RAX)
			args, err := c.ReadRegs(AbiRegs[:3])
			if err != nil {
				return err
			}
			ret := k.Syscall(rax, args[0], args[1], args[2])
			return c.RegWrite(RAX, ret)
		},
	}
}

// InstallSyscall registers the syscall gate.
func (c *Cpu) InstallSyscall(k Syscaller) {
	c.IDT[SyscallVector] = SyscallGate(k)
}
