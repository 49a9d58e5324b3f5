// Package machine assembles memory, the CPU and the kernel into a system
// that runs user programs.
package machine

import (
	"io"

	"github.com/pkg/errors"

	"github.com/bulldog-os/bulldog/go/arch/x86_64"
	"github.com/bulldog-os/bulldog/go/kernel/bulldog"
	"github.com/bulldog-os/bulldog/go/models"
	"github.com/bulldog-os/bulldog/go/models/cpu"
	"github.com/bulldog-os/bulldog/go/sys"
)

// Address space layout.
const (
	TextBase = 0x40_0000
	TextSize = 0x1000

	DataBase = 0x60_0000
	DataSize = 0x10000

	StackTop  = 0x7fff_0000
	StackSize = 0x10000

	KernelStackTop  = cpu.KERNEL_BASE + 0x10_0000
	KernelStackSize = 0x4000
)

// Program is user code. It talks to the kernel only through the client.
type Program func(s *sys.Client) error

type Machine struct {
	Mem    *cpu.Mem
	Cpu    *x86_64.Cpu
	Kernel *bulldog.Kernel
	Sys    *sys.Client
}

// Boot maps the address space, starts the kernel, installs the syscall
// gate and drops to user mode at TextBase.
func Boot(config *models.Config, stdin io.Reader, stdout io.Writer) (*Machine, error) {
	mem := cpu.NewMem()
	maps := []struct {
		addr, size uint64
		prot       int
		desc       string
	}{
		{TextBase, TextSize, cpu.PROT_READ | cpu.PROT_EXEC, "text"},
		{DataBase, DataSize, cpu.PROT_READ | cpu.PROT_WRITE, "data"},
		{StackTop - StackSize, StackSize, cpu.PROT_READ | cpu.PROT_WRITE, "stack"},
		{KernelStackTop - KernelStackSize, KernelStackSize, cpu.PROT_READ | cpu.PROT_WRITE, "kernel stack"},
	}
	for _, m := range maps {
		if err := mem.MemMapProt(m.addr, m.size, m.prot, m.desc); err != nil {
			return nil, errors.Wrapf(err, "failed to map %s", m.desc)
		}
	}
	k, err := bulldog.NewKernel(mem, config, stdin, stdout)
	if err != nil {
		return nil, err
	}
	c := x86_64.NewCpu(mem, KernelStackTop)
	c.InstallSyscall(k)
	c.EnterUser(TextBase, StackTop)
	return &Machine{
		Mem:    mem,
		Cpu:    c,
		Kernel: k,
		Sys:    sys.NewClient(c, DataBase, DataSize),
	}, nil
}

// Run runs prog and returns its exit code. A program that returns without
// calling exit exits with 0.
func (m *Machine) Run(prog Program) (int, error) {
	if err := prog(m.Sys); err != nil {
		return -1, errors.Wrap(err, "program failed")
	}
	if !m.Kernel.Exited {
		if err := m.Sys.Exit(0); err != nil {
			return -1, err
		}
	}
	return m.Kernel.Status.Code(), nil
}
