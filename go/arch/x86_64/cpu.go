// Package x86_64 models the parts of an x86-64 CPU the syscall trap needs:
// a register file, an interrupt descriptor table and the interrupt frame.
package x86_64

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bulldog-os/bulldog/go/models/cpu"
)

// Gate is one IDT entry. DPL is the least privileged ring allowed to
// raise the vector with a software interrupt.
type Gate struct {
	Handler func(c *Cpu) error
	DPL     int
}

type IDT [256]*Gate

// Fault is an exception raised while delivering an interrupt.
type Fault struct {
	Vector int
	Cause  string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("cpu fault %d: %s", f.Vector, f.Cause)
}

type Cpu struct {
	*Regs
	Mem *cpu.Mem
	IDT IDT
	// KernelStack is the stack top loaded on a ring 3 to ring 0 switch.
	KernelStack uint64
}

func NewCpu(mem *cpu.Mem, kernelStack uint64) *Cpu {
	c := &Cpu{Regs: NewRegs(), Mem: mem, KernelStack: kernelStack}
	c.RegWrite(RFLAGS, FLAG_RESERVED|FLAG_IF)
	c.RegWrite(CS, KernelCS)
	c.RegWrite(SS, KernelSS)
	return c
}

// Ring is the current privilege level.
func (c *Cpu) Ring() int {
	cs, _ := c.RegRead(CS)
	return int(cs & 3)
}

// EnterUser drops to ring 3 at pc with stack sp.
func (c *Cpu) EnterUser(pc, sp uint64) {
	c.RegWrite(RIP, pc)
	c.RegWrite(RSP, sp)
	c.RegWrite(CS, UserCS)
	c.RegWrite(SS, UserSS)
}

// Int raises a software interrupt: check the gate, push a frame on the
// kernel stack, run the handler in ring 0 and return with iretq.
func (c *Cpu) Int(vector uint8) error {
	gate := c.IDT[vector]
	if gate == nil || gate.Handler == nil {
		return &Fault{VecNP, fmt.Sprintf("vector %#x not present", vector)}
	}
	if c.Ring() > gate.DPL {
		return &Fault{VecGP, fmt.Sprintf("int %#x from ring %d, gate DPL %d", vector, c.Ring(), gate.DPL)}
	}
	regs, _ := c.ReadRegs([]int{RIP, CS, RFLAGS, RSP, SS})
	frame := Frame{RIP: regs[0], CS: regs[1], RFLAGS: regs[2], RSP: regs[3], SS: regs[4]}
	packed, err := frame.Pack()
	if err != nil {
		return err
	}
	sp := regs[3]
	if c.Ring() != 0 {
		sp = c.KernelStack
	}
	sp -= FrameSize
	if err := c.Mem.MemWrite(sp, packed); err != nil {
		return &Fault{VecDoubleFault, "kernel stack: " + err.Error()}
	}
	c.RegWrite(RSP, sp)
	c.RegWrite(CS, KernelCS)
	c.RegWrite(SS, KernelSS)
	c.RegWrite(RFLAGS, regs[2]&^FLAG_IF)

	herr := gate.Handler(c)
	if err := c.Iret(); err != nil {
		return err
	}
	return errors.Wrapf(herr, "int %#x", vector)
}

// Iret pops an interrupt frame from the current stack.
func (c *Cpu) Iret() error {
	sp, _ := c.RegRead(RSP)
	p, err := c.Mem.MemRead(sp, FrameSize)
	if err != nil {
		return &Fault{VecDoubleFault, "iretq: " + err.Error()}
	}
	f, err := UnpackFrame(p)
	if err != nil {
		return err
	}
	c.RegWrite(RIP, f.RIP)
	c.RegWrite(CS, f.CS)
	c.RegWrite(RFLAGS, f.RFLAGS)
	c.RegWrite(RSP, f.RSP)
	c.RegWrite(SS, f.SS)
	return nil
}
