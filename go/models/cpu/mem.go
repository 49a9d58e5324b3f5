package cpu

import (
	"sync"

	"github.com/pkg/errors"
)

// Mem is the single address space shared by user and kernel code.
// User code and the kernel both go through it; protections are only
// enforced by the *Prot accessors.
type Mem struct {
	mu  sync.Mutex
	sim MemSim
}

func NewMem() *Mem {
	return &Mem{}
}

func checkRegion(addr, size uint64) error {
	if size == 0 {
		return errors.New("zero-sized region")
	}
	end := addr + size - 1
	if end < addr {
		return errors.Errorf("region %#x+%#x wraps the address space", addr, size)
	}
	if !Canonical(addr) || !Canonical(end) || (addr <= USER_TOP && end > USER_TOP) {
		return errors.Errorf("region %#x-%#x is not canonical", addr, end+1)
	}
	return nil
}

func (m *Mem) MemMapProt(addr, size uint64, prot int, desc string) error {
	if err := checkRegion(addr, size); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sim.Map(addr, size, prot, desc)
	return nil
}

func (m *Mem) MemProt(addr, size uint64, prot int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mapped, _ := m.sim.RangeValid(addr, size, 0); !mapped {
		return errors.New("range not mapped")
	}
	m.sim.Prot(addr, size, prot)
	return nil
}

func (m *Mem) MemUnmap(addr, size uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mapped, _ := m.sim.RangeValid(addr, size, 0); !mapped {
		return errors.New("range not mapped")
	}
	m.sim.Unmap(addr, size)
	return nil
}

// RangeValid reports whether addr..addr+size is fully mapped, and whether
// every covering region grants prot.
func (m *Mem) RangeValid(addr, size uint64, prot int) (bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sim.RangeValid(addr, size, prot)
}

func (m *Mem) MemReadInto(p []byte, addr uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sim.Read(addr, p, 0)
}

func (m *Mem) MemRead(addr, size uint64) ([]byte, error) {
	p := make([]byte, size)
	if err := m.MemReadInto(p, addr); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *Mem) MemWrite(addr uint64, p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sim.Write(addr, p, 0)
}

// ReadProt reads while checking protections.
func (m *Mem) ReadProt(p []byte, addr uint64, prot int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sim.Read(addr, p, prot)
}

// WriteProt writes while checking protections.
func (m *Mem) WriteProt(addr uint64, p []byte, prot int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sim.Write(addr, p, prot)
}

// Mappings returns a snapshot of the current regions, sorted by address.
func (m *Mem) Mappings() Pages {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(Pages, len(m.sim.Mem))
	for i, p := range m.sim.Mem {
		cp := *p
		cp.Data = nil
		out[i] = &cp
	}
	return out
}

// MemReader reads sequentially from the address space.
type MemReader struct {
	Mem  *Mem
	Addr uint64
}

func (r *MemReader) Read(p []byte) (int, error) {
	if err := r.Mem.MemReadInto(p, r.Addr); err != nil {
		return 0, err
	}
	r.Addr += uint64(len(p))
	return len(p), nil
}

// MemWriter writes sequentially into the address space.
type MemWriter struct {
	Mem  *Mem
	Addr uint64
}

func (w *MemWriter) Write(p []byte) (int, error) {
	if err := w.Mem.MemWrite(w.Addr, p); err != nil {
		return 0, err
	}
	w.Addr += uint64(len(p))
	return len(p), nil
}
