package cpu

import (
	"fmt"
	"sort"
)

type MemError struct {
	Addr uint64
	Size int
	Enum int
}

func (m *MemError) Error() string {
	reason := "memory error"
	switch m.Enum {
	case MEM_WRITE_UNMAPPED:
		reason = "unmapped write"
	case MEM_READ_UNMAPPED:
		reason = "unmapped read"
	case MEM_FETCH_UNMAPPED:
		reason = "unmapped fetch"
	case MEM_WRITE_PROT:
		reason = "protected write"
	case MEM_READ_PROT:
		reason = "protected read"
	case MEM_FETCH_PROT:
		reason = "protected exec"
	}
	return fmt.Sprintf("%s at %#x(%d)", reason, m.Addr, m.Size)
}

// MemSim is a sparse, sorted list of mapped regions.
type MemSim struct {
	Mem Pages
}

// RangeValid walks the mappings covering addr..addr+size.
// If prot > 0, every covering region must carry the whole protection mask.
func (m *MemSim) RangeValid(addr, size uint64, prot int) (mapGood bool, protGood bool) {
	if size == 0 {
		return true, true
	}
	end := addr + size
	if end < addr {
		return false, false
	}
	first := m.Mem.bsearch(addr)
	if first == -1 {
		return false, false
	}
	protGood = true
	for _, mm := range m.Mem[first:] {
		if !mm.Contains(addr) {
			break
		}
		if prot > 0 && mm.Prot&prot != prot {
			protGood = false
		}
		addr = mm.Addr + mm.Size
		if addr >= end {
			break
		}
	}
	return addr >= end, protGood
}

// Map creates a zeroed region, replacing anything it overlaps.
func (m *MemSim) Map(addr, size uint64, prot int, desc string) *Page {
	m.Unmap(addr, size)
	page := &Page{Addr: addr, Size: size, Prot: prot, Data: make([]byte, size), Desc: desc}
	m.Mem = append(m.Mem, page)
	sort.Sort(m.Mem)
	return page
}

// Prot re-protects the part of every region inside addr..addr+size.
func (m *MemSim) Prot(addr, size uint64, prot int) {
	tmp := make(Pages, 0, len(m.Mem))
	for _, mm := range m.Mem {
		if _, _, ok := mm.Intersect(addr, size); ok {
			left, mid, right := mm.carve(addr, size)
			mid.Prot = prot
			for _, p := range []*Page{left, mid, right} {
				if p != nil {
					tmp = append(tmp, p)
				}
			}
		} else {
			tmp = append(tmp, mm)
		}
	}
	m.Mem = tmp
}

func (m *MemSim) Unmap(addr, size uint64) {
	tmp := make(Pages, 0, len(m.Mem))
	for _, mm := range m.Mem {
		if _, _, ok := mm.Intersect(addr, size); ok {
			left, _, right := mm.carve(addr, size)
			if left != nil {
				tmp = append(tmp, left)
			}
			if right != nil {
				tmp = append(tmp, right)
			}
		} else {
			tmp = append(tmp, mm)
		}
	}
	m.Mem = tmp
}

func (m *MemSim) Read(addr uint64, p []byte, prot int) error {
	if gmap, gprot := m.RangeValid(addr, uint64(len(p)), prot); !gmap {
		if prot&PROT_EXEC == PROT_EXEC {
			return &MemError{Addr: addr, Size: len(p), Enum: MEM_FETCH_UNMAPPED}
		}
		return &MemError{Addr: addr, Size: len(p), Enum: MEM_READ_UNMAPPED}
	} else if !gprot {
		if prot&PROT_EXEC == PROT_EXEC {
			return &MemError{Addr: addr, Size: len(p), Enum: MEM_FETCH_PROT}
		}
		return &MemError{Addr: addr, Size: len(p), Enum: MEM_READ_PROT}
	}
	for len(p) > 0 {
		mm := m.Mem.Find(addr)
		n := copy(p, mm.Data[addr-mm.Addr:])
		addr, p = addr+uint64(n), p[n:]
	}
	return nil
}

func (m *MemSim) Write(addr uint64, p []byte, prot int) error {
	if gmap, gprot := m.RangeValid(addr, uint64(len(p)), prot); !gmap {
		return &MemError{Addr: addr, Size: len(p), Enum: MEM_WRITE_UNMAPPED}
	} else if !gprot {
		return &MemError{Addr: addr, Size: len(p), Enum: MEM_WRITE_PROT}
	}
	for len(p) > 0 {
		mm := m.Mem.Find(addr)
		n := copy(mm.Data[addr-mm.Addr:], p)
		addr, p = addr+uint64(n), p[n:]
	}
	return nil
}
