package cpu

import (
	"bytes"
	"testing"
)

// this shouldn't repeat much at width
func pattern(len int) []byte {
	p := make([]byte, len)
	width := 8
	for i := range p {
		cycle := i / width
		p[i] = byte(cycle*width*i + i)
	}
	return p
}

// table of overlap tests for an 0x1100-0x1200 region
// {start, end, should_error}
var overlapTable = [][]uint64{
	{0x1000, 0x1100, 0},
	{0x1000, 0x1050, 0},
	{0x1000, 0x1200, 1},
	{0x1000, 0x1250, 1},
	{0x1100, 0x1150, 1},
	{0x1100, 0x1200, 1},
	{0x1100, 0x1250, 1},
	{0x1150, 0x1200, 1},
	{0x1150, 0x1250, 1},
	{0x1200, 0x1250, 0},
}

func BenchmarkMemSimRead(b *testing.B) {
	m := &MemSim{}
	m.Map(0x1000, 0x100000, 0, "")
	p := make([]byte, 4)
	for i := 0; i < b.N; i++ {
		m.Read(0x1000+uint64(i*4)&0xfffff, p, 0)
	}
}

func BenchmarkMemSimWrite(b *testing.B) {
	m := &MemSim{}
	m.Map(0x1000, 0x100000, 0, "")
	p := make([]byte, 4)
	for i := 0; i < b.N; i++ {
		m.Write(0x1000+uint64(i*4)&0xfffff, p, 0)
	}
}

func TestMemSim(t *testing.T) {
	m := &MemSim{}
	m.Map(0x1000, 0x1000, 0, "")

	// basic read/write test
	b := pattern(0x1000)
	c := make([]byte, len(b))
	if err := m.Write(0x1000, b, 0); err != nil {
		t.Fatal(err, "write failed")
	} else if err := m.Read(0x1000, c, 0); err != nil {
		t.Fatal(err, "read failed")
	} else if !bytes.Equal(b, c) {
		t.Fatal("read/write inconsistent")
	}

	// unmaps 0x1100-0x1200
	m.Unmap(0x1100, 0x100)

	// make sure areas around unmapped region still have the right values
	if err := m.Read(0x1000, c[:0x100], 0); err != nil {
		t.Error("failed to read left-adjacent memory after unmap")
	} else if !bytes.Equal(b[:0x100], c[:0x100]) {
		t.Error("left-adjacent memory corruption after unmap")
	}
	if err := m.Read(0x1200, c[:0x100], 0); err != nil {
		t.Error("failed to read right-adjacent memory after unmap")
	} else if !bytes.Equal(b[0x200:0x300], c[:0x100]) {
		t.Error("right-adjacent memory corruption after unmap")
	}

	// make sure unmapped region reads/writes fail correctly
	for _, region := range overlapTable {
		p := make([]byte, region[1]-region[0])
		if err := m.Read(region[0], p, 0); err == nil && region[2] == 1 || err != nil && region[2] == 0 {
			t.Errorf("read_unmapped(%#x, %#x) bad error value: %v", region[0], region[1], err)
		}
		if err := m.Write(region[0], p, 0); err == nil && region[2] == 1 || err != nil && region[2] == 0 {
			t.Errorf("write_unmapped(%#x, %#x) bad error value: %v", region[0], region[1], err)
		}
	}

	// io across multiple adjacent maps
	m = &MemSim{}
	m.Map(0x1000, 0x1000, 0, "")
	m.Map(0x2000, 0x1000, 0, "")
	m.Map(0x3000, 0x1000, 0, "")

	b = pattern(0x3000)
	c = make([]byte, len(b))
	if err := m.Write(0x1000, b, 0); err != nil {
		t.Error(err, "while writing multiple adjacent maps")
	} else if err := m.Read(0x1000, c, 0); err != nil {
		t.Error(err, "while reading multiple adjacent maps")
	} else if !bytes.Equal(b, c) {
		t.Error("memory corruption when reading multiple adjacent maps")
	}

	// remapping the middle page zeroes it
	m.Map(0x2000, 0x1000, 0, "")
	copy(b[0x1000:0x2000], make([]byte, 0x1000))
	if err := m.Read(0x1000, c, 0); err != nil {
		t.Error(err, "while reading after remap")
	} else if !bytes.Equal(b, c) {
		t.Error("memory inconsistent after remap")
	}
}

func TestMemSimProt(t *testing.T) {
	m := &MemSim{}
	m.Map(0x1000, 0x3000, PROT_READ|PROT_WRITE, "data")
	m.Prot(0x2000, 0x1000, PROT_READ)

	if len(m.Mem) != 3 {
		t.Fatalf("expected Prot() to split into 3 regions, got %d:\n%s", len(m.Mem), m.Mem)
	}
	p := make([]byte, 0x10)
	if err := m.Write(0x1000, p, PROT_WRITE); err != nil {
		t.Error("write to rw region failed:", err)
	}
	if err := m.Write(0x2000, p, PROT_WRITE); err == nil {
		t.Error("write to read-only region succeeded")
	} else if merr, ok := err.(*MemError); !ok || merr.Enum != MEM_WRITE_PROT {
		t.Errorf("unexpected error: %v", err)
	}
	if err := m.Read(0x2000, p, PROT_READ); err != nil {
		t.Error("read from read-only region failed:", err)
	}
	// a range straddling both protections fails the stricter check
	if good, prot := m.RangeValid(0x1ff0, 0x20, PROT_WRITE); !good || prot {
		t.Errorf("RangeValid(straddle) = %v, %v", good, prot)
	}
	// kernel access ignores protections
	if err := m.Write(0x2000, p, 0); err != nil {
		t.Error("unchecked write failed:", err)
	}
}

func TestRangeValidOverflow(t *testing.T) {
	m := &MemSim{}
	m.Map(0x1000, 0x1000, PROT_ALL, "")
	if good, _ := m.RangeValid(0x1000, ^uint64(0), 0); good {
		t.Fatal("overflowing range reported valid")
	}
	if good, _ := m.RangeValid(0x5000, 0, 0); !good {
		t.Fatal("empty range should be valid")
	}
}
