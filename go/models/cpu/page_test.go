package cpu

import (
	"testing"
)

func TestPageFind(t *testing.T) {
	mem := Pages{
		&Page{Addr: 0x1000, Size: 0x1000},
		&Page{Addr: 0x2000, Size: 0x1000},
		&Page{Addr: 0x4000, Size: 0x2000},
		&Page{Addr: 0x6000, Size: 0x2000},
	}
	if mem.Find(0x1000) != mem[0] ||
		mem.Find(0x1001) != mem[0] ||
		mem.Find(0x1fff) != mem[0] ||
		mem.Find(0x7fff) != mem[3] {
		t.Error("Find() failed")
	}
	if mem.Find(0x3000) != nil ||
		mem.Find(0x1) != nil ||
		mem.Find(0x10000) != nil {
		t.Error("Find() negative failed")
	}
}

func TestPageCarve(t *testing.T) {
	p := &Page{Addr: 0x1000, Size: 0x3000, Prot: PROT_READ, Data: pattern(0x3000)}
	left, mid, right := p.carve(0x2000, 0x1000)
	if left == nil || left.Addr != 0x1000 || left.Size != 0x1000 {
		t.Fatalf("bad left: %v", left)
	}
	if mid.Addr != 0x2000 || mid.Size != 0x1000 || mid.Data[0] != p.Data[0x1000] {
		t.Fatalf("bad mid: %v", mid)
	}
	if right == nil || right.Addr != 0x3000 || right.Size != 0x1000 {
		t.Fatalf("bad right: %v", right)
	}
	// carving past both ends leaves only the middle
	left, mid, right = p.carve(0x0, 0x10000)
	if left != nil || right != nil || mid.Addr != p.Addr || mid.Size != p.Size {
		t.Fatal("full carve should return the whole page")
	}
}

func TestPageString(t *testing.T) {
	p := &Page{Addr: 0x1000, Size: 0x1000, Prot: PROT_READ | PROT_WRITE, Desc: "stack"}
	if s := p.String(); s != "0x1000-0x2000 rw- [stack]" {
		t.Fatalf("String() = %q", s)
	}
}
