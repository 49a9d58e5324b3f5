// Package heap hands out blocks of the user heap arena.
package heap

import (
	"sort"
	"sync"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
)

// Align is the alignment of every block.
const Align = 8

type region struct {
	addr, size uint64
}

func (r region) end() uint64 { return r.addr + r.size }

// Heap is a first-fit free-list allocator. It only tracks addresses; the
// caller owns the memory behind the arena.
type Heap struct {
	Base, Size uint64

	mu   sync.Mutex
	free []region
	live map[uint64]uint64
}

func New(base, size uint64) *Heap {
	start := alignUp(base)
	if start-base >= size {
		size = 0
	} else {
		size = (size - (start - base)) &^ (Align - 1)
	}
	h := &Heap{Base: start, Size: size, live: make(map[uint64]uint64)}
	if size > 0 {
		h.free = []region{{start, size}}
	}
	return h
}

func alignUp(n uint64) uint64 {
	return (n + Align - 1) &^ (Align - 1)
}

// Alloc returns the address of a new block of at least size bytes.
func (h *Heap) Alloc(size uint64) (uint64, error) {
	if size == 0 {
		return 0, errno.EINVAL
	}
	rounded := alignUp(size)
	if rounded < size {
		return 0, errno.ENOMEM
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, r := range h.free {
		if r.size < rounded {
			continue
		}
		if r.size == rounded {
			h.free = append(h.free[:i], h.free[i+1:]...)
		} else {
			h.free[i] = region{r.addr + rounded, r.size - rounded}
		}
		h.live[r.addr] = rounded
		return r.addr, nil
	}
	return 0, errno.ENOMEM
}

// Free releases a block. ptr and size must match a live allocation.
func (h *Heap) Free(ptr, size uint64) error {
	if ptr == 0 || size == 0 {
		return errno.EINVAL
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	rounded, ok := h.live[ptr]
	if !ok || alignUp(size) != rounded {
		return errno.EINVAL
	}
	delete(h.live, ptr)
	h.insert(region{ptr, rounded})
	return nil
}

// insert adds r to the sorted free list and merges it with its neighbors.
func (h *Heap) insert(r region) {
	i := sort.Search(len(h.free), func(i int) bool { return h.free[i].addr > r.addr })
	h.free = append(h.free, region{})
	copy(h.free[i+1:], h.free[i:])
	h.free[i] = r
	if i+1 < len(h.free) && h.free[i].end() == h.free[i+1].addr {
		h.free[i].size += h.free[i+1].size
		h.free = append(h.free[:i+1], h.free[i+2:]...)
	}
	if i > 0 && h.free[i-1].end() == h.free[i].addr {
		h.free[i-1].size += h.free[i].size
		h.free = append(h.free[:i], h.free[i+1:]...)
	}
}

// InUse returns the number of bytes currently allocated.
func (h *Heap) InUse() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	var total uint64
	for _, size := range h.live {
		total += size
	}
	return total
}

// FreeRegions returns the number of disjoint free regions.
func (h *Heap) FreeRegions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.free)
}
