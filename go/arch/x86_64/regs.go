package x86_64

import (
	"fmt"
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/pkg/errors"
)

// Regs is a simple register file keyed by the enums in this package.
type Regs struct {
	vals map[int]uint64
}

func NewRegs() *Regs {
	r := &Regs{vals: make(map[int]uint64)}
	for e := range RegNames {
		r.vals[e] = 0
	}
	return r
}

func (r *Regs) RegRead(enum int) (uint64, error) {
	if val, ok := r.vals[enum]; !ok {
		return 0, errors.Errorf("invalid register %d", enum)
	} else {
		return val, nil
	}
}

func (r *Regs) RegWrite(enum int, val uint64) error {
	if _, ok := r.vals[enum]; !ok {
		return errors.Errorf("invalid register %d", enum)
	}
	r.vals[enum] = val
	return nil
}

// ReadRegs reads several registers at once.
func (r *Regs) ReadRegs(enums []int) ([]uint64, error) {
	out := make([]uint64, len(enums))
	for i, e := range enums {
		val, err := r.RegRead(e)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

// Context is a saved copy of the register file.
type Context map[int]uint64

func (r *Regs) ContextSave() Context {
	m := make(Context, len(r.vals))
	for k, v := range r.vals {
		m[k] = v
	}
	return m
}

func (r *Regs) ContextRestore(ctx Context) error {
	for k := range ctx {
		if _, ok := r.vals[k]; !ok {
			return errors.Errorf("invalid register %d in context", k)
		}
	}
	for k, v := range ctx {
		r.vals[k] = v
	}
	return nil
}

// Dump lists every register in natural name order.
func (r *Regs) Dump() []string {
	enums := make([]int, 0, len(r.vals))
	for e := range r.vals {
		enums = append(enums, e)
	}
	sort.Slice(enums, func(i, j int) bool {
		return sortorder.NaturalLess(RegNames[enums[i]], RegNames[enums[j]])
	})
	out := make([]string, len(enums))
	for i, e := range enums {
		out[i] = fmt.Sprintf("%6s = %#016x", RegNames[e], r.vals[e])
	}
	return out
}
