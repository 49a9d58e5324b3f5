package common

import (
	"reflect"

	"github.com/lunixbochs/argjoy"

	"github.com/bulldog-os/bulldog/go/models"
	"github.com/bulldog-os/bulldog/go/models/cpu"
)

type KernelBase struct {
	Mem    *cpu.Mem
	Config *models.Config
	Argjoy argjoy.Argjoy
	Color  models.Colorizer
}

func NewKernelBase(mem *cpu.Mem, config *models.Config) *KernelBase {
	config = config.Init()
	k := &KernelBase{
		Mem:    mem,
		Config: config,
		Color:  models.NewColorizer(config.Output, config.Color),
	}
	k.Argjoy.Register(k.commonArgCodec)
	k.Argjoy.Register(argjoy.IntToInt)
	return k
}

// Bind adapts fn into a Syscall. fn takes up to three arguments of the
// kinds understood by the argument codec and returns the encoded result.
// Binding anything else is a programming error and panics.
func (k *KernelBase) Bind(name string, fn interface{}) *Syscall {
	val := reflect.ValueOf(fn)
	typ := val.Type()
	if typ.Kind() != reflect.Func {
		panic("common.Bind(" + name + "): not a function")
	}
	if typ.NumIn() > 3 {
		panic("common.Bind(" + name + "): more than three arguments")
	}
	if typ.NumOut() != 1 || typ.Out(0) != uint64Type {
		panic("common.Bind(" + name + "): must return exactly one uint64")
	}
	in := make([]reflect.Type, typ.NumIn())
	for i := range in {
		in[i] = typ.In(i)
	}
	return &Syscall{
		Name:   name,
		Kernel: k,
		Func:   val,
		In:     in,
	}
}
