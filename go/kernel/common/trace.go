package common

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
	"github.com/bulldog-os/bulldog/go/models"
)

var obufType = reflect.TypeOf(Obuf{})

func hex(a interface{}) string {
	tmp := fmt.Sprintf("0x%x", a)
	if strings.HasPrefix(tmp, "0x-") {
		tmp = "-0x" + tmp[3:]
	}
	return tmp
}

func (s *Syscall) traceArg(args ...interface{}) string {
	strsize := s.Kernel.Config.Strsize
	switch arg := args[0].(type) {
	case Obuf:
		return hex(arg.Addr)
	case Buf:
		if len(args) > 1 {
			if length, ok := args[1].(Len); ok {
				if mem, err := arg.Read(uint64(length)); err == nil {
					return models.Repr(mem, strsize)
				}
			}
		}
		return hex(arg.Addr)
	case Ptr:
		return hex(uint64(arg))
	case Flags:
		return hex(uint64(arg))
	case Mode:
		return fmt.Sprintf("0%o", uint64(arg))
	case Fd:
		return fmt.Sprintf("%d", int32(arg))
	case Code:
		return fmt.Sprintf("%d", int64(arg))
	case Len:
		return fmt.Sprintf("%d", uint64(arg))
	case string:
		return models.Repr([]byte(arg), strsize)
	default:
		return fmt.Sprintf("%v", arg)
	}
}

func (s *Syscall) traceArgs(regs []uint64) string {
	inRef, err := s.Kernel.Argjoy.Convert(s.In, false, regs[:len(s.In)])
	if err != nil {
		// fall back to raw registers when a pointer doesn't decode
		raw := make([]string, len(s.In))
		for i := range raw {
			raw[i] = hex(regs[i])
		}
		return strings.Join(raw, ", ")
	}
	in := make([]interface{}, len(inRef))
	for i, val := range inRef {
		in[i] = val.Interface()
	}
	ret := make([]string, len(in))
	for i := range in {
		ret[i] = s.traceArg(in[i:]...)
	}
	return strings.Join(ret, ", ")
}

// Trace renders the call, e.g. open("/vfs/etc/hostname", 0x0, 0).
func (s *Syscall) Trace(regs []uint64) string {
	return fmt.Sprintf("%s(%s)", s.Kernel.Color.Name(s.Name), s.traceArgs(regs))
}

// TraceRet renders the result, including the contents of any output buffer
// the call filled.
func (s *Syscall) TraceRet(args []uint64, ret uint64) string {
	return " = " + TraceRet(s.Kernel, s.In, args, ret)
}

// TraceRet renders ret, decoding errors to their names. in describes the
// argument kinds, and may be nil.
func TraceRet(k *KernelBase, in []reflect.Type, args []uint64, ret uint64) string {
	if errno.IsErr(ret) {
		e := errno.Errno(-int64(ret))
		return k.Color.Error(fmt.Sprintf("-1 %s (%s)", e.Name(), errno.Strerror(e)))
	}
	var out []string
	for i, typ := range in {
		if typ == obufType && len(args) > i+1 && ret <= args[i+1] {
			buf := NewBuf(k, args[i])
			if mem, err := buf.Read(ret); err == nil {
				out = append(out, models.Repr(mem, k.Config.Strsize))
			}
		}
	}
	out = append(out, k.Color.Value(fmt.Sprintf("%d", ret)))
	return strings.Join(out, ", ")
}
