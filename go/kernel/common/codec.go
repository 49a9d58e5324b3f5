package common

import (
	"math"

	"github.com/lunixbochs/argjoy"
)

// PathMax bounds the scratch buffer used for string arguments.
const PathMax = 256

func (k *KernelBase) commonArgCodec(arg interface{}, vals []interface{}) error {
	if reg, ok := vals[0].(uint64); ok {
		switch v := arg.(type) {
		case *Buf:
			*v = NewBuf(k, reg)
		case *Obuf:
			*v = Obuf{NewBuf(k, reg)}
		case *Len:
			*v = Len(reg)
		case *Fd:
			if reg > math.MaxInt32 {
				*v = BadFd
			} else {
				*v = Fd(reg)
			}
		case *Ptr:
			*v = Ptr(reg)
		case *Code:
			*v = Code(int64(reg))
		case *Flags:
			*v = Flags(reg)
		case *Mode:
			*v = Mode(reg)
		case *string:
			var scratch [PathMax]byte
			s, err := CopyCStrFromUser(k.Mem, reg, scratch[:])
			if err != nil {
				return err
			}
			*v = s
		default:
			return argjoy.NoMatch
		}
		return nil
	}
	return argjoy.NoMatch
}
