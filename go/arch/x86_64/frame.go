package x86_64

import (
	"bytes"
	"encoding/binary"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

// Frame is what the CPU pushes on the kernel stack when it takes an
// interrupt, lowest address first.
type Frame struct {
	RIP    uint64 `struc:"uint64"`
	CS     uint64 `struc:"uint64"`
	RFLAGS uint64 `struc:"uint64"`
	RSP    uint64 `struc:"uint64"`
	SS     uint64 `struc:"uint64"`
}

const FrameSize = 5 * 8

func (f *Frame) Pack() ([]byte, error) {
	var buf bytes.Buffer
	if err := struc.PackWithOrder(&buf, f, binary.LittleEndian); err != nil {
		return nil, errors.Wrap(err, "struc.Pack() failed")
	}
	return buf.Bytes(), nil
}

func UnpackFrame(p []byte) (*Frame, error) {
	var f Frame
	if err := struc.UnpackWithOrder(bytes.NewReader(p), &f, binary.LittleEndian); err != nil {
		return nil, errors.Wrap(err, "struc.Unpack() failed")
	}
	return &f, nil
}
