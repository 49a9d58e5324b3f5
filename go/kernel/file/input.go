package file

import (
	"io"

	"github.com/pkg/errors"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
)

// Input is a read-only source, used for descriptor 0.
type Input struct {
	Base
	In io.Reader
}

func NewInput(r io.Reader) *Input {
	return &Input{In: r}
}

func (i *Input) Read(p []byte) (int, error) {
	if i.In == nil {
		return 0, nil
	}
	n, err := i.In.Read(p)
	if err == io.EOF {
		return n, nil
	} else if err != nil {
		return n, errors.Wrap(errno.EIO, err.Error())
	}
	return n, nil
}

func (i *Input) Write(p []byte) (int, error) {
	return 0, errno.EBADF
}
