package file

import (
	"bytes"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
)

// Console is a write-only, line-oriented sink. Text is held until a newline
// arrives and then emitted one line at a time, wrapped to Width columns.
type Console struct {
	Base
	Out   io.Writer
	Width int

	pending bytes.Buffer
}

func NewConsole(out io.Writer, width int) *Console {
	return &Console{Out: out, Width: width}
}

func (c *Console) Read(p []byte) (int, error) {
	return 0, errno.EBADF
}

func (c *Console) Write(p []byte) (int, error) {
	c.pending.Write(p)
	for {
		buf := c.pending.Bytes()
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := string(buf[:i])
		c.pending.Next(i + 1)
		if err := c.emit(line); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (c *Console) emit(line string) error {
	if c.Width > 0 && runewidth.StringWidth(line) > c.Width {
		line = runewidth.Wrap(line, c.Width)
	}
	_, err := io.WriteString(c.Out, line+"\n")
	return err
}

// Flush emits a trailing partial line, if any.
func (c *Console) Flush() error {
	if c.pending.Len() == 0 {
		return nil
	}
	line := strings.TrimRight(c.pending.String(), "\n")
	c.pending.Reset()
	return c.emit(line)
}

func (c *Console) Close() error {
	return c.Flush()
}

// Clone returns a second console on the same output with an empty line buffer.
func (c *Console) Clone() (FileOps, error) {
	return NewConsole(c.Out, c.Width), nil
}
