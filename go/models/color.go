package models

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

var (
	chName  = ansi.ColorCode("default+b:default")
	chError = ansi.ColorCode("red:default")
	chValue = ansi.ColorCode("green:default")
)

// Colorizer decorates trace output. The zero value passes text through.
type Colorizer struct {
	Enabled bool
}

// NewColorizer enables color when force is set or w is a terminal.
func NewColorizer(w io.Writer, force bool) Colorizer {
	if force {
		return Colorizer{true}
	}
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		return Colorizer{isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
	}
	return Colorizer{}
}

func (c Colorizer) wrap(s, color string) string {
	if !c.Enabled {
		return s
	}
	return color + s + ansi.Reset
}

func (c Colorizer) Name(s string) string  { return c.wrap(s, chName) }
func (c Colorizer) Error(s string) string { return c.wrap(s, chError) }
func (c Colorizer) Value(s string) string { return c.wrap(s, chValue) }
