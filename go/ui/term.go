//go:build !windows && !plan9
// +build !windows,!plan9

package ui

import (
	"os"

	"golang.org/x/sys/unix"
)

// TermWidth returns the column count of the terminal on f, or 80.
func TermWidth(f *os.File) int {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 80
	}
	return int(ws.Col)
}
