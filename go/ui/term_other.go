//go:build windows || plan9
// +build windows plan9

package ui

import "os"

func TermWidth(f *os.File) int {
	return 80
}
