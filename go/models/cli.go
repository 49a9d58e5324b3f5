package models

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// PrintFlags writes an aligned option listing, wrapping usage text to fit
// width columns.
func PrintFlags(w io.Writer, flags []*flag.Flag, width int) {
	wname, wdef := 0, 0
	for _, f := range flags {
		if len(f.Name) > wname {
			wname = len(f.Name)
		}
		if len(f.DefValue) > wdef {
			wdef = len(f.DefValue)
		}
	}
	lpad := strings.Repeat(" ", wname+wdef+7)
	wdesc := width - len(lpad)
	if wdesc < 20 {
		wdesc = 20
	}
	for _, f := range flags {
		def := ""
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			def = "(" + f.DefValue + ")"
		}
		fmt.Fprintf(w, "  -%-*s %-*s ", wname, f.Name, wdef+2, def)
		lines := strings.Split(runewidth.Wrap(f.Usage, wdesc), "\n")
		for i, line := range lines {
			if i > 0 {
				fmt.Fprint(w, lpad)
			}
			fmt.Fprintln(w, strings.TrimLeft(line, " "))
		}
	}
}
