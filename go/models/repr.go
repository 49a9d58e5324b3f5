package models

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Repr quotes p for trace output, escaping unprintable bytes and
// truncating to strsize characters when strsize > 0.
func Repr(p []byte, strsize int) string {
	tmp := make([]string, len(p))
	for i, b := range p {
		switch {
		case b == '\n':
			tmp[i] = "\\n"
		case b >= 0x20 && b <= 0x7e:
			tmp[i] = string(b)
		default:
			tmp[i] = fmt.Sprintf("\\x%02x", b)
		}
	}
	out := strings.Join(tmp, "")
	if strsize > 0 && len(out) > strsize {
		for i := len(tmp) - 1; len(out) > strsize-3 && i >= 0; i-- {
			out = strings.Join(tmp[:i], "")
		}
		return "\"" + out + "\"..."
	}
	return "\"" + out + "\""
}

// HexDump renders mem as 16-byte lines prefixed by their address.
func HexDump(base uint64, mem []byte) []string {
	clean := func(p []byte) string {
		o := make([]byte, len(p))
		for i, c := range p {
			if c >= 0x20 && c <= 0x7e {
				o[i] = c
			} else {
				o[i] = '.'
			}
		}
		return string(o)
	}
	const lineSize = 16
	var out []string
	for i := 0; i < len(mem); i += lineSize {
		end := i + lineSize
		if end > len(mem) {
			end = len(mem)
		}
		line := mem[i:end]
		data := hex.EncodeToString(line)
		data += strings.Repeat("  ", lineSize-len(line))
		out = append(out, fmt.Sprintf("0x%08x: %s [%s]", base+uint64(i), data, clean(line)))
	}
	return out
}
