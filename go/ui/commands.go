package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
	"github.com/bulldog-os/bulldog/go/kernel/file"
	"github.com/bulldog-os/bulldog/go/kernel/vfs"
	"github.com/bulldog-os/bulldog/go/machine"
	"github.com/bulldog-os/bulldog/go/models"
	"github.com/bulldog-os/bulldog/go/syscalls"
)

// Context is what a shell command sees.
type Context struct {
	io.Writer
	M *machine.Machine
}

func (c *Context) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c, format, a...)
}

type Command struct {
	Name  string
	Usage string
	Desc  string
	// MinArgs is checked before Run is called.
	MinArgs int
	Run     func(c *Context, args []string) error
}

var Commands = make(map[string]*Command)

func cmd(c *Command) *Command {
	if _, ok := Commands[c.Name]; ok {
		panic("duplicate shell command " + c.Name)
	}
	Commands[c.Name] = c
	return c
}

// Exec parses and runs one shell line. Command failures are printed, not
// returned; the error is only for malformed input.
func Exec(c *Context, line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		return errors.Wrap(err, "parse error")
	}
	if len(args) == 0 {
		return nil
	}
	name, args := args[0], args[1:]
	command, ok := Commands[name]
	if !ok {
		c.Printf("%s: command not found. Try \"help\".\n", name)
		return nil
	}
	if len(args) < command.MinArgs {
		c.Printf("usage: %s %s\n", command.Name, command.Usage)
		return nil
	}
	if err := command.Run(c, args); err != nil {
		c.Printf("error: %v\n", err)
	}
	return nil
}

func parseNum(s string) (uint64, error) {
	if strings.HasPrefix(s, "-") {
		n, err := strconv.ParseInt(s, 0, 64)
		return uint64(n), err
	}
	return strconv.ParseUint(s, 0, 64)
}

func parseNums(args []string) ([]uint64, error) {
	out := make([]uint64, len(args))
	for i, a := range args {
		n, err := parseNum(a)
		if err != nil {
			return nil, errors.Errorf("bad number %q", a)
		}
		out[i] = n
	}
	return out, nil
}

// unescape turns \n and friends in shell text into bytes.
func unescape(s string) []byte {
	if u, err := strconv.Unquote(`"` + strings.Replace(s, `"`, `\"`, -1) + `"`); err == nil {
		return []byte(u)
	}
	return []byte(s)
}

func formatRet(raw uint64) string {
	val, err := errno.Decode(raw)
	if err != nil {
		return fmt.Sprintf("-1 %v", err)
	}
	return fmt.Sprintf("%d (%#x)", val, val)
}

var HelpCmd = cmd(&Command{
	Name: "help",
	Desc: "List commands.",
	Run: func(c *Context, args []string) error {
		names := make([]string, 0, len(Commands))
		width := 0
		for name, command := range Commands {
			names = append(names, name)
			if w := len(name + " " + command.Usage); w > width {
				width = w
			}
		}
		sort.Strings(names)
		for _, name := range names {
			command := Commands[name]
			c.Printf("  %-*s  %s\n", width, strings.TrimSpace(name+" "+command.Usage), command.Desc)
		}
		return nil
	},
})

var SysCmd = cmd(&Command{
	Name:    "sys",
	Usage:   "<num|name> [a0 [a1 [a2]]]",
	Desc:    "Raise a raw syscall.",
	MinArgs: 1,
	Run: func(c *Context, args []string) error {
		num, ok := syscalls.Number(args[0])
		if !ok {
			var err error
			if num, err = parseNum(args[0]); err != nil {
				return errors.Errorf("unknown syscall %q", args[0])
			}
		}
		if len(args) > 4 {
			return errors.New("at most three arguments")
		}
		vals, err := parseNums(args[1:])
		if err != nil {
			return err
		}
		var regs [3]uint64
		copy(regs[:], vals)
		raw, err := c.M.Sys.Syscall(num, regs[0], regs[1], regs[2])
		if err != nil {
			return err
		}
		c.Printf("%s = %s\n", syscalls.Name(num), formatRet(raw))
		return nil
	},
})

var OpenCmd = cmd(&Command{
	Name:    "open",
	Usage:   "<path> [flags]",
	Desc:    "Open a path and print the new descriptor.",
	MinArgs: 1,
	Run: func(c *Context, args []string) error {
		vals, err := parseNums(args[1:])
		if err != nil {
			return err
		}
		var flags uint64
		if len(vals) > 0 {
			flags = vals[0]
		}
		fd, err := c.M.Sys.Open(args[0], flags, 0)
		if err != nil {
			return err
		}
		c.Printf("fd %d\n", fd)
		return nil
	},
})

var ReadCmd = cmd(&Command{
	Name:    "read",
	Usage:   "<fd> [size]",
	Desc:    "Read from a descriptor.",
	MinArgs: 1,
	Run: func(c *Context, args []string) error {
		vals, err := parseNums(args)
		if err != nil {
			return err
		}
		size := uint64(64)
		if len(vals) > 1 {
			size = vals[1]
		}
		data, err := c.M.Sys.Read(int(int64(vals[0])), size)
		if err != nil {
			return err
		}
		c.Printf("%d bytes: %s\n", len(data), models.Repr(data, 0))
		return nil
	},
})

var WriteCmd = cmd(&Command{
	Name:    "write",
	Usage:   "<fd> <text...>",
	Desc:    "Write text to a descriptor. Escapes like \\n are decoded.",
	MinArgs: 2,
	Run: func(c *Context, args []string) error {
		fd, err := parseNum(args[0])
		if err != nil {
			return err
		}
		n, err := c.M.Sys.Write(int(int64(fd)), unescape(strings.Join(args[1:], " ")))
		if err != nil {
			return err
		}
		c.Printf("wrote %d bytes\n", n)
		return nil
	},
})

var CloseCmd = cmd(&Command{
	Name:    "close",
	Usage:   "<fd>",
	Desc:    "Close a descriptor.",
	MinArgs: 1,
	Run: func(c *Context, args []string) error {
		fd, err := parseNum(args[0])
		if err != nil {
			return err
		}
		return c.M.Sys.Close(int(int64(fd)))
	},
})

var ExitCmd = cmd(&Command{
	Name:  "exit",
	Usage: "[code]",
	Desc:  "Call exit. Every descriptor is closed.",
	Run: func(c *Context, args []string) error {
		vals, err := parseNums(args)
		if err != nil {
			return err
		}
		code := 0
		if len(vals) > 0 {
			code = int(int64(vals[0]))
		}
		return c.M.Sys.Exit(code)
	},
})

var AllocCmd = cmd(&Command{
	Name:    "alloc",
	Usage:   "<size>",
	Desc:    "Allocate a heap block.",
	MinArgs: 1,
	Run: func(c *Context, args []string) error {
		size, err := parseNum(args[0])
		if err != nil {
			return err
		}
		ptr, err := c.M.Sys.Alloc(size)
		if err != nil {
			return err
		}
		c.Printf("%#x\n", ptr)
		return nil
	},
})

var FreeCmd = cmd(&Command{
	Name:    "free",
	Usage:   "<ptr> <size>",
	Desc:    "Free a heap block.",
	MinArgs: 2,
	Run: func(c *Context, args []string) error {
		vals, err := parseNums(args[:2])
		if err != nil {
			return err
		}
		return c.M.Sys.Free(vals[0], vals[1])
	},
})

var LsCmd = cmd(&Command{
	Name:  "ls",
	Usage: "[path]",
	Desc:  "List a VFS directory.",
	Run: func(c *Context, args []string) error {
		p := "/"
		if len(args) > 0 {
			p = args[0]
		}
		names, err := c.M.Kernel.Vfs.List(p)
		if err != nil {
			return err
		}
		for _, name := range names {
			c.Printf("%s\n", name)
		}
		return nil
	},
})

var MkdirCmd = cmd(&Command{
	Name:    "mkdir",
	Usage:   "<path>",
	Desc:    "Create a VFS directory and its parents.",
	MinArgs: 1,
	Run: func(c *Context, args []string) error {
		return c.M.Kernel.Vfs.Mkdir(args[0])
	},
})

var TouchCmd = cmd(&Command{
	Name:    "touch",
	Usage:   "<path> [text...]",
	Desc:    "Create or replace a VFS file.",
	MinArgs: 1,
	Run: func(c *Context, args []string) error {
		data := unescape(strings.Join(args[1:], " "))
		_, err := c.M.Kernel.Vfs.CreateFile(args[0], file.NewMemFile(data))
		return err
	},
})

var LnCmd = cmd(&Command{
	Name:    "ln",
	Usage:   "<target> <path>",
	Desc:    "Create a symlink.",
	MinArgs: 2,
	Run: func(c *Context, args []string) error {
		return c.M.Kernel.Vfs.Symlink(args[1], args[0])
	},
})

var CpCmd = cmd(&Command{
	Name:    "cp",
	Usage:   "<src> <dst>",
	Desc:    "Copy a VFS file.",
	MinArgs: 2,
	Run: func(c *Context, args []string) error {
		return c.M.Kernel.Vfs.Copy(args[0], args[1])
	},
})

var StatCmd = cmd(&Command{
	Name:    "stat",
	Usage:   "<path>",
	Desc:    "Describe a VFS node.",
	MinArgs: 1,
	Run: func(c *Context, args []string) error {
		info, err := c.M.Kernel.Vfs.Stat(args[0])
		if err != nil {
			return err
		}
		switch info.Kind {
		case vfs.KindFile:
			c.Printf("%s: file, %d bytes\n", info.Name, info.Size)
		case vfs.KindSymlink:
			c.Printf("%s: symlink -> %s\n", info.Name, info.Target)
		default:
			c.Printf("%s: %s\n", info.Name, info.Kind)
		}
		return nil
	},
})

var TreeCmd = cmd(&Command{
	Name: "tree",
	Desc: "Print the whole VFS tree.",
	Run: func(c *Context, args []string) error {
		c.M.Kernel.Vfs.Dump(c)
		return nil
	},
})

var FdsCmd = cmd(&Command{
	Name: "fds",
	Desc: "List open descriptors.",
	Run: func(c *Context, args []string) error {
		fds := c.M.Kernel.Fds
		for _, fd := range fds.Fds() {
			e, err := fds.Get(fd)
			if err != nil {
				continue
			}
			c.Printf("%3d  flags=%#x offset=%d  %T\n", fd, e.Flags, e.Offset, backend(e.File))
		}
		return nil
	},
})

func backend(f file.FileOps) file.FileOps {
	if s, ok := f.(*file.Shared); ok {
		return s.Backend()
	}
	return f
}

var MapsCmd = cmd(&Command{
	Name: "maps",
	Desc: "Display memory mappings.",
	Run: func(c *Context, args []string) error {
		for _, m := range c.M.Mem.Mappings() {
			c.Printf("  %v\n", m.String())
		}
		return nil
	},
})

var MemCmd = cmd(&Command{
	Name:    "mem",
	Usage:   "<addr> <size>",
	Desc:    "Dump memory.",
	MinArgs: 2,
	Run: func(c *Context, args []string) error {
		vals, err := parseNums(args[:2])
		if err != nil {
			return err
		}
		mem, err := c.M.Mem.MemRead(vals[0], vals[1])
		if err != nil {
			return err
		}
		for _, line := range models.HexDump(vals[0], mem) {
			c.Printf("  %s\n", line)
		}
		return nil
	},
})

var RegsCmd = cmd(&Command{
	Name: "regs",
	Desc: "Display registers.",
	Run: func(c *Context, args []string) error {
		for _, line := range c.M.Cpu.Dump() {
			c.Printf("%s\n", line)
		}
		return nil
	},
})
