// Package cmd holds what the bulldog subcommands share: the launcher,
// configuration flags and error printing.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/bulldog-os/bulldog/go/machine"
	"github.com/bulldog-os/bulldog/go/models"
	"github.com/bulldog-os/bulldog/go/models/trace"
	"github.com/bulldog-os/bulldog/go/ui"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func PrintError(err error) {
	// print an error, and a stacktrace if available
	fmt.Fprintf(os.Stderr, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	if err, ok := err.(stackTracer); ok {
		var frames [][]string
		for _, f := range err.StackTrace() {
			fileline := fmt.Sprintf("%s:%d", f, f)
			method := fmt.Sprintf("%n", f)
			frames = append(frames, []string{fileline, method})
			if method == "main" {
				break
			}
		}
		width := 0
		for _, f := range frames {
			if len(f[0]) > width {
				width = len(f[0])
			}
		}
		for _, f := range frames {
			fmt.Fprintf(os.Stderr, "%-*s | %s()\n", width, f[0], f[1])
		}
	}
}

// BootCmd is the flag set of every command that boots a machine.
type BootCmd struct {
	Flags *flag.FlagSet

	configPath *string
	strace     *bool
	color      *bool
	follow     *bool
	verbose    *bool
	hostname   *string
	prefix     *string
	strsize    *int
	width      *int
	outfile    *string
	tracefile  *string

	closers []io.Closer
}

func NewBootCmd(name string) *BootCmd {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", name)
		var flags []*flag.Flag
		fs.VisitAll(func(f *flag.Flag) { flags = append(flags, f) })
		width := 80
		if isatty.IsTerminal(os.Stderr.Fd()) {
			width = ui.TermWidth(os.Stderr)
		}
		models.PrintFlags(os.Stderr, flags, width)
	}
	return &BootCmd{
		Flags:      fs,
		configPath: fs.String("config", "", "config file (default: config.json in the user config folder)"),
		strace:     fs.Bool("strace", false, "trace syscalls"),
		color:      fs.Bool("color", false, "force colored trace output"),
		follow:     fs.Bool("follow-symlinks", false, "follow VFS symlinks instead of failing with ENOSYS"),
		verbose:    fs.Bool("v", false, "verbose kernel logging"),
		hostname:   fs.String("hostname", "", "contents of /etc/hostname (default bulldog)"),
		prefix:     fs.String("prefix", "", "path prefix routed to the VFS (default /vfs)"),
		strsize:    fs.Int("strsize", 30, "limit -strace'd strings to length (0 disables)"),
		width:      fs.Int("width", 0, "console wrap column (default: terminal width)"),
		outfile:    fs.String("o", "", "redirect kernel log and trace output to file (default stderr)"),
		tracefile:  fs.String("to", "", "record syscalls to a binary trace file"),
	}
}

// Config layers the config file under any flags given explicitly.
func (c *BootCmd) Config() (*models.Config, error) {
	config := &models.Config{}
	if *c.configPath != "" {
		if err := config.Load(*c.configPath); err != nil {
			return nil, err
		}
	} else if _, err := config.LoadDefault(); err != nil {
		return nil, err
	}
	var err error
	c.Flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strace":
			config.TraceSys = *c.strace
		case "color":
			config.Color = *c.color
		case "follow-symlinks":
			config.FollowSymlinks = *c.follow
		case "v":
			config.Verbose = *c.verbose
		case "hostname":
			config.Hostname = *c.hostname
		case "prefix":
			config.VfsPrefix = *c.prefix
		case "strsize":
			config.Strsize = *c.strsize
		case "width":
			config.ConsoleWidth = *c.width
		case "to":
			config.TraceFile = *c.tracefile
		case "o":
			out, oerr := os.OpenFile(*c.outfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if oerr != nil {
				err = errors.Wrap(oerr, "failed to open log file")
				return
			}
			c.closers = append(c.closers, out)
			config.Output = out
		}
	})
	if err != nil {
		return nil, err
	}
	config.Init()
	if config.ConsoleWidth == 0 && isatty.IsTerminal(os.Stdout.Fd()) {
		config.ConsoleWidth = ui.TermWidth(os.Stdout)
	}
	return config, nil
}

// Boot parses args and starts a machine on the host terminal.
func (c *BootCmd) Boot(args []string) (*machine.Machine, error) {
	c.Flags.Parse(args[1:])
	config, err := c.Config()
	if err != nil {
		return nil, err
	}
	m, err := machine.Boot(config, os.Stdin, colorable.NewColorableStdout())
	if err != nil {
		return nil, err
	}
	if config.TraceFile != "" {
		f, err := os.Create(config.TraceFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create trace file")
		}
		tw, err := trace.NewWriter(f, config.Hostname)
		if err != nil {
			f.Close()
			return nil, err
		}
		c.closers = append(c.closers, tw)
		m.Kernel.Recorder = tw
	}
	return m, nil
}

// Teardown flushes traces and closes log files.
func (c *BootCmd) Teardown() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			fmt.Fprintf(os.Stderr, "teardown: %v\n", err)
		}
	}
	c.closers = nil
}
