package repl

import (
	"os"

	"github.com/bulldog-os/bulldog/go/cmd"
	"github.com/bulldog-os/bulldog/go/ui"
)

func Main(args []string) {
	c := cmd.NewBootCmd("repl")
	m, err := c.Boot(args)
	if err != nil {
		cmd.PrintError(err)
		os.Exit(1)
	}
	defer c.Teardown()
	shell, err := ui.NewShell(m)
	if err != nil {
		cmd.PrintError(err)
		return
	}
	if err := shell.Run(); err != nil {
		cmd.PrintError(err)
	}
}

func init() { cmd.Register("repl", "issue syscalls from an interactive shell", Main) }
