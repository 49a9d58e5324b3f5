package run

import (
	"os"

	"github.com/bulldog-os/bulldog/go/cmd"
	"github.com/bulldog-os/bulldog/go/machine"
)

func Main(args []string) {
	c := cmd.NewBootCmd("run")
	m, err := c.Boot(args)
	if err != nil {
		cmd.PrintError(err)
		os.Exit(1)
	}
	code, err := m.Run(machine.SelfTest(m.Kernel.Config.Hostname, m.Kernel.Log))
	c.Teardown()
	if err != nil {
		cmd.PrintError(err)
		os.Exit(1)
	}
	os.Exit(code)
}

func init() { cmd.Register("run", "boot the kernel and run the syscall self test", Main) }
