package main

import (
	"github.com/bulldog-os/bulldog/go/cmd"

	_ "github.com/bulldog-os/bulldog/go/cmd/repl"
	_ "github.com/bulldog-os/bulldog/go/cmd/run"
	_ "github.com/bulldog-os/bulldog/go/cmd/trace"
)

func main() { cmd.Main() }
