// Package ui is the interactive syscall shell.
package ui

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/shibukawa/configdir"

	"github.com/bulldog-os/bulldog/go/machine"
)

type Shell struct {
	*Context
	rl *readline.Instance
}

// NewShell opens a readline prompt on the terminal. History is kept in the
// user's cache folder.
func NewShell(m *machine.Machine) (*Shell, error) {
	configDirs := configdir.New("bulldog", "repl")
	cacheDir := configDirs.QueryCacheFolder()
	historyPath := ""
	if err := cacheDir.MkdirAll(); err == nil {
		historyPath = filepath.Join(cacheDir.Path, "history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bulldog> ",
		HistoryFile:     historyPath,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, err
	}
	return &Shell{Context: &Context{Writer: rl.Stderr(), M: m}, rl: rl}, nil
}

// Run reads lines until EOF or "quit".
func (s *Shell) Run() error {
	defer s.rl.Close()
	s.Printf("Type \"help\" for a list of commands.\n")
	for {
		line, err := s.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "quit" {
			return nil
		}
		if err := Exec(s.Context, line); err != nil {
			s.Printf("%v\n", err)
		}
	}
}
