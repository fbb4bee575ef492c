package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"nilan/config"
	"nilan/value"
	"nilan/vm"
)

// runRepl starts an interactive session: one line in, compiled and run
// against a VM whose globals and interner persist for the life of the
// session, so a variable defined on one line is visible on the next.
// Typing "quit" ends the session.
func runRepl(cfg *config.Config, log *logrus.Logger) int {
	historyFile := cfg.Repl.HistoryFile
	if historyFile == "" {
		historyFile = os.DevNull
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.Repl.Prompt,
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start REPL: %v\n", err)
		return 1
	}
	defer rl.Close()

	fmt.Println("Welcome to Nilan!")

	interner := value.NewInterner()
	m := vm.New(interner, os.Stdout, log, cfg.Execution.EnableTrace)

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return 0
			}
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return 1
		}

		if line == "quit" {
			return 0
		}
		if line == "" {
			continue
		}

		if err := vm.Interpret(m, line, interner, log); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}
}
