package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"nilan/config"
	"nilan/value"
	"nilan/vm"
)

// runFile reads path, interprets it top to bottom, and returns the
// process exit code: 0 on success, 65 on a compile error (EX_DATAERR),
// 70 on a runtime error (EX_SOFTWARE).
func runFile(path string, cfg *config.Config, log *logrus.Logger) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return 1
	}

	interner := value.NewInterner()
	m := vm.New(interner, os.Stdout, log, cfg.Execution.EnableTrace)

	if err := vm.Interpret(m, string(data), interner, log); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		if _, ok := err.(vm.RuntimeError); ok {
			return 70
		}
		return 65
	}
	return 0
}
