package vm

import (
	"io"

	"github.com/sirupsen/logrus"

	"nilan/compiler"
	"nilan/value"
)

// Interpret is the end-to-end driver contract: compile source against
// interner, and only run the resulting chunk if compilation produced no
// errors. A compile failure is returned unexecuted; the VM is never
// invoked against a chunk known to be malformed.
func Interpret(m *VM, source string, interner *value.Interner, log *logrus.Logger) error {
	ch, err := compiler.Compile(source, interner, log)
	if err != nil {
		return err
	}
	return m.Run(ch)
}

// NewDefault builds a VM writing program output to out with tracing
// disabled, for callers that do not need a custom logger.
func NewDefault(interner *value.Interner, out io.Writer) *VM {
	return New(interner, out, nil, false)
}
