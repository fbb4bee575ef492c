// Package vm executes compiled bytecode: a fetch-decode-execute loop over
// a chunk.Chunk, a value stack, and a table of global variables.
package vm

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"nilan/chunk"
	"nilan/debug"
	"nilan/value"
)

// VM is one execution of a single chunk. Globals persist across Run calls
// when the caller reuses a VM (the REPL does, so `var x = 1;` on one line
// is visible to `print x;` on the next).
type VM struct {
	chunk    *chunk.Chunk
	ip       int
	stack    []value.Value
	globals  map[value.Symbol]value.Value
	interner *value.Interner

	out   io.Writer
	log   *logrus.Logger
	trace bool
}

// New returns a VM with an empty global table, ready to Run any number of
// chunks sharing interner.
func New(interner *value.Interner, out io.Writer, log *logrus.Logger, trace bool) *VM {
	return &VM{
		globals:  make(map[value.Symbol]value.Value),
		interner: interner,
		out:      out,
		log:      log,
		trace:    trace,
	}
}

// Run executes ch to completion (an OpReturn opcode) or until a runtime
// error occurs. The VM's globals and interner are reused across calls;
// the stack always starts empty for a fresh Run.
func (m *VM) Run(ch *chunk.Chunk) error {
	m.chunk = ch
	m.ip = 0
	m.stack = m.stack[:0]

	for {
		offset := m.ip
		op := chunk.OpCode(m.readByte())

		if m.trace {
			fmt.Fprintln(m.out, debug.DumpStack(m.stack, m.interner))
			fmt.Fprintln(m.out, debug.DisassembleOneLine(ch, offset))
		}

		switch op {
		case chunk.OpConstant:
			m.push(m.readConstant())
		case chunk.OpNil:
			m.push(value.Nil)
		case chunk.OpTrue:
			m.push(value.Bool(true))
		case chunk.OpFalse:
			m.push(value.Bool(false))
		case chunk.OpPop:
			if _, err := m.pop(offset); err != nil {
				return err
			}
		case chunk.OpGetGlobal:
			if err := m.getGlobal(offset); err != nil {
				return err
			}
		case chunk.OpDefineGlobal:
			if err := m.defineGlobal(offset); err != nil {
				return err
			}
		case chunk.OpSetGlobal:
			if err := m.setGlobal(offset); err != nil {
				return err
			}
		case chunk.OpEqual:
			if err := m.binaryEqual(offset); err != nil {
				return err
			}
		case chunk.OpGreater:
			if err := m.binaryCompare(offset, func(a, b float64) bool { return a > b }); err != nil {
				return err
			}
		case chunk.OpLess:
			if err := m.binaryCompare(offset, func(a, b float64) bool { return a < b }); err != nil {
				return err
			}
		case chunk.OpAdd:
			if err := m.add(offset); err != nil {
				return err
			}
		case chunk.OpSubtract:
			if err := m.arithmetic(offset, func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
		case chunk.OpMultiply:
			if err := m.arithmetic(offset, func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
		case chunk.OpDivide:
			if err := m.arithmetic(offset, func(a, b float64) float64 { return a / b }); err != nil {
				return err
			}
		case chunk.OpNot:
			v, err := m.pop(offset)
			if err != nil {
				return err
			}
			m.push(value.Bool(v.IsFalsey(m.interner)))
		case chunk.OpNegate:
			if err := m.negate(offset); err != nil {
				return err
			}
		case chunk.OpPrint:
			v, err := m.pop(offset)
			if err != nil {
				return err
			}
			fmt.Fprintln(m.out, v.String(m.interner))
		case chunk.OpReturn:
			return nil
		default:
			return RuntimeError{Offset: offset, Cause: TypeError{Line: ch.GetLine(offset), Msg: fmt.Sprintf("unknown opcode %d", op)}}
		}
	}
}

func (m *VM) readByte() byte {
	b := m.chunk.GetByte(m.ip)
	m.ip++
	return b
}

func (m *VM) readConstant() value.Value {
	return m.chunk.GetConstant(m.readByte())
}

func (m *VM) push(v value.Value) {
	m.stack = append(m.stack, v)
}

func (m *VM) pop(offset int) (value.Value, error) {
	if len(m.stack) == 0 {
		return value.Nil, RuntimeError{Offset: offset, Cause: EmptyStackError{Line: m.chunk.GetLine(offset)}}
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *VM) peek(offset, distance int) (value.Value, error) {
	idx := len(m.stack) - 1 - distance
	if idx < 0 {
		return value.Nil, RuntimeError{Offset: offset, Cause: EmptyStackError{Line: m.chunk.GetLine(offset)}}
	}
	return m.stack[idx], nil
}

func (m *VM) defineGlobal(offset int) error {
	name := m.readConstant().AsSymbol()
	v, err := m.pop(offset)
	if err != nil {
		return err
	}
	m.globals[name] = v
	return nil
}

func (m *VM) getGlobal(offset int) error {
	name := m.readConstant().AsSymbol()
	v, ok := m.globals[name]
	if !ok {
		return RuntimeError{Offset: offset, Cause: UndefinedVariableError{Line: m.chunk.GetLine(offset), Name: m.interner.Resolve(name)}}
	}
	m.push(v)
	return nil
}

// setGlobal implements assignment-as-expression: the assigned value stays
// on the stack (the caller's statement emits the matching OpPop), it is
// only peeked, never popped.
func (m *VM) setGlobal(offset int) error {
	name := m.readConstant().AsSymbol()
	v, err := m.peek(offset, 0)
	if err != nil {
		return err
	}
	if _, ok := m.globals[name]; !ok {
		return RuntimeError{Offset: offset, Cause: UndefinedVariableError{Line: m.chunk.GetLine(offset), Name: m.interner.Resolve(name)}}
	}
	m.globals[name] = v
	return nil
}

func (m *VM) binaryEqual(offset int) error {
	b, err := m.pop(offset)
	if err != nil {
		return err
	}
	a, err := m.pop(offset)
	if err != nil {
		return err
	}
	m.push(value.Bool(a.Equal(b)))
	return nil
}

func (m *VM) binaryCompare(offset int, cmp func(a, b float64) bool) error {
	b, err := m.pop(offset)
	if err != nil {
		return err
	}
	a, err := m.pop(offset)
	if err != nil {
		return err
	}
	if a.Kind() != value.KindNumber || b.Kind() != value.KindNumber {
		return RuntimeError{Offset: offset, Cause: TypeError{Line: m.chunk.GetLine(offset), Msg: "Operands must be numbers."}}
	}
	m.push(value.Bool(cmp(a.AsNumber(), b.AsNumber())))
	return nil
}

func (m *VM) arithmetic(offset int, op func(a, b float64) float64) error {
	b, err := m.pop(offset)
	if err != nil {
		return err
	}
	a, err := m.pop(offset)
	if err != nil {
		return err
	}
	if a.Kind() != value.KindNumber || b.Kind() != value.KindNumber {
		return RuntimeError{Offset: offset, Cause: TypeError{Line: m.chunk.GetLine(offset), Msg: "Operands must be numbers."}}
	}
	m.push(value.Number(op(a.AsNumber(), b.AsNumber())))
	return nil
}

// add overloads '+' for both numbers and strings, re-interning the
// concatenation result the way the spec's string model requires.
func (m *VM) add(offset int) error {
	b, err := m.pop(offset)
	if err != nil {
		return err
	}
	a, err := m.pop(offset)
	if err != nil {
		return err
	}
	switch {
	case a.Kind() == value.KindNumber && b.Kind() == value.KindNumber:
		m.push(value.Number(a.AsNumber() + b.AsNumber()))
	case a.Kind() == value.KindString && b.Kind() == value.KindString:
		concat := m.interner.Resolve(a.AsSymbol()) + m.interner.Resolve(b.AsSymbol())
		m.push(value.String(m.interner.Intern(concat)))
	default:
		return RuntimeError{Offset: offset, Cause: TypeError{Line: m.chunk.GetLine(offset), Msg: "Operands must be two numbers or two strings."}}
	}
	return nil
}

func (m *VM) negate(offset int) error {
	v, err := m.pop(offset)
	if err != nil {
		return err
	}
	if v.Kind() != value.KindNumber {
		return RuntimeError{Offset: offset, Cause: TypeError{Line: m.chunk.GetLine(offset), Msg: "Operand must be a number."}}
	}
	m.push(value.Number(-v.AsNumber()))
	return nil
}
