// Package chunk defines the compiled unit of bytecode: the append-only
// code buffer, its parallel source-line map, and the constant pool the
// compiler emits into and the VM consumes.
package chunk

import "nilan/value"

// OpCode is a one-byte instruction identifier. Constant, GetGlobal,
// DefineGlobal, and SetGlobal take one following operand byte (a
// constant-pool index); every other opcode takes zero operand bytes.
type OpCode byte

const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpGetGlobal
	OpDefineGlobal
	OpSetGlobal
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpReturn
)

var opNames = map[OpCode]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpReturn:       "OP_RETURN",
}

func (op OpCode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "OP_UNKNOWN"
}

// HasOperand reports whether op is followed by a one-byte constant-pool
// index in the instruction stream.
func (op OpCode) HasOperand() bool {
	switch op {
	case OpConstant, OpGetGlobal, OpDefineGlobal, OpSetGlobal:
		return true
	default:
		return false
	}
}

// maxConstants is the largest number of entries the (one-byte-addressed)
// constant pool can hold.
const maxConstants = 256

// ConstantKind distinguishes the two literal shapes the compiler ever
// adds to a chunk's constant pool.
type ConstantKind int

const (
	ConstantNumber ConstantKind = iota
	ConstantString
)

// Constant is the compiler-facing request to add a value to the pool;
// Chunk.AddConstant performs the interning policy described in the spec.
type Constant struct {
	Kind   ConstantKind
	Number float64
	Str    string
}

func NumberConstant(n float64) Constant { return Constant{Kind: ConstantNumber, Number: n} }
func StringConstant(s string) Constant  { return Constant{Kind: ConstantString, Str: s} }

// Chunk is the compiled unit: an append-only code buffer, a parallel
// per-byte line map, an ordered constant pool addressed by one-byte
// index, and a reference to the interner shared across compilation and
// execution.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []value.Value
	Interner  *value.Interner
}

// New returns an empty Chunk backed by the given shared interner.
func New(interner *value.Interner) *Chunk {
	return &Chunk{Interner: interner}
}

// Write appends one byte to the code stream, recording line as its source
// line. Invariant: len(Code) == len(Lines) after every call.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// AddConstant interns con into the pool according to the chunk's
// constant-interning policy (numbers are appended verbatim, strings are
// interned via the shared interner) and returns the one-byte index it was
// stored at. ok is false, and the pool is left unmodified, if the pool
// already holds 256 entries.
func (c *Chunk) AddConstant(con Constant) (index byte, ok bool) {
	if len(c.Constants) >= maxConstants {
		return 0, false
	}
	var v value.Value
	switch con.Kind {
	case ConstantString:
		v = value.String(c.Interner.Intern(con.Str))
	default:
		v = value.Number(con.Number)
	}
	c.Constants = append(c.Constants, v)
	return byte(len(c.Constants) - 1), true
}

// GetConstant returns the constant stored at index.
func (c *Chunk) GetConstant(index byte) value.Value {
	return c.Constants[index]
}

// GetByte returns the raw instruction byte at offset.
func (c *Chunk) GetByte(offset int) byte {
	return c.Code[offset]
}

// GetLine returns the source line recorded for the instruction byte at
// offset.
func (c *Chunk) GetLine(offset int) int {
	return c.Lines[offset]
}

// Len returns the number of bytes currently written to the chunk.
func (c *Chunk) Len() int {
	return len(c.Code)
}
