// Package debug renders a chunk.Chunk's bytecode back into human-readable
// text, one instruction per line, for nilan-tools' disassemble subcommand
// and the VM's optional execution trace.
package debug

import (
	"fmt"
	"strings"

	"nilan/chunk"
	"nilan/value"
)

// Disassemble renders every instruction in ch under a "== name ==" header.
func Disassemble(ch *chunk.Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	offset := 0
	for offset < ch.Len() {
		offset = disassembleInstruction(&b, ch, offset)
	}
	return b.String()
}

// disassembleInstruction writes one instruction at offset and returns the
// offset of the next instruction.
func disassembleInstruction(b *strings.Builder, ch *chunk.Chunk, offset int) int {
	fmt.Fprintf(b, "%04d ", offset)

	if offset > 0 && ch.GetLine(offset) == ch.GetLine(offset-1) {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(b, "%4d ", ch.GetLine(offset))
	}

	op := chunk.OpCode(ch.GetByte(offset))
	if !op.HasOperand() {
		fmt.Fprintf(b, "%s\n", op)
		return offset + 1
	}

	idx := ch.GetByte(offset + 1)
	v := ch.GetConstant(idx)
	fmt.Fprintf(b, "%-18s %4d '%s'\n", op, idx, v.String(ch.Interner))
	return offset + 2
}

// DisassembleOneLine is the format the VM's optional execution trace
// prefixes each step with, matching rlox's interleaved stack-dump-then-
// instruction trace layout.
func DisassembleOneLine(ch *chunk.Chunk, offset int) string {
	var b strings.Builder
	disassembleInstruction(&b, ch, offset)
	return strings.TrimSuffix(b.String(), "\n")
}

// DumpStack renders the VM's value stack the way rlox's dump_stack does:
// one bracketed value per stack slot, oldest first.
func DumpStack(stack []value.Value, interner *value.Interner) string {
	var b strings.Builder
	b.WriteString("          ")
	for _, v := range stack {
		fmt.Fprintf(&b, "[%s]", v.String(interner))
	}
	return b.String()
}
