package debug

import (
	"strings"
	"testing"

	"nilan/chunk"
	"nilan/value"
)

func TestDisassembleSimpleReturn(t *testing.T) {
	interner := value.NewInterner()
	ch := chunk.New(interner)
	ch.Write(byte(chunk.OpReturn), 1)

	out := Disassemble(ch, "test")
	if !strings.Contains(out, "== test ==") {
		t.Errorf("missing header, got %q", out)
	}
	if !strings.Contains(out, "0000") || !strings.Contains(out, "OP_RETURN") {
		t.Errorf("missing offset/opcode, got %q", out)
	}
}

func TestDisassembleConstantShowsIndexAndValue(t *testing.T) {
	interner := value.NewInterner()
	ch := chunk.New(interner)
	idx, _ := ch.AddConstant(chunk.NumberConstant(42))
	ch.Write(byte(chunk.OpConstant), 1)
	ch.Write(idx, 1)

	out := Disassemble(ch, "test")
	if !strings.Contains(out, "OP_CONSTANT") || !strings.Contains(out, "42") {
		t.Errorf("expected constant index/value in output, got %q", out)
	}
}

func TestDisassembleRepeatsLineNumberAsPipe(t *testing.T) {
	interner := value.NewInterner()
	ch := chunk.New(interner)
	ch.Write(byte(chunk.OpNil), 1)
	ch.Write(byte(chunk.OpPop), 1)

	out := Disassemble(ch, "test")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 instructions): %q", len(lines), out)
	}
	if !strings.Contains(lines[2], "   | ") {
		t.Errorf("second instruction should repeat-line-marker, got %q", lines[2])
	}
}

func TestDumpStackFormatsBracketedValues(t *testing.T) {
	interner := value.NewInterner()
	out := DumpStack([]value.Value{value.Number(1), value.Bool(true)}, interner)
	if !strings.Contains(out, "[1]") || !strings.Contains(out, "[true]") {
		t.Errorf("got %q", out)
	}
}
