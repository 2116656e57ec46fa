package llvm

import (
	"fmt"
	"sort"
	"strings"

	"flint/internal/fir"
)

type stringConst struct {
	id       int
	name     string
	bytes    []byte
	arrayLen int
}

func (e *Emitter) collectStringConsts() {
	for fi := range e.mod.Funcs {
		f := &e.mod.Funcs[fi]
		for bi := range f.Blocks {
			bb := &f.Blocks[bi]
			for i := range bb.Instrs {
				e.collectInstrStrings(&bb.Instrs[i])
			}
			e.collectTermStrings(&bb.Term)
		}
	}
}

func (e *Emitter) collectInstrStrings(ins *fir.Instr) {
	switch ins.Kind {
	case fir.InstrAssign:
		e.collectRValueStrings(&ins.Assign.Src)
	case fir.InstrCall:
		for i := range ins.Call.Args {
			e.collectOperandStrings(&ins.Call.Args[i])
		}
	case fir.InstrStore:
		e.collectOperandStrings(&ins.Store.Value)
	}
}

func (e *Emitter) collectTermStrings(term *fir.Terminator) {
	switch term.Kind {
	case fir.TermReturn:
		if term.Return.HasValue {
			e.collectOperandStrings(&term.Return.Value)
		}
	case fir.TermIf:
		e.collectOperandStrings(&term.If.Cond)
	}
}

func (e *Emitter) collectRValueStrings(rv *fir.RValue) {
	switch rv.Kind {
	case fir.RValueUse:
		e.collectOperandStrings(&rv.Use)
	case fir.RValueUnaryOp:
		e.collectOperandStrings(&rv.Unary.Operand)
	case fir.RValueBinaryOp:
		e.collectOperandStrings(&rv.Binary.Left)
		e.collectOperandStrings(&rv.Binary.Right)
	}
}

func (e *Emitter) collectOperandStrings(op *fir.Operand) {
	if op.Kind != fir.OperandConst || op.Const.Kind != fir.ConstStr {
		return
	}
	e.internString(op.Const.StringValue)
}

func (e *Emitter) internString(s string) *stringConst {
	if sc, ok := e.stringConsts[s]; ok {
		return sc
	}
	id := len(e.stringConsts)
	sc := &stringConst{
		id:       id,
		name:     fmt.Sprintf(".str.%d", id),
		bytes:    []byte(s),
		arrayLen: len(s) + 1, // NUL terminator keeps the data C-compatible
	}
	e.stringConsts[s] = sc
	return sc
}

func (e *Emitter) emitStringConsts() {
	if len(e.stringConsts) == 0 {
		return
	}
	consts := make([]*stringConst, 0, len(e.stringConsts))
	for _, sc := range e.stringConsts {
		consts = append(consts, sc)
	}
	sort.Slice(consts, func(i, j int) bool { return consts[i].id < consts[j].id })
	for _, sc := range consts {
		fmt.Fprintf(&e.buf, "@%s = private unnamed_addr constant [%d x i8] %s\n",
			sc.name, sc.arrayLen, formatBytes(sc.bytes, sc.arrayLen))
	}
	e.buf.WriteString("\n")
}

func formatBytes(data []byte, arrayLen int) string {
	var sb strings.Builder
	sb.WriteString("c\"")
	for i := range arrayLen {
		b := byte(0)
		if i < len(data) {
			b = data[i]
		}
		fmt.Fprintf(&sb, "\\%02X", b)
	}
	sb.WriteString("\"")
	return sb.String()
}
