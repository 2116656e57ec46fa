package fir

import (
	"fmt"
	"io"

	"flint/internal/source"
)

// DumpModule writes a human-readable representation of a FIR module.
func DumpModule(w io.Writer, m *Module) error {
	if w == nil || m == nil {
		return nil
	}

	fmt.Fprintf(w, "module %s\n", m.Name)

	if len(m.Files) > 0 {
		fmt.Fprintf(w, "files=%d\n", len(m.Files))
		for i, path := range m.Files {
			fmt.Fprintf(w, "  F%d: %s\n", i, path)
		}
	}

	if len(m.Globals) > 0 {
		fmt.Fprintf(w, "globals=%d\n", len(m.Globals))
		for i := range m.Globals {
			g := m.Globals[i]
			name := g.Name
			if name == "" {
				name = "_"
			}
			fmt.Fprintf(w, "  G%d: %s name=%s\n", i, g.Type, name)
		}
	}

	fmt.Fprintf(w, "funcs=%d\n", len(m.Funcs))
	for i := range m.Funcs {
		if err := dumpFunc(w, &m.Funcs[i]); err != nil {
			return err
		}
	}
	return nil
}

func dumpFunc(w io.Writer, f *Func) error {
	if w == nil || f == nil {
		return nil
	}
	if !f.Defined {
		fmt.Fprintf(w, "\ndeclare %s -> %s params=%d\n", f.Name, f.Result, f.NumParams)
		return nil
	}
	fmt.Fprintf(w, "\nfn %s -> %s:\n", f.Name, f.Result)

	fmt.Fprintf(w, "  locals:\n")
	for i := range f.Locals {
		l := f.Locals[i]
		name := l.Name
		if name == "" {
			name = "_"
		}
		role := ""
		if i < f.NumParams {
			role = " param"
		}
		fmt.Fprintf(w, "    L%d: %s%s name=%s\n", i, l.Type, role, name)
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		fmt.Fprintf(w, "  bb%d:\n", bb.ID)
		for j := range bb.Instrs {
			ins := &bb.Instrs[j]
			fmt.Fprintf(w, "    %s%s\n", formatInstr(ins), formatLoc(ins.Loc))
		}
		fmt.Fprintf(w, "    %s%s\n", formatTerm(&bb.Term), formatLoc(bb.Term.Loc))
	}

	return nil
}

func formatInstr(ins *Instr) string {
	if ins == nil {
		return "<instr?>"
	}
	switch ins.Kind {
	case InstrAssign:
		return fmt.Sprintf("L%d = %s", ins.Assign.Dst, formatRValue(&ins.Assign.Src))
	case InstrCall:
		dst := ""
		if ins.Call.HasDst {
			dst = fmt.Sprintf("L%d = ", ins.Call.Dst)
		}
		return fmt.Sprintf("%scall fn#%d(%s)", dst, ins.Call.Callee, formatOperands(ins.Call.Args))
	case InstrStore:
		return fmt.Sprintf("G%d = store %s", ins.Store.Global, formatOperand(&ins.Store.Value))
	default:
		return "<instr?>"
	}
}

func formatTerm(term *Terminator) string {
	if term == nil {
		return "unreachable"
	}
	switch term.Kind {
	case TermNone:
		return "unreachable"
	case TermReturn:
		if !term.Return.HasValue {
			return "return"
		}
		return fmt.Sprintf("return %s", formatOperand(&term.Return.Value))
	case TermGoto:
		return fmt.Sprintf("goto bb%d", term.Goto.Target)
	case TermIf:
		return fmt.Sprintf("if %s then bb%d else bb%d", formatOperand(&term.If.Cond), term.If.Then, term.If.Else)
	case TermUnreachable:
		return "unreachable"
	default:
		return "<term?>"
	}
}

func formatRValue(rv *RValue) string {
	if rv == nil {
		return "<rvalue?>"
	}
	switch rv.Kind {
	case RValueUse:
		return formatOperand(&rv.Use)
	case RValueUnaryOp:
		return fmt.Sprintf("(%s %s)", rv.Unary.Op, formatOperand(&rv.Unary.Operand))
	case RValueBinaryOp:
		return fmt.Sprintf("(%s %s %s)", formatOperand(&rv.Binary.Left), rv.Binary.Op, formatOperand(&rv.Binary.Right))
	default:
		return "<rvalue?>"
	}
}

func formatOperands(ops []Operand) string {
	if len(ops) == 0 {
		return ""
	}
	out := formatOperand(&ops[0])
	for i := 1; i < len(ops); i++ {
		out += ", " + formatOperand(&ops[i])
	}
	return out
}

func formatOperand(op *Operand) string {
	if op == nil {
		return "<op?>"
	}
	switch op.Kind {
	case OperandConst:
		return formatConst(&op.Const)
	case OperandCopy:
		return fmt.Sprintf("copy L%d", op.Local)
	case OperandLoad:
		return fmt.Sprintf("load G%d", op.Global)
	default:
		return "<op?>"
	}
}

func formatConst(c *Const) string {
	if c == nil {
		return "const ?"
	}
	switch c.Kind {
	case ConstInt:
		return fmt.Sprintf("const %d:%s", c.IntValue, c.Type)
	case ConstFloat:
		return fmt.Sprintf("const %g:%s", c.FloatValue, c.Type)
	case ConstBool:
		if c.BoolValue {
			return "const true"
		}
		return "const false"
	case ConstStr:
		return fmt.Sprintf("const %q", c.StringValue)
	case ConstNull:
		return "const null"
	default:
		return "const ?"
	}
}

func formatLoc(loc source.Loc) string {
	if !loc.IsValid() {
		return ""
	}
	return fmt.Sprintf("  @F%d:%d:%d", loc.File, loc.Line, loc.Col)
}
