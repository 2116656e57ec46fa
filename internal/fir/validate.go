package fir

import (
	"errors"
	"fmt"

	"flint/internal/source"
)

// Validate performs structural sanity checks over a decoded module:
// index ranges, block termination, branch targets, and location file
// references. It guards the frontend contract, not target-IR legality;
// a module that passes can still be rejected by the toolchain.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for i := range m.Funcs {
		f := &m.Funcs[i]
		if int(f.ID) != i {
			errs = append(errs, fmt.Errorf("func %q: ID %d does not match position %d", f.Name, f.ID, i))
		}
		errs = append(errs, validateFunc(m, f)...)
	}
	return errors.Join(errs...)
}

func validateFunc(m *Module, f *Func) []error {
	var errs []error

	if f.Name == "" {
		errs = append(errs, fmt.Errorf("func #%d has no name", f.ID))
	}
	if f.NumParams < 0 || f.NumParams > len(f.Locals) {
		errs = append(errs, fmt.Errorf("func %q: %d params but %d locals", f.Name, f.NumParams, len(f.Locals)))
	}
	for i := range f.Locals {
		if f.Locals[i].Type == Void {
			errs = append(errs, fmt.Errorf("func %q: local L%d has void type", f.Name, i))
		}
	}

	if !f.Defined {
		if len(f.Blocks) > 0 {
			errs = append(errs, fmt.Errorf("func %q: declared extern but has %d blocks", f.Name, len(f.Blocks)))
		}
		return errs
	}

	if len(f.Blocks) == 0 {
		errs = append(errs, fmt.Errorf("func %q: defined but has no blocks", f.Name))
		return errs
	}
	if f.Entry == NoBlockID || int(f.Entry) >= len(f.Blocks) {
		errs = append(errs, fmt.Errorf("func %q: entry bb%d does not exist", f.Name, f.Entry))
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		if int(bb.ID) != i {
			errs = append(errs, fmt.Errorf("func %q: block at %d carries ID bb%d", f.Name, i, bb.ID))
		}
		if !bb.Terminated() {
			errs = append(errs, fmt.Errorf("func %q: block bb%d is unterminated", f.Name, bb.ID))
		}
		for j := range bb.Instrs {
			errs = append(errs, validateInstr(m, f, bb, &bb.Instrs[j])...)
		}
		errs = append(errs, validateTerm(m, f, bb)...)
	}

	return errs
}

func validateInstr(m *Module, f *Func, bb *Block, ins *Instr) []error {
	var errs []error
	ctx := func(format string, args ...any) {
		prefix := fmt.Sprintf("func %q bb%d: ", f.Name, bb.ID)
		errs = append(errs, errors.New(prefix+fmt.Sprintf(format, args...)))
	}

	switch ins.Kind {
	case InstrAssign:
		if !localInRange(f, ins.Assign.Dst) {
			ctx("assign to L%d which does not exist", ins.Assign.Dst)
		}
		errs = append(errs, validateRValue(m, f, bb, &ins.Assign.Src)...)
	case InstrCall:
		if int(ins.Call.Callee) < 0 || int(ins.Call.Callee) >= len(m.Funcs) {
			ctx("call to fn#%d which does not exist", ins.Call.Callee)
		} else {
			callee := &m.Funcs[ins.Call.Callee]
			if len(ins.Call.Args) != callee.NumParams {
				ctx("call to %q with %d args, want %d", callee.Name, len(ins.Call.Args), callee.NumParams)
			}
			if ins.Call.HasDst && callee.Result == Void {
				ctx("call to void %q assigns a result", callee.Name)
			}
		}
		if ins.Call.HasDst && !localInRange(f, ins.Call.Dst) {
			ctx("call result into L%d which does not exist", ins.Call.Dst)
		}
		for i := range ins.Call.Args {
			errs = append(errs, validateOperand(m, f, bb, &ins.Call.Args[i])...)
		}
	case InstrStore:
		if int(ins.Store.Global) < 0 || int(ins.Store.Global) >= len(m.Globals) {
			ctx("store to G%d which does not exist", ins.Store.Global)
		}
		errs = append(errs, validateOperand(m, f, bb, &ins.Store.Value)...)
	default:
		ctx("unknown instruction kind %d", ins.Kind)
	}

	errs = append(errs, validateLoc(m, f, ins.Loc)...)
	return errs
}

func validateRValue(m *Module, f *Func, bb *Block, rv *RValue) []error {
	switch rv.Kind {
	case RValueUse:
		return validateOperand(m, f, bb, &rv.Use)
	case RValueUnaryOp:
		return validateOperand(m, f, bb, &rv.Unary.Operand)
	case RValueBinaryOp:
		errs := validateOperand(m, f, bb, &rv.Binary.Left)
		return append(errs, validateOperand(m, f, bb, &rv.Binary.Right)...)
	default:
		return []error{fmt.Errorf("func %q bb%d: unknown rvalue kind %d", f.Name, bb.ID, rv.Kind)}
	}
}

func validateOperand(m *Module, f *Func, bb *Block, op *Operand) []error {
	switch op.Kind {
	case OperandConst:
		return nil
	case OperandCopy:
		if !localInRange(f, op.Local) {
			return []error{fmt.Errorf("func %q bb%d: use of L%d which does not exist", f.Name, bb.ID, op.Local)}
		}
	case OperandLoad:
		if int(op.Global) < 0 || int(op.Global) >= len(m.Globals) {
			return []error{fmt.Errorf("func %q bb%d: load of G%d which does not exist", f.Name, bb.ID, op.Global)}
		}
	default:
		return []error{fmt.Errorf("func %q bb%d: unknown operand kind %d", f.Name, bb.ID, op.Kind)}
	}
	return nil
}

func validateTerm(m *Module, f *Func, bb *Block) []error {
	var errs []error
	term := &bb.Term
	switch term.Kind {
	case TermReturn:
		if term.Return.HasValue && f.Result == Void {
			errs = append(errs, fmt.Errorf("func %q bb%d: return with value in void function", f.Name, bb.ID))
		}
		if !term.Return.HasValue && f.Result != Void {
			errs = append(errs, fmt.Errorf("func %q bb%d: return without value in non-void function", f.Name, bb.ID))
		}
		if term.Return.HasValue {
			errs = append(errs, validateOperand(m, f, bb, &term.Return.Value)...)
		}
	case TermGoto:
		if int(term.Goto.Target) < 0 || int(term.Goto.Target) >= len(f.Blocks) {
			errs = append(errs, fmt.Errorf("func %q bb%d: goto bb%d which does not exist", f.Name, bb.ID, term.Goto.Target))
		}
	case TermIf:
		errs = append(errs, validateOperand(m, f, bb, &term.If.Cond)...)
		for _, target := range []BlockID{term.If.Then, term.If.Else} {
			if int(target) < 0 || int(target) >= len(f.Blocks) {
				errs = append(errs, fmt.Errorf("func %q bb%d: branch to bb%d which does not exist", f.Name, bb.ID, target))
			}
		}
	case TermUnreachable, TermNone:
		// TermNone уже пойман как unterminated
	default:
		errs = append(errs, fmt.Errorf("func %q bb%d: unknown terminator kind %d", f.Name, bb.ID, term.Kind))
	}
	errs = append(errs, validateLoc(m, f, term.Loc)...)
	return errs
}

func validateLoc(m *Module, f *Func, loc source.Loc) []error {
	if !loc.IsValid() {
		return nil
	}
	if int(loc.File) >= len(m.Files) {
		return []error{fmt.Errorf("func %q: location references F%d but module has %d files", f.Name, loc.File, len(m.Files))}
	}
	return nil
}

func localInRange(f *Func, id LocalID) bool {
	return id != NoLocalID && int(id) >= 0 && int(id) < len(f.Locals)
}
