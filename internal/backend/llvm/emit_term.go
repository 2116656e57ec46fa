package llvm

import (
	"fmt"

	"flint/internal/fir"
)

func (fe *funcEmitter) emitTerminator(term *fir.Terminator) error {
	dbg := fe.dbgSuffix(term.Loc)
	switch term.Kind {
	case fir.TermReturn:
		ret := &term.Return
		if !ret.HasValue {
			fmt.Fprintf(&fe.emitter.buf, "  ret void%s\n", dbg)
			return nil
		}
		val, ty, err := fe.emitOperand(&ret.Value, dbg)
		if err != nil {
			return err
		}
		fmt.Fprintf(&fe.emitter.buf, "  ret %s %s%s\n", ty, val, dbg)
		return nil
	case fir.TermGoto:
		fmt.Fprintf(&fe.emitter.buf, "  br label %%bb%d%s\n", term.Goto.Target, dbg)
		return nil
	case fir.TermIf:
		cond, ty, err := fe.emitOperand(&term.If.Cond, dbg)
		if err != nil {
			return err
		}
		if ty != "i1" {
			return fmt.Errorf("branch condition has type %s", ty)
		}
		fmt.Fprintf(&fe.emitter.buf, "  br i1 %s, label %%bb%d, label %%bb%d%s\n",
			cond, term.If.Then, term.If.Else, dbg)
		return nil
	case fir.TermUnreachable:
		fmt.Fprintf(&fe.emitter.buf, "  unreachable%s\n", dbg)
		return nil
	}
	return fmt.Errorf("unterminated block")
}
