package llvm

import (
	"fmt"
	"strconv"
	"strings"

	"flint/internal/fir"
)

func (fe *funcEmitter) emitInstr(ins *fir.Instr) error {
	switch ins.Kind {
	case fir.InstrAssign:
		return fe.emitAssign(ins)
	case fir.InstrCall:
		return fe.emitCall(ins)
	case fir.InstrStore:
		return fe.emitStore(ins)
	}
	return fmt.Errorf("unsupported instruction kind %d", ins.Kind)
}

func (fe *funcEmitter) emitAssign(ins *fir.Instr) error {
	dbg := fe.dbgSuffix(ins.Loc)
	val, ty, err := fe.emitRValue(&ins.Assign.Src, dbg)
	if err != nil {
		return err
	}
	dst := ins.Assign.Dst
	if int(dst) < 0 || int(dst) >= len(fe.fn.Locals) {
		return fmt.Errorf("assign to unknown local %d", dst)
	}
	fmt.Fprintf(&fe.emitter.buf, "  store %s %s, ptr %%l%d%s\n", ty, val, dst, dbg)
	return nil
}

func (fe *funcEmitter) emitCall(ins *fir.Instr) error {
	e := fe.emitter
	call := &ins.Call
	if int(call.Callee) < 0 || int(call.Callee) >= len(e.mod.Funcs) {
		return fmt.Errorf("call to unknown function %d", call.Callee)
	}
	callee := &e.mod.Funcs[call.Callee]
	dbg := fe.dbgSuffix(ins.Loc)
	args := make([]string, 0, len(call.Args))
	for i := range call.Args {
		val, ty, err := fe.emitOperand(&call.Args[i], dbg)
		if err != nil {
			return err
		}
		args = append(args, ty+" "+val)
	}
	ref := symbolRef(e.funcNames[call.Callee])
	if callee.Result == fir.Void {
		fmt.Fprintf(&e.buf, "  call void %s(%s)%s\n", ref, strings.Join(args, ", "), dbg)
		return nil
	}
	tmp := fe.nextTemp()
	fmt.Fprintf(&e.buf, "  %s = call %s %s(%s)%s\n", tmp, callee.Result, ref, strings.Join(args, ", "), dbg)
	if call.HasDst {
		if int(call.Dst) < 0 || int(call.Dst) >= len(fe.fn.Locals) {
			return fmt.Errorf("call result to unknown local %d", call.Dst)
		}
		fmt.Fprintf(&e.buf, "  store %s %s, ptr %%l%d%s\n", callee.Result, tmp, call.Dst, dbg)
	}
	return nil
}

func (fe *funcEmitter) emitStore(ins *fir.Instr) error {
	e := fe.emitter
	st := &ins.Store
	if int(st.Global) < 0 || int(st.Global) >= len(e.mod.Globals) {
		return fmt.Errorf("store to unknown global %d", st.Global)
	}
	dbg := fe.dbgSuffix(ins.Loc)
	val, ty, err := fe.emitOperand(&st.Value, dbg)
	if err != nil {
		return err
	}
	fmt.Fprintf(&e.buf, "  store %s %s, ptr %s%s\n", ty, val, symbolRef(e.globalNames[st.Global]), dbg)
	return nil
}

func (fe *funcEmitter) emitRValue(rv *fir.RValue, dbg string) (string, string, error) {
	switch rv.Kind {
	case fir.RValueUse:
		return fe.emitOperand(&rv.Use, dbg)
	case fir.RValueUnaryOp:
		return fe.emitUnary(&rv.Unary, dbg)
	case fir.RValueBinaryOp:
		return fe.emitBinary(&rv.Binary, dbg)
	}
	return "", "", fmt.Errorf("unsupported rvalue kind %d", rv.Kind)
}

func (fe *funcEmitter) emitUnary(u *fir.UnaryOp, dbg string) (string, string, error) {
	val, ty, err := fe.emitOperand(&u.Operand, dbg)
	if err != nil {
		return "", "", err
	}
	tmp := fe.nextTemp()
	switch u.Op {
	case fir.UnNeg:
		if isFloatTy(ty) {
			fmt.Fprintf(&fe.emitter.buf, "  %s = fneg %s %s%s\n", tmp, ty, val, dbg)
		} else {
			fmt.Fprintf(&fe.emitter.buf, "  %s = sub %s 0, %s%s\n", tmp, ty, val, dbg)
		}
		return tmp, ty, nil
	case fir.UnNot:
		if ty == "i1" {
			fmt.Fprintf(&fe.emitter.buf, "  %s = xor i1 %s, true%s\n", tmp, val, dbg)
		} else {
			fmt.Fprintf(&fe.emitter.buf, "  %s = xor %s %s, -1%s\n", tmp, ty, val, dbg)
		}
		return tmp, ty, nil
	}
	return "", "", fmt.Errorf("unsupported unary op %s", u.Op)
}

func (fe *funcEmitter) emitBinary(bin *fir.BinaryOp, dbg string) (string, string, error) {
	lhs, lty, err := fe.emitOperand(&bin.Left, dbg)
	if err != nil {
		return "", "", err
	}
	rhs, _, err := fe.emitOperand(&bin.Right, dbg)
	if err != nil {
		return "", "", err
	}
	op, resTy, err := binaryInstr(bin.Op, lty)
	if err != nil {
		return "", "", err
	}
	tmp := fe.nextTemp()
	fmt.Fprintf(&fe.emitter.buf, "  %s = %s %s %s, %s%s\n", tmp, op, lty, lhs, rhs, dbg)
	return tmp, resTy, nil
}

func (fe *funcEmitter) emitOperand(op *fir.Operand, dbg string) (string, string, error) {
	switch op.Kind {
	case fir.OperandConst:
		return fe.emitConst(&op.Const)
	case fir.OperandCopy:
		if int(op.Local) < 0 || int(op.Local) >= len(fe.fn.Locals) {
			return "", "", fmt.Errorf("copy of unknown local %d", op.Local)
		}
		ty, err := valueType(fe.fn.Locals[op.Local].Type)
		if err != nil {
			return "", "", err
		}
		tmp := fe.nextTemp()
		fmt.Fprintf(&fe.emitter.buf, "  %s = load %s, ptr %%l%d%s\n", tmp, ty, op.Local, dbg)
		return tmp, ty, nil
	case fir.OperandLoad:
		mod := fe.emitter.mod
		if int(op.Global) < 0 || int(op.Global) >= len(mod.Globals) {
			return "", "", fmt.Errorf("load of unknown global %d", op.Global)
		}
		ty, err := valueType(mod.Globals[op.Global].Type)
		if err != nil {
			return "", "", err
		}
		tmp := fe.nextTemp()
		fmt.Fprintf(&fe.emitter.buf, "  %s = load %s, ptr %s%s\n",
			tmp, ty, symbolRef(fe.emitter.globalNames[op.Global]), dbg)
		return tmp, ty, nil
	}
	return "", "", fmt.Errorf("unsupported operand kind %d", op.Kind)
}

func (fe *funcEmitter) emitConst(c *fir.Const) (string, string, error) {
	switch c.Kind {
	case fir.ConstInt:
		ty, err := valueType(c.Type)
		if err != nil {
			return "", "", err
		}
		return fmt.Sprintf("%d", c.IntValue), ty, nil
	case fir.ConstFloat:
		switch c.Type {
		case fir.F64:
			return formatFloat(64, c.FloatValue), "double", nil
		case fir.F32:
			return formatFloat(32, float64(float32(c.FloatValue))), "float", nil
		}
		return "", "", fmt.Errorf("float constant with type %s", c.Type)
	case fir.ConstBool:
		return boolText(c.BoolValue), "i1", nil
	case fir.ConstStr:
		sc, ok := fe.emitter.stringConsts[c.StringValue]
		if !ok {
			return "", "", fmt.Errorf("string constant %q was not collected", c.StringValue)
		}
		return "@" + sc.name, "ptr", nil
	case fir.ConstNull:
		return "null", "ptr", nil
	}
	return "", "", fmt.Errorf("unsupported constant kind %d", c.Kind)
}

func binaryInstr(op fir.BinOp, ty string) (string, string, error) {
	if isFloatTy(ty) {
		switch op {
		case fir.BinAdd:
			return "fadd", ty, nil
		case fir.BinSub:
			return "fsub", ty, nil
		case fir.BinMul:
			return "fmul", ty, nil
		case fir.BinDiv:
			return "fdiv", ty, nil
		case fir.BinRem:
			return "frem", ty, nil
		case fir.BinEq, fir.BinNe, fir.BinLt, fir.BinLe, fir.BinGt, fir.BinGe:
			return "fcmp " + floatCond(op), "i1", nil
		}
		return "", "", fmt.Errorf("%s is not defined on %s", op, ty)
	}
	switch op {
	case fir.BinAdd:
		return "add", ty, nil
	case fir.BinSub:
		return "sub", ty, nil
	case fir.BinMul:
		return "mul", ty, nil
	case fir.BinDiv:
		return "sdiv", ty, nil
	case fir.BinRem:
		return "srem", ty, nil
	case fir.BinAnd:
		return "and", ty, nil
	case fir.BinOr:
		return "or", ty, nil
	case fir.BinXor:
		return "xor", ty, nil
	case fir.BinShl:
		return "shl", ty, nil
	case fir.BinShr:
		return "ashr", ty, nil
	case fir.BinEq, fir.BinNe, fir.BinLt, fir.BinLe, fir.BinGt, fir.BinGe:
		return "icmp " + intCond(op), "i1", nil
	}
	return "", "", fmt.Errorf("unsupported binary op %s", op)
}

func intCond(op fir.BinOp) string {
	switch op {
	case fir.BinEq:
		return "eq"
	case fir.BinNe:
		return "ne"
	case fir.BinLt:
		return "slt"
	case fir.BinLe:
		return "sle"
	case fir.BinGt:
		return "sgt"
	}
	return "sge"
}

func floatCond(op fir.BinOp) string {
	switch op {
	case fir.BinEq:
		return "oeq"
	case fir.BinNe:
		return "one"
	case fir.BinLt:
		return "olt"
	case fir.BinLe:
		return "ole"
	case fir.BinGt:
		return "ogt"
	}
	return "oge"
}

func formatFloat(bits int, v float64) string {
	prec := 17
	if bits == 32 {
		prec = 9
	}
	return strconv.FormatFloat(v, 'e', prec, bits)
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
