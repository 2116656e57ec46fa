package fir

import "flint/internal/source"

// InstrKind enumerates instruction kinds in FIR.
type InstrKind uint8

const (
	// InstrAssign represents an assignment instruction.
	InstrAssign InstrKind = iota
	// InstrCall represents a call instruction.
	InstrCall
	// InstrStore represents a store to a global.
	InstrStore
)

// Instr represents a FIR instruction. Loc is the resolved source
// position; an invalid Loc means the instruction has no origin worth
// reporting in debug info.
type Instr struct {
	Kind InstrKind
	Loc  source.Loc

	Assign AssignInstr
	Call   CallInstr
	Store  StoreInstr
}

// AssignInstr represents an assignment instruction.
type AssignInstr struct {
	Dst LocalID
	Src RValue
}

// CallInstr represents a function call instruction.
type CallInstr struct {
	HasDst bool
	Dst    LocalID
	Callee FuncID
	Args   []Operand
}

// StoreInstr represents a store of a value into a global.
type StoreInstr struct {
	Global GlobalID
	Value  Operand
}

// RValueKind distinguishes right-hand value kinds.
type RValueKind uint8

const (
	// RValueUse represents a use of a value.
	RValueUse RValueKind = iota
	// RValueUnaryOp represents a unary operation.
	RValueUnaryOp
	// RValueBinaryOp represents a binary operation.
	RValueBinaryOp
)

// RValue represents a right-hand value in FIR.
type RValue struct {
	Kind RValueKind

	Use    Operand
	Unary  UnaryOp
	Binary BinaryOp
}

// UnOp enumerates unary operators.
type UnOp uint8

const (
	// UnNeg represents arithmetic negation.
	UnNeg UnOp = iota
	// UnNot represents bitwise or boolean complement.
	UnNot
)

func (op UnOp) String() string {
	switch op {
	case UnNot:
		return "not"
	default:
		return "neg"
	}
}

// BinOp enumerates binary operators.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinAnd
	BinOr
	BinXor
	BinShl
	BinShr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

func (op BinOp) String() string {
	switch op {
	case BinAdd:
		return "add"
	case BinSub:
		return "sub"
	case BinMul:
		return "mul"
	case BinDiv:
		return "div"
	case BinRem:
		return "rem"
	case BinAnd:
		return "and"
	case BinOr:
		return "or"
	case BinXor:
		return "xor"
	case BinShl:
		return "shl"
	case BinShr:
		return "shr"
	case BinEq:
		return "eq"
	case BinNe:
		return "ne"
	case BinLt:
		return "lt"
	case BinLe:
		return "le"
	case BinGt:
		return "gt"
	case BinGe:
		return "ge"
	default:
		return "?"
	}
}

// IsCompare reports whether the operator yields an i1 regardless of
// operand type.
func (op BinOp) IsCompare() bool {
	switch op {
	case BinEq, BinNe, BinLt, BinLe, BinGt, BinGe:
		return true
	default:
		return false
	}
}

// UnaryOp represents a unary operation.
type UnaryOp struct {
	Op      UnOp
	Operand Operand
}

// BinaryOp represents a binary operation.
type BinaryOp struct {
	Op    BinOp
	Left  Operand
	Right Operand
}

// OperandKind distinguishes operand types.
type OperandKind uint8

const (
	// OperandConst represents a constant operand.
	OperandConst OperandKind = iota
	// OperandCopy represents a read of a local.
	OperandCopy
	// OperandLoad represents a read of a global.
	OperandLoad
)

// Operand represents a FIR operand.
type Operand struct {
	Kind OperandKind

	Const  Const
	Local  LocalID
	Global GlobalID
}

// ConstKind distinguishes constant kinds.
type ConstKind uint8

const (
	// ConstInt represents an integer constant.
	ConstInt ConstKind = iota
	// ConstFloat represents a float constant.
	ConstFloat
	// ConstBool represents a boolean constant.
	ConstBool
	// ConstStr represents a string constant.
	ConstStr
	// ConstNull represents the null pointer constant.
	ConstNull
)

// Const represents a FIR constant. Type is the scalar type the
// constant carries into the target IR.
type Const struct {
	Kind ConstKind
	Type Type

	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string
}
