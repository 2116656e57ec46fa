package fir

type FuncID int32
type BlockID int32
type LocalID int32
type GlobalID int32

const (
	NoFuncID   FuncID   = -1
	NoBlockID  BlockID  = -1
	NoLocalID  LocalID  = -1
	NoGlobalID GlobalID = -1
)

// Type is the closed scalar set FIR values can take, spelled the way
// the target IR spells them.
type Type uint8

const (
	Void Type = iota
	I1
	I8
	I16
	I32
	I64
	F32
	F64
	Ptr
)

func (t Type) String() string {
	switch t {
	case Void:
		return "void"
	case I1:
		return "i1"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "float"
	case F64:
		return "double"
	case Ptr:
		return "ptr"
	default:
		return "void"
	}
}

// IsFloat reports whether the type is a floating-point type.
func (t Type) IsFloat() bool {
	return t == F32 || t == F64
}

// IsInteger reports whether the type is an integer type, i1 included.
func (t Type) IsInteger() bool {
	switch t {
	case I1, I8, I16, I32, I64:
		return true
	default:
		return false
	}
}
