package llvm

import (
	"fmt"

	"flint/internal/fir"
)

// valueType maps a FIR type onto its LLVM spelling in operand position.
// Void has no operand spelling.
func valueType(t fir.Type) (string, error) {
	if t == fir.Void {
		return "", fmt.Errorf("void has no value representation")
	}
	return t.String(), nil
}

func isFloatTy(ty string) bool {
	return ty == "float" || ty == "double"
}

// zeroValue is the initializer spelling for a freshly declared global.
func zeroValue(t fir.Type) string {
	switch t {
	case fir.F32:
		return formatFloat(32, 0)
	case fir.F64:
		return formatFloat(64, 0)
	case fir.Ptr:
		return "null"
	case fir.I1:
		return "false"
	default:
		return "0"
	}
}
