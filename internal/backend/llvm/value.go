package llvm

// Value is a typed operand as it appears inside instructions, e.g.
// `i32 42` or `ptr @counter`. Null is tracked separately because
// metadata rendering collapses typed nulls to the bare null token.
type Value struct {
	Ty   string
	Text string
	Null bool
}

// Literal builds a plain typed operand.
func Literal(ty, text string) Value {
	return Value{Ty: ty, Text: text}
}

// GlobalRef builds a reference to a module-level symbol.
func GlobalRef(ty, name string) Value {
	return Value{Ty: ty, Text: "@" + name}
}

// NullValue builds the typed null pointer operand.
func NullValue() Value {
	return Value{Ty: "ptr", Text: "null", Null: true}
}

// IRValue renders the operand for instruction position.
func (v Value) IRValue() string {
	return v.Ty + " " + v.Text
}

// IsNull reports whether the operand is a null pointer.
func (v Value) IsNull() bool {
	return v.Null
}
