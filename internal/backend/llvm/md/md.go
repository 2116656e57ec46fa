// Package md models LLVM metadata: the identifier space for unnamed
// metadata nodes, the closed expression forms metadata can take, and the
// rendering of expressions, declarations, and instruction annotations
// into LLVM assembly syntax. The package holds no state and performs no
// I/O; the emitter owns identifier allocation and declaration order.
package md

import "fmt"

// ID names an unnamed metadata node within one emitted module. IDs are
// opaque: equality and ordering follow the underlying integer only,
// never the expression bound to the node.
type ID uint32

// Next returns the successor identifier, letting a caller allocate a
// dense sequence starting from zero.
func (id ID) Next() ID {
	return id + 1
}

// Less reports whether id orders before other.
func (id ID) Less(other ID) bool {
	return id < other
}

// Ref renders the identifier as a metadata reference.
func (id ID) Ref() string {
	return fmt.Sprintf("!%d", id)
}

// EmissionKind selects how much debug information a compile unit asks
// the toolchain to retain.
type EmissionKind uint8

const (
	// NoDebug requests no debug information.
	NoDebug EmissionKind = iota
	// FullDebug requests complete debug information.
	FullDebug
	// LineTablesOnly requests line tables without variable info.
	LineTablesOnly
)

// String returns the spelling LLVM expects inside a DICompileUnit.
func (k EmissionKind) String() string {
	switch k {
	case FullDebug:
		return "FullDebug"
	case LineTablesOnly:
		return "LineTablesOnly"
	default:
		return "NoDebug"
	}
}

// Value is a target-IR value embedded in metadata. The emitter's value
// type implements it; this package only asks for the value's textual
// form and whether it is the literal null, which metadata renders as a
// bare token instead of a typed null.
type Value interface {
	IRValue() string
	IsNull() bool
}
