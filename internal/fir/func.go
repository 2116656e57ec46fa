package fir

import "flint/internal/source"

// Func is one function. Locals[0:NumParams] are the parameters. A
// function with Defined=false is an external declaration: no blocks,
// only the signature.
type Func struct {
	ID   FuncID
	Name string
	Loc  source.Loc

	Result    Type
	NumParams int

	Locals []Local
	Blocks []Block
	Entry  BlockID

	Defined bool
}

type Local struct {
	Name string
	Type Type
}
