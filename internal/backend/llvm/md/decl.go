package md

// DeclKind distinguishes top-level metadata declaration forms.
type DeclKind uint8

const (
	// DeclNamed represents a named module-level directive.
	DeclNamed DeclKind = iota
	// DeclUnnamed represents an unnamed node definition.
	DeclUnnamed
)

// Decl represents a top-level metadata declaration. A named declaration
// binds a label to an ordered list of node references; an unnamed one
// binds an identifier to a single expression.
type Decl struct {
	Kind DeclKind

	Name string
	Refs []ID

	ID   ID
	Expr Expr
}

// MakeNamed builds a named declaration. The label is used verbatim as
// an IR identifier, without quoting.
func MakeNamed(name string, refs []ID) Decl {
	return Decl{Kind: DeclNamed, Name: name, Refs: refs}
}

// MakeUnnamed builds an unnamed declaration defining node id as expr.
func MakeUnnamed(id ID, expr Expr) Decl {
	return Decl{Kind: DeclUnnamed, ID: id, Expr: expr}
}

// Annot pairs a label with a metadata expression, attached to a single
// instruction or call site rather than declared at module level.
type Annot struct {
	Label string
	Expr  Expr
}

// MakeAnnot builds an instruction-site annotation.
func MakeAnnot(label string, expr Expr) Annot {
	return Annot{Label: label, Expr: expr}
}
