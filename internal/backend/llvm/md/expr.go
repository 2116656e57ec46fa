package md

// ExprKind enumerates metadata expression forms.
type ExprKind uint8

const (
	// ExprStr represents an inline metadata string.
	ExprStr ExprKind = iota
	// ExprNode represents a reference to another metadata node.
	ExprNode
	// ExprValue represents an ordinary target-IR value used as metadata.
	ExprValue
	// ExprTuple represents an unnamed metadata tuple.
	ExprTuple
	// ExprFile represents a DIFile debug record.
	ExprFile
	// ExprSubroutineType represents a DISubroutineType debug record.
	ExprSubroutineType
	// ExprCompileUnit represents a DICompileUnit debug record.
	ExprCompileUnit
	// ExprSubprogram represents a DISubprogram debug record.
	ExprSubprogram
	// ExprLocation represents a DILocation debug record.
	ExprLocation
)

// Expr represents a metadata expression. The set of forms is closed:
// a new debug record kind is a change to this type, with every switch
// over Kind updated to match. Records are immutable once constructed;
// rendering only reads them.
type Expr struct {
	Kind ExprKind

	Str            string
	Node           ID
	Value          Value
	Tuple          []Expr
	File           FileExpr
	SubroutineType SubroutineTypeExpr
	CompileUnit    CompileUnitExpr
	Subprogram     SubprogramExpr
	Location       LocationExpr
}

// FileExpr describes one physical source file.
type FileExpr struct {
	Filename  string
	Directory string
}

// SubroutineTypeExpr describes a subroutine signature as an ordered
// type list. The return type comes first; a void return is the null
// expression.
type SubroutineTypeExpr struct {
	Types []Expr
}

// CompileUnitExpr describes one translation unit. Language is a DWARF
// language tag spelled the way LLVM expects it, e.g. DW_LANG_C.
type CompileUnitExpr struct {
	Language    string
	File        ID
	Producer    string
	IsOptimized bool
	Emission    EmissionKind
}

// SubprogramExpr describes one function.
type SubprogramExpr struct {
	Name         string
	LinkageName  string
	Scope        ID
	File         ID
	Line         uint32
	Type         ID
	IsDefinition bool
	Unit         ID
}

// LocationExpr describes the source origin of one instruction.
type LocationExpr struct {
	Line   uint32
	Column uint32
	Scope  ID
}

// MakeStr builds a metadata string expression. The text is emitted
// verbatim between quotes; the caller guarantees it is safe to quote.
func MakeStr(text string) Expr {
	return Expr{Kind: ExprStr, Str: text}
}

// MakeNode builds a reference to the metadata node named by id.
func MakeNode(id ID) Expr {
	return Expr{Kind: ExprNode, Node: id}
}

// MakeValue builds a metadata expression embedding a target-IR value.
func MakeValue(v Value) Expr {
	return Expr{Kind: ExprValue, Value: v}
}

// MakeTuple builds a metadata tuple of the given elements.
func MakeTuple(elems ...Expr) Expr {
	return Expr{Kind: ExprTuple, Tuple: elems}
}

// MakeFile builds a DIFile record.
func MakeFile(filename, directory string) Expr {
	return Expr{Kind: ExprFile, File: FileExpr{Filename: filename, Directory: directory}}
}

// MakeSubroutineType builds a DISubroutineType record over the given
// type list.
func MakeSubroutineType(types []Expr) Expr {
	return Expr{Kind: ExprSubroutineType, SubroutineType: SubroutineTypeExpr{Types: types}}
}

// MakeCompileUnit builds a DICompileUnit record.
func MakeCompileUnit(unit CompileUnitExpr) Expr {
	return Expr{Kind: ExprCompileUnit, CompileUnit: unit}
}

// MakeSubprogram builds a DISubprogram record.
func MakeSubprogram(sp SubprogramExpr) Expr {
	return Expr{Kind: ExprSubprogram, Subprogram: sp}
}

// MakeLocation builds a DILocation record.
func MakeLocation(line, column uint32, scope ID) Expr {
	return Expr{Kind: ExprLocation, Location: LocationExpr{Line: line, Column: column, Scope: scope}}
}

// Equal reports structural equality: same form, equal payload. Tuples
// and type lists compare element-wise; value payloads compare by
// interface equality.
func (e Expr) Equal(other Expr) bool {
	if e.Kind != other.Kind {
		return false
	}
	switch e.Kind {
	case ExprStr:
		return e.Str == other.Str
	case ExprNode:
		return e.Node == other.Node
	case ExprValue:
		return e.Value == other.Value
	case ExprTuple:
		return equalExprs(e.Tuple, other.Tuple)
	case ExprFile:
		return e.File == other.File
	case ExprSubroutineType:
		return equalExprs(e.SubroutineType.Types, other.SubroutineType.Types)
	case ExprCompileUnit:
		return e.CompileUnit == other.CompileUnit
	case ExprSubprogram:
		return e.Subprogram == other.Subprogram
	case ExprLocation:
		return e.Location == other.Location
	default:
		return false
	}
}

func equalExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
