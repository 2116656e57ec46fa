package md

import (
	"fmt"
	"strings"
)

// FormatExpr renders a metadata expression in LLVM assembly syntax.
// Rendering is total: every constructible expression yields exactly one
// textual form, and no validation happens here. A structurally bad
// graph renders as well-formed text and is left for the toolchain's
// verifier to reject.
func FormatExpr(e Expr) string {
	var sb strings.Builder
	appendExpr(&sb, e)
	return sb.String()
}

// FormatDecl renders a top-level metadata declaration.
func FormatDecl(d Decl) string {
	var sb strings.Builder
	switch d.Kind {
	case DeclNamed:
		sb.WriteString("!")
		sb.WriteString(d.Name)
		sb.WriteString(" = !{")
		for i, id := range d.Refs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(id.Ref())
		}
		sb.WriteString("}")
	case DeclUnnamed:
		sb.WriteString(d.ID.Ref())
		sb.WriteString(" = ")
		appendExpr(&sb, d.Expr)
	}
	return sb.String()
}

// FormatAnnot renders an instruction-site annotation, e.g. "!dbg !7".
// The caller splices the result into the instruction's trailing
// metadata position.
func FormatAnnot(a Annot) string {
	var sb strings.Builder
	sb.WriteString("!")
	sb.WriteString(a.Label)
	sb.WriteString(" ")
	appendExpr(&sb, a.Expr)
	return sb.String()
}

func appendExpr(sb *strings.Builder, e Expr) {
	switch e.Kind {
	case ExprStr:
		sb.WriteString("!")
		sb.WriteString(quote(e.Str))
	case ExprNode:
		sb.WriteString(e.Node.Ref())
	case ExprValue:
		// Null metadata is the bare token, never a typed null literal.
		if e.Value == nil || e.Value.IsNull() {
			sb.WriteString("null")
			return
		}
		sb.WriteString(e.Value.IRValue())
	case ExprTuple:
		appendTuple(sb, e.Tuple)
	case ExprFile:
		appendRecord(sb, false, "DIFile", []recordField{
			{"filename", quote(e.File.Filename)},
			{"directory", quote(e.File.Directory)},
		})
	case ExprSubroutineType:
		var types strings.Builder
		appendTuple(&types, e.SubroutineType.Types)
		appendRecord(sb, false, "DISubroutineType", []recordField{
			{"types", types.String()},
		})
	case ExprCompileUnit:
		cu := e.CompileUnit
		appendRecord(sb, true, "DICompileUnit", []recordField{
			{"language", cu.Language},
			{"file", cu.File.Ref()},
			{"producer", quote(cu.Producer)},
			{"isOptimized", formatBool(cu.IsOptimized)},
			{"emissionKind", cu.Emission.String()},
		})
	case ExprSubprogram:
		sp := e.Subprogram
		appendRecord(sb, sp.IsDefinition, "DISubprogram", []recordField{
			{"name", quote(sp.Name)},
			{"linkageName", quote(sp.LinkageName)},
			{"scope", sp.Scope.Ref()},
			{"file", sp.File.Ref()},
			{"line", fmt.Sprintf("%d", sp.Line)},
			{"type", sp.Type.Ref()},
			{"isDefinition", formatBool(sp.IsDefinition)},
			{"unit", sp.Unit.Ref()},
		})
	case ExprLocation:
		loc := e.Location
		appendRecord(sb, false, "DILocation", []recordField{
			{"line", fmt.Sprintf("%d", loc.Line)},
			{"column", fmt.Sprintf("%d", loc.Column)},
			{"scope", loc.Scope.Ref()},
		})
	}
}

func appendTuple(sb *strings.Builder, elems []Expr) {
	sb.WriteString("!{")
	for i := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		appendExpr(sb, elems[i])
	}
	sb.WriteString("}")
}

type recordField struct {
	name  string
	value string
}

// appendRecord prints a debug record: optional distinct prefix, the
// record keyword, then the fields in the order given. Field order is
// part of the output contract, so every record kind routes through
// here instead of formatting itself.
func appendRecord(sb *strings.Builder, distinct bool, keyword string, fields []recordField) {
	if distinct {
		sb.WriteString("distinct ")
	}
	sb.WriteString("!")
	sb.WriteString(keyword)
	sb.WriteString("(")
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.name)
		sb.WriteString(": ")
		sb.WriteString(f.value)
	}
	sb.WriteString(")")
}

func quote(s string) string {
	return "\"" + s + "\""
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
