package md_test

import (
	"strings"
	"testing"

	"flint/internal/backend/llvm/md"
)

// testValue implements md.Value the way the emitter's value type does:
// a rendered "type text" pair plus a null marker.
type testValue struct {
	text string
	null bool
}

func (v testValue) IRValue() string { return v.text }
func (v testValue) IsNull() bool    { return v.null }

// TestIDRef tests that node references render as ! plus decimal digits.
func TestIDRef(t *testing.T) {
	tests := []struct {
		id   md.ID
		want string
	}{
		{0, "!0"},
		{1, "!1"},
		{7, "!7"},
		{42, "!42"},
		{4294967295, "!4294967295"},
	}
	for _, tt := range tests {
		if got := tt.id.Ref(); got != tt.want {
			t.Errorf("ID(%d).Ref() = %q, want %q", uint32(tt.id), got, tt.want)
		}
		if got := md.FormatExpr(md.MakeNode(tt.id)); got != tt.want {
			t.Errorf("FormatExpr(node %d) = %q, want %q", uint32(tt.id), got, tt.want)
		}
	}
}

// TestIDNext tests successor allocation and ordering.
func TestIDNext(t *testing.T) {
	var id md.ID
	for i := 0; i < 5; i++ {
		next := id.Next()
		if next != md.ID(i+1) {
			t.Fatalf("Next() from %d = %d, want %d", i, next, i+1)
		}
		if !id.Less(next) {
			t.Fatalf("expected %d < %d", id, next)
		}
		id = next
	}
}

// TestFormatStr tests that string literals render quoted and verbatim.
func TestFormatStr(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", `!""`},
		{"Debug Info Version", `!"Debug Info Version"`},
		{"flint 0.1.0", `!"flint 0.1.0"`},
	}
	for _, tt := range tests {
		if got := md.FormatExpr(md.MakeStr(tt.text)); got != tt.want {
			t.Errorf("FormatExpr(str %q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

// TestFormatTuple tests tuple rendering and separators.
func TestFormatTuple(t *testing.T) {
	tests := []struct {
		name  string
		elems []md.Expr
		want  string
	}{
		{"empty", nil, "!{}"},
		{"single", []md.Expr{md.MakeNode(3)}, "!{!3}"},
		{"pair", []md.Expr{md.MakeNode(0), md.MakeNode(1)}, "!{!0, !1}"},
		{
			"mixed",
			[]md.Expr{
				md.MakeValue(testValue{text: "i32 2"}),
				md.MakeStr("Dwarf Version"),
				md.MakeValue(testValue{text: "i32 5"}),
			},
			`!{i32 2, !"Dwarf Version", i32 5}`,
		},
		{
			"nested",
			[]md.Expr{md.MakeTuple(), md.MakeTuple(md.MakeNode(9))},
			"!{!{}, !{!9}}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := md.FormatExpr(md.MakeTuple(tt.elems...)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFormatValue tests value embedding and the bare null special case.
func TestFormatValue(t *testing.T) {
	if got := md.FormatExpr(md.MakeValue(testValue{text: "i32 7"})); got != "i32 7" {
		t.Errorf("value expr = %q, want %q", got, "i32 7")
	}
	if got := md.FormatExpr(md.MakeValue(testValue{text: "ptr @g"})); got != "ptr @g" {
		t.Errorf("global value expr = %q, want %q", got, "ptr @g")
	}
	// A null value never renders in its typed form.
	null := testValue{text: "ptr null", null: true}
	if got := md.FormatExpr(md.MakeValue(null)); got != "null" {
		t.Errorf("null value expr = %q, want %q", got, "null")
	}
	if got := md.FormatExpr(md.MakeValue(nil)); got != "null" {
		t.Errorf("nil value expr = %q, want %q", got, "null")
	}
}

// TestFormatFile tests DIFile rendering with canonical field order.
func TestFormatFile(t *testing.T) {
	got := md.FormatExpr(md.MakeFile("foo.c", "/tmp"))
	want := `!DIFile(filename: "foo.c", directory: "/tmp")`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestFormatSubroutineType tests the inline type list, including null
// entries for void.
func TestFormatSubroutineType(t *testing.T) {
	tests := []struct {
		name  string
		types []md.Expr
		want  string
	}{
		{"empty", nil, "!DISubroutineType(types: !{})"},
		{
			"void_result",
			[]md.Expr{md.MakeValue(nil)},
			"!DISubroutineType(types: !{null})",
		},
		{
			"refs",
			[]md.Expr{md.MakeValue(nil), md.MakeNode(4)},
			"!DISubroutineType(types: !{null, !4})",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := md.FormatExpr(md.MakeSubroutineType(tt.types)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFormatCompileUnit tests that compile units always render distinct
// with every field in canonical order.
func TestFormatCompileUnit(t *testing.T) {
	unit := md.MakeCompileUnit(md.CompileUnitExpr{
		Language:    "DW_LANG_C",
		File:        1,
		Producer:    "flint 0.1.0",
		IsOptimized: false,
		Emission:    md.FullDebug,
	})
	got := md.FormatExpr(unit)
	want := `distinct !DICompileUnit(language: DW_LANG_C, file: !1, producer: "flint 0.1.0", isOptimized: false, emissionKind: FullDebug)`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
	if !strings.HasPrefix(got, "distinct ") {
		t.Error("compile unit must always carry the distinct prefix")
	}
}

// TestFormatSubprogram tests the distinct rule: present exactly when
// the subprogram is a definition, with the rest of the output identical
// apart from the isDefinition field itself.
func TestFormatSubprogram(t *testing.T) {
	sp := md.SubprogramExpr{
		Name:        "main",
		LinkageName: "main",
		Scope:       1,
		File:        1,
		Line:        3,
		Type:        2,
		Unit:        0,
	}

	sp.IsDefinition = false
	decl := md.FormatExpr(md.MakeSubprogram(sp))
	wantDecl := `!DISubprogram(name: "main", linkageName: "main", scope: !1, file: !1, line: 3, type: !2, isDefinition: false, unit: !0)`
	if decl != wantDecl {
		t.Errorf("declaration:\ngot  %q\nwant %q", decl, wantDecl)
	}
	if strings.Contains(decl, "distinct") {
		t.Error("non-definition subprogram must not render distinct")
	}

	sp.IsDefinition = true
	def := md.FormatExpr(md.MakeSubprogram(sp))
	wantDef := "distinct " + strings.Replace(wantDecl, "isDefinition: false", "isDefinition: true", 1)
	if def != wantDef {
		t.Errorf("definition:\ngot  %q\nwant %q", def, wantDef)
	}
}

// TestFormatLocation tests DILocation rendering.
func TestFormatLocation(t *testing.T) {
	got := md.FormatExpr(md.MakeLocation(14, 5, 3))
	want := "!DILocation(line: 14, column: 5, scope: !3)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "distinct") {
		t.Error("locations never render distinct")
	}
}

// TestDistinctRule tests that no record kind outside compile units and
// definition subprograms ever renders distinct.
func TestDistinctRule(t *testing.T) {
	never := []struct {
		name string
		expr md.Expr
	}{
		{"str", md.MakeStr("x")},
		{"node", md.MakeNode(0)},
		{"tuple", md.MakeTuple(md.MakeNode(0))},
		{"file", md.MakeFile("a.c", "/src")},
		{"subroutine_type", md.MakeSubroutineType(nil)},
		{"location", md.MakeLocation(1, 1, 0)},
		{"declaration_subprogram", md.MakeSubprogram(md.SubprogramExpr{Name: "f"})},
	}
	for _, tt := range never {
		t.Run(tt.name, func(t *testing.T) {
			if strings.Contains(md.FormatExpr(tt.expr), "distinct") {
				t.Errorf("%s rendered distinct: %q", tt.name, md.FormatExpr(tt.expr))
			}
		})
	}
}

// TestEmissionKindSpellings tests the bijection between emission kinds
// and their LLVM spellings.
func TestEmissionKindSpellings(t *testing.T) {
	spellings := map[md.EmissionKind]string{
		md.NoDebug:        "NoDebug",
		md.FullDebug:      "FullDebug",
		md.LineTablesOnly: "LineTablesOnly",
	}
	seen := make(map[string]md.EmissionKind, len(spellings))
	for kind, want := range spellings {
		got := kind.String()
		if got != want {
			t.Errorf("EmissionKind(%d).String() = %q, want %q", uint8(kind), got, want)
		}
		if prev, dup := seen[got]; dup {
			t.Errorf("spelling %q shared by kinds %d and %d", got, prev, kind)
		}
		seen[got] = kind
	}
}

// TestFormatDecl tests named and unnamed declaration rendering.
func TestFormatDecl(t *testing.T) {
	tests := []struct {
		name string
		decl md.Decl
		want string
	}{
		{
			"unnamed_file",
			md.MakeUnnamed(0, md.MakeFile("foo.c", "/tmp")),
			`!0 = !DIFile(filename: "foo.c", directory: "/tmp")`,
		},
		{
			"named_list",
			md.MakeNamed("llvm.module.linkage", []md.ID{0, 1}),
			"!llvm.module.linkage = !{!0, !1}",
		},
		{
			"named_empty",
			md.MakeNamed("llvm.dbg.cu", nil),
			"!llvm.dbg.cu = !{}",
		},
		{
			"unnamed_tuple",
			md.MakeUnnamed(5, md.MakeTuple(md.MakeNode(0), md.MakeNode(1))),
			"!5 = !{!0, !1}",
		},
		{
			"unnamed_distinct_unit",
			md.MakeUnnamed(2, md.MakeCompileUnit(md.CompileUnitExpr{
				Language: "DW_LANG_C",
				File:     1,
				Producer: "cc",
				Emission: md.NoDebug,
			})),
			`!2 = distinct !DICompileUnit(language: DW_LANG_C, file: !1, producer: "cc", isOptimized: false, emissionKind: NoDebug)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := md.FormatDecl(tt.decl); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

// TestFormatAnnot tests instruction-site annotation rendering.
func TestFormatAnnot(t *testing.T) {
	got := md.FormatAnnot(md.MakeAnnot("dbg", md.MakeNode(7)))
	if got != "!dbg !7" {
		t.Errorf("got %q, want %q", got, "!dbg !7")
	}
}

// TestFormatDeterminism tests that identical values render to
// byte-identical text.
func TestFormatDeterminism(t *testing.T) {
	build := func() md.Expr {
		return md.MakeTuple(
			md.MakeSubprogram(md.SubprogramExpr{
				Name:         "f",
				LinkageName:  "f",
				Scope:        1,
				File:         1,
				Line:         10,
				Type:         2,
				IsDefinition: true,
				Unit:         0,
			}),
			md.MakeLocation(10, 3, 4),
			md.MakeValue(testValue{text: "i64 9"}),
		)
	}
	first := md.FormatExpr(build())
	for i := 0; i < 100; i++ {
		if got := md.FormatExpr(build()); got != first {
			t.Fatalf("render %d differs:\ngot  %q\nfirst %q", i, got, first)
		}
	}
}
