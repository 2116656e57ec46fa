package md_test

import (
	"testing"

	"flint/internal/backend/llvm/md"
)

// TestExprEqual tests structural equality across expression forms.
func TestExprEqual(t *testing.T) {
	file := md.MakeFile("a.c", "/src")
	unit := md.MakeCompileUnit(md.CompileUnitExpr{
		Language: "DW_LANG_C",
		File:     1,
		Producer: "cc",
		Emission: md.FullDebug,
	})

	tests := []struct {
		name string
		a, b md.Expr
		want bool
	}{
		{"same_str", md.MakeStr("x"), md.MakeStr("x"), true},
		{"diff_str", md.MakeStr("x"), md.MakeStr("y"), false},
		{"same_node", md.MakeNode(3), md.MakeNode(3), true},
		{"diff_node", md.MakeNode(3), md.MakeNode(4), false},
		{"kind_mismatch", md.MakeStr("3"), md.MakeNode(3), false},
		{"same_value", md.MakeValue(testValue{text: "i32 1"}), md.MakeValue(testValue{text: "i32 1"}), true},
		{"diff_value", md.MakeValue(testValue{text: "i32 1"}), md.MakeValue(testValue{text: "i32 2"}), false},
		{"same_file", file, md.MakeFile("a.c", "/src"), true},
		{"diff_file", file, md.MakeFile("a.c", "/other"), false},
		{"same_unit", unit, unit, true},
		{
			"same_tuple",
			md.MakeTuple(md.MakeNode(0), md.MakeStr("s")),
			md.MakeTuple(md.MakeNode(0), md.MakeStr("s")),
			true,
		},
		{
			"tuple_length",
			md.MakeTuple(md.MakeNode(0)),
			md.MakeTuple(md.MakeNode(0), md.MakeNode(1)),
			false,
		},
		{
			"tuple_order",
			md.MakeTuple(md.MakeNode(0), md.MakeNode(1)),
			md.MakeTuple(md.MakeNode(1), md.MakeNode(0)),
			false,
		},
		{
			"same_subroutine",
			md.MakeSubroutineType([]md.Expr{md.MakeValue(nil), md.MakeNode(2)}),
			md.MakeSubroutineType([]md.Expr{md.MakeValue(nil), md.MakeNode(2)}),
			true,
		},
		{
			"same_location",
			md.MakeLocation(1, 2, 3),
			md.MakeLocation(1, 2, 3),
			true,
		},
		{
			"diff_location_col",
			md.MakeLocation(1, 2, 3),
			md.MakeLocation(1, 9, 3),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal (flipped) = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestSubprogramEqualIgnoresNothing tests that every subprogram field
// participates in equality.
func TestSubprogramEqualIgnoresNothing(t *testing.T) {
	base := md.SubprogramExpr{
		Name:         "f",
		LinkageName:  "f",
		Scope:        1,
		File:         1,
		Line:         10,
		Type:         2,
		IsDefinition: true,
		Unit:         0,
	}
	if !md.MakeSubprogram(base).Equal(md.MakeSubprogram(base)) {
		t.Fatal("identical subprograms must compare equal")
	}

	mutations := []func(*md.SubprogramExpr){
		func(sp *md.SubprogramExpr) { sp.Name = "g" },
		func(sp *md.SubprogramExpr) { sp.LinkageName = "g" },
		func(sp *md.SubprogramExpr) { sp.Scope = 9 },
		func(sp *md.SubprogramExpr) { sp.File = 9 },
		func(sp *md.SubprogramExpr) { sp.Line = 11 },
		func(sp *md.SubprogramExpr) { sp.Type = 9 },
		func(sp *md.SubprogramExpr) { sp.IsDefinition = false },
		func(sp *md.SubprogramExpr) { sp.Unit = 9 },
	}
	for i, mutate := range mutations {
		changed := base
		mutate(&changed)
		if md.MakeSubprogram(base).Equal(md.MakeSubprogram(changed)) {
			t.Errorf("mutation %d not reflected in equality", i)
		}
	}
}
