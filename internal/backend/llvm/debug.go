package llvm

import (
	"fmt"

	"flint/internal/backend/llvm/md"
	"flint/internal/fir"
	"flint/internal/source"
)

// DWARF has no language code for flint; debuggers treat it as C.
const dwarfLanguage = "DW_LANG_C99"

// debugBuilder accumulates the metadata graph for one module. IDs are
// handed out in first-use order so the rendered block reads top-down:
// compile unit, primary file, the shared subprogram type, then whatever
// the function bodies touch.
type debugBuilder struct {
	enabled  bool
	producer string

	next  md.ID
	decls []md.Decl

	unit    md.ID
	sigType md.ID
	paths   []string
	files   map[source.FileID]md.ID
	locs    map[locKey]md.ID
}

type locKey struct {
	line, col uint32
	scope     md.ID
}

func newDebugBuilder(mod *fir.Module, opts Options) *debugBuilder {
	b := &debugBuilder{
		enabled:  opts.Debug != md.NoDebug,
		producer: opts.Producer,
		paths:    mod.Files,
		files:    make(map[source.FileID]md.ID),
		locs:     make(map[locKey]md.ID),
	}
	if !b.enabled {
		return b
	}
	// The unit is allocated before its file so it keeps !0, but the
	// file node must exist before the unit body can reference it.
	b.unit = b.alloc()
	var primary md.ID
	if len(mod.Files) > 0 {
		primary = b.file(0)
	} else {
		primary = b.fileNode(mod.Name)
	}
	b.sigType = b.alloc()
	b.set(b.sigType, md.MakeSubroutineType([]md.Expr{md.MakeValue(NullValue())}))
	b.set(b.unit, md.MakeCompileUnit(md.CompileUnitExpr{
		Language:    dwarfLanguage,
		File:        primary,
		Producer:    opts.Producer,
		IsOptimized: false,
		Emission:    opts.Debug,
	}))
	return b
}

func (b *debugBuilder) alloc() md.ID {
	id := b.next
	b.next = id.Next()
	b.decls = append(b.decls, md.Decl{})
	return id
}

func (b *debugBuilder) set(id md.ID, e md.Expr) {
	b.decls[id] = md.MakeUnnamed(id, e)
}

func (b *debugBuilder) fileNode(p string) md.ID {
	name, dir := source.SplitPath(p)
	id := b.alloc()
	b.set(id, md.MakeFile(name, dir))
	return id
}

func (b *debugBuilder) file(f source.FileID) md.ID {
	if id, ok := b.files[f]; ok {
		return id
	}
	p := ""
	if int(f) < len(b.paths) {
		p = b.paths[f]
	}
	if p == "" {
		p = "<unknown>"
	}
	id := b.fileNode(p)
	b.files[f] = id
	return id
}

// subprogram declares the scope node for one function. Definitions get
// distinct nodes, externs stay uniqued declarations.
func (b *debugBuilder) subprogram(f *fir.Func, linkage string) (md.ID, bool) {
	if !b.enabled {
		return 0, false
	}
	fileID := b.file(f.Loc.File)
	id := b.alloc()
	b.set(id, md.MakeSubprogram(md.SubprogramExpr{
		Name:         f.Name,
		LinkageName:  linkage,
		Scope:        fileID,
		File:         fileID,
		Line:         f.Loc.Line,
		Type:         b.sigType,
		IsDefinition: f.Defined,
		Unit:         b.unit,
	}))
	return id, true
}

// location interns one source position within a subprogram scope.
func (b *debugBuilder) location(loc source.Loc, scope md.ID) (md.ID, bool) {
	if !b.enabled || !loc.IsValid() {
		return 0, false
	}
	k := locKey{line: loc.Line, col: loc.Col, scope: scope}
	if id, ok := b.locs[k]; ok {
		return id, true
	}
	id := b.alloc()
	b.set(id, md.MakeLocation(loc.Line, loc.Col, scope))
	b.locs[k] = id
	return id, true
}

func (b *debugBuilder) flagTuple(behavior int, name string, value int) md.ID {
	id := b.alloc()
	b.set(id, md.MakeTuple(
		md.MakeValue(Literal("i32", fmt.Sprintf("%d", behavior))),
		md.MakeStr(name),
		md.MakeValue(Literal("i32", fmt.Sprintf("%d", value))),
	))
	return id
}

// finalize appends the module-level bookkeeping nodes and returns the
// named declarations followed by every unnamed node in ID order. With
// debug off only llvm.ident survives.
func (b *debugBuilder) finalize() (named, unnamed []md.Decl) {
	if b.enabled {
		flags := []md.ID{
			b.flagTuple(2, "Debug Info Version", 3),
			b.flagTuple(7, "Dwarf Version", 5),
		}
		named = append(named, md.MakeNamed("llvm.dbg.cu", []md.ID{b.unit}))
		named = append(named, md.MakeNamed("llvm.module.flags", flags))
	}
	ident := b.alloc()
	b.set(ident, md.MakeTuple(md.MakeStr(b.producer)))
	named = append(named, md.MakeNamed("llvm.ident", []md.ID{ident}))
	return named, b.decls
}
