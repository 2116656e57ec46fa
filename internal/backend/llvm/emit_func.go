package llvm

import (
	"fmt"
	"sort"
	"strings"

	"flint/internal/backend/llvm/md"
	"flint/internal/fir"
	"flint/internal/source"
)

type funcEmitter struct {
	emitter  *Emitter
	fn       *fir.Func
	scope    md.ID
	hasScope bool
	tmpID    int
}

func (fe *funcEmitter) emit() error {
	e := fe.emitter
	f := fe.fn
	params, err := e.paramTypes(f)
	if err != nil {
		return err
	}
	args := make([]string, len(params))
	for i, ty := range params {
		args[i] = fmt.Sprintf("%s %%p%d", ty, i)
	}
	fe.scope, fe.hasScope = e.debug.subprogram(f, e.funcNames[f.ID])
	suffix := ""
	if fe.hasScope {
		suffix = " " + md.FormatAnnot(md.MakeAnnot("dbg", md.MakeNode(fe.scope)))
	}
	fmt.Fprintf(&e.buf, "define %s %s(%s)%s {\n",
		f.Result, symbolRef(e.funcNames[f.ID]), strings.Join(args, ", "), suffix)

	for _, bb := range fe.blockOrder() {
		fmt.Fprintf(&e.buf, "bb%d:\n", bb.ID)
		if bb.ID == f.Entry {
			if err := fe.emitAllocas(); err != nil {
				return err
			}
			fe.emitParamStores()
		}
		for i := range bb.Instrs {
			if err := fe.emitInstr(&bb.Instrs[i]); err != nil {
				return fmt.Errorf("%s bb%d: %w", f.Name, bb.ID, err)
			}
		}
		if err := fe.emitTerminator(&bb.Term); err != nil {
			return fmt.Errorf("%s bb%d: %w", f.Name, bb.ID, err)
		}
	}
	fmt.Fprint(&e.buf, "}\n\n")
	return nil
}

func (fe *funcEmitter) blockOrder() []*fir.Block {
	blocks := make([]*fir.Block, 0, len(fe.fn.Blocks))
	for i := range fe.fn.Blocks {
		blocks = append(blocks, &fe.fn.Blocks[i])
	}
	entry := fe.fn.Entry
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].ID == entry {
			return blocks[j].ID != entry
		}
		if blocks[j].ID == entry {
			return false
		}
		return blocks[i].ID < blocks[j].ID
	})
	return blocks
}

// emitAllocas reserves a stack slot per local. The prologue carries no
// locations: debuggers treat the first located instruction as the start
// of the function body.
func (fe *funcEmitter) emitAllocas() error {
	for i := range fe.fn.Locals {
		l := &fe.fn.Locals[i]
		ty, err := valueType(l.Type)
		if err != nil {
			return fmt.Errorf("local %q: %w", l.Name, err)
		}
		fmt.Fprintf(&fe.emitter.buf, "  %%l%d = alloca %s\n", i, ty)
	}
	return nil
}

func (fe *funcEmitter) emitParamStores() {
	for i := 0; i < fe.fn.NumParams; i++ {
		fmt.Fprintf(&fe.emitter.buf, "  store %s %%p%d, ptr %%l%d\n", fe.fn.Locals[i].Type, i, i)
	}
}

func (fe *funcEmitter) nextTemp() string {
	fe.tmpID++
	return fmt.Sprintf("%%t%d", fe.tmpID)
}

// dbgSuffix is the `, !dbg !N` tail shared by every line lowered from
// one FIR instruction.
func (fe *funcEmitter) dbgSuffix(loc source.Loc) string {
	if !fe.hasScope {
		return ""
	}
	id, ok := fe.emitter.debug.location(loc, fe.scope)
	if !ok {
		return ""
	}
	return ", " + md.FormatAnnot(md.MakeAnnot("dbg", md.MakeNode(id)))
}
