// Package llvm lowers FIR modules into textual LLVM IR.
//
// The emitter keeps functions in the alloca form the frontend produces:
// every local lives in a stack slot, parameters are spilled on entry and
// every use goes through an explicit load. mem2reg cleans this up
// downstream, so the emitter never builds SSA itself.
package llvm

import (
	"fmt"
	"strings"

	"flint/internal/backend/llvm/md"
	"flint/internal/fir"
)

// DefaultTriple is used when the caller does not pin a target.
const DefaultTriple = "x86_64-unknown-linux-gnu"

// Options controls a single EmitModule run.
type Options struct {
	// Triple is the target triple written into the module header.
	Triple string
	// Producer is recorded in llvm.ident and the debug compile unit.
	Producer string
	// Debug selects how much debug metadata the module carries.
	Debug md.EmissionKind
	// DevChecks re-validates the metadata graph before returning.
	DevChecks bool
}

type Emitter struct {
	mod  *fir.Module
	opts Options
	buf  strings.Builder

	stringConsts map[string]*stringConst
	funcNames    map[fir.FuncID]string
	globalNames  map[fir.GlobalID]string
	debug        *debugBuilder
}

// EmitModule renders the whole module as textual LLVM IR.
func EmitModule(mod *fir.Module, opts Options) (string, error) {
	if mod == nil {
		return "", fmt.Errorf("llvm: nil module")
	}
	if opts.Triple == "" {
		opts.Triple = DefaultTriple
	}
	if opts.Producer == "" {
		opts.Producer = "flint"
	}
	e := &Emitter{
		mod:          mod,
		opts:         opts,
		stringConsts: make(map[string]*stringConst),
		funcNames:    make(map[fir.FuncID]string),
		globalNames:  make(map[fir.GlobalID]string),
	}
	e.debug = newDebugBuilder(mod, opts)
	if err := e.prepareNames(); err != nil {
		return "", err
	}
	e.collectStringConsts()
	e.emitPreamble()
	e.emitStringConsts()
	if err := e.emitGlobals(); err != nil {
		return "", err
	}
	if err := e.emitFunctions(); err != nil {
		return "", err
	}
	if err := e.emitMetadata(); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

// prepareNames mangles every symbol up front so that calls and loads can
// refer to functions and globals in any order. NFC collisions surface
// here instead of as silent linker-level merges.
func (e *Emitter) prepareNames() error {
	seen := make(map[string]string, len(e.mod.Funcs)+len(e.mod.Globals))
	for i := range e.mod.Globals {
		g := &e.mod.Globals[i]
		name := mangle(g.Name)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("llvm: symbol %q collides with %q", g.Name, prev)
		}
		seen[name] = g.Name
		e.globalNames[fir.GlobalID(i)] = name
	}
	for i := range e.mod.Funcs {
		f := &e.mod.Funcs[i]
		name := mangle(f.Name)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("llvm: symbol %q collides with %q", f.Name, prev)
		}
		seen[name] = f.Name
		e.funcNames[f.ID] = name
	}
	return nil
}

func (e *Emitter) emitPreamble() {
	src := e.mod.Name
	if len(e.mod.Files) > 0 {
		src = e.mod.Files[0]
	}
	fmt.Fprintf(&e.buf, "; ModuleID = '%s'\n", e.mod.Name)
	fmt.Fprintf(&e.buf, "source_filename = \"%s\"\n", src)
	fmt.Fprintf(&e.buf, "target triple = \"%s\"\n", e.opts.Triple)
	e.buf.WriteString("\n")
}

func (e *Emitter) emitGlobals() error {
	if len(e.mod.Globals) == 0 {
		return nil
	}
	for i := range e.mod.Globals {
		g := &e.mod.Globals[i]
		if g.Type == fir.Void {
			return fmt.Errorf("llvm: global %q has void type", g.Name)
		}
		fmt.Fprintf(&e.buf, "%s = global %s %s\n",
			symbolRef(e.globalNames[fir.GlobalID(i)]), g.Type, zeroValue(g.Type))
	}
	e.buf.WriteString("\n")
	return nil
}

func (e *Emitter) emitFunctions() error {
	wroteDecl := false
	for i := range e.mod.Funcs {
		f := &e.mod.Funcs[i]
		if f.Defined {
			continue
		}
		if err := e.emitDeclare(f); err != nil {
			return err
		}
		wroteDecl = true
	}
	if wroteDecl {
		e.buf.WriteString("\n")
	}
	for i := range e.mod.Funcs {
		f := &e.mod.Funcs[i]
		if !f.Defined {
			continue
		}
		fe := &funcEmitter{emitter: e, fn: f}
		if err := fe.emit(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitDeclare(f *fir.Func) error {
	params, err := e.paramTypes(f)
	if err != nil {
		return err
	}
	// Externs get a subprogram too; it stays a declaration node.
	e.debug.subprogram(f, e.funcNames[f.ID])
	fmt.Fprintf(&e.buf, "declare %s %s(%s)\n",
		f.Result, symbolRef(e.funcNames[f.ID]), strings.Join(params, ", "))
	return nil
}

func (e *Emitter) paramTypes(f *fir.Func) ([]string, error) {
	if f.NumParams > len(f.Locals) {
		return nil, fmt.Errorf("%s: %d params but %d locals", f.Name, f.NumParams, len(f.Locals))
	}
	params := make([]string, 0, f.NumParams)
	for i := 0; i < f.NumParams; i++ {
		ty, err := valueType(f.Locals[i].Type)
		if err != nil {
			return nil, fmt.Errorf("%s: param %d: %w", f.Name, i, err)
		}
		params = append(params, ty)
	}
	return params, nil
}

// emitMetadata writes the named declarations first and then every
// unnamed node in ascending ID order, matching the layout clang uses.
func (e *Emitter) emitMetadata() error {
	named, unnamed := e.debug.finalize()
	if e.opts.DevChecks {
		decls := make([]md.Decl, 0, len(named)+len(unnamed))
		decls = append(decls, named...)
		decls = append(decls, unnamed...)
		if err := md.Validate(decls); err != nil {
			return fmt.Errorf("llvm: bad metadata graph: %w", err)
		}
	}
	for _, d := range named {
		e.buf.WriteString(md.FormatDecl(d))
		e.buf.WriteString("\n")
	}
	if len(named) > 0 && len(unnamed) > 0 {
		e.buf.WriteString("\n")
	}
	for _, d := range unnamed {
		e.buf.WriteString(md.FormatDecl(d))
		e.buf.WriteString("\n")
	}
	return nil
}
