package md

import (
	"errors"
	"fmt"
)

// Validate checks a declaration set for generator contract violations:
// duplicate unnamed identifiers and node references that resolve to no
// unnamed declaration in the set. Rendering never calls this; it is a
// separate pass for dev builds, catching bad graphs before the
// toolchain's verifier does.
func Validate(decls []Decl) error {
	declared := make(map[ID]struct{}, len(decls))
	var errs []error
	for _, d := range decls {
		if d.Kind != DeclUnnamed {
			continue
		}
		if _, ok := declared[d.ID]; ok {
			errs = append(errs, fmt.Errorf("metadata node %s declared more than once", d.ID.Ref()))
			continue
		}
		declared[d.ID] = struct{}{}
	}
	for _, d := range decls {
		switch d.Kind {
		case DeclNamed:
			for _, id := range d.Refs {
				if _, ok := declared[id]; !ok {
					errs = append(errs, fmt.Errorf("named metadata !%s references undeclared node %s", d.Name, id.Ref()))
				}
			}
		case DeclUnnamed:
			walkNodeRefs(d.Expr, func(id ID) {
				if _, ok := declared[id]; !ok {
					errs = append(errs, fmt.Errorf("metadata node %s references undeclared node %s", d.ID.Ref(), id.Ref()))
				}
			})
		}
	}
	return errors.Join(errs...)
}

// walkNodeRefs visits every node identifier an expression mentions,
// including identifiers held by debug record fields.
func walkNodeRefs(e Expr, visit func(ID)) {
	switch e.Kind {
	case ExprNode:
		visit(e.Node)
	case ExprTuple:
		for i := range e.Tuple {
			walkNodeRefs(e.Tuple[i], visit)
		}
	case ExprSubroutineType:
		for i := range e.SubroutineType.Types {
			walkNodeRefs(e.SubroutineType.Types[i], visit)
		}
	case ExprCompileUnit:
		visit(e.CompileUnit.File)
	case ExprSubprogram:
		visit(e.Subprogram.Scope)
		visit(e.Subprogram.File)
		visit(e.Subprogram.Type)
		visit(e.Subprogram.Unit)
	case ExprLocation:
		visit(e.Location.Scope)
	}
}
