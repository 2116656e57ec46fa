package buildpipeline

import (
	"fmt"

	"flint/internal/fir"
)

// ValidateEntrypoint ensures the module defines a main function to link against.
func ValidateEntrypoint(mod *fir.Module) error {
	if mod == nil {
		return fmt.Errorf("missing module")
	}
	for i := range mod.Funcs {
		f := &mod.Funcs[i]
		if f.Name != "main" {
			continue
		}
		if !f.Defined {
			return fmt.Errorf("module %q declares main but does not define it", mod.Name)
		}
		return nil
	}
	return fmt.Errorf("no main function in module %q", mod.Name)
}
