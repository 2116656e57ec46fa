package fir

// Module is one translation unit as the frontend serialized it. Files
// holds the source paths locations refer to by index; Funcs are laid
// out in FuncID order.
type Module struct {
	Name    string
	Files   []string
	Globals []Global
	Funcs   []Func
}

// Global is a module-level zero-initialized variable.
type Global struct {
	Name string
	Type Type
}
