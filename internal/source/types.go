package source

// FileID uniquely identifies a source file within a Table.
type FileID uint32 // просто ID источника

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Loc is a resolved source position: a file plus line and column. The
// frontend resolves byte offsets before serializing, so the backend
// never rereads source text. A zero Line means the position is unknown.
type Loc struct {
	File FileID
	Line uint32
	Col  uint32
}

// IsValid reports whether the location carries a real position.
func (l Loc) IsValid() bool {
	return l.Line > 0
}

// LineCol returns the position part of the location.
func (l Loc) LineCol() LineCol {
	return LineCol{Line: l.Line, Col: l.Col}
}
