package llvm

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// mangle normalizes a symbol name so that two source spellings of the
// same identifier always reach the linker as the same symbol.
func mangle(name string) string {
	return norm.NFC.String(name)
}

// symbolRef renders @name, quoting the name when it falls outside the
// bare identifier grammar [a-zA-Z$._][a-zA-Z$._0-9]*.
func symbolRef(name string) string {
	if isBareName(name) {
		return "@" + name
	}
	return "@" + quoteName(name)
}

func isBareName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '$', c == '.', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func quoteName(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c >= 0x7F || c == '"' || c == '\\' {
			fmt.Fprintf(&sb, "\\%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}
