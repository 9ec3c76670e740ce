// Package naming holds the identifier casing rules shared by the generators.
package naming

import (
	"unicode"
	"unicode/utf8"
)

// LowercaseFirst lowercases the first character of name and keeps the rest
// unchanged. It derives a variant tag from a module type name.
func LowercaseFirst(name string) string {
	return mapFirst(name, unicode.ToLower)
}

// CapitalizeFirst uppercases the first character of name and keeps the rest
// unchanged. It derives a type reference from a module name.
func CapitalizeFirst(name string) string {
	return mapFirst(name, unicode.ToUpper)
}

func mapFirst(name string, fn func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return name
	}
	mapped := fn(r)
	if mapped == r {
		return name
	}
	return string(mapped) + name[size:]
}

// IsIdentifier reports whether s is a plain identifier: a letter or underscore
// followed by letters, digits or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
