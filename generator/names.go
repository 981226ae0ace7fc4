package generator

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// identifier turns an SVD name into an exported Go identifier.
func identifier(name string) string {
	ident := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, strings.TrimSpace(name))

	first, size := utf8.DecodeRuneInString(ident)
	if !unicode.IsLetter(first) {
		ident = "IRQ_" + ident
		first, size = 'I', 1
	}
	ident = string(unicode.ToUpper(first)) + ident[size:]
	if token.IsKeyword(ident) {
		ident += "_"
	}
	return ident
}

func packageName(device string) string {
	name := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToLower(r)
		}
		return -1
	}, device)

	if len(name) == 0 || !unicode.IsLetter(rune(name[0])) {
		name = "device" + name
	}
	return name
}
