package application

import (
	"strings"
	"unicode"
)

// Tokenize splits a command line on whitespace. A double-quoted run is one
// argument and may be empty; an unterminated quote runs to the end of the line.
func Tokenize(line string) []string {
	var (
		args   []string
		word   strings.Builder
		quoted bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			if quoted {
				args = append(args, word.String())
				word.Reset()
			}
			quoted = !quoted
		case unicode.IsSpace(r) && !quoted:
			if word.Len() > 0 {
				args = append(args, word.String())
				word.Reset()
			}
		default:
			word.WriteRune(r)
		}
	}

	if word.Len() > 0 {
		args = append(args, word.String())
	}
	return args
}
