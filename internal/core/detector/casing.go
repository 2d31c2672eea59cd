package detector

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// StyleLike restyles repl to match the capitalization of model so that
// applying a correction preserves how the original token was written
func StyleLike(model, repl string) string {
	if model == "" || repl == "" {
		return repl
	}
	switch {
	case isAllUpper(model):
		return strings.ToUpper(repl)
	case isTitle(model):
		return titleCaser.String(repl)
	case firstUpper(model):
		return upperFirst(repl)
	}
	return repl
}

// isAllUpper reports whether s contains letters and none of them lowercase
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isTitle reports whether every word starts uppercase with the rest lowercase
func isTitle(s string) bool {
	hasWord := false
	atStart := true
	for _, r := range s {
		if !unicode.IsLetter(r) {
			atStart = true
			continue
		}
		if atStart {
			if !unicode.IsUpper(r) {
				return false
			}
			hasWord = true
			atStart = false
			continue
		}
		if unicode.IsUpper(r) {
			return false
		}
	}
	return hasWord
}

func firstUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func upperFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
