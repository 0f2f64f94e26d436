// Package envexpr expands ${env.KEY} expressions found in configuration text.
package envexpr

import (
	"os"
	"strings"
	"unicode"
)

const prefix = "${env."

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) string

// Expand replaces every ${env.KEY} in text with the value of KEY, or "" when
// KEY is unset. Expressions with an invalid key are left as is.
func Expand(text string) string {
	return ExpandWith(text, os.Getenv)
}

// ExpandWith is Expand with a custom variable lookup.
func ExpandWith(text string, lookup LookupFunc) string {
	var out strings.Builder
	for {
		start := strings.Index(text, prefix)
		if start < 0 {
			out.WriteString(text)
			return out.String()
		}
		out.WriteString(text[:start])
		rest := text[start+len(prefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			out.WriteString(text[start:])
			return out.String()
		}
		key := rest[:end]
		if !isKey(key) {
			// keep the prefix literal and rescan the remainder for nested expressions
			out.WriteString(prefix)
			text = rest
			continue
		}
		out.WriteString(lookup(key))
		text = rest[end+1:]
	}
}

func isKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
