package gregoriotex

import (
	"fmt"
	"strings"
)

// escapeHeader escapes a header name or value. Characters that TeX reads
// as syntax are written as \char with their code, newlines become \char10
// and carriage returns are dropped.
func escapeHeader(s string) string {
	return escape(s, `\{}~%#"`+"\n")
}

// escapeText escapes a literal character of lyric text.
func escapeText(r rune) string {
	return escape(string(r), `\{}%#$&_~^`)
}

func escape(s, special string) string {
	if !strings.ContainsAny(s, special+"\r") {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\r':
		case strings.ContainsRune(special, r):
			fmt.Fprintf(&b, `\char%d{}`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
