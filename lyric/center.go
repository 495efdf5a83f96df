package lyric

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/gregorio-project/gregotex/score"
)

// IsVowel reports whether r is a vowel, ignoring diacritics.
func IsVowel(r rune) bool {
	switch r {
	case 'æ', 'Æ', 'œ', 'Œ':
		return true
	}
	base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	return strings.ContainsRune("aeiouyAEIOUY", base)
}

func isRaw(s score.Style) bool {
	return s == score.StyleVerbatim || s == score.StyleSpecialChar
}

// centerBounds returns the indices of chars where the center starts and
// ends. Explicit center markers win; otherwise the center is the first
// group of vowels. A 'u' following a 'q' does not start the group. If
// there is no vowel, start is len(chars).
func centerBounds(chars []score.Character) (start, end int) {
	start, end = -1, -1
	for i, c := range chars {
		if !c.Style.IsCenter() || c.Kind == score.Literal {
			continue
		}
		if c.Kind == score.BeginStyle && start < 0 {
			start = i
		}
		if c.Kind == score.EndStyle && start >= 0 {
			return start, i + 1
		}
	}
	if start >= 0 {
		return start, len(chars)
	}

	start = len(chars)
	var prev rune
	raw := 0
	for i, c := range chars {
		switch c.Kind {
		case score.BeginStyle:
			if isRaw(c.Style) {
				raw++
			}
			continue
		case score.EndStyle:
			if isRaw(c.Style) {
				raw--
			}
			continue
		}
		vowel := raw == 0 && IsVowel(c.Rune)
		if start == len(chars) && (c.Rune == 'u' || c.Rune == 'U') && (prev == 'q' || prev == 'Q') {
			vowel = false
		}
		if start < len(chars) && !vowel {
			return start, i
		}
		if vowel && start == len(chars) {
			start = i
		}
		prev = c.Rune
		if raw > 0 {
			prev = 0
		}
	}
	return start, len(chars)
}

// SplitCenter cuts chars into the parts before, at and after the
// syllable center. Center markers are dropped, and every part is
// balanced: styles open across a cut are ended at the end of one part
// and begun again at the start of the next.
func SplitCenter(chars []score.Character) (before, center, after []score.Character) {
	start, end := centerBounds(chars)
	parts := cut(chars, start, end)
	return parts[0], parts[1], parts[2]
}

// cut splits chars at the given increasing indices.
func cut(chars []score.Character, at ...int) [][]score.Character {
	parts := make([][]score.Character, len(at)+1)
	var open []score.Style
	k := 0
	for i := 0; i <= len(chars); i++ {
		for k < len(at) && at[k] == i {
			for j := len(open) - 1; j >= 0; j-- {
				parts[k] = append(parts[k], score.End(open[j]))
			}
			k++
			for _, s := range open {
				parts[k] = append(parts[k], score.Begin(s))
			}
		}
		if i == len(chars) {
			break
		}
		c := chars[i]
		if c.Kind != score.Literal && c.Style.IsCenter() {
			continue
		}
		switch c.Kind {
		case score.BeginStyle:
			open = append(open, c.Style)
		case score.EndStyle:
			for j := len(open) - 1; j >= 0; j-- {
				if open[j] == c.Style {
					open = append(open[:j], open[j+1:]...)
					break
				}
			}
		}
		parts[k] = append(parts[k], c)
	}
	for k := range parts {
		parts[k] = dropEmpty(parts[k])
	}
	return parts
}

// dropEmpty removes styles that end right where they begin.
func dropEmpty(chars []score.Character) []score.Character {
	var out []score.Character
	for _, c := range chars {
		n := len(out)
		if n > 0 && c.Kind == score.EndStyle && out[n-1].Kind == score.BeginStyle && out[n-1].Style == c.Style {
			out = out[:n-1]
			continue
		}
		out = append(out, c)
	}
	return out
}

// InitialCenter returns a copy of chars whose center starts right after
// the first letter and runs to the end of the first vowel group that
// follows it. It is used for a first syllable whose initial letter is
// drawn apart.
func InitialCenter(chars []score.Character) []score.Character {
	var plain []score.Character
	for _, c := range chars {
		if c.Kind != score.Literal && c.Style.IsCenter() {
			continue
		}
		plain = append(plain, c)
	}
	first := -1
	for i, c := range plain {
		if c.Kind == score.Literal {
			first = i
			break
		}
	}
	if first < 0 {
		return plain
	}
	rest := plain[first+1:]
	_, end := centerBounds(rest)
	out := make([]score.Character, 0, len(plain)+2)
	out = append(out, plain[:first+1]...)
	out = append(out, score.Begin(score.StyleCenter))
	out = append(out, rest[:end]...)
	out = append(out, score.End(score.StyleCenter))
	out = append(out, rest[end:]...)
	return out
}

// FirstLetter returns the first letter of chars, wrapped in the styles
// open at that point.
func FirstLetter(chars []score.Character) []score.Character {
	for i, c := range chars {
		if c.Kind == score.Literal {
			parts := cut(chars[:i+1], i)
			return append(parts[1], closing(parts[1])...)
		}
		if c.Kind == score.BeginStyle && isRaw(c.Style) {
			return nil
		}
	}
	return nil
}

// closing returns the end markers for the styles left open in chars.
func closing(chars []score.Character) []score.Character {
	var open []score.Style
	for _, c := range chars {
		switch c.Kind {
		case score.BeginStyle:
			open = append(open, c.Style)
		case score.EndStyle:
			if n := len(open); n > 0 {
				open = open[:n-1]
			}
		}
	}
	var out []score.Character
	for j := len(open) - 1; j >= 0; j-- {
		out = append(out, score.End(open[j]))
	}
	return out
}
