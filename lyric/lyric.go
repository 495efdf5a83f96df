// Package lyric writes and splits the styled text of syllables.
//
// Syllable text is a list of [score.Character] values: literal code
// points interleaved with style begin and end markers. [Write] walks such
// a list once and hands every piece to a [Styler], which decides how it
// is rendered. Verbatim and special-character runs are collected and
// handed over whole.
//
// [Parse] reads the inline markup used in score files (<i>, <b>, <v>,
// braces for the center and so on) into a character list, and
// [SplitCenter] cuts a list into the parts before, at and after the
// syllable center.
package lyric

import (
	"io"
	"strings"

	"github.com/gregorio-project/gregotex/score"
)

// Styler renders the pieces of a character list.
type Styler interface {
	BeginStyle(w io.Writer, s score.Style)
	EndStyle(w io.Writer, s score.Style)
	Char(w io.Writer, r rune)
	Verbatim(w io.Writer, text string)
	Special(w io.Writer, text string)
}

// Write renders chars to w through st.
//
// If skipFirstLetter is set, everything before the first center marker
// is skipped; styles opened in the skipped part are still begun so that
// the output stays balanced. This renders the rest of a first syllable
// whose initial letter is written separately.
func Write(w io.Writer, chars []score.Character, st Styler, skipFirstLetter bool) {
	i := 0
	if skipFirstLetter {
		var open []score.Style
		for ; i < len(chars); i++ {
			c := chars[i]
			if c.Kind == score.BeginStyle && c.Style.IsCenter() {
				break
			}
			switch c.Kind {
			case score.BeginStyle:
				open = append(open, c.Style)
			case score.EndStyle:
				if n := len(open); n > 0 && open[n-1] == c.Style {
					open = open[:n-1]
				}
			}
		}
		for _, s := range open {
			if s != score.StyleVerbatim && s != score.StyleSpecialChar {
				st.BeginStyle(w, s)
			}
		}
	}
	for ; i < len(chars); i++ {
		c := chars[i]
		switch c.Kind {
		case score.Literal:
			st.Char(w, c.Rune)
		case score.BeginStyle:
			if c.Style != score.StyleVerbatim && c.Style != score.StyleSpecialChar {
				st.BeginStyle(w, c.Style)
				continue
			}
			var b strings.Builder
			j := i + 1
			for ; j < len(chars); j++ {
				if chars[j].Kind == score.EndStyle && chars[j].Style == c.Style {
					break
				}
				if chars[j].Kind == score.Literal {
					b.WriteRune(chars[j].Rune)
				}
			}
			if c.Style == score.StyleVerbatim {
				st.Verbatim(w, b.String())
			} else {
				st.Special(w, b.String())
			}
			i = j
		case score.EndStyle:
			st.EndStyle(w, c.Style)
		}
	}
}

// String renders chars with st and returns the result.
func String(chars []score.Character, st Styler) string {
	var b strings.Builder
	Write(&b, chars, st, false)
	return b.String()
}
