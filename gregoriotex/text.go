package gregoriotex

import (
	"io"
	"strings"

	"github.com/gregorio-project/gregotex/lyric"
	"github.com/gregorio-project/gregotex/score"
)

var styleMacros = map[score.Style]string{
	score.StyleItalic:    `\GreItalic`,
	score.StyleBold:      `\GreBold`,
	score.StyleTT:        `\GreTypewriter`,
	score.StyleSmallCaps: `\GreSmallCaps`,
	score.StyleUnderline: `\GreUnderline`,
	score.StyleColored:   `\GreColored`,
	score.StyleElision:   `\GreElision`,
}

// texStyler renders lyric text as TeX. Center and initial markers have no
// rendering of their own; they only split the text.
type texStyler struct{}

func (texStyler) BeginStyle(w io.Writer, s score.Style) {
	if m, ok := styleMacros[s]; ok {
		io.WriteString(w, m+"{")
	}
}

func (texStyler) EndStyle(w io.Writer, s score.Style) {
	if _, ok := styleMacros[s]; ok {
		io.WriteString(w, "}")
	}
}

func (texStyler) Char(w io.Writer, r rune) {
	io.WriteString(w, escapeText(r))
}

func (texStyler) Verbatim(w io.Writer, text string) {
	io.WriteString(w, text)
}

func (texStyler) Special(w io.Writer, text string) {
	io.WriteString(w, `\GreSpecial{`+text+`}`)
}

func tex(chars []score.Character) string {
	return lyric.String(chars, texStyler{})
}

// texSkipFirst renders chars without the part before the center.
func texSkipFirst(chars []score.Character) string {
	var b strings.Builder
	lyric.Write(&b, chars, texStyler{}, true)
	return b.String()
}

// syllableText is the text of a syllable cut at its center.
type syllableText struct {
	before, center, after string
}

func splitText(chars []score.Character) syllableText {
	b, c, a := lyric.SplitCenter(chars)
	return syllableText{tex(b), tex(c), tex(a)}
}
