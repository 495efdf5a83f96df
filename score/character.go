package score

import "fmt"

// Style is a text style applied to a run of lyric characters.
type Style uint8

const (
	StyleNone Style = iota
	StyleItalic
	StyleBold
	StyleTT
	StyleSmallCaps
	StyleUnderline
	StyleColored
	StyleElision

	// StyleCenter marks the part of a syllable aligned with its first
	// note. StyleForcedCenter is a center the author placed explicitly.
	StyleCenter
	StyleForcedCenter

	StyleInitial

	// StyleVerbatim and StyleSpecialChar enclose runs that are written
	// as a whole rather than character by character.
	StyleVerbatim
	StyleSpecialChar

	numStyles
)

var styleNames = [...]string{
	StyleNone:         "none",
	StyleItalic:       "italic",
	StyleBold:         "bold",
	StyleTT:           "tt",
	StyleSmallCaps:    "small-caps",
	StyleUnderline:    "underline",
	StyleColored:      "colored",
	StyleElision:      "elision",
	StyleCenter:       "center",
	StyleForcedCenter: "forced-center",
	StyleInitial:      "initial",
	StyleVerbatim:     "verbatim",
	StyleSpecialChar:  "special",
}

func (s Style) String() string {
	if s < numStyles {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// IsCenter reports whether s marks a syllable center.
func (s Style) IsCenter() bool { return s == StyleCenter || s == StyleForcedCenter }

// CharacterKind discriminates the variants of Character.
type CharacterKind uint8

const (
	Literal CharacterKind = iota
	BeginStyle
	EndStyle
)

// Character is one item of a lyric text: a literal code point, or the
// beginning or end of a style.
type Character struct {
	Kind  CharacterKind
	Rune  rune
	Style Style
}

// Lit returns a literal character.
func Lit(r rune) Character { return Character{Kind: Literal, Rune: r} }

// Begin returns the beginning of style s.
func Begin(s Style) Character { return Character{Kind: BeginStyle, Style: s} }

// End returns the end of style s.
func End(s Style) Character { return Character{Kind: EndStyle, Style: s} }

// Text returns the literal characters of chars concatenated.
func Text(chars []Character) string {
	var b []rune
	for _, c := range chars {
		if c.Kind == Literal {
			b = append(b, c.Rune)
		}
	}
	return string(b)
}

// Chars returns s as a list of literal characters.
func Chars(s string) []Character {
	cs := make([]Character, 0, len(s))
	for _, r := range s {
		cs = append(cs, Lit(r))
	}
	return cs
}

func (c Character) String() string {
	switch c.Kind {
	case BeginStyle:
		return "<" + c.Style.String() + ">"
	case EndStyle:
		return "</" + c.Style.String() + ">"
	}
	return string(c.Rune)
}
