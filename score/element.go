package score

import "fmt"

// Element is one of the items of a syllable's voice: *NotesElement,
// *BarElement, *ClefElement, *CustosElement, *SpaceElement,
// *EndOfLineElement, *TexVerbElement, *AboveLinesTextElement or
// *NLBAElement.
type Element interface {
	isElement()
}

// NotesElement is a sequence of glyphs drawn without breaks.
type NotesElement struct {
	Glyphs []Glyph
}

// BarKind is the kind of a bar (divisio).
type BarKind uint8

const (
	BarVirgula BarKind = iota
	BarDivisioMinima
	BarDivisioMinor
	BarDivisioMaior
	BarDivisioFinalis
	BarDominica
)

var barNames = [...]string{
	BarVirgula:        "virgula",
	BarDivisioMinima:  "minima",
	BarDivisioMinor:   "minor",
	BarDivisioMaior:   "maior",
	BarDivisioFinalis: "finalis",
	BarDominica:       "dominica",
}

func (k BarKind) String() string {
	if int(k) < len(barNames) {
		return barNames[k]
	}
	return fmt.Sprintf("BarKind(%d)", uint8(k))
}

// ParseBarKind returns the bar kind named s.
func ParseBarKind(s string) (BarKind, bool) {
	for i, n := range barNames {
		if n == s {
			return BarKind(i), true
		}
	}
	return BarVirgula, false
}

// BarElement is a bar. Dominica is the number of a dominican bar (1 to 8)
// and is ignored for other kinds.
type BarElement struct {
	Kind     BarKind
	Dominica int
	Signs    Signs
}

// ClefElement is a clef change.
type ClefElement struct {
	Clef Clef
}

// CustosElement is a custos. When Auto is set the pitch is taken from the
// next note of the score at generation time.
type CustosElement struct {
	Pitch Pitch
	Auto  bool
}

// SpaceKind is the kind of an explicit space between glyphs or elements.
type SpaceKind uint8

const (
	SpaceNeumaticCut SpaceKind = iota
	SpaceLarger
	SpaceInterGlyph
	SpaceHalf
	SpaceZeroWidth
	SpaceNone
	SpaceNeumaticCutNB
	SpaceLargerNB
	SpaceInterGlyphNB

	numSpaceKinds
)

var spaceNames = [...]string{
	SpaceNeumaticCut:   "neumatic-cut",
	SpaceLarger:        "larger",
	SpaceInterGlyph:    "glyph",
	SpaceHalf:          "half",
	SpaceZeroWidth:     "zero",
	SpaceNone:          "none",
	SpaceNeumaticCutNB: "neumatic-cut-nb",
	SpaceLargerNB:      "larger-nb",
	SpaceInterGlyphNB:  "glyph-nb",
}

func (k SpaceKind) String() string {
	if k < numSpaceKinds {
		return spaceNames[k]
	}
	return fmt.Sprintf("SpaceKind(%d)", uint8(k))
}

// ParseSpaceKind returns the space kind named s.
func ParseSpaceKind(s string) (SpaceKind, bool) {
	for i, n := range spaceNames {
		if n == s {
			return SpaceKind(i), true
		}
	}
	return SpaceNeumaticCut, false
}

// NoBreak reports whether a line break is forbidden at the space.
func (k SpaceKind) NoBreak() bool {
	return k == SpaceNeumaticCutNB || k == SpaceLargerNB || k == SpaceInterGlyphNB
}

// Bridgeable reports whether a run of horizontal episemas may continue
// across the space.
func (k SpaceKind) Bridgeable() bool {
	switch k {
	case SpaceNeumaticCut, SpaceNeumaticCutNB, SpaceLarger, SpaceLargerNB:
		return true
	}
	return false
}

// SpaceElement is an explicit space between elements.
type SpaceElement struct {
	Kind SpaceKind
}

// EndOfLineElement is a forced line break.
type EndOfLineElement struct {
	Ragged bool
}

// TexVerbElement is raw TeX written between elements.
type TexVerbElement struct {
	Text string
}

// AboveLinesTextElement is text written above the staff. Like
// Syllable.AboveLinesText, Text is TeX and is not escaped.
type AboveLinesTextElement struct {
	Text string
}

// NLBAElement opens (Start) or closes a region where line breaks are
// forbidden.
type NLBAElement struct {
	Start bool
}

func (*NotesElement) isElement()          {}
func (*BarElement) isElement()            {}
func (*ClefElement) isElement()           {}
func (*CustosElement) isElement()         {}
func (*SpaceElement) isElement()          {}
func (*EndOfLineElement) isElement()      {}
func (*TexVerbElement) isElement()        {}
func (*AboveLinesTextElement) isElement() {}
func (*NLBAElement) isElement()           {}
