package score

import "fmt"

// GlyphType is the neume a group of notes forms, as determined from the
// source notation.
type GlyphType uint8

const (
	GlyphUndetermined GlyphType = iota
	GlyphOneNote
	GlyphPunctaInclinata
	GlyphPodatus
	GlyphPesQuadratum
	GlyphVirgaStrata
	GlyphFlexa
	GlyphTorculus
	GlyphTorculusLiquescens
	GlyphTorculusResupinus
	GlyphTorculusResupinusFlexus
	GlyphPorrectus
	GlyphPorrectusFlexus
	GlyphPorrectusNoBar
	GlyphPorrectusFlexusNoBar
	GlyphAncus
	GlyphScandicus
	GlyphSalicus
	GlyphSalicusFlexus
	GlyphDistropha
	GlyphTristropha
	GlyphBivirga
	GlyphTrivirga

	numGlyphTypes
)

var glyphTypeNames = [...]string{
	GlyphUndetermined:            "undetermined",
	GlyphOneNote:                 "one-note",
	GlyphPunctaInclinata:         "puncta-inclinata",
	GlyphPodatus:                 "pes",
	GlyphPesQuadratum:            "pes-quadratum",
	GlyphVirgaStrata:             "virga-strata",
	GlyphFlexa:                   "flexus",
	GlyphTorculus:                "torculus",
	GlyphTorculusLiquescens:      "torculus-liquescens",
	GlyphTorculusResupinus:       "torculus-resupinus",
	GlyphTorculusResupinusFlexus: "torculus-resupinus-flexus",
	GlyphPorrectus:               "porrectus",
	GlyphPorrectusFlexus:         "porrectus-flexus",
	GlyphPorrectusNoBar:          "porrectus-nobar",
	GlyphPorrectusFlexusNoBar:    "porrectus-flexus-nobar",
	GlyphAncus:                   "ancus",
	GlyphScandicus:               "scandicus",
	GlyphSalicus:                 "salicus",
	GlyphSalicusFlexus:           "salicus-flexus",
	GlyphDistropha:               "distropha",
	GlyphTristropha:              "tristropha",
	GlyphBivirga:                 "bivirga",
	GlyphTrivirga:                "trivirga",
}

func (t GlyphType) String() string {
	if t < numGlyphTypes {
		return glyphTypeNames[t]
	}
	return fmt.Sprintf("GlyphType(%d)", uint8(t))
}

// ParseGlyphType returns the glyph type named s.
func ParseGlyphType(s string) (GlyphType, bool) {
	for i, n := range glyphTypeNames {
		if n == s && GlyphType(i) != GlyphUndetermined {
			return GlyphType(i), true
		}
	}
	return GlyphUndetermined, false
}

// Glyph is one of the items of a notes element: *NoteGlyph,
// *AlterationGlyph, *SpaceGlyph, *TexVerbGlyph or *CustosGlyph.
type Glyph interface {
	isGlyph()
}

// NoteGlyph is a group of notes drawn as one neume.
type NoteGlyph struct {
	Type        GlyphType
	Liquescence Liquescence

	// FuseToNext is the signed pitch interval to the first note of the
	// next glyph when the two glyphs are drawn fused. Zero means the
	// glyph is not fused forward.
	FuseToNext int8

	Notes []*Note
}

// Alteration is an accidental.
type Alteration uint8

const (
	Flat Alteration = iota
	Sharp
	Natural
)

var alterationNames = [...]string{"flat", "sharp", "natural"}

func (a Alteration) String() string {
	if int(a) < len(alterationNames) {
		return alterationNames[a]
	}
	return fmt.Sprintf("Alteration(%d)", uint8(a))
}

// ParseAlteration returns the alteration named s.
func ParseAlteration(s string) (Alteration, bool) {
	for i, n := range alterationNames {
		if n == s {
			return Alteration(i), true
		}
	}
	return Flat, false
}

// AlterationGlyph is an accidental written before a note.
type AlterationGlyph struct {
	Kind  Alteration
	Pitch Pitch
}

// SpaceGlyph is an explicit space between two glyphs of an element.
type SpaceGlyph struct {
	Kind SpaceKind
}

// TexVerbGlyph is raw TeX written between glyphs.
type TexVerbGlyph struct {
	Text string
}

// CustosGlyph is a custos written inside a notes element.
type CustosGlyph struct {
	Pitch Pitch
}

func (*NoteGlyph) isGlyph()       {}
func (*AlterationGlyph) isGlyph() {}
func (*SpaceGlyph) isGlyph()      {}
func (*TexVerbGlyph) isGlyph()    {}
func (*CustosGlyph) isGlyph()     {}
