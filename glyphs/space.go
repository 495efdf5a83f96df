package glyphs

import "github.com/gregorio-project/gregotex/score"

// SpaceCode selects the space the engine puts after a glyph.
type SpaceCode int

const (
	SpaceDefault SpaceCode = iota
	SpaceZero
	SpaceInclinatumDescending
	SpaceUnison
	SpaceLarger
	SpaceBivirga
	SpaceStropha
	SpaceAfterAlteration
)

// GlyphSpace returns the space between two adjacent glyphs of an element.
func GlyphSpace(prev, next score.Glyph) SpaceCode {
	switch p := prev.(type) {
	case *score.AlterationGlyph:
		return SpaceAfterAlteration
	case *score.NoteGlyph:
		if p.FuseToNext != 0 {
			return SpaceZero
		}
		n, ok := next.(*score.NoteGlyph)
		if !ok || len(p.Notes) == 0 || len(n.Notes) == 0 {
			return SpaceDefault
		}
		return noteSpace(p.Notes[len(p.Notes)-1], n.Notes[0])
	}
	return SpaceDefault
}

// ExplicitSpace returns the space written for an explicit space glyph.
func ExplicitSpace(k score.SpaceKind) SpaceCode {
	switch k {
	case score.SpaceZeroWidth, score.SpaceNone:
		return SpaceZero
	case score.SpaceLarger, score.SpaceLargerNB:
		return SpaceLarger
	}
	return SpaceDefault
}

// NoteSpace returns the space before note i of a glyph whose notes are
// drawn separately.
func NoteSpace(g *score.NoteGlyph, i int) SpaceCode {
	switch g.Type {
	case score.GlyphDistropha, score.GlyphTristropha:
		return SpaceStropha
	case score.GlyphBivirga, score.GlyphTrivirga:
		return SpaceBivirga
	}
	if i <= 0 || i >= len(g.Notes) {
		return SpaceDefault
	}
	return noteSpace(g.Notes[i-1], g.Notes[i])
}

func noteSpace(a, b *score.Note) SpaceCode {
	switch {
	case a.Pitch == b.Pitch:
		return SpaceUnison
	case a.Shape.IsInclinatum() && b.Shape.IsInclinatum() && b.Pitch < a.Pitch:
		return SpaceInclinatumDescending
	}
	return SpaceDefault
}
