package position

import (
	"github.com/gregorio-project/gregotex/glyphs"
	"github.com/gregorio-project/gregotex/score"
)

type caseKind uint8

const (
	caseSingle caseKind = iota
	caseLeading
	caseFinal
	caseFinalUpper
	caseConnected
	caseInitialVirga
	caseInitialPorrectus
	caseSecondPorrectus
	caseInitialPunctum
)

// role is the default treatment of one note of a glyph.
type role struct {
	h, v  score.Verticality
	upper bool
	lower bool
	oc    caseKind

	// belowIsLower is set on a note followed by a lower note drawn
	// under its bottom edge.
	belowIsLower bool

	// slant is set on the first note of a porrectus slant.
	slant bool
}

var oneNote = role{h: score.Above, v: score.Below, oc: caseSingle}

var (
	pesRoles = []role{
		{h: score.Below, v: score.Below, lower: true, oc: caseLeading},
		{h: score.Above, v: score.Above, upper: true, oc: caseFinalUpper},
	}
	flexusRoles = []role{
		{h: score.Above, v: score.Above, oc: caseInitialVirga},
		{h: score.Above, v: score.Below, oc: caseFinal},
	}
	flexusOriscusRoles = []role{
		{h: score.Above, v: score.Above, oc: caseLeading},
		{h: score.Below, v: score.Below, oc: caseFinal},
	}
	porrectusRoles = []role{
		{h: score.Above, v: score.Below, belowIsLower: true, slant: true, oc: caseInitialPorrectus},
		{h: score.Below, v: score.Below, lower: true, oc: caseSecondPorrectus},
		{h: score.Above, v: score.Above, upper: true, oc: caseFinalUpper},
	}
	porrectusFlexusRoles = []role{
		porrectusRoles[0],
		porrectusRoles[1],
		{h: score.Above, v: score.Above, upper: true, oc: caseConnected},
		{h: score.Above, v: score.Below, oc: caseFinal},
	}
	torculusRoles = []role{
		{h: score.Below, v: score.Below, lower: true, oc: caseLeading},
		{h: score.Above, v: score.Above, upper: true, oc: caseConnected},
		{h: score.Above, v: score.Below, oc: caseFinal},
	}
	torculusResupinusRoles = []role{
		{h: score.Below, v: score.Below, lower: true, oc: caseLeading},
		{h: score.Above, v: score.Above, upper: true, belowIsLower: true, slant: true, oc: caseInitialPorrectus},
		{h: score.Below, v: score.Below, lower: true, oc: caseSecondPorrectus},
		{h: score.Above, v: score.Above, upper: true, oc: caseFinalUpper},
	}
	torculusResupinusFlexusRoles = []role{
		torculusResupinusRoles[0],
		torculusResupinusRoles[1],
		torculusResupinusRoles[2],
		{h: score.Above, v: score.Above, upper: true, oc: caseConnected},
		{h: score.Above, v: score.Below, oc: caseFinal},
	}
	scandicusRoles = []role{
		{h: score.Above, v: score.Below, oc: caseInitialPunctum},
		{h: score.Below, v: score.Below, lower: true, oc: caseLeading},
		{h: score.Above, v: score.Above, upper: true, oc: caseFinalUpper},
	}
	salicusFlexusRoles = []role{
		scandicusRoles[0],
		scandicusRoles[1],
		{h: score.Above, v: score.Above, upper: true, oc: caseConnected},
		{h: score.Above, v: score.Below, oc: caseFinal},
	}
	ancusRoles = []role{
		{h: score.Above, v: score.Above, oc: caseInitialVirga},
		{h: score.Above, v: score.Below, oc: caseConnected},
		{h: score.Below, v: score.Below, oc: caseFinal},
	}
)

// roles returns the per-note treatment of glyphs of type t. Notes past
// the end of the returned list are treated as single notes.
func roles(t glyphs.Type) []role {
	switch t {
	case glyphs.TypePes, glyphs.TypePesQuadratum, glyphs.TypePesQuilisma,
		glyphs.TypePesOriscus, glyphs.TypeVirgaStrata:
		return pesRoles
	case glyphs.TypeFlexus, glyphs.TypeFlexusLongqueue, glyphs.TypeFlexusOriscusScapus:
		return flexusRoles
	case glyphs.TypeFlexusOriscus:
		return flexusOriscusRoles
	case glyphs.TypePorrectus, glyphs.TypePorrectusNobar:
		return porrectusRoles
	case glyphs.TypePorrectusFlexus, glyphs.TypePorrectusFlexusNobar:
		return porrectusFlexusRoles
	case glyphs.TypeTorculus, glyphs.TypeTorculusQuilisma, glyphs.TypeTorculusLiquescens:
		return torculusRoles
	case glyphs.TypeTorculusResupinus:
		return torculusResupinusRoles
	case glyphs.TypeTorculusResupinusFlexus:
		return torculusResupinusFlexusRoles
	case glyphs.TypeScandicus, glyphs.TypeSalicus:
		return scandicusRoles
	case glyphs.TypeSalicusFlexus:
		return salicusFlexusRoles
	case glyphs.TypeAncus:
		return ancusRoles
	}
	return nil
}

func roleOf(t glyphs.Type, i int) role {
	rs := roles(t)
	if i < len(rs) {
		return rs[i]
	}
	return oneNote
}

// offsetCase resolves the offset case of note i of g.
func offsetCase(k caseKind, g *score.NoteGlyph, i int) score.OffsetCase {
	n := g.Notes[i]
	liq := n.Liquescence
	if i == len(g.Notes)-1 {
		liq |= g.Liquescence.Tail()
	}
	switch k {
	case caseLeading, caseInitialPunctum:
		switch {
		case i == 0 && g.Liquescence.Has(score.InitioDebilis):
			return score.OffsetInitioDebilis
		case n.Shape.IsQuilisma():
			return score.OffsetLeadingQuilisma
		case n.Shape.IsOriscus():
			return score.OffsetLeadingOriscus
		case k == caseInitialPunctum:
			return score.OffsetInitialPunctum
		}
		return score.OffsetLeadingPunctum
	case caseFinal, caseFinalUpper:
		switch liq.Tail() {
		case score.Deminutus:
			return score.OffsetFinalDeminutus
		case score.AuctusAscendens:
			return score.OffsetFinalAscendens
		case score.AuctusDescendens:
			return score.OffsetFinalDescendens
		}
		switch {
		case n.Shape.IsOriscus():
			return score.OffsetFinalOriscus
		case n.Shape.IsQuilisma():
			return score.OffsetFinalQuilisma
		case k == caseFinalUpper:
			return score.OffsetFinalUpperPunctum
		}
		return score.OffsetFinalConnectedPunctum
	case caseConnected:
		switch {
		case n.Shape.IsQuilisma():
			return score.OffsetConnectedQuilisma
		case n.Shape.IsOriscus():
			return score.OffsetConnectedOriscus
		}
		return score.OffsetConnectedPunctum
	case caseInitialVirga:
		if n.Shape.IsOriscus() {
			return score.OffsetLeadingOriscus
		}
		return score.OffsetInitialConnectedVirga
	case caseInitialPorrectus:
		return score.OffsetInitialPorrectus
	case caseSecondPorrectus:
		return score.OffsetSecondPorrectus
	}
	return singleCase(n, liq)
}

func singleCase(n *score.Note, liq score.Liquescence) score.OffsetCase {
	switch n.Shape {
	case score.ShapePunctumInclinatum, score.ShapePunctumInclinatumAuctus:
		if liq.Tail() == score.Deminutus {
			return score.OffsetFinalInclinatumDeminutus
		}
		return score.OffsetFinalInclinatum
	case score.ShapePunctumInclinatumDeminutus:
		return score.OffsetFinalInclinatumDeminutus
	case score.ShapePunctumCavum:
		return score.OffsetFinalPunctumCavum
	case score.ShapeLinea:
		return score.OffsetFinalLinea
	case score.ShapeLineaPunctum, score.ShapeLineaPunctumCavum:
		return score.OffsetFinalLineaPunctum
	case score.ShapeVirga, score.ShapeVirgaReversa:
		return score.OffsetFinalVirga
	case score.ShapeStropha, score.ShapeStrophaAucta:
		return score.OffsetFinalStropha
	}
	switch {
	case n.Shape.IsOriscus():
		return score.OffsetFinalOriscus
	case n.Shape.IsQuilisma():
		return score.OffsetFinalQuilisma
	}
	switch liq.Tail() {
	case score.Deminutus:
		return score.OffsetFinalDeminutus
	case score.AuctusAscendens:
		return score.OffsetFinalAscendens
	case score.AuctusDescendens:
		return score.OffsetFinalDescendens
	}
	return score.OffsetFinalPunctum
}
