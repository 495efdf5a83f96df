package glyphs

import (
	"log/slog"
	"strings"

	"github.com/gregorio-project/gregotex/score"
)

// Shape names. They are suffixed with ambitus, fusion and liquescence
// components to form the complete name of a drawn glyph.
const (
	Punctum                    = "Punctum"
	PunctumInclinatum          = "PunctumInclinatum"
	PunctumInclinatumDeminutus = "PunctumInclinatumDeminutus"
	PunctumInclinatumAuctus    = "PunctumInclinatumAuctus"
	PunctumCavum               = "PunctumCavum"
	Linea                      = "Linea"
	LineaPunctum               = "LineaPunctum"
	LineaPunctumCavum          = "LineaPunctumCavum"
	Virga                      = "Virga"
	VirgaReversa               = "VirgaReversa"
	OriscusAscendens           = "OriscusAscendens"
	OriscusDescendens          = "OriscusDescendens"
	OriscusDeminutus           = "OriscusDeminutus"
	OriscusScapusAscendens     = "OriscusScapusAscendens"
	OriscusScapusDescendens    = "OriscusScapusDescendens"
	Quilisma                   = "Quilisma"
	QuilismaQuadratum          = "QuilismaQuadratum"
	Stropha                    = "Stropha"
	StrophaAucta               = "StrophaAucta"

	LeadingPunctum    = "LeadingPunctum"
	LeadingQuilisma   = "LeadingQuilisma"
	LeadingOriscus    = "LeadingOriscus"
	ConnectedPunctum  = "ConnectedPunctum"
	ConnectedQuilisma = "ConnectedQuilisma"
	ConnectedOriscus  = "ConnectedOriscus"

	Pes                  = "Pes"
	PesQuilisma          = "PesQuilisma"
	PesAscendensOriscus  = "PesAscendensOriscus"
	PesDescendensOriscus = "PesDescendensOriscus"
	PesQuadratum         = "PesQuadratum"
	PesQuilismaQuadratum = "PesQuilismaQuadratum"
	PesOriscusQuadratum  = "PesOriscusQuadratum"
	VirgaStrata          = "VirgaStrata"

	Flexus              = "Flexus"
	FlexusOriscus       = "FlexusOriscus"
	FlexusOriscusScapus = "FlexusOriscusScapus"

	Porrectus            = "Porrectus"
	PorrectusNobar       = "PorrectusNobar"
	PorrectusFlexus      = "PorrectusFlexus"
	PorrectusFlexusNobar = "PorrectusFlexusNobar"

	Torculus                   = "Torculus"
	TorculusQuilisma           = "TorculusQuilisma"
	TorculusLiquescens         = "TorculusLiquescens"
	TorculusLiquescensQuilisma = "TorculusLiquescensQuilisma"
	TorculusResupinus          = "TorculusResupinus"
	TorculusResupinusFlexus    = "TorculusResupinusFlexus"

	Scandicus     = "Scandicus"
	Salicus       = "Salicus"
	SalicusFlexus = "SalicusFlexus"
	Ancus         = "Ancus"
)

// Queue variants appended to shapes whose stem length depends on the
// surrounding staff lines.
const (
	longqueue = "Longqueue"
	openqueue = "Openqueue"
)

// Liquescence name components.
const (
	Nothing                 = "Nothing"
	InitioDebilis           = "InitioDebilis"
	Deminutus               = "Deminutus"
	Ascendens               = "Ascendens"
	Descendens              = "Descendens"
	InitioDebilisDeminutus  = "InitioDebilisDeminutus"
	InitioDebilisAscendens  = "InitioDebilisAscendens"
	InitioDebilisDescendens = "InitioDebilisDescendens"
)

// Fusion components. Upper and Lower prefix a glyph whose first note is
// fused from the previous glyph; Up and Down name the direction of a tail
// fused into the next glyph.
const (
	Upper = "Upper"
	Lower = "Lower"
	Up    = "Up"
	Down  = "Down"
)

var ambitusNames = [...]string{"", "One", "Two", "Three", "Four", "Five"}

// MaxAmbitus is the largest interval with a name of its own.
const MaxAmbitus = len(ambitusNames) - 1

// AmbitusName returns the name component of the interval between two
// adjacent notes. Intervals outside 1 to MaxAmbitus are logged and
// clamped into range.
func AmbitusName(ambitus int, log *slog.Logger) string {
	if ambitus < 1 || ambitus > MaxAmbitus {
		log.Warn("unsupported ambitus", "ambitus", ambitus)
		ambitus = max(1, min(ambitus, MaxAmbitus))
	}
	return ambitusNames[ambitus]
}

// Ambitus returns the interval between a and b, in staff steps.
func Ambitus(a, b score.Pitch) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// Mode says which liquescence flags a family of glyphs can draw.
type Mode uint8

const (
	// AllLiquescences keeps every flag.
	AllLiquescences Mode = iota

	// NoInitio drops initio debilis.
	NoInitio

	// OnlyDeminutus keeps deminutus and initio debilis.
	OnlyDeminutus

	// FusibleInitio keeps initio debilis only, and only on a glyph fused
	// into the next one.
	FusibleInitio

	// NoLiquescence drops every flag.
	NoLiquescence
)

// mask returns the flags of l that mode can draw.
func (m Mode) mask(l score.Liquescence, fusesForward bool) score.Liquescence {
	switch m {
	case AllLiquescences:
		return l
	case NoInitio:
		return l.Without(score.InitioDebilis)
	case OnlyDeminutus:
		return l & (score.Deminutus | score.InitioDebilis)
	case FusibleInitio:
		if fusesForward {
			return l & score.InitioDebilis
		}
	}
	return score.NoLiquescence
}

// LiquescenceName returns the liquescence component for l under mode.
// The result is never empty.
func LiquescenceName(l score.Liquescence, m Mode, fusesForward bool) string {
	l = m.mask(l, fusesForward)
	initio := l.Has(score.InitioDebilis)
	switch l.Tail() {
	case score.Deminutus:
		if initio {
			return InitioDebilisDeminutus
		}
		return Deminutus
	case score.AuctusAscendens:
		if initio {
			return InitioDebilisAscendens
		}
		return Ascendens
	case score.AuctusDescendens:
		if initio {
			return InitioDebilisDescendens
		}
		return Descendens
	}
	if initio {
		return InitioDebilis
	}
	return Nothing
}

// compose joins the components of a glyph name in a fixed order: head
// fusion, shape, ambitus values, tail fusion and liquescence.
func compose(head, shape string, ambitus []int, tail int, liq string, log *slog.Logger) string {
	var b strings.Builder
	b.WriteString(head)
	b.WriteString(shape)
	for _, a := range ambitus {
		b.WriteString(AmbitusName(a, log))
	}
	switch {
	case tail > 0:
		b.WriteString(Up)
		b.WriteString(AmbitusName(tail, log))
	case tail < 0:
		b.WriteString(Down)
		b.WriteString(AmbitusName(-tail, log))
	}
	b.WriteString(liq)
	return b.String()
}
