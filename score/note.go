package score

import "fmt"

// Shape is the drawn form of a single note.
type Shape uint8

const (
	ShapeUndetermined Shape = iota
	ShapePunctum
	ShapePunctumInclinatum
	ShapePunctumInclinatumDeminutus
	ShapePunctumInclinatumAuctus
	ShapePunctumCavum
	ShapeLinea
	ShapeLineaPunctum
	ShapeLineaPunctumCavum
	ShapeVirga
	ShapeVirgaReversa
	ShapeOriscusAscendens
	ShapeOriscusDescendens
	ShapeOriscusDeminutus
	ShapeOriscusScapusAscendens
	ShapeOriscusScapusDescendens
	ShapeQuilisma
	ShapeQuilismaQuadratum
	ShapeStropha
	ShapeStrophaAucta

	numShapes
)

var shapeNames = [...]string{
	ShapeUndetermined:               "undetermined",
	ShapePunctum:                    "punctum",
	ShapePunctumInclinatum:          "inclinatum",
	ShapePunctumInclinatumDeminutus: "inclinatum-deminutus",
	ShapePunctumInclinatumAuctus:    "inclinatum-auctus",
	ShapePunctumCavum:               "cavum",
	ShapeLinea:                      "linea",
	ShapeLineaPunctum:               "linea-punctum",
	ShapeLineaPunctumCavum:          "linea-punctum-cavum",
	ShapeVirga:                      "virga",
	ShapeVirgaReversa:               "virga-reversa",
	ShapeOriscusAscendens:           "oriscus",
	ShapeOriscusDescendens:          "oriscus-descendens",
	ShapeOriscusDeminutus:           "oriscus-deminutus",
	ShapeOriscusScapusAscendens:     "oriscus-scapus",
	ShapeOriscusScapusDescendens:    "oriscus-scapus-descendens",
	ShapeQuilisma:                   "quilisma",
	ShapeQuilismaQuadratum:          "quilisma-quadratum",
	ShapeStropha:                    "stropha",
	ShapeStrophaAucta:               "stropha-aucta",
}

func (s Shape) String() string {
	if s < numShapes {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// ParseShape returns the shape named s.
func ParseShape(s string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == s && Shape(i) != ShapeUndetermined {
			return Shape(i), true
		}
	}
	return ShapeUndetermined, false
}

// IsOriscus reports whether s is one of the oriscus shapes.
func (s Shape) IsOriscus() bool {
	switch s {
	case ShapeOriscusAscendens, ShapeOriscusDescendens, ShapeOriscusDeminutus,
		ShapeOriscusScapusAscendens, ShapeOriscusScapusDescendens:
		return true
	}
	return false
}

// IsQuilisma reports whether s is one of the quilisma shapes.
func (s Shape) IsQuilisma() bool {
	return s == ShapeQuilisma || s == ShapeQuilismaQuadratum
}

// IsInclinatum reports whether s is one of the punctum inclinatum shapes.
func (s Shape) IsInclinatum() bool {
	switch s {
	case ShapePunctumInclinatum, ShapePunctumInclinatumDeminutus, ShapePunctumInclinatumAuctus:
		return true
	}
	return false
}

// IsStropha reports whether s is one of the stropha shapes.
func (s Shape) IsStropha() bool {
	return s == ShapeStropha || s == ShapeStrophaAucta
}

// Note is a single pitch within a glyph, together with the signs the
// author attached to it.
type Note struct {
	Pitch       Pitch
	Shape       Shape
	Liquescence Liquescence
	Signs       Signs
	RareSign    RareSign

	// EpisemaAbove and EpisemaBelow are the horizontal episemas requested
	// by the author. An automatic request usually appears on both sides,
	// and positioning keeps only one of them.
	EpisemaAbove Episema
	EpisemaBelow Episema

	// ChoralSign is the text of a choral sign, if any.
	ChoralSign string

	// TexVerb is raw TeX emitted after the note.
	TexVerb string

	// Placement is written by the sign positioner. Its contents are
	// recomputed from scratch on every positioning pass.
	Placement Placement
}

// Episema returns the requested horizontal episema on side v.
func (n *Note) Episema(v Verticality) Episema {
	if v == Below {
		return n.EpisemaBelow
	}
	return n.EpisemaAbove
}

// Placement holds the sign positioning computed for a note.
type Placement struct {
	OffsetCase OffsetCase

	// Upper and Lower mark a note drawn directly above or below another
	// note of the same glyph.
	Upper bool
	Lower bool

	EpisemaAbove EpisemaPlacement
	EpisemaBelow EpisemaPlacement

	// VEpisema is the side of the vertical episema, and VEpisemaHeight
	// its height. VEpisema is Auto when the note carries none.
	VEpisema       Verticality
	VEpisemaHeight Pitch

	// MoraHeight is the height of a punctum mora, and MoraHeight2 the
	// height of the second dot of an augmentum duplex. MoraShift is set
	// when the dot must be moved right to clear a following note.
	MoraHeight  Pitch
	MoraHeight2 Pitch
	MoraShift   bool

	// RareSignHeight is the height of the rare sign, if any.
	RareSignHeight Pitch

	// Choral is the position of the choral sign, if any.
	Choral ChoralPlacement

	// LedgerAbove and LedgerBelow are the number of notes a ledger line
	// drawn at this note spans. Zero means no line is drawn here, which
	// is also the case when a preceding note draws a line covering this
	// one.
	LedgerAbove int
	LedgerBelow int

	// SupposedHighLedgerLine and SupposedLowLedgerLine record that the
	// note needs a ledger line, whether or not it draws it.
	SupposedHighLedgerLine bool
	SupposedLowLedgerLine  bool
}

// Reset clears every computed annotation.
func (p *Placement) Reset() { *p = Placement{} }

// Episema returns the placement of the horizontal episema on side v.
func (p *Placement) Episema(v Verticality) *EpisemaPlacement {
	if v == Below {
		return &p.EpisemaBelow
	}
	return &p.EpisemaAbove
}

// EpisemaPlacement is the resolved horizontal episema on one side of a
// note.
type EpisemaPlacement struct {
	// Mark is EpisemaNone when no episema is drawn on this side.
	Mark EpisemaMark

	// Height is the height shared by every episema of the run the note
	// belongs to.
	Height Pitch

	// Span is the number of notes of the run. It is set on the first
	// note of the run only, which is where the episema is emitted.
	Span int
}

// Shown reports whether an episema is drawn on this side.
func (e EpisemaPlacement) Shown() bool { return e.Mark != EpisemaNone }

// ChoralPlacement is the resolved position of a choral sign.
type ChoralPlacement struct {
	// Low places the sign on the lower side of the note.
	Low bool

	// KindOfPes is set on the first note of a pes-like pair, where the
	// sign must avoid the upper note.
	KindOfPes bool

	Height Pitch
}
