// Package glyphs classifies note glyphs into the names of the shapes the
// typesetting engine draws.
//
// A glyph name is built from a fixed sequence of components:
//
//	<head fusion><shape><ambitus...><tail fusion><liquescence>
//
// The head fusion is [Upper] or [Lower] when the previous glyph is fused
// into this one. The shape may carry a queue variant chosen from the
// position of its stem on the staff. Each ambitus component names the
// interval between two adjacent notes ("One" to "Five"). The tail fusion
// is [Up] or [Down] followed by the interval to the next glyph. The
// liquescence component is chosen by a per-shape [Mode]; single-note
// shapes omit it when nothing is drawn.
//
// Classification never fails. Anomalies are logged and a best-effort
// name is returned so that generation can go on.
package glyphs

import (
	"log/slog"
	"strings"

	"github.com/gregorio-project/gregotex/score"
)

// Alignment is the horizontal alignment class of a glyph.
type Alignment int

const (
	AlignOneNote Alignment = iota
	AlignFlexus
	AlignPorrectus
	AlignInitioDebilis
	AlignQuilisma
	AlignOriscus
	AlignPunctumInclinatum
	AlignStropha
	AlignFlexus1
	AlignFlexusDeminutus
)

// Type is the drawn glyph type. It refines the source glyph type with
// the variants that change where signs go.
type Type uint8

const (
	TypeOneNote Type = iota
	TypePes
	TypePesQuadratum
	TypePesQuilisma
	TypePesOriscus
	TypeVirgaStrata
	TypeFlexus
	TypeFlexusLongqueue
	TypeFlexusOriscus
	TypeFlexusOriscusScapus
	TypePorrectus
	TypePorrectusNobar
	TypePorrectusFlexus
	TypePorrectusFlexusNobar
	TypeTorculus
	TypeTorculusQuilisma
	TypeTorculusLiquescens
	TypeTorculusResupinus
	TypeTorculusResupinusFlexus
	TypeScandicus
	TypeSalicus
	TypeSalicusFlexus
	TypeAncus
)

// Classification describes how a glyph is drawn.
type Classification struct {
	Name      string
	Alignment Alignment
	Type      Type

	// Pitch is the pitch the glyph macro is anchored to: the pitch of
	// the first note.
	Pitch score.Pitch

	// Separate is set when the notes of the glyph are drawn one by one.
	// Each note is then classified with ClassifyNote.
	Separate bool
}

// Classify returns the classification of g. Prev is the glyph drawn
// immediately before g in the same element, or nil; it is consulted for
// head fusion only.
func Classify(g, prev *score.NoteGlyph, log *slog.Logger) Classification {
	if len(g.Notes) == 0 {
		log.Error("glyph without notes", "type", g.Type)
		return Classification{Name: Punctum, Pitch: score.DummyPitch}
	}
	c := &classifier{g: g, prev: prev, log: log}
	r := c.classify()
	if r.Alignment == AlignOneNote && !r.Separate && g.Liquescence.Has(score.InitioDebilis) {
		r.Alignment = AlignInitioDebilis
	}
	return r
}

type classifier struct {
	g    *score.NoteGlyph
	prev *score.NoteGlyph
	log  *slog.Logger
}

func (c *classifier) pitch(i int) score.Pitch { return c.g.Notes[i].Pitch }

// amb returns the interval between notes i and i+1.
func (c *classifier) amb(i int) int { return Ambitus(c.pitch(i), c.pitch(i+1)) }

func (c *classifier) head() string {
	if c.prev == nil {
		return ""
	}
	switch {
	case c.prev.FuseToNext > 0:
		return Upper
	case c.prev.FuseToNext < 0:
		return Lower
	}
	return ""
}

func (c *classifier) name(shape string, m Mode, ambitus ...int) string {
	fuses := c.g.FuseToNext != 0
	return compose(c.head(), shape, ambitus, int(c.g.FuseToNext),
		LiquescenceName(c.g.Liquescence, m, fuses), c.log)
}

// queued is like the package-level queued, except that fused glyphs
// always get the plain shape.
func (c *classifier) queued(shape string, note, ambitus int) string {
	if c.g.Liquescence.Has(score.Fused) {
		return shape
	}
	return queued(shape, c.pitch(note), ambitus)
}

func (c *classifier) need(n int) bool {
	if len(c.g.Notes) >= n {
		return true
	}
	c.log.Error("too few notes for glyph", "type", c.g.Type, "notes", len(c.g.Notes), "want", n)
	return false
}

func (c *classifier) separate() Classification {
	r := ClassifyNote(c.g, 0, c.prev, c.log)
	r.Separate = true
	return r
}

func (c *classifier) classify() Classification {
	g := c.g
	first := g.Notes[0].Shape
	r := Classification{Pitch: c.pitch(0)}

	switch g.Type {
	case score.GlyphOneNote:
		if len(g.Notes) > 1 {
			c.log.Warn("one-note glyph with several notes", "notes", len(g.Notes))
			return c.separate()
		}
		return ClassifyNote(g, 0, c.prev, c.log)

	case score.GlyphPunctaInclinata, score.GlyphDistropha, score.GlyphTristropha,
		score.GlyphBivirga, score.GlyphTrivirga:
		return c.separate()

	case score.GlyphPodatus:
		if !c.need(2) {
			return c.separate()
		}
		a := c.amb(0)
		switch {
		case first.IsQuilisma():
			r.Type, r.Alignment = TypePesQuilisma, AlignQuilisma
			r.Name = c.name(PesQuilisma, NoInitio, a)
		case first == score.ShapeOriscusAscendens || first == score.ShapeOriscusScapusAscendens:
			r.Type, r.Alignment = TypePesOriscus, AlignOriscus
			r.Name = c.name(PesAscendensOriscus, NoInitio, a)
		case first.IsOriscus():
			r.Type, r.Alignment = TypePesOriscus, AlignOriscus
			r.Name = c.name(PesDescendensOriscus, NoInitio, a)
		default:
			r.Type = TypePes
			r.Name = c.name(Pes, AllLiquescences, a)
		}

	case score.GlyphPesQuadratum:
		if !c.need(2) {
			return c.separate()
		}
		a := c.amb(0)
		r.Type = TypePesQuadratum
		switch {
		case first.IsQuilisma():
			r.Alignment = AlignQuilisma
			r.Name = c.name(c.queued(PesQuilismaQuadratum, 1, 2), NoInitio, a)
		case first.IsOriscus():
			r.Alignment = AlignOriscus
			r.Name = c.name(c.queued(PesOriscusQuadratum, 1, 2), NoInitio, a)
		default:
			r.Name = c.name(c.queued(PesQuadratum, 1, 2), AllLiquescences, a)
		}

	case score.GlyphVirgaStrata:
		if !c.need(2) {
			return c.separate()
		}
		r.Type = TypeVirgaStrata
		r.Name = c.name(VirgaStrata, AllLiquescences, c.amb(0))

	case score.GlyphFlexa:
		if !c.need(2) {
			return c.separate()
		}
		a := c.amb(0)
		switch {
		case g.Liquescence.Has(score.Deminutus):
			r.Alignment = AlignFlexusDeminutus
		case a == 1:
			r.Alignment = AlignFlexus1
		default:
			r.Alignment = AlignFlexus
		}
		switch {
		case first == score.ShapeOriscusScapusAscendens || first == score.ShapeOriscusScapusDescendens:
			r.Type = TypeFlexusOriscusScapus
			r.Name = c.name(c.queued(FlexusOriscusScapus, 1, a), NoInitio, a)
		case first.IsOriscus():
			r.Type = TypeFlexusOriscus
			r.Name = c.name(FlexusOriscus, NoInitio, a)
		default:
			shape := c.queued(Flexus, 1, a)
			r.Type = TypeFlexus
			if strings.HasSuffix(shape, longqueue) {
				r.Type = TypeFlexusLongqueue
			}
			r.Name = c.name(shape, NoInitio, a)
		}

	case score.GlyphTorculus:
		if !c.need(3) {
			return c.separate()
		}
		if first.IsQuilisma() {
			r.Type, r.Alignment = TypeTorculusQuilisma, AlignQuilisma
			r.Name = c.name(TorculusQuilisma, NoInitio, c.amb(0), c.amb(1))
			break
		}
		r.Type = TypeTorculus
		r.Name = c.name(Torculus, AllLiquescences, c.amb(0), c.amb(1))

	case score.GlyphTorculusLiquescens:
		if !c.need(3) {
			return c.separate()
		}
		r.Type = TypeTorculusLiquescens
		shape := TorculusLiquescens
		if first.IsQuilisma() {
			r.Alignment = AlignQuilisma
			shape = TorculusLiquescensQuilisma
		}
		r.Name = c.name(shape, OnlyDeminutus, c.amb(0), c.amb(1))

	case score.GlyphTorculusResupinus:
		if !c.need(4) {
			return c.separate()
		}
		r.Type = TypeTorculusResupinus
		r.Name = c.name(TorculusResupinus, AllLiquescences, c.amb(0), c.amb(1), c.amb(2))

	case score.GlyphTorculusResupinusFlexus:
		if !c.need(5) {
			return c.separate()
		}
		r.Type = TypeTorculusResupinusFlexus
		r.Name = c.name(TorculusResupinusFlexus, NoInitio, c.amb(0), c.amb(1), c.amb(2), c.amb(3))

	case score.GlyphPorrectus, score.GlyphPorrectusNoBar:
		if !c.need(3) {
			return c.separate()
		}
		r.Type, r.Alignment = TypePorrectus, AlignPorrectus
		shape := Porrectus
		if g.Type == score.GlyphPorrectusNoBar {
			r.Type, shape = TypePorrectusNobar, PorrectusNobar
		}
		r.Name = c.name(shape, NoInitio, c.amb(0), c.amb(1))

	case score.GlyphPorrectusFlexus, score.GlyphPorrectusFlexusNoBar:
		if !c.need(4) {
			return c.separate()
		}
		r.Type, r.Alignment = TypePorrectusFlexus, AlignPorrectus
		shape := PorrectusFlexus
		if g.Type == score.GlyphPorrectusFlexusNoBar {
			r.Type, shape = TypePorrectusFlexusNobar, PorrectusFlexusNobar
		}
		r.Name = c.name(shape, NoInitio, c.amb(0), c.amb(1), c.amb(2))

	case score.GlyphScandicus:
		if !c.need(3) {
			return c.separate()
		}
		r.Type = TypeScandicus
		r.Name = c.name(Scandicus, NoInitio, c.amb(0), c.amb(1))

	case score.GlyphSalicus:
		if !c.need(3) {
			return c.separate()
		}
		r.Type = TypeSalicus
		r.Name = c.name(Salicus, NoInitio, c.amb(0), c.amb(1))

	case score.GlyphSalicusFlexus:
		if !c.need(4) {
			return c.separate()
		}
		r.Type = TypeSalicusFlexus
		r.Name = c.name(SalicusFlexus, NoInitio, c.amb(0), c.amb(1), c.amb(2))

	case score.GlyphAncus:
		if !c.need(3) {
			return c.separate()
		}
		if !g.Liquescence.Has(score.Deminutus) {
			c.log.Debug("ancus without deminutus drawn note by note")
			return c.separate()
		}
		a := c.amb(0)
		r.Type = TypeAncus
		r.Name = c.name(c.queued(Ancus, 1, a), OnlyDeminutus, a, c.amb(1))

	default:
		c.log.Warn("unknown glyph type", "type", g.Type)
		return c.separate()
	}
	return r
}

// ClassifyNote returns the classification of note i of g drawn as a
// single note. Fusion with the neighboring glyphs applies only when g has
// exactly one note.
func ClassifyNote(g *score.NoteGlyph, i int, prev *score.NoteGlyph, log *slog.Logger) Classification {
	if i < 0 || i >= len(g.Notes) {
		log.Error("note index out of range", "index", i, "notes", len(g.Notes))
		return Classification{Name: Punctum, Pitch: score.DummyPitch}
	}
	n := g.Notes[i]
	r := Classification{Type: TypeOneNote, Pitch: n.Pitch}

	liq := n.Liquescence
	var head string
	var tail int
	if len(g.Notes) == 1 {
		c := classifier{g: g, prev: prev, log: log}
		liq |= g.Liquescence
		head = c.head()
		tail = int(g.FuseToNext)
	}
	plain := !liq.Has(score.Fused)

	// Leading and connected shapes already show the direction of the
	// tail, so only its interval is added to them. A leading punctum
	// draws no liquescence but initio debilis.
	var shape, leading, connected string
	m := NoLiquescence
	switch n.Shape {
	case score.ShapePunctum:
		shape, leading, connected = Punctum, LeadingPunctum, ConnectedPunctum
		m = AllLiquescences
	case score.ShapePunctumInclinatum:
		r.Alignment = AlignPunctumInclinatum
		switch liq.Tail() {
		case score.Deminutus:
			shape = PunctumInclinatumDeminutus
		case score.AuctusAscendens, score.AuctusDescendens:
			shape = PunctumInclinatumAuctus
		default:
			shape = PunctumInclinatum
		}
	case score.ShapePunctumInclinatumDeminutus:
		r.Alignment = AlignPunctumInclinatum
		shape = PunctumInclinatumDeminutus
	case score.ShapePunctumInclinatumAuctus:
		r.Alignment = AlignPunctumInclinatum
		shape = PunctumInclinatumAuctus
	case score.ShapePunctumCavum:
		shape = PunctumCavum
	case score.ShapeLinea:
		shape = Linea
	case score.ShapeLineaPunctum:
		shape = LineaPunctum
	case score.ShapeLineaPunctumCavum:
		shape = LineaPunctumCavum
	case score.ShapeVirga:
		shape = Virga
		if plain {
			shape = queued(Virga, n.Pitch, 2)
		}
	case score.ShapeVirgaReversa:
		shape, m = VirgaReversa, NoInitio
		if plain {
			shape = queued(VirgaReversa, n.Pitch, 2)
		}
	case score.ShapeOriscusAscendens, score.ShapeOriscusDescendens, score.ShapeOriscusDeminutus:
		r.Alignment, m = AlignOriscus, NoInitio
		leading, connected = LeadingOriscus, ConnectedOriscus
		switch n.Shape {
		case score.ShapeOriscusAscendens:
			shape = OriscusAscendens
		case score.ShapeOriscusDescendens:
			shape = OriscusDescendens
		default:
			shape = OriscusDeminutus
		}
	case score.ShapeOriscusScapusAscendens, score.ShapeOriscusScapusDescendens:
		r.Alignment, m = AlignOriscus, NoInitio
		shape = OriscusScapusAscendens
		if n.Shape == score.ShapeOriscusScapusDescendens {
			shape = OriscusScapusDescendens
		}
		if plain {
			shape = queued(shape, n.Pitch, 2)
		}
	case score.ShapeQuilisma:
		r.Alignment, m = AlignQuilisma, NoInitio
		shape, leading, connected = Quilisma, LeadingQuilisma, ConnectedQuilisma
	case score.ShapeQuilismaQuadratum:
		r.Alignment, m = AlignQuilisma, NoInitio
		shape = QuilismaQuadratum
	case score.ShapeStropha:
		r.Alignment = AlignStropha
		shape = Stropha
	case score.ShapeStrophaAucta:
		r.Alignment = AlignStropha
		shape = StrophaAucta
	default:
		log.Warn("unknown note shape", "shape", n.Shape)
		shape = Punctum
	}

	var b strings.Builder
	b.WriteString(head)
	switch {
	case tail > 0 && leading != "":
		b.WriteString(leading)
		b.WriteString(AmbitusName(tail, log))
		if m == AllLiquescences {
			m = FusibleInitio
		}
	case tail < 0 && connected != "":
		b.WriteString(connected)
		b.WriteString(AmbitusName(-tail, log))
	case tail != 0:
		b.WriteString(compose("", shape, nil, tail, "", log))
	default:
		b.WriteString(shape)
	}
	if l := LiquescenceName(liq, m, tail != 0); l != Nothing {
		b.WriteString(l)
	}
	r.Name = b.String()
	return r
}
