// Package position computes where the signs attached to notes are drawn.
//
// [Compute] walks the notes of the first voice of a score in order and
// writes the [score.Placement] of every note: the offset case used to
// attach signs horizontally, the side and height of vertical and
// horizontal episemas, ledger lines, choral signs, punctum mora and rare
// signs.
//
// # Horizontal episemas
//
// Consecutive horizontal episemas on the same side of the staff are drawn
// as one line at a common height. A run continues across glyph, element
// and syllable boundaries and across neumatic cuts and larger spaces. It
// is closed by a note without an episema on that side, by a bar, clef,
// custos or alteration, and by any other space. When a run closes, its
// height is compared with the episemas of the notes just before and just
// after it, so that runs separated only by a disconnection still line up.
//
// Every placement is reset before it is computed, so running Compute
// twice on the same score gives the same result.
package position

import (
	"log/slog"

	"github.com/gregorio-project/gregotex/glyphs"
	"github.com/gregorio-project/gregotex/score"
)

// Extents is the vertical range covered by the notes of a score and the
// signs attached to them.
type Extents struct {
	Top    score.Pitch
	Bottom score.Pitch
}

type itemKind uint8

const (
	itemNote itemKind = iota
	itemBarrier
)

type item struct {
	kind  itemKind
	glyph *score.NoteGlyph
	index int
	note  *score.Note
}

type placed struct {
	glyph *score.NoteGlyph
	typ   glyphs.Type
}

type positioner struct {
	log    *slog.Logger
	lines  int
	seq    []item
	glyphs []placed
}

// Compute positions the signs of the first voice of s.
func Compute(s *score.Score, log *slog.Logger) Extents {
	p := &positioner{log: log, lines: s.StaffLines}
	if p.lines < score.MinStaffLines || p.lines > score.MaxStaffLines {
		p.lines = score.DefaultStaffLines
	}
	p.flatten(s)
	for _, it := range p.seq {
		if it.kind == itemNote {
			it.note.Placement.Reset()
		}
	}
	for _, pg := range p.glyphs {
		p.advise(pg)
	}
	p.episemas(score.Above)
	p.episemas(score.Below)
	return p.extents()
}

func (p *positioner) barrier() {
	if n := len(p.seq); n > 0 && p.seq[n-1].kind == itemBarrier {
		return
	}
	p.seq = append(p.seq, item{kind: itemBarrier})
}

// Classification problems are reported when the glyph is written, so
// they are not logged here.
var quiet = slog.New(slog.DiscardHandler)

func (p *positioner) flatten(s *score.Score) {
	for _, syl := range s.Syllables {
		for _, e := range syl.Voice(0) {
			switch e := e.(type) {
			case *score.NotesElement:
				p.flattenNotes(e)
			case *score.SpaceElement:
				if !e.Kind.Bridgeable() {
					p.barrier()
				}
			case *score.TexVerbElement, *score.AboveLinesTextElement, *score.NLBAElement:
			default:
				p.barrier()
			}
		}
	}
}

func (p *positioner) flattenNotes(e *score.NotesElement) {
	var prev *score.NoteGlyph
	for _, g := range e.Glyphs {
		switch g := g.(type) {
		case *score.NoteGlyph:
			if len(g.Notes) == 0 {
				prev = nil
				continue
			}
			c := glyphs.Classify(g, prev, quiet)
			typ := c.Type
			if c.Separate {
				typ = glyphs.TypeOneNote
			}
			p.glyphs = append(p.glyphs, placed{glyph: g, typ: typ})
			for i, n := range g.Notes {
				p.seq = append(p.seq, item{kind: itemNote, glyph: g, index: i, note: n})
			}
			prev = g
		case *score.SpaceGlyph:
			if !g.Kind.Bridgeable() {
				p.barrier()
			}
			prev = nil
		case *score.TexVerbGlyph:
			prev = nil
		default:
			p.barrier()
			prev = nil
		}
	}
}

func (p *positioner) advise(pg placed) {
	g := pg.glyph
	for i, n := range g.Notes {
		r := roleOf(pg.typ, i)
		pl := &n.Placement
		pl.Upper, pl.Lower = r.upper, r.lower
		pl.OffsetCase = offsetCase(r.oc, g, i)

		above, below := n.EpisemaAbove.Mark, n.EpisemaBelow.Mark
		if above == score.EpisemaAuto && below == score.EpisemaAuto {
			if r.h == score.Below {
				above = score.EpisemaNone
			} else {
				below = score.EpisemaNone
			}
		}
		pl.EpisemaAbove.Mark, pl.EpisemaBelow.Mark = above, below

		if n.Signs.Has(score.VEpisema) {
			h := n.Pitch.Shift(r.v)
			if r.v == score.Below && r.belowIsLower {
				h = h.Shift(score.Below)
			}
			pl.VEpisema, pl.VEpisemaHeight = r.v, h
		}

		pl.SupposedHighLedgerLine = n.Pitch >= score.HighLedgerLinePitch(p.lines)
		pl.SupposedLowLedgerLine = n.Pitch <= score.LowLedgerLinePitch
		if pl.SupposedHighLedgerLine {
			pl.LedgerAbove = 1
		}
		if pl.SupposedLowLedgerLine {
			pl.LedgerBelow = 1
		}

		p.choral(g, i, r)
		p.mora(g, i, pg.typ)

		if n.RareSign != score.NoRareSign {
			pl.RareSignHeight = n.Pitch + 1
			if !n.Pitch.OnLine() {
				pl.RareSignHeight++
			}
		}
	}

	// A slant is drawn with a single ledger line under or over both of
	// its ends.
	for i, n := range g.Notes {
		if !roleOf(pg.typ, i).slant || i+1 >= len(g.Notes) {
			continue
		}
		a, b := &n.Placement, &g.Notes[i+1].Placement
		if a.SupposedHighLedgerLine || b.SupposedHighLedgerLine {
			a.LedgerAbove, b.LedgerAbove = 2, 0
		}
		if a.SupposedLowLedgerLine || b.SupposedLowLedgerLine {
			a.LedgerBelow, b.LedgerBelow = 2, 0
		}
	}
}

func (p *positioner) choral(g *score.NoteGlyph, i int, r role) {
	n := g.Notes[i]
	if n.ChoralSign == "" {
		return
	}
	last := i == len(g.Notes)-1
	c := &n.Placement.Choral
	c.KindOfPes = r.lower && !last && g.Notes[i+1].Pitch > n.Pitch
	c.Low = c.KindOfPes || (last && i > 0 && g.Notes[i-1].Pitch > n.Pitch)
	dir := score.Above
	if c.Low {
		dir = score.Below
	}
	c.Height = n.Pitch
	if n.Pitch.OnLine() {
		c.Height = n.Pitch.Shift(dir)
	}
}

func moraHeight(n *score.Note, lower bool) score.Pitch {
	switch {
	case !n.Pitch.OnLine():
		return n.Pitch
	case lower:
		return n.Pitch - 1
	}
	return n.Pitch + 1
}

func (p *positioner) mora(g *score.NoteGlyph, i int, typ glyphs.Type) {
	n := g.Notes[i]
	if !n.Signs.Has(score.PunctumMora) && !n.Signs.Has(score.AuctumDuplex) {
		return
	}
	r := roleOf(typ, i)
	pl := &n.Placement
	pl.MoraHeight = moraHeight(n, r.lower)
	pl.MoraShift = i < len(g.Notes)-1 && !r.lower
	if !n.Signs.Has(score.AuctumDuplex) {
		return
	}
	if i == 0 {
		p.log.Warn("augmentum duplex without a previous note; drawing a punctum mora", "pitch", n.Pitch)
		return
	}
	prev := g.Notes[i-1]
	pl.MoraHeight2 = moraHeight(prev, roleOf(typ, i-1).lower)
}

func (p *positioner) extents() Extents {
	var e Extents
	seen := false
	for _, it := range p.seq {
		if it.kind != itemNote {
			continue
		}
		if !seen {
			e, seen = NoteExtents(it.note), true
			continue
		}
		e = e.Union(NoteExtents(it.note))
	}
	if !seen {
		return Extents{Top: score.DummyPitch, Bottom: score.DummyPitch}
	}
	return e
}

// NoteExtents returns the vertical range covered by n and the signs
// positioned on it.
func NoteExtents(n *score.Note) Extents {
	e := Extents{Top: n.Pitch, Bottom: n.Pitch}
	pl := &n.Placement
	if pl.EpisemaAbove.Shown() {
		e.add(pl.EpisemaAbove.Height)
	}
	if pl.EpisemaBelow.Shown() {
		e.add(pl.EpisemaBelow.Height)
	}
	if pl.VEpisema != score.Auto {
		e.add(pl.VEpisemaHeight)
	}
	if n.RareSign != score.NoRareSign {
		e.add(pl.RareSignHeight)
	}
	return e
}

func (e *Extents) add(h score.Pitch) {
	e.Top = max(e.Top, h)
	e.Bottom = min(e.Bottom, h)
}

// Union returns the range covering both e and f.
func (e Extents) Union(f Extents) Extents {
	return Extents{Top: max(e.Top, f.Top), Bottom: min(e.Bottom, f.Bottom)}
}
