package gregoriotex

import (
	"fmt"

	"github.com/gregorio-project/gregotex/glyphs"
	"github.com/gregorio-project/gregotex/score"
)

var alterationMacros = [...]string{
	score.Flat:    `\GreFlat`,
	score.Sharp:   `\GreSharp`,
	score.Natural: `\GreNatural`,
}

var rareSignMacros = map[score.RareSign]string{
	score.Accentus:             `\GreAccentus`,
	score.AccentusReversus:     `\GreReversedAccentus`,
	score.Circulus:             `\GreCirculus`,
	score.Semicirculus:         `\GreSemicirculus`,
	score.SemicirculusReversus: `\GreReversedSemicirculus`,
}

func isSpaceGlyph(gl score.Glyph) bool {
	_, ok := gl.(*score.SpaceGlyph)
	return ok
}

// notes writes notes element j of syllable i.
func (g *generator) notes(i, j int, e *score.NotesElement) {
	var prev *score.NoteGlyph
	for k, gl := range e.Glyphs {
		if k > 0 && !isSpaceGlyph(gl) && !isSpaceGlyph(e.Glyphs[k-1]) {
			g.printf("\\GreEndOfGlyph{%d}%%\n", glyphs.GlyphSpace(e.Glyphs[k-1], gl))
		}
		switch gl := gl.(type) {
		case *score.NoteGlyph:
			next, ok := firstPitch(e.Glyphs[k+1:])
			if !ok {
				next, ok = g.nextPitch(i, j)
			}
			g.noteGlyph(gl, prev, next, ok)
			prev = gl
			continue
		case *score.AlterationGlyph:
			if int(gl.Kind) >= len(alterationMacros) {
				g.log.Error("unknown alteration", "kind", gl.Kind)
				break
			}
			g.printf("%s{%c}%%\n", alterationMacros[gl.Kind], gl.Pitch.Letter())
		case *score.SpaceGlyph:
			g.printf("\\GreEndOfGlyph{%d}%%\n", glyphs.ExplicitSpace(gl.Kind))
		case *score.TexVerbGlyph:
			g.printf("%s%%\n", gl.Text)
		case *score.CustosGlyph:
			g.printf("\\GreCustos{%c}%%\n", gl.Pitch.Letter())
		default:
			g.log.Error("unknown glyph", "type", fmt.Sprintf("%T", gl))
		}
		prev = nil
	}
}

// noteGlyph writes a glyph and the signs of its notes. Next is the pitch
// of the note that follows the glyph, if hasNext is set.
func (g *generator) noteGlyph(ng, prev *score.NoteGlyph, next score.Pitch, hasNext bool) {
	c := glyphs.Classify(ng, prev, g.log)
	if !hasNext {
		next = c.Pitch
	}
	if !c.Separate {
		g.glyph(c, next)
		g.signs(ng.Notes)
		return
	}
	for k, n := range ng.Notes {
		nc := c
		if k > 0 {
			g.printf("\\GreEndOfGlyph{%d}%%\n", glyphs.NoteSpace(ng, k))
			nc = glyphs.ClassifyNote(ng, k, prev, g.log)
		}
		after := next
		if k+1 < len(ng.Notes) {
			after = ng.Notes[k+1].Pitch
		}
		g.glyph(nc, after)
		g.signs([]*score.Note{n})
	}
}

func (g *generator) glyph(c glyphs.Classification, next score.Pitch) {
	g.printf("\\GreGlyph{\\GreCP%s}{%c}{%c}{%d}%%\n", c.Name, c.Pitch.Letter(), next.Letter(), c.Alignment)
}

// signs writes the signs of notes. Signs drawn over the glyph come
// first, then the ones drawn beside or under it.
func (g *generator) signs(notes []*score.Note) {
	for _, n := range notes {
		pl := &n.Placement
		oc := pl.OffsetCase
		if pl.LedgerAbove > 0 {
			g.printf("\\GreAdditionalLine{\\GreOCase%s}{%d}{1}%%\n", oc, pl.LedgerAbove)
		}
		if pl.LedgerBelow > 0 {
			g.printf("\\GreAdditionalLine{\\GreOCase%s}{%d}{0}%%\n", oc, pl.LedgerBelow)
		}
		if n.ChoralSign != "" && !pl.Choral.Low {
			g.printf("\\GreHighChoralSign{%c}{%s}{\\GreOCase%s}%%\n",
				pl.Choral.Height.Letter(), tex(score.Chars(n.ChoralSign)), oc)
		}
		if n.RareSign != score.NoRareSign {
			if m, ok := rareSignMacros[n.RareSign]; ok {
				g.printf("%s{%c}{\\GreOCase%s}%%\n", m, pl.RareSignHeight.Letter(), oc)
			} else {
				g.log.Warn("unknown rare sign", "sign", n.RareSign)
			}
		}
		if pl.VEpisema != score.Auto {
			g.printf("\\GreVEpisema{%c}{\\GreOCase%s}%%\n", pl.VEpisemaHeight.Letter(), oc)
		}
		g.hepisema(n, score.Above)
		g.hepisema(n, score.Below)
	}
	for _, n := range notes {
		pl := &n.Placement
		oc := pl.OffsetCase
		if n.ChoralSign != "" && pl.Choral.Low {
			g.printf("\\GreLowChoralSign{%c}{%s}{\\GreOCase%s}{%d}%%\n",
				pl.Choral.Height.Letter(), tex(score.Chars(n.ChoralSign)), oc, flag(pl.Choral.KindOfPes))
		}
		switch {
		case n.Signs.Has(score.AuctumDuplex) && pl.MoraHeight2 != 0:
			g.printf("\\GreAugmentumDuplex{%c}{%c}{\\GreOCase%s}%%\n",
				pl.MoraHeight.Letter(), pl.MoraHeight2.Letter(), oc)
		case n.Signs.Has(score.PunctumMora), n.Signs.Has(score.AuctumDuplex):
			g.printf("\\GrePunctumMora{%c}{%d}{\\GreOCase%s}%%\n",
				pl.MoraHeight.Letter(), flag(pl.MoraShift), oc)
		}
		if n.TexVerb != "" {
			g.printf("%s%%\n", n.TexVerb)
		}
	}
}

// hepisema writes the horizontal episema on side v of n if a run starts
// at n.
func (g *generator) hepisema(n *score.Note, v score.Verticality) {
	pl := n.Placement.Episema(v)
	if !pl.Shown() || pl.Span == 0 {
		return
	}
	g.printf("\\GreHEpisema{%c}{\\GreOCase%s}{%d}{%d}{%d}%%\n",
		pl.Height.Letter(), n.Placement.OffsetCase, n.Episema(v).Size,
		flag(v == score.Above), pl.Span)
}
