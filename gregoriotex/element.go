package gregoriotex

import (
	"fmt"

	"github.com/gregorio-project/gregotex/score"
)

var barMacros = [...]string{
	score.BarVirgula:        `\GreVirgula`,
	score.BarDivisioMinima:  `\GreDivisioMinima`,
	score.BarDivisioMinor:   `\GreDivisioMinor`,
	score.BarDivisioMaior:   `\GreDivisioMaior`,
	score.BarDivisioFinalis: `\GreDivisioFinalis`,
	score.BarDominica:       `\GreDominica`,
}

// Space codes of \GreEndOfElement.
const (
	elementSpaceDefault = iota
	elementSpaceLarger
	elementSpaceGlyph
	elementSpaceHalf
	elementSpaceZero
)

func elementSpace(k score.SpaceKind) int {
	switch k {
	case score.SpaceLarger, score.SpaceLargerNB:
		return elementSpaceLarger
	case score.SpaceInterGlyph, score.SpaceInterGlyphNB:
		return elementSpaceGlyph
	case score.SpaceHalf:
		return elementSpaceHalf
	case score.SpaceZeroWidth, score.SpaceNone:
		return elementSpaceZero
	}
	return elementSpaceDefault
}

func (g *generator) elements(i int, h half) {
	syl := g.s.Syllables[i]
	es := syl.Voice(0)
	for j, e := range es {
		switch e := e.(type) {
		case *score.NotesElement:
			g.notes(i, j, e)
			if j+1 < len(es) {
				if _, ok := es[j+1].(*score.NotesElement); ok {
					g.printf("\\GreEndOfElement{%d}{0}%%\n", elementSpaceDefault)
				}
			}
		case *score.SpaceElement:
			g.printf("\\GreEndOfElement{%d}{%d}%%\n", elementSpace(e.Kind), flag(e.Kind.NoBreak()))
		case *score.BarElement:
			g.bar(e, len(syl.Text) > 0)
		case *score.ClefElement:
			if h == endOfLineHalf {
				continue
			}
			g.printf("\\GreChangeClef%s{%d}%%\n", clefArgs(e.Clef), h)
		case *score.CustosElement:
			if h == endOfLineHalf {
				continue
			}
			g.custos(i, j, e)
		case *score.EndOfLineElement:
			g.endOfLine(i, j, e)
		case *score.TexVerbElement:
			g.printf("%s%%\n", e.Text)
		case *score.AboveLinesTextElement:
			g.printf("\\GreSetTextAboveLines{%s}%%\n", e.Text)
		case *score.NLBAElement:
			if e.Start {
				g.print("\\GreBeginNLBArea{1}{0}%\n")
			} else {
				g.print("\\GreEndNLBArea{1}{0}%\n")
			}
		default:
			g.log.Error("unknown element", "type", fmt.Sprintf("%T", e), "line", syl.Line)
		}
	}
}

func (g *generator) bar(b *score.BarElement, hasText bool) {
	if int(b.Kind) >= len(barMacros) {
		g.log.Error("unknown bar", "kind", b.Kind)
		return
	}
	if b.Kind == score.BarDominica {
		if b.Dominica < 1 || b.Dominica > 8 {
			g.log.Warn("dominican bar out of range", "number", b.Dominica)
		}
		g.printf("%s{%d}{%d}%%\n", barMacros[b.Kind], b.Dominica, flag(hasText))
	} else {
		g.printf("%s{%d}%%\n", barMacros[b.Kind], flag(hasText))
	}
	if b.Signs.Has(score.VEpisema) {
		g.print("\\GreBarVEpisema%\n")
	}
	if b.Signs&^score.VEpisema != score.NoSigns {
		g.log.Warn("ignoring signs on bar", "signs", b.Signs)
	}
}

func (g *generator) custos(i, j int, c *score.CustosElement) {
	p := c.Pitch
	if c.Auto {
		var ok bool
		if p, ok = g.nextPitch(i, j); !ok {
			g.log.Warn("custos without a following note", "line", g.s.Syllables[i].Line)
			return
		}
	}
	g.printf("\\GreCustos{%c}%%\n", p.Letter())
}

func (g *generator) endOfLine(i, j int, e *score.EndOfLineElement) {
	if p, ok := g.nextPitch(i, j); ok {
		g.printf("\\GreNextCustos{%c}%%\n", p.Letter())
	}
	var m lineMetrics
	if k, ok := g.next[e]; ok && k < len(g.lines) {
		m = g.lines[k]
	}
	switch {
	case !m.plain():
		g.printf("\\GreNewLineWithSpace{%d}{%d}{%d}{%d}%%\n",
			flag(e.Ragged), m.top, m.bottom, flag(m.translation))
	case e.Ragged:
		g.print("\\GreNewParLine %\n")
	default:
		g.print("\\GreNewLine %\n")
	}
}

// nextPitch returns the pitch of the first note after element j of
// syllable i.
func (g *generator) nextPitch(i, j int) (score.Pitch, bool) {
	for ; i < len(g.s.Syllables); i, j = i+1, -1 {
		es := g.s.Syllables[i].Voice(0)
		if j+1 > len(es) {
			continue
		}
		for _, e := range es[j+1:] {
			ne, ok := e.(*score.NotesElement)
			if !ok {
				continue
			}
			if p, ok := firstPitch(ne.Glyphs); ok {
				return p, true
			}
		}
	}
	return score.DummyPitch, false
}

func firstPitch(gs []score.Glyph) (score.Pitch, bool) {
	for _, gl := range gs {
		if ng, ok := gl.(*score.NoteGlyph); ok && len(ng.Notes) > 0 {
			return ng.Notes[0].Pitch, true
		}
	}
	return score.DummyPitch, false
}
