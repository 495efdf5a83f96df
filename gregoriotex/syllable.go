package gregoriotex

import (
	"github.com/gregorio-project/gregotex/lyric"
	"github.com/gregorio-project/gregotex/score"
)

// half tells which rendering of a discretionary is being written.
type half int

const (
	wholeSyllable half = iota
	endOfLineHalf
	midLineHalf
)

func (g *generator) syllable(i int) {
	syl := g.s.Syllables[i]
	es := syl.Voice(0)

	if len(es) == 1 && len(syl.Text) == 0 {
		if eol, ok := es[0].(*score.EndOfLineElement); ok {
			g.endOfLine(i, 0, eol)
			return
		}
	}

	g.openRegions(syl)
	if len(es) > 0 {
		if c, ok := es[0].(*score.ClefElement); ok {
			g.printf("\\GreSetLinesClef%s%%\n", clefArgs(c.Clef))
			g.print("\\GreDiscretionary{0}{%\n")
			g.syllableBody(i, endOfLineHalf)
			g.print("}{%\n")
			g.syllableBody(i, midLineHalf)
			g.print("}%\n")
			g.closeRegions(syl)
			return
		}
	}
	g.syllableBody(i, wholeSyllable)
	g.closeRegions(syl)
}

func (g *generator) openRegions(syl *score.Syllable) {
	if syl.NoLineBreakStart {
		g.print("\\GreBeginNLBArea{1}{0}%\n")
	}
	if syl.EuouaeStart {
		g.euouae++
		g.printf("\\GreBeginEUOUAE{%d}%%\n", g.euouae)
	}
}

func (g *generator) closeRegions(syl *score.Syllable) {
	if syl.EuouaeEnd {
		if g.euouae == 0 {
			g.log.Warn("euouae end without start", "line", syl.Line)
		}
		g.printf("\\GreEndEUOUAE{%d}%%\n", g.euouae)
	}
	if syl.NoLineBreakEnd {
		g.print("\\GreEndNLBArea{1}{0}%\n")
	}
}

func (g *generator) syllableBody(i int, h half) {
	syl := g.s.Syllables[i]
	es := syl.Voice(0)

	var this syllableText
	if i == g.initial {
		chars := lyric.InitialCenter(syl.Text)
		g.printf("\\GreSetFirstSyllableText{%s}%%\n", texSkipFirst(chars))
		this = splitText(chars)
		this.before = ""
	} else {
		this = splitText(syl.Text)
	}
	var next syllableText
	for _, n := range g.s.Syllables[i+1:] {
		if len(n.Text) > 0 {
			next = splitText(n.Text)
			break
		}
	}

	macro := `\GreSyllable`
	if len(es) == 1 {
		if _, ok := es[0].(*score.BarElement); ok {
			macro = `\GreBarSyllable`
		}
	}
	g.printf("%s{\\GreSetThisSyllable{%s}{%s}{%s}}{\\GreSetNextSyllable{%s}{%s}}{%d}{%%\n",
		macro, this.before, this.center, this.after, next.before, next.center,
		flag(syl.Position.EndsWord()))
	if syl.AboveLinesText != "" {
		g.printf("\\GreSetTextAboveLines{%s}%%\n", syl.AboveLinesText)
	}
	if len(syl.Translation) > 0 {
		g.printf("\\GreWriteTranslation{%s}%%\n", tex(syl.Translation))
	}
	g.elements(i, h)
	g.print("}%\n")
}
