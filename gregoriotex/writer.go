package gregoriotex

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/gregorio-project/gregotex/lyric"
	"github.com/gregorio-project/gregotex/position"
	"github.com/gregorio-project/gregotex/score"
)

// A generator holds the state of one Write call.
type generator struct {
	w    *bufio.Writer
	err  error // sticky; once set, nothing more is written
	s    *score.Score
	opts *Options
	log  *slog.Logger

	staffLines int

	// initial is the index of the syllable whose first letter is drawn
	// as an initial, or -1.
	initial int

	// euouae numbers the euouae regions; the current one is open.
	euouae int

	// lines holds the metrics of every line, and next maps each line
	// break to the index of the line it starts.
	lines []lineMetrics
	next  map[*score.EndOfLineElement]int
}

// lineMetrics is the space a line needs beyond the staff.
type lineMetrics struct {
	// top and bottom are the number of staff steps notes and signs reach
	// above the top line and below the bottom line.
	top, bottom int
	translation bool
}

func (m lineMetrics) plain() bool {
	return m.top == 0 && m.bottom == 0 && !m.translation
}

func newGenerator(w io.Writer, s *score.Score, opts *Options, log *slog.Logger) *generator {
	g := &generator{
		w:          bufio.NewWriter(w),
		s:          s,
		opts:       opts,
		log:        log,
		staffLines: s.StaffLines,
		initial:    -1,
		next:       make(map[*score.EndOfLineElement]int),
	}
	if g.staffLines < score.MinStaffLines || g.staffLines > score.MaxStaffLines {
		log.Warn("unsupported number of staff lines", "lines", s.StaffLines)
		g.staffLines = score.DefaultStaffLines
	}
	if s.InitialStyle > 0 {
		for i, syl := range s.Syllables {
			if len(syl.Text) > 0 {
				g.initial = i
				break
			}
		}
	}
	return g
}

func (g *generator) print(s string) {
	if g.err != nil {
		return
	}
	_, g.err = g.w.WriteString(s)
}

func (g *generator) printf(format string, args ...any) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format, args...)
}

func (g *generator) flush() error {
	if g.err == nil {
		g.err = g.w.Flush()
	}
	return g.err
}

// measure records the metrics of every line. It must run after the signs
// are positioned.
func (g *generator) measure() {
	top, bottom := score.TopLinePitch(g.staffLines), score.BottomLinePitch
	cur := lineMetrics{}
	for _, syl := range g.s.Syllables {
		if len(syl.Translation) > 0 {
			cur.translation = true
		}
		for _, e := range syl.Voice(0) {
			switch e := e.(type) {
			case *score.NotesElement:
				for _, gl := range e.Glyphs {
					ng, ok := gl.(*score.NoteGlyph)
					if !ok {
						continue
					}
					for _, n := range ng.Notes {
						x := position.NoteExtents(n)
						cur.top = max(cur.top, int(x.Top-top))
						cur.bottom = max(cur.bottom, int(bottom-x.Bottom))
					}
				}
			case *score.EndOfLineElement:
				g.lines = append(g.lines, cur)
				g.next[e] = len(g.lines)
				cur = lineMetrics{}
			}
		}
	}
	g.lines = append(g.lines, cur)
}

func (g *generator) score(ext position.Extents) {
	s := g.s
	version := g.opts.Version
	if version == "" {
		version = Version
	}
	g.printf("%% File generated by gregotex %s\n", version)
	g.printf("\\GregorioTeXAPIVersion{%s}%%\n", APIVersion)
	for _, h := range s.Headers {
		g.printf("\\GreHeader{%s}{%s}%%\n", escapeHeader(h.Name), escapeHeader(h.Value))
	}
	if s.Mode != "" {
		g.printf("\\GreMode{%s}{%s}{%s}%%\n",
			escapeHeader(s.Mode), escapeHeader(s.ModeModifier), escapeHeader(s.ModeDifferentia))
	}
	if n := len(s.Annotations); n > 0 {
		if n > 2 {
			g.log.Warn("too many annotations", "count", n)
		}
		var a, b string
		a = s.Annotations[0]
		if n > 1 {
			b = s.Annotations[1]
		}
		g.printf("\\GreAnnotationLines{%s}{%s}%%\n", escapeHeader(a), escapeHeader(b))
	}

	var filename string
	if g.opts.PointAndClick {
		filename = escapeHeader(g.opts.Filename)
	}
	g.printf("\\GreBeginScore{%s}{%c}{%c}{%d}{%d}{%s}{%d}%%\n",
		s.HexDigest(), ext.Top.Letter(), ext.Bottom.Letter(),
		flag(s.HasTranslation()), flag(s.HasAboveLinesText()), filename, g.staffLines)

	clef := score.DefaultClef
	if len(s.Voices) > 0 && !s.Voices[0].InitialClef.IsZero() {
		clef = s.Voices[0].InitialClef
	}
	g.printf("\\GreSetInitialClef%s%%\n", clefArgs(clef))
	if g.initial >= 0 {
		g.printf("\\GreSetInitial{%s}%%\n", tex(lyric.FirstLetter(s.Syllables[g.initial].Text)))
	}

	for i := range s.Syllables {
		g.syllable(i)
	}
	g.print("\\GreEndScore %\n\\endinput %\n")
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func clefArgs(c score.Clef) string {
	key := func(k score.ClefKey) string {
		if k.IsZero() {
			return "{0}{0}{0}"
		}
		return fmt.Sprintf("{%c}{%d}{%d}", k.Letter, k.Line, flag(k.Flatted))
	}
	return key(c.ClefKey) + key(c.Secondary)
}
