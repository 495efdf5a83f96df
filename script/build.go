package script

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gregorio-project/gregotex/lyric"
	"github.com/gregorio-project/gregotex/score"
)

var (
	errNoSyllable = errors.New("no syllable open")
	errNoGlyph    = errors.New("note outside a glyph")
	errLate       = errors.New("must come before the first syllable")
)

// Build reads the script name of fsys and returns the score it describes.
// The digest of the score is the SHA-1 of the script file.
func Build(name string, fsys fs.FS, log *slog.Logger) (*score.Score, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &Error{Statement: Statement{File: name}, Err: err}
	}
	return build(name, src, fsys, log)
}

// Parse is like Build for a script held in memory. The script cannot
// include other scripts.
func Parse(name string, src []byte, log *slog.Logger) (*score.Score, error) {
	return build(name, src, nil, log)
}

// ParseFS is like Parse, with includes read from fsys. An editor uses it
// for a script whose saved copy in fsys may be out of date.
func ParseFS(name string, src []byte, fsys fs.FS, log *slog.Logger) (*score.Score, error) {
	return build(name, src, fsys, log)
}

func build(name string, src []byte, fsys fs.FS, log *slog.Logger) (*score.Score, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	b := &builder{s: score.New(1), log: log.With("file", name)}
	e := newReaderExpander(name, bytes.NewReader(src), fsys)
	for st, err := range e.All() {
		if err != nil {
			return nil, err
		}
		if err := b.run(st); err != nil {
			return nil, &Error{Statement: st, Err: err}
		}
	}
	b.s.FixInitialKeys()
	b.s.Digest = sha1.Sum(src)
	b.log.Debug("built score", "syllables", len(b.s.Syllables))
	return b.s, nil
}

// builder adds statements to a score. The last syllable of the score is
// the one being written, and notes and glyph are the notes element and
// glyph being filled, if any.
type builder struct {
	s     *score.Score
	log   *slog.Logger
	syl   *score.Syllable
	notes *score.NotesElement
	glyph *score.NoteGlyph
}

func (b *builder) run(st Statement) error {
	body := strings.TrimSpace(st.Body)
	switch st.Name {
	case "":
		return nil
	case "header":
		k, v := ParseArgs2(body)
		if k == "" {
			return errors.New("header: missing name")
		}
		b.s.Headers = append(b.s.Headers, score.Header{Name: k, Value: v})
	case "name":
		b.s.Headers = append(b.s.Headers, score.Header{Name: "name", Value: body})
	case "staff-lines":
		if b.syl != nil {
			return errLate
		}
		n, err := b.number(body, score.MinStaffLines, score.MaxStaffLines)
		if err != nil {
			return err
		}
		b.s.StaffLines = n
	case "initial-style":
		n, err := b.number(body, 0, 2)
		if err != nil {
			return err
		}
		b.s.InitialStyle = n
	case "mode":
		m, mod, diff := ParseArgs3(body)
		if m == "" {
			return errors.New("mode: missing mode")
		}
		b.s.Mode, b.s.ModeModifier, b.s.ModeDifferentia = m, mod, diff
	case "annotation":
		b.s.Annotations = append(b.s.Annotations, body)
	case "voices":
		if b.syl != nil {
			return errLate
		}
		n, err := b.number(body, 1, 16)
		if err != nil {
			return err
		}
		b.s.Voices = make([]score.VoiceInfo, n)
	case "clef":
		return b.clef(body)
	case "syllable":
		return b.syllable(st.Line, body)
	case "translation", "above-lines", "flags":
		return b.syllableText(st.Name, body)
	case "element":
		if b.syl == nil {
			return errNoSyllable
		}
		b.notes = &score.NotesElement{}
		b.syl.Append(0, b.notes)
		b.glyph = nil
	case "glyph":
		return b.noteGlyph(body)
	case "note":
		return b.note(body)
	case "alt", "gspace", "gverb", "gcustos":
		g, err := b.glyphItem(st.Name, body)
		if err != nil {
			return err
		}
		if err := b.addGlyph(g); err != nil {
			return err
		}
		b.glyph = nil
	default:
		e, err := b.element(st.Name, body)
		if err != nil {
			return err
		}
		if b.syl == nil {
			return errNoSyllable
		}
		b.syl.Append(0, e)
		b.notes, b.glyph = nil, nil
	}
	return nil
}

func (b *builder) number(s string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

func (b *builder) pitch(s string) (score.Pitch, error) {
	return score.ParsePitch(s, b.s.StaffLines)
}

// clef sets the initial clef of the score before the first syllable, and
// adds a clef change after it.
func (b *builder) clef(body string) error {
	key, second := ParseArgs2(body)
	if second != "" {
		key += "@" + second
	}
	c, err := score.ParseClef(key, b.s.StaffLines)
	if err != nil {
		return err
	}
	if b.syl == nil {
		for v := range b.s.Voices {
			b.s.Voices[v].InitialClef = c
		}
		return nil
	}
	b.syl.Append(0, &score.ClefElement{Clef: c})
	b.notes, b.glyph = nil, nil
	return nil
}

func (b *builder) syllable(line int, body string) error {
	name, markup := ParseArgs2(body)
	pos, ok := score.ParsePosition(name)
	if !ok {
		return fmt.Errorf("unknown syllable position %q", name)
	}
	text, err := lyric.Parse(markup)
	if err != nil {
		return err
	}
	b.syl = &score.Syllable{Text: text, Position: pos, Line: line}
	b.s.AddSyllable(b.syl)
	b.notes, b.glyph = nil, nil
	return nil
}

func (b *builder) syllableText(name, body string) error {
	if b.syl == nil {
		return errNoSyllable
	}
	switch name {
	case "translation":
		text, err := lyric.Parse(body)
		if err != nil {
			return err
		}
		b.syl.Translation = text
	case "above-lines":
		b.syl.AboveLinesText = body
	case "flags":
		for _, f := range strings.Fields(body) {
			switch f {
			case "nlba-start":
				b.syl.NoLineBreakStart = true
			case "nlba-end":
				b.syl.NoLineBreakEnd = true
			case "euouae-start":
				b.syl.EuouaeStart = true
			case "euouae-end":
				b.syl.EuouaeEnd = true
			default:
				return fmt.Errorf("unknown syllable flag %q", f)
			}
		}
	}
	return nil
}

// addGlyph appends g to the open notes element, opening one if needed.
func (b *builder) addGlyph(g score.Glyph) error {
	if b.syl == nil {
		return errNoSyllable
	}
	if b.notes == nil {
		b.notes = &score.NotesElement{}
		b.syl.Append(0, b.notes)
	}
	b.notes.Glyphs = append(b.notes.Glyphs, g)
	return nil
}

func (b *builder) noteGlyph(body string) error {
	args := strings.Fields(body)
	if len(args) == 0 {
		return errors.New("glyph: missing type")
	}
	t, ok := score.ParseGlyphType(args[0])
	if !ok {
		return fmt.Errorf("unknown glyph type %q", args[0])
	}
	g := &score.NoteGlyph{Type: t}
	for _, a := range args[1:] {
		if v, ok := strings.CutPrefix(a, "fuse="); ok {
			n, err := strconv.ParseInt(v, 10, 8)
			if err != nil {
				return fmt.Errorf("fuse: %w", err)
			}
			g.FuseToNext = int8(n)
			continue
		}
		l, ok := score.ParseLiquescence(a)
		if !ok {
			return fmt.Errorf("unknown glyph modifier %q", a)
		}
		var err error
		if g.Liquescence, err = g.Liquescence.With(l); err != nil {
			return err
		}
	}
	if err := b.addGlyph(g); err != nil {
		return err
	}
	b.glyph = g
	return nil
}

func (b *builder) note(body string) error {
	if b.glyph == nil {
		return errNoGlyph
	}
	args := strings.Fields(body)
	if len(args) == 0 {
		return errors.New("note: missing pitch")
	}
	p, err := b.pitch(args[0])
	if err != nil {
		return err
	}
	n := &score.Note{Pitch: p}
	for _, a := range args[1:] {
		if err := b.modify(n, a); err != nil {
			return err
		}
	}
	if n.Shape == score.ShapeUndetermined {
		n.Shape = score.ShapePunctum
	}
	b.glyph.Notes = append(b.glyph.Notes, n)
	return nil
}

// modify applies one note modifier to n.
func (b *builder) modify(n *score.Note, a string) error {
	if k, v, ok := strings.Cut(a, "="); ok {
		switch k {
		case "size":
			size, ok := score.ParseEpisemaSize(v)
			if !ok {
				return fmt.Errorf("unknown episema size %q", v)
			}
			n.EpisemaAbove.Size = size
			n.EpisemaBelow.Size = size
		case "choral":
			n.ChoralSign = v
		case "verb":
			n.TexVerb = v
		default:
			return fmt.Errorf("unknown note modifier %q", a)
		}
		return nil
	}

	var err error
	switch a {
	case "episema":
		n.EpisemaAbove.Mark = score.EpisemaAuto
		n.EpisemaBelow.Mark = score.EpisemaAuto
	case "episema-above":
		n.EpisemaAbove.Mark = score.EpisemaForced
	case "episema-below":
		n.EpisemaBelow.Mark = score.EpisemaForced
	case "disconnected":
		n.EpisemaAbove.Disconnected = true
		n.EpisemaBelow.Disconnected = true
	case "mora":
		n.Signs, err = n.Signs.With(score.PunctumMora)
	case "duplex":
		n.Signs, err = n.Signs.With(score.AuctumDuplex)
	case "vepisema":
		n.Signs, err = n.Signs.With(score.VEpisema)
	default:
		if s, ok := score.ParseShape(a); ok && s != score.ShapeUndetermined {
			if n.Shape != score.ShapeUndetermined {
				return fmt.Errorf("second shape %q for note", a)
			}
			n.Shape = s
		} else if l, ok := score.ParseLiquescence(a); ok {
			n.Liquescence, err = n.Liquescence.With(l)
		} else if r, ok := score.ParseRareSign(a); ok {
			n.RareSign = r
		} else {
			return fmt.Errorf("unknown note modifier %q", a)
		}
	}
	return err
}

// glyphItem returns the non-note glyph of an alt, gspace, gverb or gcustos
// command.
func (b *builder) glyphItem(name, body string) (score.Glyph, error) {
	switch name {
	case "alt":
		kind, p := ParseArgs2(body)
		a, ok := score.ParseAlteration(kind)
		if !ok {
			return nil, fmt.Errorf("unknown alteration %q", kind)
		}
		pitch, err := b.pitch(p)
		if err != nil {
			return nil, err
		}
		return &score.AlterationGlyph{Kind: a, Pitch: pitch}, nil
	case "gspace":
		k, ok := score.ParseSpaceKind(body)
		if !ok {
			return nil, fmt.Errorf("unknown space %q", body)
		}
		return &score.SpaceGlyph{Kind: k}, nil
	case "gverb":
		return &score.TexVerbGlyph{Text: body}, nil
	case "gcustos":
		p, err := b.pitch(body)
		if err != nil {
			return nil, err
		}
		return &score.CustosGlyph{Pitch: p}, nil
	}
	panic("internal error: unexpected glyph command " + name)
}

// element returns the element of a command that adds one to the
// syllable.
func (b *builder) element(name, body string) (score.Element, error) {
	switch name {
	case "bar":
		return b.bar(body)
	case "custos":
		if body == "" || body == "auto" {
			return &score.CustosElement{Auto: true}, nil
		}
		p, err := b.pitch(body)
		if err != nil {
			return nil, err
		}
		return &score.CustosElement{Pitch: p}, nil
	case "space":
		k, ok := score.ParseSpaceKind(body)
		if !ok {
			return nil, fmt.Errorf("unknown space %q", body)
		}
		return &score.SpaceElement{Kind: k}, nil
	case "eol":
		switch body {
		case "":
			return &score.EndOfLineElement{}, nil
		case "ragged":
			return &score.EndOfLineElement{Ragged: true}, nil
		}
		return nil, fmt.Errorf("eol: unknown argument %q", body)
	case "verb":
		return &score.TexVerbElement{Text: body}, nil
	case "text-above":
		return &score.AboveLinesTextElement{Text: body}, nil
	case "nlba":
		switch body {
		case "start":
			return &score.NLBAElement{Start: true}, nil
		case "end":
			return &score.NLBAElement{}, nil
		}
		return nil, fmt.Errorf("nlba: want start or end, got %q", body)
	}
	return nil, fmt.Errorf("unknown command %q", name)
}

func (b *builder) bar(body string) (score.Element, error) {
	args := strings.Fields(body)
	if len(args) == 0 {
		return nil, errors.New("bar: missing kind")
	}
	kind, ok := score.ParseBarKind(args[0])
	if !ok {
		return nil, fmt.Errorf("unknown bar %q", args[0])
	}
	e := &score.BarElement{Kind: kind}
	args = args[1:]
	if kind == score.BarDominica {
		if len(args) == 0 {
			return nil, errors.New("bar dominica: missing number")
		}
		n, err := b.number(args[0], 1, 8)
		if err != nil {
			return nil, err
		}
		e.Dominica = n
		args = args[1:]
	}
	for _, a := range args {
		if a != "vepisema" {
			return nil, fmt.Errorf("bar: unknown sign %q", a)
		}
		e.Signs = score.VEpisema
	}
	return e, nil
}
