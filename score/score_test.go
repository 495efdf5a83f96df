package score

import (
	"errors"
	"testing"

	"kr.dev/diff"
)

func TestStaffGeometry(t *testing.T) {
	tests := []struct {
		lines           int
		top, ledger, hi Pitch
	}{
		{lines: 2, top: 8, ledger: 10, hi: 11},
		{lines: 3, top: 10, ledger: 12, hi: 13},
		{lines: 4, top: 12, ledger: 14, hi: 15},
		{lines: 5, top: 14, ledger: 16, hi: 17},
	}
	for _, tt := range tests {
		if got := TopLinePitch(tt.lines); got != tt.top {
			t.Errorf("TopLinePitch(%d) = %d; want %d", tt.lines, got, tt.top)
		}
		if got := HighLedgerLinePitch(tt.lines); got != tt.ledger {
			t.Errorf("HighLedgerLinePitch(%d) = %d; want %d", tt.lines, got, tt.ledger)
		}
		if got := HighestPitch(tt.lines); got != tt.hi {
			t.Errorf("HighestPitch(%d) = %d; want %d", tt.lines, got, tt.hi)
		}
	}
}

func TestParsePitch(t *testing.T) {
	tests := []struct {
		in     string
		want   Pitch
		online bool
		err    bool
	}{
		{in: "a", want: LowestPitch},
		{in: "d", want: BottomLinePitch, online: true},
		{in: "G", want: 9},
		{in: "h", want: 10, online: true},
		{in: "m", want: 15},
		{in: "n", err: true},
		{in: "1", err: true},
		{in: "", err: true},
		{in: "gh", err: true},
	}
	for _, tt := range tests {
		got, err := ParsePitch(tt.in, DefaultStaffLines)
		if (err != nil) != tt.err {
			t.Errorf("ParsePitch(%q) error = %v; want error %v", tt.in, err, tt.err)
			continue
		}
		if tt.err {
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePitch(%q) = %d; want %d", tt.in, got, tt.want)
		}
		if got.OnLine() != tt.online {
			t.Errorf("%v.OnLine() = %v; want %v", got, got.OnLine(), tt.online)
		}
		if got.Letter() != tt.in[0]|0x20 {
			t.Errorf("%d.Letter() = %c; want %c", got, got.Letter(), tt.in[0]|0x20)
		}
	}
}

func TestLiquescenceWith(t *testing.T) {
	l, err := NoLiquescence.With(InitioDebilis)
	if err != nil {
		t.Fatal(err)
	}
	l, err = l.With(Deminutus)
	if err != nil {
		t.Fatal(err)
	}
	if !l.Has(InitioDebilis) || !l.Has(Deminutus) {
		t.Errorf("l = %v; want initio-debilis|deminutus", l)
	}
	if l.Tail() != Deminutus {
		t.Errorf("Tail() = %v; want deminutus", l.Tail())
	}

	got, err := l.With(AuctusAscendens)
	if !errors.Is(err, ErrLiquescence) {
		t.Errorf("With second tail: err = %v; want ErrLiquescence", err)
	}
	if got != l {
		t.Errorf("With second tail changed value to %v", got)
	}
	if (Deminutus | AuctusDescendens).Valid() {
		t.Error("two tails reported valid")
	}
	if !(AuctusDescendens | Fused | InitioDebilis).Valid() {
		t.Error("one tail with modifiers reported invalid")
	}
	if s := (InitioDebilis | AuctusAscendens).String(); s != "ascendens|initio-debilis" {
		t.Errorf("String() = %q", s)
	}
}

func TestSignsWith(t *testing.T) {
	s, err := NoSigns.With(VEpisema)
	if err != nil {
		t.Fatal(err)
	}
	s, err = s.With(PunctumMora)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.With(AuctumDuplex); !errors.Is(err, ErrSigns) {
		t.Errorf("mora with duplex: err = %v; want ErrSigns", err)
	}
	if !s.Has(VEpisema) || s.Has(AuctumDuplex) {
		t.Errorf("s = %v", s)
	}
}

func TestParseClef(t *testing.T) {
	tests := []struct {
		in   string
		want Clef
		err  bool
	}{
		{in: "c4", want: Clef{ClefKey: ClefKey{Letter: 'c', Line: 4}}},
		{in: "f3b", want: Clef{ClefKey: ClefKey{Letter: 'f', Line: 3, Flatted: true}}},
		{in: "c4@c2", want: Clef{
			ClefKey:   ClefKey{Letter: 'c', Line: 4},
			Secondary: ClefKey{Letter: 'c', Line: 2},
		}},
		{in: "c5", err: true},
		{in: "g2", err: true},
		{in: "c", err: true},
		{in: "c4@", err: true},
	}
	for _, tt := range tests {
		got, err := ParseClef(tt.in, DefaultStaffLines)
		if (err != nil) != tt.err {
			t.Errorf("ParseClef(%q) error = %v; want error %v", tt.in, err, tt.err)
			continue
		}
		if !tt.err && got != tt.want {
			t.Errorf("ParseClef(%q) = %+v; want %+v", tt.in, got, tt.want)
		}
		if !tt.err && got.String() != tt.in {
			t.Errorf("ParseClef(%q).String() = %q", tt.in, got.String())
		}
	}
}

func TestFixInitialKeys(t *testing.T) {
	c4 := Clef{ClefKey: ClefKey{Letter: 'c', Line: 4}}

	s := New(1)
	s.AddSyllable(&Syllable{Elements: [][]Element{{&ClefElement{Clef: c4}}}})
	s.AddSyllable(&Syllable{
		Text:     Chars("Ky"),
		Elements: [][]Element{{&NotesElement{}}},
	})
	s.FixInitialKeys()
	if got := s.Voices[0].InitialClef; got != c4 {
		t.Errorf("initial clef = %v; want c4", got)
	}
	if len(s.Syllables) != 1 || Text(s.Syllables[0].Text) != "Ky" {
		t.Errorf("syllables after fix = %d; want the clef syllable removed", len(s.Syllables))
	}

	s = New(1)
	s.AddSyllable(&Syllable{Text: Chars("A"), Elements: [][]Element{{&NotesElement{}}}})
	s.FixInitialKeys()
	if got := s.Voices[0].InitialClef; got != DefaultClef {
		t.Errorf("initial clef = %v; want default", got)
	}
	if len(s.Syllables) != 1 {
		t.Errorf("syllables = %d; want 1", len(s.Syllables))
	}
}

func TestContentDigest(t *testing.T) {
	build := func(p Pitch) *Score {
		s := New(1)
		s.AddSyllable(&Syllable{
			Text: Chars("Ky"),
			Elements: [][]Element{{&NotesElement{Glyphs: []Glyph{
				&NoteGlyph{Type: GlyphOneNote, Notes: []*Note{{Pitch: p, Shape: ShapePunctum}}},
			}}}},
		})
		return s
	}
	a, b := build(9), build(9)
	if a.ContentDigest() != b.ContentDigest() {
		t.Error("equal scores have different digests")
	}

	// placement is not part of the digest
	for _, n := range b.Notes(0) {
		n.Placement.MoraHeight = 12
	}
	if a.HexDigest() != b.HexDigest() {
		t.Error("placement changed the digest")
	}
	if a.ContentDigest() == build(10).ContentDigest() {
		t.Error("different pitches have the same digest")
	}

	a.Digest = [DigestSize]byte{0xab}
	if got := a.HexDigest(); got[:4] != "ab00" {
		t.Errorf("HexDigest() = %q; want the preset digest", got)
	}
}

func TestNotes(t *testing.T) {
	s := New(1)
	s.AddSyllable(&Syllable{Elements: [][]Element{{
		&NotesElement{Glyphs: []Glyph{
			&NoteGlyph{Notes: []*Note{{Pitch: 9}, {Pitch: 10}}},
			&SpaceGlyph{},
			&NoteGlyph{Notes: []*Note{{Pitch: 8}}},
		}},
		&BarElement{},
	}}})
	s.AddSyllable(&Syllable{Elements: [][]Element{{
		&NotesElement{Glyphs: []Glyph{&NoteGlyph{Notes: []*Note{{Pitch: 7}}}}},
	}}})

	var got []Pitch
	for _, n := range s.Notes(0) {
		got = append(got, n.Pitch)
	}
	diff.Test(t, t.Errorf, got, []Pitch{9, 10, 8, 7})
}
