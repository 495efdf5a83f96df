package score

import (
	"bufio"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
)

// DigestSize is the size of a score digest in bytes.
const DigestSize = sha1.Size

// HexDigest returns the digest of s in hexadecimal, computing one from
// the score contents when none was set.
func (s *Score) HexDigest() string {
	d := s.Digest
	if d == [DigestSize]byte{} {
		d = s.ContentDigest()
	}
	return hex.EncodeToString(d[:])
}

// ContentDigest returns a digest of everything the author wrote in s.
// Placements are not included.
func (s *Score) ContentDigest() [DigestSize]byte {
	h := sha1.New()
	w := bufio.NewWriter(h)
	s.writeCanonical(w)
	w.Flush()
	var d [DigestSize]byte
	copy(d[:], h.Sum(nil))
	return d
}

func (s *Score) writeCanonical(w io.Writer) {
	fmt.Fprintf(w, "score %d %d %q %q %q %q\n", s.StaffLines, s.InitialStyle,
		s.Mode, s.ModeModifier, s.ModeDifferentia, s.Annotations)
	for _, h := range s.Headers {
		fmt.Fprintf(w, "header %q %q\n", h.Name, h.Value)
	}
	for _, v := range s.Voices {
		fmt.Fprintf(w, "voice %v\n", v.InitialClef)
	}
	for _, syl := range s.Syllables {
		fmt.Fprintf(w, "syllable %v %q %q %q %t %t %t %t\n", syl.Position,
			syl.Text, syl.Translation, syl.AboveLinesText,
			syl.EuouaeStart, syl.EuouaeEnd, syl.NoLineBreakStart, syl.NoLineBreakEnd)
		for v, es := range syl.Elements {
			for _, e := range es {
				fmt.Fprintf(w, "%d ", v)
				writeElement(w, e)
			}
		}
	}
}

func writeElement(w io.Writer, e Element) {
	switch e := e.(type) {
	case *NotesElement:
		fmt.Fprintf(w, "notes %d\n", len(e.Glyphs))
		for _, g := range e.Glyphs {
			writeGlyph(w, g)
		}
	case *BarElement:
		fmt.Fprintf(w, "bar %v %d %v\n", e.Kind, e.Dominica, e.Signs)
	case *ClefElement:
		fmt.Fprintf(w, "clef %v\n", e.Clef)
	case *CustosElement:
		fmt.Fprintf(w, "custos %d %t\n", e.Pitch, e.Auto)
	case *SpaceElement:
		fmt.Fprintf(w, "space %v\n", e.Kind)
	case *EndOfLineElement:
		fmt.Fprintf(w, "eol %t\n", e.Ragged)
	case *TexVerbElement:
		fmt.Fprintf(w, "verb %q\n", e.Text)
	case *AboveLinesTextElement:
		fmt.Fprintf(w, "above %q\n", e.Text)
	case *NLBAElement:
		fmt.Fprintf(w, "nlba %t\n", e.Start)
	default:
		fmt.Fprintf(w, "element %T\n", e)
	}
}

func writeGlyph(w io.Writer, g Glyph) {
	switch g := g.(type) {
	case *NoteGlyph:
		fmt.Fprintf(w, "  glyph %v %v %d\n", g.Type, g.Liquescence, g.FuseToNext)
		for _, n := range g.Notes {
			fmt.Fprintf(w, "    note %d %v %v %v %v %v %v %q %q\n",
				n.Pitch, n.Shape, n.Liquescence, n.Signs, n.RareSign,
				n.EpisemaAbove, n.EpisemaBelow, n.ChoralSign, n.TexVerb)
		}
	case *AlterationGlyph:
		fmt.Fprintf(w, "  alteration %v %d\n", g.Kind, g.Pitch)
	case *SpaceGlyph:
		fmt.Fprintf(w, "  space %v\n", g.Kind)
	case *TexVerbGlyph:
		fmt.Fprintf(w, "  verb %q\n", g.Text)
	case *CustosGlyph:
		fmt.Fprintf(w, "  custos %d\n", g.Pitch)
	default:
		fmt.Fprintf(w, "  glyph %T\n", g)
	}
}
