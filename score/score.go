// Package score defines the in-memory tree of a Gregorian chant score.
//
// A [Score] is a sequence of [Syllable] values. Each syllable holds, for
// every voice, an ordered list of [Element] values, and notes elements
// hold an ordered list of [Glyph] values. Both are closed sets of types
// discriminated with a type switch.
//
// # Placement
//
// Every [Note] carries a [Placement] that is not part of the source: it
// is written by the sign positioner and read by the code generator. A
// positioning pass resets every placement before computing it, so the
// tree can be positioned any number of times with the same result.
//
// # Lifecycle
//
// A score is built by a parser, then [Score.FixInitialKeys] moves leading
// clefs into the voices, and the score is handed to the generator. It is
// not safe for concurrent use.
package score

import "slices"

// Position is where a syllable falls within its word.
type Position uint8

const (
	PositionNone Position = iota
	WordBeginning
	WordMiddle
	WordEnd
	OneSyllableWord
)

var positionNames = [...]string{"none", "begin", "middle", "end", "alone"}

func (p Position) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return "position?"
}

// ParsePosition returns the position named s.
func ParsePosition(s string) (Position, bool) {
	for i, n := range positionNames {
		if n == s {
			return Position(i), true
		}
	}
	return PositionNone, false
}

// EndsWord reports whether a word ends with the syllable.
func (p Position) EndsWord() bool { return p == WordEnd || p == OneSyllableWord }

// Syllable is a piece of lyric text together with the notes sung on it.
type Syllable struct {
	Text        []Character
	Translation []Character
	Position    Position

	// AboveLinesText is written above the staff at the syllable. It is
	// TeX and is written without escaping.
	AboveLinesText string

	// Elements holds one element list per voice.
	Elements [][]Element

	// EuouaeStart and EuouaeEnd delimit a euouae region.
	EuouaeStart bool
	EuouaeEnd   bool

	// NoLineBreakStart and NoLineBreakEnd delimit a region where the
	// engine must not break lines.
	NoLineBreakStart bool
	NoLineBreakEnd   bool

	// Line is the source line the syllable was read from, if known.
	Line int
}

// Voice returns the elements of voice v, or nil.
func (s *Syllable) Voice(v int) []Element {
	if v < 0 || v >= len(s.Elements) {
		return nil
	}
	return s.Elements[v]
}

// Append adds elements to voice v.
func (s *Syllable) Append(v int, e ...Element) {
	for len(s.Elements) <= v {
		s.Elements = append(s.Elements, nil)
	}
	s.Elements[v] = append(s.Elements[v], e...)
}

// Header is a name/value pair from the score header.
type Header struct {
	Name  string
	Value string
}

// VoiceInfo describes one voice of a score.
type VoiceInfo struct {
	InitialClef Clef
}

// Score is a complete chant score.
type Score struct {
	Syllables []*Syllable
	Voices    []VoiceInfo
	Headers   []Header

	StaffLines int

	// InitialStyle is the number of lines the initial spans. Zero means
	// the first letter is not set apart.
	InitialStyle int

	Mode            string
	ModeModifier    string
	ModeDifferentia string

	// Annotations are written above the initial, at most two.
	Annotations []string

	// Digest identifies the source. A zero digest is replaced by a
	// digest of the score contents at generation time.
	Digest [DigestSize]byte
}

// New returns an empty score with the given number of voices and a
// four-line staff.
func New(voices int) *Score {
	return &Score{
		Voices:     make([]VoiceInfo, voices),
		StaffLines: DefaultStaffLines,
	}
}

// NumberOfVoices returns the number of voices of s.
func (s *Score) NumberOfVoices() int { return len(s.Voices) }

// AddSyllable appends a syllable, sizing its element lists to the number
// of voices.
func (s *Score) AddSyllable(syl *Syllable) {
	for len(syl.Elements) < len(s.Voices) {
		syl.Elements = append(syl.Elements, nil)
	}
	s.Syllables = append(s.Syllables, syl)
}

// Header returns the value of the first header named name.
func (s *Score) Header(name string) string {
	for _, h := range s.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// HasTranslation reports whether any syllable carries a translation.
func (s *Score) HasTranslation() bool {
	return slices.ContainsFunc(s.Syllables, func(syl *Syllable) bool {
		return len(syl.Translation) > 0
	})
}

// HasAboveLinesText reports whether any syllable carries text above the
// staff.
func (s *Score) HasAboveLinesText() bool {
	return slices.ContainsFunc(s.Syllables, func(syl *Syllable) bool {
		if syl.AboveLinesText != "" {
			return true
		}
		for _, es := range syl.Elements {
			for _, e := range es {
				if _, ok := e.(*AboveLinesTextElement); ok {
					return true
				}
			}
		}
		return false
	})
}

// FixInitialKeys moves the clef that opens each voice into the voice's
// initial clef. A syllable left without text or elements is removed.
// Voices that open without a clef get [DefaultClef] unless an initial
// clef was already set.
func (s *Score) FixInitialKeys() {
	for v := range s.Voices {
		if !s.Voices[v].InitialClef.IsZero() {
			continue
		}
		s.Voices[v].InitialClef = DefaultClef
		if len(s.Syllables) == 0 {
			continue
		}
		first := s.Syllables[0]
		es := first.Voice(v)
		if len(es) == 0 {
			continue
		}
		if c, ok := es[0].(*ClefElement); ok {
			s.Voices[v].InitialClef = c.Clef
			first.Elements[v] = es[1:]
		}
	}
	if len(s.Syllables) > 0 && s.Syllables[0].empty() {
		s.Syllables = s.Syllables[1:]
	}
}

func (s *Syllable) empty() bool {
	if len(s.Text) > 0 || len(s.Translation) > 0 || s.AboveLinesText != "" {
		return false
	}
	for _, es := range s.Elements {
		if len(es) > 0 {
			return false
		}
	}
	return true
}

// Notes calls yield for every note of voice v in score order, along with
// the glyph holding it.
func (s *Score) Notes(v int) func(yield func(*NoteGlyph, *Note) bool) {
	return func(yield func(*NoteGlyph, *Note) bool) {
		for _, syl := range s.Syllables {
			for _, e := range syl.Voice(v) {
				ne, ok := e.(*NotesElement)
				if !ok {
					continue
				}
				for _, g := range ne.Glyphs {
					ng, ok := g.(*NoteGlyph)
					if !ok {
						continue
					}
					for _, n := range ng.Notes {
						if !yield(ng, n) {
							return
						}
					}
				}
			}
		}
	}
}
