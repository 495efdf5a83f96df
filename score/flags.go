package score

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLiquescence is returned when a liquescence flag would combine
	// two tails.
	ErrLiquescence = errors.New("illegal liquescence combination")

	// ErrSigns is returned when two mutually exclusive signs are combined.
	ErrSigns = errors.New("illegal sign combination")
)

// Liquescence is a set of liquescence flags. A note or glyph has at most
// one tail (Deminutus, AuctusAscendens or AuctusDescendens). InitioDebilis
// and Fused combine freely with the tail.
type Liquescence uint8

const (
	Deminutus Liquescence = 1 << iota
	AuctusAscendens
	AuctusDescendens
	InitioDebilis
	Fused

	NoLiquescence Liquescence = 0

	tails = Deminutus | AuctusAscendens | AuctusDescendens
	known = tails | InitioDebilis | Fused
)

var liquescenceNames = []struct {
	flag Liquescence
	name string
}{
	{Deminutus, "deminutus"},
	{AuctusAscendens, "ascendens"},
	{AuctusDescendens, "descendens"},
	{InitioDebilis, "initio-debilis"},
	{Fused, "fused"},
}

// Tail returns the tail flag of l, or NoLiquescence.
func (l Liquescence) Tail() Liquescence { return l & tails }

// Has reports whether every flag of f is set in l.
func (l Liquescence) Has(f Liquescence) bool { return f != 0 && l&f == f }

// Valid reports whether l carries no unknown flags and at most one tail.
func (l Liquescence) Valid() bool {
	t := l.Tail()
	return l&^known == 0 && t&(t-1) == 0
}

// With returns l with the flags of f added. The receiver is returned
// unchanged, along with an error, if the result would not be valid.
func (l Liquescence) With(f Liquescence) (Liquescence, error) {
	n := l | f
	if !n.Valid() {
		return l, fmt.Errorf("%w: %v with %v", ErrLiquescence, l, f)
	}
	return n, nil
}

// Without returns l with the flags of f cleared.
func (l Liquescence) Without(f Liquescence) Liquescence { return l &^ f }

func (l Liquescence) String() string {
	if l == 0 {
		return "none"
	}
	var parts []string
	for _, n := range liquescenceNames {
		if l&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if l&^known != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(l&^known)))
	}
	return strings.Join(parts, "|")
}

// ParseLiquescence returns the flag named s.
func ParseLiquescence(s string) (Liquescence, bool) {
	for _, n := range liquescenceNames {
		if n.name == s {
			return n.flag, true
		}
	}
	return 0, false
}

// Signs is a set of rhythmic signs attached to a note.
type Signs uint8

const (
	PunctumMora Signs = 1 << iota
	AuctumDuplex
	VEpisema

	NoSigns Signs = 0
)

// Has reports whether every sign of t is set in s.
func (s Signs) Has(t Signs) bool { return t != 0 && s&t == t }

// With returns s with t added. A punctum mora and an augmentum duplex
// cannot be carried by the same note.
func (s Signs) With(t Signs) (Signs, error) {
	n := s | t
	if n.Has(PunctumMora | AuctumDuplex) {
		return s, fmt.Errorf("%w: punctum mora with augmentum duplex", ErrSigns)
	}
	return n, nil
}

func (s Signs) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	if s.Has(PunctumMora) {
		parts = append(parts, "mora")
	}
	if s.Has(AuctumDuplex) {
		parts = append(parts, "duplex")
	}
	if s.Has(VEpisema) {
		parts = append(parts, "vepisema")
	}
	return strings.Join(parts, "|")
}

// RareSign is an uncommon sign drawn above a note.
type RareSign uint8

const (
	NoRareSign RareSign = iota
	Accentus
	AccentusReversus
	Circulus
	Semicirculus
	SemicirculusReversus
)

var rareSignNames = [...]string{
	NoRareSign:           "",
	Accentus:             "accentus",
	AccentusReversus:     "accentus-reversus",
	Circulus:             "circulus",
	Semicirculus:         "semicirculus",
	SemicirculusReversus: "semicirculus-reversus",
}

func (r RareSign) String() string {
	if int(r) < len(rareSignNames) {
		return rareSignNames[r]
	}
	return fmt.Sprintf("RareSign(%d)", uint8(r))
}

// ParseRareSign returns the rare sign named s.
func ParseRareSign(s string) (RareSign, bool) {
	for i, n := range rareSignNames {
		if n != "" && n == s {
			return RareSign(i), true
		}
	}
	return NoRareSign, false
}

// EpisemaMark says whether a horizontal episema was requested on one side
// of a note, and how firmly.
type EpisemaMark uint8

const (
	// EpisemaNone means no episema on this side.
	EpisemaNone EpisemaMark = iota

	// EpisemaAuto is an episema whose side may be chosen by the positioner.
	EpisemaAuto

	// EpisemaForced is an episema the author placed explicitly.
	EpisemaForced
)

// EpisemaSize is the horizontal extent of a horizontal episema.
type EpisemaSize uint8

const (
	SizeNormal EpisemaSize = iota
	SizeSmallLeft
	SizeSmallCenter
	SizeSmallRight
)

var episemaSizeNames = [...]string{"normal", "small-left", "small-center", "small-right"}

func (s EpisemaSize) String() string {
	if int(s) < len(episemaSizeNames) {
		return episemaSizeNames[s]
	}
	return fmt.Sprintf("EpisemaSize(%d)", uint8(s))
}

// ParseEpisemaSize returns the size named s.
func ParseEpisemaSize(s string) (EpisemaSize, bool) {
	for i, n := range episemaSizeNames {
		if n == s {
			return EpisemaSize(i), true
		}
	}
	return SizeNormal, false
}

// ReachesLeft reports whether an episema of size s touches the left edge
// of its note.
func (s EpisemaSize) ReachesLeft() bool { return s == SizeNormal || s == SizeSmallLeft }

// ReachesRight reports whether an episema of size s touches the right
// edge of its note.
func (s EpisemaSize) ReachesRight() bool { return s == SizeNormal || s == SizeSmallRight }

// Episema is a horizontal episema request on one side of a note.
type Episema struct {
	Mark EpisemaMark
	Size EpisemaSize

	// Disconnected stops the episema from joining the episema of the
	// following note.
	Disconnected bool
}
