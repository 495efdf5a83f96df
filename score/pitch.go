package score

import "fmt"

// Pitch is a staff position. Consecutive values are one staff step apart,
// alternating between lines and spaces. The letter notation maps 'a' to
// LowestPitch, 'b' to LowestPitch+1 and so on.
type Pitch int8

const (
	// LowestPitch is the pitch of the letter 'a', below the staff.
	LowestPitch Pitch = 3

	// BottomLinePitch is the pitch of the lowest staff line ('d').
	BottomLinePitch = LowestPitch + 3

	// LowLedgerLinePitch is the pitch of the ledger line below the staff ('b').
	LowLedgerLinePitch = BottomLinePitch - 2

	// DummyPitch is returned where a pitch is required but none can be
	// determined. It sits in the middle of a four-line staff.
	DummyPitch = LowestPitch + 6
)

const (
	MinStaffLines     = 2
	MaxStaffLines     = 5
	DefaultStaffLines = 4
)

// TopLinePitch returns the pitch of the highest line of a staff.
func TopLinePitch(staffLines int) Pitch {
	return BottomLinePitch + Pitch(2*(staffLines-1))
}

// HighLedgerLinePitch returns the pitch of the ledger line above a staff.
func HighLedgerLinePitch(staffLines int) Pitch {
	return TopLinePitch(staffLines) + 2
}

// HighestPitch returns the highest pitch that can be written on a staff.
func HighestPitch(staffLines int) Pitch {
	return TopLinePitch(staffLines) + 3
}

// OnLine reports whether p sits on a staff or ledger line.
func (p Pitch) OnLine() bool {
	return (p-BottomLinePitch)%2 == 0
}

// Letter returns the letter notation of p.
func (p Pitch) Letter() byte {
	return byte('a' + int(p-LowestPitch))
}

func (p Pitch) String() string {
	if p < LowestPitch || p > HighestPitch(MaxStaffLines) {
		return fmt.Sprintf("pitch(%d)", int8(p))
	}
	return string(p.Letter())
}

// ParsePitch converts a letter of the notation into a pitch. Upper case
// letters are accepted and denote the same pitch.
func ParsePitch(s string, staffLines int) (Pitch, error) {
	if len(s) != 1 {
		return DummyPitch, fmt.Errorf("invalid pitch %q", s)
	}
	c := s[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if c < 'a' || c > 'z' {
		return DummyPitch, fmt.Errorf("invalid pitch %q", s)
	}
	p := LowestPitch + Pitch(c-'a')
	if p > HighestPitch(staffLines) {
		return DummyPitch, fmt.Errorf("pitch %q out of range for %d staff lines", s, staffLines)
	}
	return p, nil
}

// Verticality is the side of a note on which a sign is drawn. The values
// are chosen so that adding a Verticality to a Pitch moves one step in
// that direction.
type Verticality int8

const (
	Below Verticality = -1
	Auto  Verticality = 0
	Above Verticality = 1
)

// Shift returns p moved one step toward v.
func (p Pitch) Shift(v Verticality) Pitch {
	return p + Pitch(v)
}

func (v Verticality) String() string {
	switch v {
	case Below:
		return "below"
	case Above:
		return "above"
	}
	return "auto"
}
