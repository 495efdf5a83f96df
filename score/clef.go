package score

import (
	"fmt"
	"strings"
)

// ClefKey is one clef sign: its letter ('c' or 'f'), the staff line it
// sits on (counted from the bottom, starting at 1) and whether it carries
// a flat.
type ClefKey struct {
	Letter  byte
	Line    int
	Flatted bool
}

// IsZero reports whether k is unset.
func (k ClefKey) IsZero() bool { return k.Letter == 0 }

func (k ClefKey) String() string {
	if k.IsZero() {
		return ""
	}
	s := fmt.Sprintf("%c%d", k.Letter, k.Line)
	if k.Flatted {
		s += "b"
	}
	return s
}

// Clef is a clef, possibly doubled with a secondary key.
type Clef struct {
	ClefKey
	Secondary ClefKey
}

// DefaultClef is the clef assumed when a score declares none.
var DefaultClef = Clef{ClefKey: ClefKey{Letter: 'c', Line: 3}}

func (c Clef) String() string {
	if c.Secondary.IsZero() {
		return c.ClefKey.String()
	}
	return c.ClefKey.String() + "@" + c.Secondary.String()
}

// ParseClef parses a clef such as "c4", "f3b" or "c4@c2".
func ParseClef(s string, staffLines int) (Clef, error) {
	first, second, doubled := strings.Cut(s, "@")
	k, err := parseClefKey(first, staffLines)
	if err != nil {
		return Clef{}, err
	}
	c := Clef{ClefKey: k}
	if doubled {
		c.Secondary, err = parseClefKey(second, staffLines)
		if err != nil {
			return Clef{}, err
		}
	}
	return c, nil
}

func parseClefKey(s string, staffLines int) (ClefKey, error) {
	var k ClefKey
	if strings.HasSuffix(s, "b") && len(s) == 3 {
		k.Flatted = true
		s = s[:2]
	}
	if len(s) != 2 || (s[0] != 'c' && s[0] != 'f') || s[1] < '1' || s[1] > '9' {
		return ClefKey{}, fmt.Errorf("invalid clef %q", s)
	}
	k.Letter = s[0]
	k.Line = int(s[1] - '0')
	if k.Line > staffLines {
		return ClefKey{}, fmt.Errorf("clef %q is above a %d-line staff", s, staffLines)
	}
	return k, nil
}
