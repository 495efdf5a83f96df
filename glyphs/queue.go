package glyphs

import "github.com/gregorio-project/gregotex/score"

// QueueType is the position, relative to the staff, of the note a stem
// hangs from.
type QueueType uint8

const (
	QueueBelowStaff QueueType = iota
	QueueOnBottomLine
	QueueOnLine
	QueueOnSpace
)

// QueueTypeOf returns the queue type of a stem hanging from p.
func QueueTypeOf(p score.Pitch) QueueType {
	switch {
	case p < score.BottomLinePitch:
		return QueueBelowStaff
	case p == score.BottomLinePitch:
		return QueueOnBottomLine
	case p.OnLine():
		return QueueOnLine
	}
	return QueueOnSpace
}

// queued returns the variant of shape whose stem, hanging from p over an
// interval of ambitus, ends at a readable place. Single notes use an
// ambitus of 2.
func queued(shape string, p score.Pitch, ambitus int) string {
	switch QueueTypeOf(p) {
	case QueueBelowStaff:
		return shape + openqueue
	case QueueOnBottomLine:
		if ambitus == 1 {
			return shape + longqueue
		}
		return shape + openqueue
	case QueueOnLine:
		if ambitus == 1 {
			return shape + longqueue
		}
		return shape
	}
	if ambitus == 1 {
		return shape
	}
	return shape + longqueue
}
