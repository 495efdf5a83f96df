// Package gregoriotex writes a score as a GregorioTeX program: a stream of
// TeX macro calls that the GregorioTeX package typesets.
//
// [Write] positions the signs of the score (see package position), then
// writes a header block, the syllables in order and a closing block. The
// output depends only on the score and the options: the same score always
// gives the same bytes.
//
// # Anomalies
//
// Problems in the score that still leave something to draw, such as an
// unknown note shape or a glyph with too few notes for its type, are
// logged and replaced by a fallback. Write fails only when no meaningful
// output can be produced: a nil writer, a score with more than one voice,
// or an error from the writer.
//
// # Line breaks
//
// Before writing, the score is cut into lines at its forced line breaks.
// For every line the generator records how far notes and signs reach
// above and below the staff, and whether a translation is present, so
// that each line break can announce the space the next line needs.
//
// # Discretionaries
//
// A syllable that opens with a clef change is written twice inside
// \GreDiscretionary: once as it is drawn at the end of a line, without the
// clef and custos, and once as it is drawn within a line. The engine picks
// one of the two when it breaks lines.
package gregoriotex

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gregorio-project/gregotex/position"
	"github.com/gregorio-project/gregotex/score"
)

const (
	// Version is the version written in the header comment.
	Version = "1.0.0"

	// APIVersion is the version of the macro interface the output
	// targets. The engine refuses programs written for another version.
	APIVersion = "20250101"
)

var (
	ErrNilWriter = errors.New("gregoriotex: nil writer")
	ErrNilScore  = errors.New("gregoriotex: nil score")
	ErrPolyphony = errors.New("gregoriotex: polyphony is not supported")
)

// Options control Write. The zero value is ready to use.
type Options struct {
	// Logger receives anomalies found while writing. Nil discards them.
	Logger *slog.Logger

	// PointAndClick writes Filename into \GreBeginScore so that the
	// engine can link notes back to the source.
	PointAndClick bool
	Filename      string

	// Version replaces Version in the header comment.
	Version string
}

// Write positions the signs of s and writes s to w.
//
// The placements of the notes of s are overwritten.
func Write(w io.Writer, s *score.Score, opts *Options) error {
	if w == nil {
		return ErrNilWriter
	}
	if s == nil {
		return ErrNilScore
	}
	if n := s.NumberOfVoices(); n > 1 {
		return fmt.Errorf("%w: %d voices", ErrPolyphony, n)
	}
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	ext := position.Compute(s, log)
	g := newGenerator(w, s, opts, log)
	g.measure()
	g.score(ext)
	return g.flush()
}
