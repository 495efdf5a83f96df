package position

import "github.com/gregorio-project/gregotex/score"

// run accumulates consecutive horizontal episemas on one side.
type run struct {
	p    *positioner
	side score.Verticality

	active bool
	start  int // index in p.seq of the first note of the run
	last   int // index in p.seq of the last note added
	count  int
	height score.Pitch

	// before is the index of the note preceding the run, or -1.
	before int
}

func (p *positioner) episemas(side score.Verticality) {
	r := &run{p: p, side: side, before: -1}
	prev := -1
	for idx, it := range p.seq {
		if it.kind == itemBarrier {
			r.close(-1)
			prev = -1
			continue
		}
		if !r.shown(idx) {
			r.close(idx)
			prev = idx
			continue
		}
		if r.active && r.connects(r.last, idx) {
			r.height = r.better(r.height, r.candidate(idx))
			r.last = idx
			r.count++
			prev = idx
			continue
		}
		r.close(idx)
		r.active = true
		r.start, r.last, r.count = idx, idx, 1
		r.height = r.candidate(idx)
		r.before = prev
		prev = idx
	}
	r.close(-1)
}

func (r *run) note(idx int) *score.Note { return r.p.seq[idx].note }

func (r *run) placement(idx int) *score.EpisemaPlacement {
	return r.note(idx).Placement.Episema(r.side)
}

func (r *run) shown(idx int) bool { return r.placement(idx).Shown() }

// connects reports whether the episema of note a joins the episema of
// the following note b.
func (r *run) connects(a, b int) bool {
	ea, eb := r.note(a).Episema(r.side), r.note(b).Episema(r.side)
	return !ea.Disconnected && ea.Size.ReachesRight() && eb.Size.ReachesLeft()
}

func (r *run) better(a, b score.Pitch) score.Pitch {
	if r.side == score.Above {
		return max(a, b)
	}
	return min(a, b)
}

// candidate returns the height the episema of a note would have on its
// own: one step beyond the note, clear of a note stacked on that side
// and of a vertical episema on the same side.
func (r *run) candidate(idx int) score.Pitch {
	it := r.p.seq[idx]
	n := it.note
	h := n.Pitch.Shift(r.side)
	notes := it.glyph.Notes
	switch {
	case r.side == score.Above && n.Placement.Lower && it.index+1 < len(notes):
		h = max(h, notes[it.index+1].Pitch+1)
	case r.side == score.Below && n.Placement.Upper && it.index > 0:
		h = min(h, notes[it.index-1].Pitch-1)
	}
	if n.Placement.VEpisema == r.side {
		h = r.better(h, n.Placement.VEpisemaHeight.Shift(r.side))
	}
	return h
}

// close ends the current run, if any. After is the index of the note
// following the run, or -1.
func (r *run) close(after int) {
	if !r.active {
		return
	}
	r.active = false
	h := r.height

	// line up with an episema that touches the run but is not part of it;
	// the run before this one is already committed
	if r.before >= 0 && r.shown(r.before) && r.note(r.before).Episema(r.side).Size.ReachesRight() {
		h = r.better(h, r.placement(r.before).Height)
	}
	if after >= 0 && r.shown(after) && r.note(after).Episema(r.side).Size.ReachesLeft() {
		h = r.better(h, r.candidate(after))
	}

	for idx := r.start; idx <= r.last; idx++ {
		if r.p.seq[idx].kind != itemNote || !r.shown(idx) {
			continue
		}
		pl := r.placement(idx)
		pl.Height = h
		pl.Span = 0
		if idx == r.start {
			pl.Span = r.count
		}
	}
}
