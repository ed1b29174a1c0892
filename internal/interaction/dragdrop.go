package interaction

import (
	"slices"

	"github.com/SAP-F-2025/philosophy-quiz/internal/evaluator"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
)

// DragDrop tracks where every item of a categorization question sits. Each
// item is in exactly one of the pool or the bins at all times; Move is the
// only primitive that relocates an item.
type DragDrop struct {
	base
	content *models.DragDropContent
	pool    []string
	bins    [][]string
	verdict *evaluator.DragDropVerdict
}

func NewDragDrop(q *models.Question, scorer Scorer) (*DragDrop, error) {
	d := &DragDrop{base: base{scorer: scorer}}
	if err := d.Initialize(q); err != nil {
		return nil, err
	}
	return d, nil
}

// Initialize replaces all state with a fresh placement for q: every item in
// the pool in its original order and every bin empty.
func (d *DragDrop) Initialize(q *models.Question) error {
	if q.DragDrop == nil {
		return ErrMissingContent
	}
	d.question = q
	d.content = q.DragDrop
	d.scored = false
	d.clear()
	return nil
}

// Reset returns to a fresh placement. Allowed in any state.
func (d *DragDrop) Reset() {
	d.clear()
}

func (d *DragDrop) clear() {
	d.pool = slices.Clone(d.content.Items)
	d.bins = make([][]string, len(d.content.Bins))
	for i := range d.bins {
		d.bins[i] = []string{}
	}
	d.verdict = nil
	d.unlock()
}

// Move relocates item from one container to another and reports whether
// anything changed. Requests against a locked question, unknown containers or
// an item that is not in from are ignored.
func (d *DragDrop) Move(item string, from, to Container) bool {
	if d.locked || from == to {
		return false
	}

	src := d.container(from)
	dst := d.container(to)
	if src == nil || dst == nil {
		return false
	}

	idx := slices.Index(*src, item)
	if idx < 0 {
		return false
	}

	*src = slices.Delete(*src, idx, idx+1)
	*dst = append(*dst, item)
	return true
}

// Locate returns the container currently holding item.
func (d *DragDrop) Locate(item string) (Container, bool) {
	if slices.Contains(d.pool, item) {
		return Pool, true
	}
	for i, bin := range d.bins {
		if slices.Contains(bin, item) {
			return Bin(i), true
		}
	}
	return Pool, false
}

func (d *DragDrop) container(c Container) *[]string {
	if c.IsPool() {
		return &d.pool
	}
	if int(c) < 0 || int(c) >= len(d.bins) {
		return nil
	}
	return &d.bins[c]
}

// Submit grades the current placement and locks it.
func (d *DragDrop) Submit() (evaluator.DragDropVerdict, error) {
	if d.locked {
		return evaluator.DragDropVerdict{}, ErrLocked
	}

	verdict := evaluator.EvaluateDragDrop(d.bins, d.content.Correct)
	d.verdict = &verdict
	d.lock(verdict.Correct)
	return verdict, nil
}

func (d *DragDrop) Pool() []string {
	return slices.Clone(d.pool)
}

func (d *DragDrop) Bins() [][]string {
	out := make([][]string, len(d.bins))
	for i, bin := range d.bins {
		out[i] = slices.Clone(bin)
	}
	return out
}

func (d *DragDrop) Snapshot() Snapshot {
	snap := d.snapshot()
	snap.Pool = d.Pool()
	snap.Bins = d.Bins()
	if d.verdict != nil {
		snap.BinResults = slices.Clone(d.verdict.Bins)
		if !d.verdict.Correct {
			snap.Reveal = d.verdict.Reveal(d.content.Correct)
		}
	}
	return snap
}
