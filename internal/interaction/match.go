package interaction

import (
	"maps"
	"slices"

	"github.com/SAP-F-2025/philosophy-quiz/internal/evaluator"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
)

// Match pairs left rows with right items. A right item belongs to at most one
// row; pairing it elsewhere moves it. Like DragDrop it can be reset after
// submission.
type Match struct {
	base
	content *models.MatchContent
	pairs   map[int]string
	verdict *evaluator.MatchVerdict
}

func NewMatch(q *models.Question, scorer Scorer) (*Match, error) {
	if q.Match == nil {
		return nil, ErrMissingContent
	}
	return &Match{
		base:    base{question: q, scorer: scorer},
		content: q.Match,
		pairs:   make(map[int]string),
	}, nil
}

// Pair assigns right to the left row and reports whether anything changed.
func (m *Match) Pair(left int, right string) bool {
	if m.locked || left < 0 || left >= len(m.content.Left) {
		return false
	}
	if !slices.Contains(m.content.Right, right) {
		return false
	}
	if current, ok := m.pairs[left]; ok && current == right {
		return false
	}

	for row, r := range m.pairs {
		if r == right {
			delete(m.pairs, row)
		}
	}
	m.pairs[left] = right
	return true
}

func (m *Match) Unpair(left int) bool {
	if m.locked {
		return false
	}
	if _, ok := m.pairs[left]; !ok {
		return false
	}
	delete(m.pairs, left)
	return true
}

func (m *Match) Submit() (evaluator.MatchVerdict, error) {
	if m.locked {
		return evaluator.MatchVerdict{}, ErrLocked
	}

	verdict := evaluator.EvaluateMatch(m.pairs, m.content)
	m.verdict = &verdict
	m.lock(verdict.Correct)
	return verdict, nil
}

func (m *Match) Reset() {
	m.pairs = make(map[int]string)
	m.verdict = nil
	m.unlock()
}

func (m *Match) Snapshot() Snapshot {
	snap := m.snapshot()
	snap.Pairs = maps.Clone(m.pairs)
	if m.verdict != nil {
		snap.RowResults = slices.Clone(m.verdict.Rows)
	}
	return snap
}
