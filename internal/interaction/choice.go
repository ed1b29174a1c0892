package interaction

import (
	"github.com/SAP-F-2025/philosophy-quiz/internal/evaluator"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
)

// SingleChoice locks on the first selection.
type SingleChoice struct {
	base
	content  *models.SingleChoiceContent
	selected *int
}

func NewSingleChoice(q *models.Question, scorer Scorer) (*SingleChoice, error) {
	if q.SingleChoice == nil {
		return nil, ErrMissingContent
	}
	return &SingleChoice{
		base:    base{question: q, scorer: scorer},
		content: q.SingleChoice,
	}, nil
}

// Select submits option as the answer and reports whether it was correct.
func (s *SingleChoice) Select(option int) (bool, error) {
	if s.locked {
		return false, ErrLocked
	}
	if option < 0 || option >= len(s.content.Options) {
		return false, ErrOptionOutOfRange
	}

	s.selected = &option
	correct := evaluator.EvaluateSingle(option, s.content.Correct)
	s.lock(correct)
	return correct, nil
}

func (s *SingleChoice) Snapshot() Snapshot {
	snap := s.snapshot()
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
	}
	return snap
}

// MultiChoice accumulates toggled options until an explicit submit.
type MultiChoice struct {
	base
	content  *models.MultiChoiceContent
	selected map[int]struct{}
}

func NewMultiChoice(q *models.Question, scorer Scorer) (*MultiChoice, error) {
	if q.MultiChoice == nil {
		return nil, ErrMissingContent
	}
	return &MultiChoice{
		base:     base{question: q, scorer: scorer},
		content:  q.MultiChoice,
		selected: make(map[int]struct{}),
	}, nil
}

func (m *MultiChoice) Toggle(option int) error {
	if m.locked {
		return ErrLocked
	}
	if option < 0 || option >= len(m.content.Options) {
		return ErrOptionOutOfRange
	}

	if _, ok := m.selected[option]; ok {
		delete(m.selected, option)
	} else {
		m.selected[option] = struct{}{}
	}
	return nil
}

// Selected returns the current selection in ascending order.
func (m *MultiChoice) Selected() []int {
	return evaluator.SortedIndices(m.selected)
}

func (m *MultiChoice) Submit() (bool, error) {
	if m.locked {
		return false, ErrLocked
	}

	correct := evaluator.EvaluateMulti(m.Selected(), m.content.Correct)
	m.lock(correct)
	return correct, nil
}

func (m *MultiChoice) Snapshot() Snapshot {
	snap := m.snapshot()
	snap.SelectedSet = m.Selected()
	return snap
}
