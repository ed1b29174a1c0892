// Package interaction holds the per-question answer state machines. A
// question instance moves from unanswered to locked exactly once, except for
// drag-and-drop and matching questions which may be reset and retried.
package interaction

import (
	"fmt"

	"github.com/SAP-F-2025/philosophy-quiz/internal/evaluator"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
)

// Scorer receives the "answered correctly" signal.
type Scorer interface {
	Increment()
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func()

func (f ScorerFunc) Increment() { f() }

// Instance is the read side shared by every question state machine.
type Instance interface {
	Question() *models.Question
	Locked() bool
	Snapshot() Snapshot
}

// Snapshot is an immutable copy of an instance's state for rendering. Fields
// not relevant to the question type are left empty.
type Snapshot struct {
	Type    models.QuestionType `json:"type"`
	Locked  bool                `json:"locked"`
	Correct *bool               `json:"correct,omitempty"`
	Scored  bool                `json:"scored"`

	Selected    *int    `json:"selected,omitempty"`
	SelectedSet []int   `json:"selected_set,omitempty"`
	RowAnswers  []*bool `json:"row_answers,omitempty"`
	RowResults  []bool  `json:"row_results,omitempty"`

	Pool       []string         `json:"pool,omitempty"`
	Bins       [][]string       `json:"bins,omitempty"`
	BinResults []bool           `json:"bin_results,omitempty"`
	Reveal     map[int][]string `json:"reveal,omitempty"`

	Pairs map[int]string `json:"pairs,omitempty"`
}

// New builds the state machine matching q's type tag.
func New(q *models.Question, scorer Scorer) (Instance, error) {
	switch q.Type {
	case models.SingleChoice:
		return NewSingleChoice(q, scorer)
	case models.MultiChoice:
		return NewMultiChoice(q, scorer)
	case models.TrueFalse:
		return NewTrueFalse(q, scorer)
	case models.DragDrop:
		return NewDragDrop(q, scorer)
	case models.Match:
		return NewMatch(q, scorer)
	default:
		return nil, fmt.Errorf("%w: %s", evaluator.ErrUnsupportedType, q.Type)
	}
}

// base carries the lock and the one-shot correct signal.
type base struct {
	question *models.Question
	scorer   Scorer
	locked   bool
	correct  *bool
	scored   bool
}

func (b *base) Question() *models.Question { return b.question }

func (b *base) Locked() bool { return b.locked }

// lock records the verdict and fires the signal at most once per instance.
func (b *base) lock(correct bool) {
	b.locked = true
	b.correct = &correct
	if correct && !b.scored {
		b.scored = true
		if b.scorer != nil {
			b.scorer.Increment()
		}
	}
}

// unlock clears the verdict without touching the scored flag.
func (b *base) unlock() {
	b.locked = false
	b.correct = nil
}

func (b *base) snapshot() Snapshot {
	s := Snapshot{
		Type:   b.question.Type,
		Locked: b.locked,
		Scored: b.scored,
	}
	if b.correct != nil {
		c := *b.correct
		s.Correct = &c
	}
	return s
}
