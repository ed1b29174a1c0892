package interaction

import (
	"github.com/SAP-F-2025/philosophy-quiz/internal/evaluator"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
)

// TrueFalse is a grid of statements each answered true or false. Submitting
// with unanswered rows is refused and leaves the grid editable.
type TrueFalse struct {
	base
	content *models.TrueFalseContent
	answers map[int]bool
	verdict *evaluator.TrueFalseVerdict
}

func NewTrueFalse(q *models.Question, scorer Scorer) (*TrueFalse, error) {
	if q.TrueFalse == nil {
		return nil, ErrMissingContent
	}
	return &TrueFalse{
		base:    base{question: q, scorer: scorer},
		content: q.TrueFalse,
		answers: make(map[int]bool),
	}, nil
}

func (t *TrueFalse) Answer(row int, value bool) error {
	if t.locked {
		return ErrLocked
	}
	if row < 0 || row >= len(t.content.Rows) {
		return ErrRowOutOfRange
	}
	t.answers[row] = value
	return nil
}

// Submit returns an error wrapping evaluator.ErrIncompleteSubmission while any
// row is unanswered.
func (t *TrueFalse) Submit() (evaluator.TrueFalseVerdict, error) {
	if t.locked {
		return evaluator.TrueFalseVerdict{}, ErrLocked
	}

	verdict, err := evaluator.EvaluateTrueFalse(t.answers, t.content.Rows)
	if err != nil {
		return verdict, err
	}

	t.verdict = &verdict
	t.lock(verdict.Correct)
	return verdict, nil
}

func (t *TrueFalse) Snapshot() Snapshot {
	snap := t.snapshot()
	snap.RowAnswers = make([]*bool, len(t.content.Rows))
	for row, value := range t.answers {
		v := value
		snap.RowAnswers[row] = &v
	}
	if t.verdict != nil {
		snap.RowResults = append([]bool{}, t.verdict.Rows...)
	}
	return snap
}
