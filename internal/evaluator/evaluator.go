// Package evaluator decides whether a candidate answer is correct for each
// question type. Every function here is pure.
package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
)

var (
	ErrIncompleteSubmission = errors.New("all rows must be answered before submitting")
	ErrUnsupportedType      = errors.New("unsupported question type")
	ErrMissingAnswer        = errors.New("answer does not match question type")
)

// IncompleteError lists the rows that still need an answer.
type IncompleteError struct {
	Missing []int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %d unanswered", ErrIncompleteSubmission.Error(), len(e.Missing))
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncompleteSubmission
}

// TrueFalseVerdict holds the per-row result of a true/false grid.
type TrueFalseVerdict struct {
	Rows    []bool `json:"rows"`
	Correct bool   `json:"correct"`
}

// DragDropVerdict holds the per-bin result of a categorization question.
type DragDropVerdict struct {
	Bins    []bool `json:"bins"`
	Correct bool   `json:"correct"`
}

// WrongBins returns the indices of bins judged incorrect, in order.
func (v DragDropVerdict) WrongBins() []int {
	var wrong []int
	for i, ok := range v.Bins {
		if !ok {
			wrong = append(wrong, i)
		}
	}
	return wrong
}

// Reveal returns the expected contents for each bin that was wrong.
func (v DragDropVerdict) Reveal(correct map[int][]string) map[int][]string {
	reveal := make(map[int][]string)
	for _, bin := range v.WrongBins() {
		reveal[bin] = append([]string{}, correct[bin]...)
	}
	return reveal
}

// MatchVerdict holds the per-left-row result of a matching question.
type MatchVerdict struct {
	Rows    []bool `json:"rows"`
	Correct bool   `json:"correct"`
}

func EvaluateSingle(selected, correct int) bool {
	return selected == correct
}

func EvaluateMulti(selected, correct []int) bool {
	return setEqual(toSet(selected), toSet(correct))
}

// EvaluateTrueFalse refuses to grade while any row is unanswered; the returned
// error wraps ErrIncompleteSubmission.
func EvaluateTrueFalse(answers map[int]bool, rows []models.TrueFalseRow) (TrueFalseVerdict, error) {
	var missing []int
	for i := range rows {
		if _, ok := answers[i]; !ok {
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		return TrueFalseVerdict{}, &IncompleteError{Missing: missing}
	}

	verdict := TrueFalseVerdict{Rows: make([]bool, len(rows)), Correct: true}
	for i, row := range rows {
		verdict.Rows[i] = answers[i] == row.Correct
		if !verdict.Rows[i] {
			verdict.Correct = false
		}
	}
	return verdict, nil
}

// EvaluateDragDrop compares each placed bin with its expected item set. Bins
// missing from correct expect nothing.
func EvaluateDragDrop(bins [][]string, correct map[int][]string) DragDropVerdict {
	verdict := DragDropVerdict{Bins: make([]bool, len(bins)), Correct: true}
	for i, placed := range bins {
		verdict.Bins[i] = sameItems(placed, correct[i])
		if !verdict.Bins[i] {
			verdict.Correct = false
		}
	}
	return verdict
}

// EvaluateMatch grades each left row against its expected partner. Unpaired
// rows are wrong.
func EvaluateMatch(pairs map[int]string, content *models.MatchContent) MatchVerdict {
	verdict := MatchVerdict{Rows: make([]bool, len(content.Left)), Correct: true}
	for i := range content.Left {
		right, ok := pairs[i]
		verdict.Rows[i] = ok && i < len(content.Correct) && right == content.Correct[i]
		if !verdict.Rows[i] {
			verdict.Correct = false
		}
	}
	return verdict
}

// Answer is a complete candidate answer for stateless grading. Only the field
// matching the question type is read.
type Answer struct {
	SelectedIndex   *int           `json:"selected_index,omitempty"`
	SelectedIndices []int          `json:"selected_indices,omitempty"`
	RowAnswers      map[int]bool   `json:"row_answers,omitempty"`
	Bins            [][]string     `json:"bins,omitempty"`
	Pairs           map[int]string `json:"pairs,omitempty"`
}

// Verdict is the type-independent grading result. Parts carries per-row or
// per-bin results for the types that have them.
type Verdict struct {
	Type    models.QuestionType `json:"type"`
	Correct bool                `json:"correct"`
	Parts   []bool              `json:"parts,omitempty"`
	Reveal  map[int][]string    `json:"reveal,omitempty"`
}

// Evaluate grades a complete answer against q.
func Evaluate(q *models.Question, a Answer) (Verdict, error) {
	v := Verdict{Type: q.Type}

	switch q.Type {
	case models.SingleChoice:
		if q.SingleChoice == nil || a.SelectedIndex == nil {
			return v, ErrMissingAnswer
		}
		v.Correct = EvaluateSingle(*a.SelectedIndex, q.SingleChoice.Correct)
	case models.MultiChoice:
		if q.MultiChoice == nil {
			return v, ErrMissingAnswer
		}
		v.Correct = EvaluateMulti(a.SelectedIndices, q.MultiChoice.Correct)
	case models.TrueFalse:
		if q.TrueFalse == nil {
			return v, ErrMissingAnswer
		}
		tf, err := EvaluateTrueFalse(a.RowAnswers, q.TrueFalse.Rows)
		if err != nil {
			return v, err
		}
		v.Correct, v.Parts = tf.Correct, tf.Rows
	case models.DragDrop:
		if q.DragDrop == nil || len(a.Bins) != len(q.DragDrop.Bins) {
			return v, ErrMissingAnswer
		}
		dd := EvaluateDragDrop(a.Bins, q.DragDrop.Correct)
		v.Correct, v.Parts = dd.Correct, dd.Bins
		if !dd.Correct {
			v.Reveal = dd.Reveal(q.DragDrop.Correct)
		}
	case models.Match:
		if q.Match == nil {
			return v, ErrMissingAnswer
		}
		m := EvaluateMatch(a.Pairs, q.Match)
		v.Correct, v.Parts = m.Correct, m.Rows
	default:
		return v, fmt.Errorf("%w: %s", ErrUnsupportedType, q.Type)
	}

	return v, nil
}

func sameItems(placed, expected []string) bool {
	return setEqual(toSet(placed), toSet(expected)) && len(placed) == len(expected)
}

func toSet[T comparable](values []T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func setEqual[T comparable](a, b map[T]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// SortedIndices returns the members of a selection set in ascending order.
func SortedIndices(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
