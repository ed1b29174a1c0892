package interaction

import (
	"testing"

	"github.com/SAP-F-2025/philosophy-quiz/internal/evaluator"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleChoice_SelectLocks(t *testing.T) {
	scorer := &countingScorer{}
	q, err := NewSingleChoice(singleQuestion(), scorer)
	require.NoError(t, err)

	correct, err := q.Select(1)
	require.NoError(t, err)
	assert.True(t, correct)
	assert.True(t, q.Locked())
	assert.Equal(t, 1, scorer.count)

	_, err = q.Select(0)
	assert.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, 1, scorer.count)

	snap := q.Snapshot()
	require.NotNil(t, snap.Selected)
	assert.Equal(t, 1, *snap.Selected)
	require.NotNil(t, snap.Correct)
	assert.True(t, *snap.Correct)
}

func TestSingleChoice_WrongSelection(t *testing.T) {
	scorer := &countingScorer{}
	q, err := NewSingleChoice(singleQuestion(), scorer)
	require.NoError(t, err)

	correct, err := q.Select(0)
	require.NoError(t, err)
	assert.False(t, correct)
	assert.True(t, q.Locked())
	assert.Equal(t, 0, scorer.count)
}

func TestSingleChoice_OutOfRangeLeavesStateUnchanged(t *testing.T) {
	q, err := NewSingleChoice(singleQuestion(), nil)
	require.NoError(t, err)

	_, err = q.Select(3)
	assert.ErrorIs(t, err, ErrOptionOutOfRange)
	assert.False(t, q.Locked())
	assert.Nil(t, q.Snapshot().Selected)
}

func TestMultiChoice_ToggleAndSubmit(t *testing.T) {
	scorer := &countingScorer{}
	q, err := NewMultiChoice(multiQuestion(), scorer)
	require.NoError(t, err)

	require.NoError(t, q.Toggle(0))
	require.NoError(t, q.Toggle(1))
	require.NoError(t, q.Toggle(2))
	require.NoError(t, q.Toggle(1))
	assert.Equal(t, []int{0, 2}, q.Selected())
	assert.False(t, q.Locked())

	correct, err := q.Submit()
	require.NoError(t, err)
	assert.True(t, correct)
	assert.Equal(t, 1, scorer.count)

	assert.ErrorIs(t, q.Toggle(3), ErrLocked)
	assert.Equal(t, []int{0, 2}, q.Selected())

	_, err = q.Submit()
	assert.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, 1, scorer.count)
}

func TestMultiChoice_ExtraneousSelectionIsWrong(t *testing.T) {
	scorer := &countingScorer{}
	q, err := NewMultiChoice(multiQuestion(), scorer)
	require.NoError(t, err)

	for _, opt := range []int{0, 2, 3} {
		require.NoError(t, q.Toggle(opt))
	}
	correct, err := q.Submit()
	require.NoError(t, err)
	assert.False(t, correct)
	assert.Equal(t, 0, scorer.count)
}

func TestTrueFalse_IncompleteSubmitStaysUnanswered(t *testing.T) {
	scorer := &countingScorer{}
	q, err := NewTrueFalse(trueFalseQuestion(), scorer)
	require.NoError(t, err)

	require.NoError(t, q.Answer(0, true))
	_, err = q.Submit()
	assert.ErrorIs(t, err, evaluator.ErrIncompleteSubmission)
	assert.False(t, q.Locked())
	assert.Equal(t, 0, scorer.count)

	require.NoError(t, q.Answer(1, false))
	verdict, err := q.Submit()
	require.NoError(t, err)
	assert.True(t, verdict.Correct)
	assert.True(t, q.Locked())
	assert.Equal(t, 1, scorer.count)

	assert.ErrorIs(t, q.Answer(1, true), ErrLocked)

	snap := q.Snapshot()
	assert.Equal(t, []bool{true, true}, snap.RowResults)
	require.Len(t, snap.RowAnswers, 2)
	assert.False(t, *snap.RowAnswers[1])
}

func TestTrueFalse_SnapshotShowsUnansweredRows(t *testing.T) {
	q, err := NewTrueFalse(trueFalseQuestion(), nil)
	require.NoError(t, err)
	require.NoError(t, q.Answer(1, true))

	snap := q.Snapshot()
	assert.Nil(t, snap.RowAnswers[0])
	require.NotNil(t, snap.RowAnswers[1])
	assert.True(t, *snap.RowAnswers[1])
	assert.Nil(t, snap.Correct)

	assert.ErrorIs(t, q.Answer(2, true), ErrRowOutOfRange)
}

func TestNew_DispatchesOnType(t *testing.T) {
	questions := []*models.Question{singleQuestion(), multiQuestion(), trueFalseQuestion(), dragQuestion(), matchQuestion()}
	for _, q := range questions {
		inst, err := New(q, nil)
		require.NoError(t, err, q.Type)
		assert.Equal(t, q.Type, inst.Snapshot().Type)
		assert.False(t, inst.Locked())
	}

	_, err := New(&models.Question{Type: "essay"}, nil)
	assert.ErrorIs(t, err, evaluator.ErrUnsupportedType)

	_, err = New(&models.Question{Type: models.SingleChoice}, nil)
	assert.ErrorIs(t, err, ErrMissingContent)
}
