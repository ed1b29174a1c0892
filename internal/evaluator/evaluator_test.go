package evaluator

import (
	"errors"
	"testing"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateSingle(t *testing.T) {
	const correct = 1
	for i := 0; i < 3; i++ {
		assert.Equal(t, i == correct, EvaluateSingle(i, correct), "option %d", i)
	}
}

func TestEvaluateMulti(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		correct  []int
		want     bool
	}{
		{"exact match", []int{0, 2}, []int{0, 2}, true},
		{"order irrelevant", []int{2, 0}, []int{0, 2}, true},
		{"duplicates irrelevant", []int{0, 2, 2}, []int{0, 2}, true},
		{"extraneous index", []int{0, 1, 2}, []int{0, 2}, false},
		{"omitted index", []int{0}, []int{0, 2}, false},
		{"both empty", nil, []int{}, true},
		{"empty selection against non-empty key", nil, []int{3}, false},
		{"full set", []int{0, 1, 2, 3}, []int{3, 2, 1, 0}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateMulti(tc.selected, tc.correct))
		})
	}
}

func TestEvaluateTrueFalse(t *testing.T) {
	rows := []models.TrueFalseRow{
		{Text: "Matter is primary", Correct: true},
		{Text: "Consciousness is primary", Correct: false},
		{Text: "Motion is a mode of existence of matter", Correct: true},
	}

	t.Run("incomplete is refused", func(t *testing.T) {
		_, err := EvaluateTrueFalse(map[int]bool{0: true, 2: true}, rows)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIncompleteSubmission))

		var incomplete *IncompleteError
		require.True(t, errors.As(err, &incomplete))
		assert.Equal(t, []int{1}, incomplete.Missing)
	})

	t.Run("all correct", func(t *testing.T) {
		v, err := EvaluateTrueFalse(map[int]bool{0: true, 1: false, 2: true}, rows)
		require.NoError(t, err)
		assert.True(t, v.Correct)
		assert.Equal(t, []bool{true, true, true}, v.Rows)
	})

	t.Run("one row wrong", func(t *testing.T) {
		v, err := EvaluateTrueFalse(map[int]bool{0: true, 1: true, 2: true}, rows)
		require.NoError(t, err)
		assert.False(t, v.Correct)
		assert.Equal(t, []bool{true, false, true}, v.Rows)
	})
}

func TestEvaluateDragDrop(t *testing.T) {
	correct := map[int][]string{0: {"A", "B"}, 1: {"C"}}

	t.Run("correct placement", func(t *testing.T) {
		v := EvaluateDragDrop([][]string{{"B", "A"}, {"C"}}, correct)
		assert.True(t, v.Correct)
		assert.Equal(t, []bool{true, true}, v.Bins)
		assert.Empty(t, v.WrongBins())
	})

	t.Run("wrong placement", func(t *testing.T) {
		v := EvaluateDragDrop([][]string{{"A"}, {"B", "C"}}, correct)
		assert.False(t, v.Correct)
		assert.Equal(t, []bool{false, false}, v.Bins)
		assert.Equal(t, correct, v.Reveal(correct))
	})

	t.Run("items left in pool", func(t *testing.T) {
		v := EvaluateDragDrop([][]string{{"A", "B"}, {}}, correct)
		assert.False(t, v.Correct)
		assert.Equal(t, []bool{true, false}, v.Bins)
		assert.Equal(t, map[int][]string{1: {"C"}}, v.Reveal(correct))
	})

	t.Run("empty bin with no expected items is correct", func(t *testing.T) {
		v := EvaluateDragDrop([][]string{{"A", "B", "C"}, {}}, map[int][]string{0: {"A", "B", "C"}})
		assert.True(t, v.Correct)
	})
}

func TestEvaluateMatch(t *testing.T) {
	content := &models.MatchContent{
		Left:    []string{"Hegel", "Marx"},
		Right:   []string{"Materialism", "Idealism"},
		Correct: []string{"Idealism", "Materialism"},
	}

	v := EvaluateMatch(map[int]string{0: "Idealism", 1: "Materialism"}, content)
	assert.True(t, v.Correct)

	v = EvaluateMatch(map[int]string{0: "Idealism"}, content)
	assert.False(t, v.Correct)
	assert.Equal(t, []bool{true, false}, v.Rows)
}

func TestEvaluateDispatch(t *testing.T) {
	one := 1
	single := &models.Question{
		Type:         models.SingleChoice,
		Prompt:       "Pick Y",
		SingleChoice: &models.SingleChoiceContent{Options: []string{"X", "Y", "Z"}, Correct: 1},
	}

	v, err := Evaluate(single, Answer{SelectedIndex: &one})
	require.NoError(t, err)
	assert.True(t, v.Correct)

	_, err = Evaluate(single, Answer{})
	assert.ErrorIs(t, err, ErrMissingAnswer)

	drag := &models.Question{
		Type:   models.DragDrop,
		Prompt: "Sort",
		DragDrop: &models.DragDropContent{
			Items:   []string{"A", "B", "C"},
			Bins:    []string{"First", "Second"},
			Correct: map[int][]string{0: {"A", "B"}, 1: {"C"}},
		},
	}
	v, err = Evaluate(drag, Answer{Bins: [][]string{{"A"}, {"B", "C"}}})
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Equal(t, []bool{false, false}, v.Parts)
	assert.Len(t, v.Reveal, 2)

	_, err = Evaluate(&models.Question{Type: "essay"}, Answer{})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
