package interaction

import "github.com/SAP-F-2025/philosophy-quiz/internal/models"

type countingScorer struct {
	count int
}

func (c *countingScorer) Increment() { c.count++ }

func singleQuestion() *models.Question {
	return &models.Question{
		Type:         models.SingleChoice,
		Prompt:       "Which one?",
		SingleChoice: &models.SingleChoiceContent{Options: []string{"X", "Y", "Z"}, Correct: 1},
	}
}

func multiQuestion() *models.Question {
	return &models.Question{
		Type:        models.MultiChoice,
		Prompt:      "Which ones?",
		MultiChoice: &models.MultiChoiceContent{Options: []string{"A", "B", "C", "D"}, Correct: []int{0, 2}},
	}
}

func trueFalseQuestion() *models.Question {
	return &models.Question{
		Type:   models.TrueFalse,
		Prompt: "Decide",
		TrueFalse: &models.TrueFalseContent{Rows: []models.TrueFalseRow{
			{Text: "first", Correct: true},
			{Text: "second", Correct: false},
		}},
	}
}

func dragQuestion() *models.Question {
	return &models.Question{
		Type:   models.DragDrop,
		Prompt: "Sort",
		DragDrop: &models.DragDropContent{
			Items:   []string{"A", "B", "C"},
			Bins:    []string{"First", "Second"},
			Correct: map[int][]string{0: {"A", "B"}, 1: {"C"}},
		},
	}
}

func matchQuestion() *models.Question {
	return &models.Question{
		Type:   models.Match,
		Prompt: "Pair",
		Match: &models.MatchContent{
			Left:    []string{"Hegel", "Marx", "Kant"},
			Right:   []string{"Materialism", "Idealism", "Criticism"},
			Correct: []string{"Idealism", "Materialism", "Criticism"},
		},
	}
}
