package models

type QuestionType string

const (
	SingleChoice QuestionType = "single"
	MultiChoice  QuestionType = "multi"
	TrueFalse    QuestionType = "truefalse"
	DragDrop     QuestionType = "drag"
	Match        QuestionType = "match"
)

// QuestionTypes lists every supported type tag in display order.
var QuestionTypes = []QuestionType{SingleChoice, MultiChoice, TrueFalse, DragDrop, Match}

// Question is a tagged union: Type selects which of the content pointers is set.
type Question struct {
	Type   QuestionType `json:"type" yaml:"type" validate:"required,question_type"`
	Prompt string       `json:"q" yaml:"q" validate:"required"`
	IsHTML bool         `json:"html,omitempty" yaml:"html,omitempty"`

	SingleChoice *SingleChoiceContent `json:"single,omitempty" yaml:"single,omitempty"`
	MultiChoice  *MultiChoiceContent  `json:"multi,omitempty" yaml:"multi,omitempty"`
	TrueFalse    *TrueFalseContent    `json:"truefalse,omitempty" yaml:"truefalse,omitempty"`
	DragDrop     *DragDropContent     `json:"drag,omitempty" yaml:"drag,omitempty"`
	Match        *MatchContent        `json:"match,omitempty" yaml:"match,omitempty"`
}

type SingleChoiceContent struct {
	Options []string `json:"options" yaml:"options" validate:"required,min=1,dive,required"`
	Correct int      `json:"correct" yaml:"correct" validate:"min=0"`
}

type MultiChoiceContent struct {
	Options []string `json:"options" yaml:"options" validate:"required,min=1,dive,required"`
	Correct []int    `json:"correct" yaml:"correct" validate:"dive,min=0"`
}

type TrueFalseRow struct {
	Text    string `json:"text" yaml:"text" validate:"required"`
	Correct bool   `json:"correct" yaml:"correct"`
}

type TrueFalseContent struct {
	Rows []TrueFalseRow `json:"rows" yaml:"rows" validate:"required,min=1,dive"`
}

// DragDropContent describes a categorization question. Correct maps a bin
// index to the items that belong in it.
type DragDropContent struct {
	Items   []string         `json:"items" yaml:"items" validate:"required,min=1,dive,required"`
	Bins    []string         `json:"columns" yaml:"columns" validate:"required,min=1,dive,required"`
	Correct map[int][]string `json:"correct" yaml:"correct" validate:"required"`
}

// MatchContent pairs each Left entry with one Right entry; Correct[i] is the
// right-hand text that belongs to Left[i].
type MatchContent struct {
	Left    []string `json:"left" yaml:"left" validate:"required,min=1,dive,required"`
	Right   []string `json:"right" yaml:"right" validate:"required,min=1,dive,required"`
	Correct []string `json:"correct" yaml:"correct" validate:"required"`
}

// Options returns the selectable options for choice questions.
func (q *Question) Options() []string {
	switch q.Type {
	case SingleChoice:
		if q.SingleChoice != nil {
			return q.SingleChoice.Options
		}
	case MultiChoice:
		if q.MultiChoice != nil {
			return q.MultiChoice.Options
		}
	}
	return nil
}

// CorrectItems returns the items expected in bin, or nil when none are.
func (c *DragDropContent) CorrectItems(bin int) []string {
	if c == nil || c.Correct == nil {
		return nil
	}
	return c.Correct[bin]
}

func IsValidQuestionType(t QuestionType) bool {
	for _, valid := range QuestionTypes {
		if valid == t {
			return true
		}
	}
	return false
}
