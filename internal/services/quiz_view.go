package services

import (
	"github.com/SAP-F-2025/philosophy-quiz/internal/interaction"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
)

// QuestionView is what a player sees of one question: its display content
// and the current answer state. Correct answers only appear through the
// state's reveal after a wrong drag-and-drop submission.
type QuestionView struct {
	Index  int                 `json:"index"`
	Total  int                 `json:"total"`
	Type   models.QuestionType `json:"type"`
	Prompt string              `json:"q"`
	IsHTML bool                `json:"html"`

	Options []string `json:"options,omitempty"`
	Rows    []string `json:"rows,omitempty"`
	Items   []string `json:"items,omitempty"`
	Bins    []string `json:"columns,omitempty"`
	Left    []string `json:"left,omitempty"`
	Right   []string `json:"right,omitempty"`

	State interaction.Snapshot `json:"state"`
}

// ActionResult is returned by every mutating question operation. Changed is
// false when the action was ignored, for example a stale drag-and-drop move.
type ActionResult struct {
	Changed  bool         `json:"changed"`
	Score    int          `json:"score"`
	Question QuestionView `json:"question"`
}

func newQuestionView(index, total int, inst interaction.Instance) QuestionView {
	q := inst.Question()
	view := QuestionView{
		Index:  index,
		Total:  total,
		Type:   q.Type,
		Prompt: q.Prompt,
		IsHTML: q.IsHTML,
		State:  inst.Snapshot(),
	}

	switch q.Type {
	case models.SingleChoice, models.MultiChoice:
		view.Options = q.Options()
	case models.TrueFalse:
		for _, row := range q.TrueFalse.Rows {
			view.Rows = append(view.Rows, row.Text)
		}
	case models.DragDrop:
		view.Items = q.DragDrop.Items
		view.Bins = q.DragDrop.Bins
	case models.Match:
		view.Left = q.Match.Left
		view.Right = q.Match.Right
	}
	return view
}
