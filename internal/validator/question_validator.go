package validator

import (
	"fmt"
	"slices"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
)

// QuestionValidator checks the content invariants that struct tags cannot
// express. It runs once when content is loaded, never while grading.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateTopic validates every question of topic and prefixes field paths
// with the question position.
func (v *QuestionValidator) ValidateTopic(topic *models.Topic) ValidationErrors {
	var errs ValidationErrors
	if len(topic.Questions) == 0 {
		errs.Add("questions", "topic must have at least 1 question", nil)
	}
	for i := range topic.Questions {
		if qErrs := v.ValidateQuestion(&topic.Questions[i]); len(qErrs) > 0 {
			errs = append(errs, qErrs.Prefix(fmt.Sprintf("questions[%d]", i))...)
		}
	}
	return errs
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(q *models.Question) ValidationErrors {
	var errs ValidationErrors

	if q.Prompt == "" {
		errs.Add("q", "question text is required", nil)
	}
	if n := countContents(q); n != 1 {
		errs.Add("type", fmt.Sprintf("exactly one content block is required, found %d", n), q.Type)
	}

	switch q.Type {
	case models.SingleChoice:
		if q.SingleChoice == nil {
			errs.Add("single", "content is required for single choice", nil)
			break
		}
		errs = append(errs, v.validateSingleChoice(q.SingleChoice).Prefix("single")...)
	case models.MultiChoice:
		if q.MultiChoice == nil {
			errs.Add("multi", "content is required for multiple choice", nil)
			break
		}
		errs = append(errs, v.validateMultiChoice(q.MultiChoice).Prefix("multi")...)
	case models.TrueFalse:
		if q.TrueFalse == nil {
			errs.Add("truefalse", "content is required for true/false", nil)
			break
		}
		errs = append(errs, v.validateTrueFalse(q.TrueFalse).Prefix("truefalse")...)
	case models.DragDrop:
		if q.DragDrop == nil {
			errs.Add("drag", "content is required for drag and drop", nil)
			break
		}
		errs = append(errs, v.validateDragDrop(q.DragDrop).Prefix("drag")...)
	case models.Match:
		if q.Match == nil {
			errs.Add("match", "content is required for matching", nil)
			break
		}
		errs = append(errs, v.validateMatch(q.Match).Prefix("match")...)
	default:
		errs.Add("type", "unsupported question type", q.Type)
	}

	return errs
}

func countContents(q *models.Question) int {
	n := 0
	if q.SingleChoice != nil {
		n++
	}
	if q.MultiChoice != nil {
		n++
	}
	if q.TrueFalse != nil {
		n++
	}
	if q.DragDrop != nil {
		n++
	}
	if q.Match != nil {
		n++
	}
	return n
}

func (v *QuestionValidator) validateSingleChoice(c *models.SingleChoiceContent) ValidationErrors {
	var errs ValidationErrors
	if len(c.Options) == 0 {
		errs.Add("options", "must have at least 1 option", nil)
	}
	if c.Correct < 0 || c.Correct >= len(c.Options) {
		errs.Add("correct", "correct index does not match any option", c.Correct)
	}
	return errs
}

func (v *QuestionValidator) validateMultiChoice(c *models.MultiChoiceContent) ValidationErrors {
	var errs ValidationErrors
	if len(c.Options) == 0 {
		errs.Add("options", "must have at least 1 option", nil)
	}
	seen := make(map[int]bool)
	for _, idx := range c.Correct {
		if idx < 0 || idx >= len(c.Options) {
			errs.Add("correct", "correct index does not match any option", idx)
		}
		if seen[idx] {
			errs.Add("correct", "correct index listed twice", idx)
		}
		seen[idx] = true
	}
	return errs
}

func (v *QuestionValidator) validateTrueFalse(c *models.TrueFalseContent) ValidationErrors {
	var errs ValidationErrors
	if len(c.Rows) == 0 {
		errs.Add("rows", "must have at least 1 row", nil)
	}
	for i, row := range c.Rows {
		if row.Text == "" {
			errs.Add(fmt.Sprintf("rows[%d].text", i), "row text cannot be empty", nil)
		}
	}
	return errs
}

// validateDragDrop checks that the correct assignment partitions the items:
// every item belongs to exactly one valid bin.
func (v *QuestionValidator) validateDragDrop(c *models.DragDropContent) ValidationErrors {
	var errs ValidationErrors
	if len(c.Items) == 0 {
		errs.Add("items", "must have at least 1 item", nil)
	}
	if len(c.Bins) == 0 {
		errs.Add("columns", "must have at least 1 column", nil)
	}

	items := make(map[string]bool, len(c.Items))
	for _, item := range c.Items {
		if item == "" {
			errs.Add("items", "item text cannot be empty", nil)
		}
		if items[item] {
			errs.Add("items", "duplicate item", item)
		}
		items[item] = true
	}

	assigned := make(map[string]int)
	for bin, binItems := range c.Correct {
		if bin < 0 || bin >= len(c.Bins) {
			errs.Add("correct", "correct assignment references non-existent column", bin)
			continue
		}
		for _, item := range binItems {
			if !items[item] {
				errs.Add(fmt.Sprintf("correct[%d]", bin), "correct assignment references unknown item", item)
				continue
			}
			if prev, ok := assigned[item]; ok {
				errs.Add(fmt.Sprintf("correct[%d]", bin), fmt.Sprintf("item already assigned to column %d", prev), item)
				continue
			}
			assigned[item] = bin
		}
	}

	for _, item := range c.Items {
		if _, ok := assigned[item]; !ok && item != "" {
			errs.Add("correct", "item is not assigned to any column", item)
		}
	}
	return errs
}

func (v *QuestionValidator) validateMatch(c *models.MatchContent) ValidationErrors {
	var errs ValidationErrors
	if len(c.Left) == 0 {
		errs.Add("left", "must have at least 1 left item", nil)
	}
	if len(c.Correct) != len(c.Left) {
		errs.Add("correct", "correct must list one right item per left item", len(c.Correct))
	}

	seen := make(map[string]bool, len(c.Right))
	for _, r := range c.Right {
		if seen[r] {
			errs.Add("right", "duplicate right item", r)
		}
		seen[r] = true
	}
	paired := make(map[string]bool, len(c.Correct))
	for i, r := range c.Correct {
		if !slices.Contains(c.Right, r) {
			errs.Add(fmt.Sprintf("correct[%d]", i), "correct pair references non-existent right item", r)
		} else if paired[r] {
			errs.Add(fmt.Sprintf("correct[%d]", i), "right item paired with more than one left item", r)
		}
		paired[r] = true
	}
	return errs
}
