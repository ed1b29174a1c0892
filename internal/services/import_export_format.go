package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
)

// Spreadsheet layout. List cells separate entries with "|"; drag-and-drop
// answers are written as "0:A|B;1:C" and true/false answers as
// "true,false".
const (
	colTopicKey  = "topic_key"
	colTopicName = "topic_name"
	colType      = "type"
	colPrompt    = "prompt"
	colHTML      = "html"
	colOptions   = "options"
	colCorrect   = "correct"
	colBins      = "bins"

	listSep = "|"
	binSep  = ";"
)

var exportHeaders = []string{colTopicKey, colTopicName, colType, colPrompt, colHTML, colOptions, colCorrect, colBins}

type rowReader struct {
	record  []string
	headers map[string]int
	row     int
}

func (r rowReader) get(name string) string {
	if index, exists := r.headers[name]; exists && index < len(r.record) {
		return strings.TrimSpace(r.record[index])
	}
	return ""
}

func (r rowReader) list(name string) []string {
	return splitList(r.get(name), listSep)
}

func (r rowReader) empty() bool {
	for _, v := range r.record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (r rowReader) fail(column, message, value string) models.ImportValidationError {
	return models.ImportValidationError{Row: r.row, Column: column, Message: message, Value: value, Code: "invalid_value"}
}

func splitList(value, sep string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseQuestionRow builds one question from a spreadsheet row. Structural
// checks beyond cell syntax are left to the topic validator.
func parseQuestionRow(r rowReader) (models.Question, []models.ImportValidationError) {
	var errs []models.ImportValidationError

	if r.get(colTopicKey) == "" {
		errs = append(errs, r.fail(colTopicKey, "required field", ""))
	}

	q := models.Question{
		Type:   models.QuestionType(strings.ToLower(r.get(colType))),
		Prompt: r.get(colPrompt),
	}
	if q.Prompt == "" {
		errs = append(errs, r.fail(colPrompt, "required field", ""))
	}
	if html := r.get(colHTML); html != "" {
		v, err := strconv.ParseBool(html)
		if err != nil {
			errs = append(errs, r.fail(colHTML, "must be 'true' or 'false'", html))
		}
		q.IsHTML = v
	}

	correct := r.get(colCorrect)

	switch q.Type {
	case models.SingleChoice:
		idx, err := strconv.Atoi(correct)
		if err != nil {
			errs = append(errs, r.fail(colCorrect, "must be an option index", correct))
		}
		q.SingleChoice = &models.SingleChoiceContent{Options: r.list(colOptions), Correct: idx}

	case models.MultiChoice:
		indices, err := parseIndices(correct)
		if err != nil {
			errs = append(errs, r.fail(colCorrect, "must be a comma separated list of option indexes", correct))
		}
		q.MultiChoice = &models.MultiChoiceContent{Options: r.list(colOptions), Correct: indices}

	case models.TrueFalse:
		texts := r.list(colOptions)
		values := splitList(correct, ",")
		if len(values) != len(texts) {
			errs = append(errs, r.fail(colCorrect, fmt.Sprintf("must list %d true/false values", len(texts)), correct))
			break
		}
		content := &models.TrueFalseContent{}
		for i, text := range texts {
			v, err := strconv.ParseBool(values[i])
			if err != nil {
				errs = append(errs, r.fail(colCorrect, "must be 'true' or 'false'", values[i]))
			}
			content.Rows = append(content.Rows, models.TrueFalseRow{Text: text, Correct: v})
		}
		q.TrueFalse = content

	case models.DragDrop:
		assignment, err := parseAssignment(correct)
		if err != nil {
			errs = append(errs, r.fail(colCorrect, err.Error(), correct))
		}
		q.DragDrop = &models.DragDropContent{Items: r.list(colOptions), Bins: r.list(colBins), Correct: assignment}

	case models.Match:
		q.Match = &models.MatchContent{Left: r.list(colOptions), Right: r.list(colBins), Correct: splitList(correct, listSep)}

	default:
		errs = append(errs, r.fail(colType, "unsupported question type", string(q.Type)))
	}

	return q, errs
}

func parseIndices(value string) ([]int, error) {
	parts := splitList(value, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		idx, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// parseAssignment reads "0:A|B;1:C" into a bin index to items map.
func parseAssignment(value string) (map[int][]string, error) {
	assignment := make(map[int][]string)
	for _, part := range splitList(value, binSep) {
		if part == "" {
			continue
		}
		bin, items, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("expected bin:items, got %q", part)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(bin))
		if err != nil {
			return nil, fmt.Errorf("bin must be a column index, got %q", bin)
		}
		assignment[idx] = append(assignment[idx], splitList(strings.TrimSpace(items), listSep)...)
	}
	return assignment, nil
}

// questionToRow renders a question in exportHeaders order.
func questionToRow(topic *models.Topic, q *models.Question) []string {
	row := make([]string, len(exportHeaders))
	row[0] = topic.Key
	row[1] = topic.Name
	row[2] = string(q.Type)
	row[3] = q.Prompt
	row[4] = strconv.FormatBool(q.IsHTML)

	switch q.Type {
	case models.SingleChoice:
		if c := q.SingleChoice; c != nil {
			row[5] = strings.Join(c.Options, listSep)
			row[6] = strconv.Itoa(c.Correct)
		}
	case models.MultiChoice:
		if c := q.MultiChoice; c != nil {
			row[5] = strings.Join(c.Options, listSep)
			parts := make([]string, len(c.Correct))
			for i, idx := range c.Correct {
				parts[i] = strconv.Itoa(idx)
			}
			row[6] = strings.Join(parts, ",")
		}
	case models.TrueFalse:
		if c := q.TrueFalse; c != nil {
			texts := make([]string, len(c.Rows))
			values := make([]string, len(c.Rows))
			for i, r := range c.Rows {
				texts[i] = r.Text
				values[i] = strconv.FormatBool(r.Correct)
			}
			row[5] = strings.Join(texts, listSep)
			row[6] = strings.Join(values, ",")
		}
	case models.DragDrop:
		if c := q.DragDrop; c != nil {
			row[5] = strings.Join(c.Items, listSep)
			row[7] = strings.Join(c.Bins, listSep)

			bins := make([]int, 0, len(c.Correct))
			for bin := range c.Correct {
				bins = append(bins, bin)
			}
			sort.Ints(bins)
			parts := make([]string, 0, len(bins))
			for _, bin := range bins {
				parts = append(parts, fmt.Sprintf("%d:%s", bin, strings.Join(c.Correct[bin], listSep)))
			}
			row[6] = strings.Join(parts, binSep)
		}
	case models.Match:
		if c := q.Match; c != nil {
			row[5] = strings.Join(c.Left, listSep)
			row[6] = strings.Join(c.Correct, listSep)
			row[7] = strings.Join(c.Right, listSep)
		}
	}
	return row
}
