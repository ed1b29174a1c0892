package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/repositories"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
	"github.com/xuri/excelize/v2"
)

// ImportExportService converts topics to and from spreadsheets with one
// question per row.
type ImportExportService interface {
	// Import operations
	ImportTopicsFromFile(ctx context.Context, reader io.Reader, filename string) (*ImportResult, error)
	ImportTopicsFromCSV(ctx context.Context, reader io.Reader) (*ImportResult, error)
	ImportTopicsFromExcel(ctx context.Context, reader io.Reader) (*ImportResult, error)

	// Export operations
	ExportTopicsToCSV(ctx context.Context, topicKeys []string) ([]byte, error)
	ExportTopicsToExcel(ctx context.Context, topicKeys []string) ([]byte, error)
}

type importExportService struct {
	repo      repositories.TopicRepository
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewImportExportService(repo repositories.TopicRepository, logger *ServiceLogger, v *validator.Validator) ImportExportService {
	return &importExportService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// ===== IMPORT OPERATIONS =====

type ImportResult struct {
	models.ImportSummary
	Imported []*models.Topic `json:"-"`
}

const exportSheet = "Questions"

var requiredColumns = []string{colTopicKey, colTopicName, colType, colPrompt}

func (s *importExportService) ImportTopicsFromFile(ctx context.Context, reader io.Reader, filename string) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return s.ImportTopicsFromCSV(ctx, reader)
	case ".xlsx":
		return s.ImportTopicsFromExcel(ctx, reader)
	default:
		return nil, NewValidationError("file", "unsupported file format", ext)
	}
}

func (s *importExportService) ImportTopicsFromCSV(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return s.importRecords(ctx, "csv", records)
}

func (s *importExportService) ImportTopicsFromExcel(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return s.importRecords(ctx, "excel", rows)
}

// importRecords groups rows into topics by topic key in order of first
// appearance, validates each topic and saves the valid ones. A topic with any
// bad row is rejected whole.
func (s *importExportService) importRecords(ctx context.Context, source string, records [][]string) (*ImportResult, error) {
	start := time.Now()

	if len(records) < 2 {
		return nil, NewValidationError("file", "file must have header row and at least one data row", len(records))
	}

	headers := make(map[string]int)
	for i, header := range records[0] {
		headers[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range requiredColumns {
		if _, exists := headers[col]; !exists {
			return nil, NewValidationError("headers", fmt.Sprintf("missing required column: %s", col), col)
		}
	}

	result := &ImportResult{ImportSummary: models.ImportSummary{
		TotalRows: len(records) - 1,
		Status:    models.ImportProcessing,
	}}

	type pending struct {
		topic    *models.Topic
		firstRow int
		rows     []int
		failed   bool
	}
	var order []*pending
	byKey := make(map[string]*pending)

	for i, record := range records[1:] {
		r := rowReader{record: record, headers: headers, row: i + 2}
		result.ProcessedRows++

		if r.empty() {
			result.TotalRows--
			result.ProcessedRows--
			continue
		}

		key := r.get(colTopicKey)
		p, ok := byKey[key]
		if !ok {
			p = &pending{topic: &models.Topic{Key: key, Name: r.get(colTopicName)}, firstRow: r.row}
			byKey[key] = p
			order = append(order, p)
		}

		question, rowErrors := parseQuestionRow(r)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			p.failed = true
			continue
		}
		p.topic.Questions = append(p.topic.Questions, question)
		p.rows = append(p.rows, r.row)
	}

	for _, p := range order {
		if !p.failed {
			if err := s.validator.ValidateTopic(p.topic); err != nil {
				result.Errors = append(result.Errors, topicErrors(err, p.firstRow, p.rows)...)
				p.failed = true
			}
		}
		if p.failed {
			result.ErrorCount++
			continue
		}
		result.SuccessCount += len(p.topic.Questions)
		result.Imported = append(result.Imported, p.topic)
		result.Topics = append(result.Topics, p.topic.Summary())
	}

	if len(result.Imported) > 0 {
		if err := s.repo.Save(ctx, result.Imported); err != nil {
			return nil, fmt.Errorf("failed to save topics: %w", err)
		}
	}

	result.Status = models.ImportCompleted
	if len(result.Errors) > 0 {
		result.Status = models.ImportValidationFailed
	}
	result.ProcessingTime = time.Since(start)

	s.logger.Logger().InfoContext(ctx, "Topic import completed",
		"source", source,
		"total_rows", result.TotalRows,
		"topics", len(result.Imported),
		"rejected_topics", result.ErrorCount,
		"error_count", len(result.Errors))

	return result, nil
}

// topicErrors maps validation errors of a topic back to spreadsheet rows.
func topicErrors(err error, firstRow int, rows []int) []models.ImportValidationError {
	ve, ok := err.(ValidationErrors)
	if !ok {
		return []models.ImportValidationError{{Row: firstRow, Column: colTopicKey, Message: err.Error(), Code: "invalid_topic"}}
	}

	out := make([]models.ImportValidationError, 0, len(ve))
	for _, e := range ve {
		row := firstRow
		var idx int
		if _, scanErr := fmt.Sscanf(questionPath(e.Field), "questions[%d]", &idx); scanErr == nil && idx < len(rows) {
			row = rows[idx]
		}
		out = append(out, models.ImportValidationError{
			Row:     row,
			Column:  e.Field,
			Message: e.Message,
			Value:   fmt.Sprint(e.Value),
			Code:    "invalid_content",
		})
	}
	return out
}

// questionPath strips a struct namespace prefix such as "Topic." from a
// validation field path.
func questionPath(field string) string {
	if i := strings.Index(field, "questions["); i >= 0 {
		return field[i:]
	}
	return field
}

// ===== EXPORT OPERATIONS =====

func (s *importExportService) ExportTopicsToCSV(ctx context.Context, topicKeys []string) ([]byte, error) {
	topics, err := s.getTopicsForExport(ctx, topicKeys)
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, topic := range topics {
		for i := range topic.Questions {
			if err := writer.Write(questionToRow(topic, &topic.Questions[i])); err != nil {
				return nil, fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return []byte(buf.String()), nil
}

func (s *importExportService) ExportTopicsToExcel(ctx context.Context, topicKeys []string) ([]byte, error) {
	topics, err := s.getTopicsForExport(ctx, topicKeys)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write Excel header: %w", err)
	}

	rowNum := 2
	for _, topic := range topics {
		for i := range topic.Questions {
			values := questionToRow(topic, &topic.Questions[i])
			row := make([]interface{}, len(values))
			for j, v := range values {
				row[j] = v
			}

			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write Excel row %d: %w", rowNum, err)
			}
			rowNum++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

// getTopicsForExport returns the requested topics in order, or every topic
// when no keys are given.
func (s *importExportService) getTopicsForExport(ctx context.Context, topicKeys []string) ([]*models.Topic, error) {
	if len(topicKeys) == 0 {
		topics, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list topics: %w", err)
		}
		return topics, nil
	}

	topics := make([]*models.Topic, 0, len(topicKeys))
	for _, key := range topicKeys {
		topic, err := s.repo.GetByKey(ctx, key)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, key)
			}
			return nil, fmt.Errorf("failed to get topic %s: %w", key, err)
		}
		topics = append(topics, topic)
	}
	return topics, nil
}
