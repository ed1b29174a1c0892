package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) List(ctx context.Context) ([]*models.Topic, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Topic), args.Error(1)
}

func (m *MockTopicRepository) GetByKey(ctx context.Context, key string) (*models.Topic, error) {
	args := m.Called(ctx, key)
	topic, _ := args.Get(0).(*models.Topic)
	return topic, args.Error(1)
}

func (m *MockTopicRepository) Save(ctx context.Context, topics []*models.Topic) error {
	args := m.Called(ctx, topics)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServiceLogger() *ServiceLogger {
	return NewServiceLogger(testLogger(), LogConfig{Service: "philosophy-quiz", Component: "test"})
}

// philosophyTopic has one question of every type, in type order.
func philosophyTopic() *models.Topic {
	return &models.Topic{
		Key:  "basics",
		Name: "Basics of philosophy",
		Questions: []models.Question{
			{
				Type:         models.SingleChoice,
				Prompt:       "What is primary for materialism?",
				SingleChoice: &models.SingleChoiceContent{Options: []string{"Matter", "Idea", "God"}, Correct: 0},
			},
			{
				Type:        models.MultiChoice,
				Prompt:      "Which are forms of idealism?",
				MultiChoice: &models.MultiChoiceContent{Options: []string{"Objective", "Mechanical", "Subjective"}, Correct: []int{0, 2}},
			},
			{
				Type:   models.TrueFalse,
				Prompt: "Judge each statement",
				TrueFalse: &models.TrueFalseContent{Rows: []models.TrueFalseRow{
					{Text: "Hegel was an idealist", Correct: true},
					{Text: "Feuerbach was an idealist", Correct: false},
				}},
			},
			{
				Type:   models.DragDrop,
				Prompt: "Sort the thinkers",
				DragDrop: &models.DragDropContent{
					Items:   []string{"Marx", "Hegel", "Feuerbach"},
					Bins:    []string{"Materialist", "Idealist"},
					Correct: map[int][]string{0: {"Marx", "Feuerbach"}, 1: {"Hegel"}},
				},
			},
			{
				Type:   models.Match,
				Prompt: "Pair thinker and school",
				Match: &models.MatchContent{
					Left:    []string{"Kant", "Comte"},
					Right:   []string{"Positivism", "Critical philosophy"},
					Correct: []string{"Critical philosophy", "Positivism"},
				},
			},
		},
	}
}

const (
	idxSingle = iota
	idxMulti
	idxTrueFalse
	idxDrag
	idxMatch
)
