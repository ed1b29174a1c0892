package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestContentService_LoadRejectsInvalidTopics(t *testing.T) {
	broken := philosophyTopic()
	broken.Key = "broken"
	broken.Questions[idxDrag].DragDrop.Correct = map[int][]string{0: {"Marx"}, 1: {"Hegel"}}

	duplicate := philosophyTopic()

	repo := new(MockTopicRepository)
	repo.On("List", mock.Anything).Return([]*models.Topic{philosophyTopic(), broken, duplicate}, nil)

	service := NewContentService(repo, validator.New(), testServiceLogger())
	report, err := service.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Loaded, 1)
	assert.Equal(t, "basics", report.Loaded[0].Key)
	assert.Equal(t, 5, report.Loaded[0].QuestionCount)

	require.Len(t, report.Rejected, 2)
	assert.Equal(t, "broken", report.Rejected[0].Key)
	assert.Equal(t, "questions[3].drag.correct", report.Rejected[0].Errors[0].Field)
	assert.Equal(t, "basics", report.Rejected[1].Key)
	assert.Equal(t, "key", report.Rejected[1].Errors[0].Field)

	summaries, err := service.ListTopics(context.Background())
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	_, err = service.GetTopic(context.Background(), "broken")
	assert.True(t, IsNotFound(err))

	repo.AssertExpectations(t)
}

func TestContentService_LoadFailure(t *testing.T) {
	repo := new(MockTopicRepository)
	repo.On("List", mock.Anything).Return([]*models.Topic(nil), errors.New("disk on fire"))

	service := NewContentService(repo, validator.New(), testServiceLogger())
	_, err := service.Load(context.Background())
	assert.Error(t, err)
}

func TestContentService_ReloadReplacesTopics(t *testing.T) {
	repo := new(MockTopicRepository)
	repo.On("List", mock.Anything).Return([]*models.Topic{philosophyTopic()}, nil).Once()

	other := philosophyTopic()
	other.Key = "ethics"
	repo.On("List", mock.Anything).Return([]*models.Topic{other}, nil).Once()

	service := NewContentService(repo, validator.New(), testServiceLogger())
	ctx := context.Background()

	_, err := service.Load(ctx)
	require.NoError(t, err)
	_, err = service.GetTopic(ctx, "basics")
	require.NoError(t, err)

	_, err = service.Load(ctx)
	require.NoError(t, err)
	_, err = service.GetTopic(ctx, "basics")
	assert.ErrorIs(t, err, ErrTopicNotFound)
	topic, err := service.GetTopic(ctx, "ethics")
	require.NoError(t, err)
	assert.Equal(t, "ethics", topic.Key)
}
