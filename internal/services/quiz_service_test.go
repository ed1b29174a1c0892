package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/philosophy-quiz/internal/evaluator"
	"github.com/SAP-F-2025/philosophy-quiz/internal/events"
	"github.com/SAP-F-2025/philosophy-quiz/internal/interaction"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type quizFixture struct {
	service   QuizService
	publisher *events.MockEventPublisher
	sessionID string
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()

	repo := new(MockTopicRepository)
	repo.On("List", mock.Anything).Return([]*models.Topic{philosophyTopic()}, nil)

	v := validator.New()
	content := NewContentService(repo, v, testServiceLogger())
	_, err := content.Load(context.Background())
	require.NoError(t, err)

	publisher := events.NewMockEventPublisher(testLogger())
	service := NewQuizService(content, publisher, v, testServiceLogger())

	view, err := service.StartSession(context.Background(), "basics")
	require.NoError(t, err)

	return &quizFixture{service: service, publisher: publisher, sessionID: view.ID}
}

func TestQuizService_StartSession(t *testing.T) {
	f := newQuizFixture(t)

	view, err := f.service.GetSession(context.Background(), f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Score)
	assert.Equal(t, 5, view.Total)
	assert.Len(t, view.Questions, 5)

	require.Len(t, f.publisher.EventsOfType(events.EventSessionStarted), 1)

	_, err = f.service.StartSession(context.Background(), "unknown")
	assert.True(t, IsNotFound(err))
}

func TestQuizService_SelectScoresOnceAndLocks(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	res, err := f.service.Select(ctx, f.sessionID, idxSingle, 0)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, 1, res.Score)
	assert.True(t, res.Question.State.Locked)
	require.NotNil(t, res.Question.State.Correct)
	assert.True(t, *res.Question.State.Correct)
	assert.Equal(t, []string{"Matter", "Idea", "God"}, res.Question.Options)

	_, err = f.service.Select(ctx, f.sessionID, idxSingle, 1)
	assert.ErrorIs(t, err, interaction.ErrLocked)
	assert.True(t, IsConflict(err))

	assert.Len(t, f.publisher.EventsOfType(events.EventQuestionSubmitted), 1)
	assert.Len(t, f.publisher.EventsOfType(events.EventQuestionAnsweredCorrectly), 1)
}

func TestQuizService_WrongAnswerPublishesNoCorrectEvent(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	_, err := f.service.Toggle(ctx, f.sessionID, idxMulti, 0)
	require.NoError(t, err)
	res, err := f.service.Submit(ctx, f.sessionID, idxMulti)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []int{0}, res.Question.State.SelectedSet)

	submitted := f.publisher.EventsOfType(events.EventQuestionSubmitted)
	require.Len(t, submitted, 1)
	assert.False(t, submitted[0].Data.(events.QuestionSubmittedEvent).Correct)
	assert.Empty(t, f.publisher.EventsOfType(events.EventQuestionAnsweredCorrectly))
}

func TestQuizService_IncompleteTrueFalse(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	_, err := f.service.AnswerRow(ctx, f.sessionID, idxTrueFalse, 0, true)
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, f.sessionID, idxTrueFalse)
	require.Error(t, err)
	assert.True(t, IsIncomplete(err))
	assert.Empty(t, f.publisher.EventsOfType(events.EventQuestionSubmitted))

	q, err := f.service.GetQuestion(ctx, f.sessionID, idxTrueFalse)
	require.NoError(t, err)
	assert.False(t, q.State.Locked)
	assert.Equal(t, []string{"Hegel was an idealist", "Feuerbach was an idealist"}, q.Rows)

	_, err = f.service.AnswerRow(ctx, f.sessionID, idxTrueFalse, 1, false)
	require.NoError(t, err)
	res, err := f.service.Submit(ctx, f.sessionID, idxTrueFalse)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, []bool{true, true}, res.Question.State.RowResults)
}

func TestQuizService_DragDropRetry(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	move := func(item string, to interaction.Container) *ActionResult {
		res, err := f.service.Move(ctx, f.sessionID, idxDrag, item, interaction.Pool, to)
		require.NoError(t, err)
		return res
	}

	move("Marx", interaction.Bin(0))
	move("Hegel", interaction.Bin(0))
	move("Feuerbach", interaction.Bin(1))

	res, err := f.service.Submit(ctx, f.sessionID, idxDrag)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []bool{false, false}, res.Question.State.BinResults)
	assert.Equal(t, []string{"Hegel"}, res.Question.State.Reveal[1])

	stale := move("Marx", interaction.Bin(1))
	assert.False(t, stale.Changed)

	res, err = f.service.Reset(ctx, f.sessionID, idxDrag)
	require.NoError(t, err)
	assert.False(t, res.Question.State.Locked)
	assert.Equal(t, []string{"Marx", "Hegel", "Feuerbach"}, res.Question.State.Pool)

	move("Marx", interaction.Bin(0))
	move("Feuerbach", interaction.Bin(0))
	move("Hegel", interaction.Bin(1))
	res, err = f.service.Submit(ctx, f.sessionID, idxDrag)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)

	_, err = f.service.Reset(ctx, f.sessionID, idxDrag)
	require.NoError(t, err)
	move("Marx", interaction.Bin(0))
	move("Feuerbach", interaction.Bin(0))
	move("Hegel", interaction.Bin(1))
	res, err = f.service.Submit(ctx, f.sessionID, idxDrag)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score, "a question scores at most once")
	assert.Len(t, f.publisher.EventsOfType(events.EventQuestionAnsweredCorrectly), 1)
}

func TestQuizService_Match(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	_, err := f.service.Pair(ctx, f.sessionID, idxMatch, 0, "Critical philosophy")
	require.NoError(t, err)
	res, err := f.service.Pair(ctx, f.sessionID, idxMatch, 1, "Positivism")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{0: "Critical philosophy", 1: "Positivism"}, res.Question.State.Pairs)

	res, err = f.service.Submit(ctx, f.sessionID, idxMatch)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)

	res, err = f.service.Unpair(ctx, f.sessionID, idxMatch, 0)
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestQuizService_UnsupportedOperations(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	_, err := f.service.Toggle(ctx, f.sessionID, idxSingle, 0)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = f.service.Reset(ctx, f.sessionID, idxMulti)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = f.service.Submit(ctx, f.sessionID, idxSingle)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = f.service.GetQuestion(ctx, f.sessionID, 9)
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = f.service.Select(ctx, f.sessionID, idxSingle, 7)
	assert.True(t, IsValidation(err))
}

func TestQuizService_EndSession(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	_, err := f.service.Select(ctx, f.sessionID, idxSingle, 0)
	require.NoError(t, err)

	view, err := f.service.EndSession(ctx, f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Score)
	assert.Empty(t, view.Questions)

	ended := f.publisher.EventsOfType(events.EventSessionEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, 1, ended[0].Data.(events.SessionEndedEvent).Score)

	_, err = f.service.GetSession(ctx, f.sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.service.EndSession(ctx, f.sessionID)
	assert.True(t, IsNotFound(err))
}

func TestQuizService_ExpireIdle(t *testing.T) {
	f := newQuizFixture(t)
	svc := f.service.(*quizService)

	now := time.Now()
	svc.now = func() time.Time { return now }
	_, err := svc.GetSession(context.Background(), f.sessionID)
	require.NoError(t, err)

	assert.Equal(t, 0, svc.ExpireIdle(context.Background(), time.Hour))

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, svc.ExpireIdle(context.Background(), time.Hour))

	_, err = svc.GetSession(context.Background(), f.sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestQuizService_Evaluate(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	verdict, err := f.service.Evaluate(ctx, &EvaluateRequest{
		TopicKey:      "basics",
		QuestionIndex: idxMulti,
		Answer:        evaluator.Answer{SelectedIndices: []int{2, 0}},
	})
	require.NoError(t, err)
	assert.True(t, verdict.Correct)

	inline := philosophyTopic().Questions[idxTrueFalse]
	_, err = f.service.Evaluate(ctx, &EvaluateRequest{
		Question: &inline,
		Answer:   evaluator.Answer{RowAnswers: map[int]bool{0: true}},
	})
	assert.True(t, IsIncomplete(err))

	broken := philosophyTopic().Questions[idxSingle]
	broken.SingleChoice.Correct = 9
	_, err = f.service.Evaluate(ctx, &EvaluateRequest{Question: &broken, Answer: evaluator.Answer{}})
	assert.True(t, IsValidation(err))

	_, err = f.service.Evaluate(ctx, &EvaluateRequest{TopicKey: "basics", QuestionIndex: 42})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
