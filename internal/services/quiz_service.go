package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SAP-F-2025/philosophy-quiz/internal/evaluator"
	"github.com/SAP-F-2025/philosophy-quiz/internal/events"
	"github.com/SAP-F-2025/philosophy-quiz/internal/interaction"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/session"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
)

// QuizService runs play sessions. Every operation on one session is
// serialized by the session's lock; events are published after it is
// released.
type QuizService interface {
	// Session lifecycle
	StartSession(ctx context.Context, topicKey string) (*session.View, error)
	GetSession(ctx context.Context, sessionID string) (*session.View, error)
	EndSession(ctx context.Context, sessionID string) (*session.View, error)
	ExpireIdle(ctx context.Context, maxIdle time.Duration) int

	// Question interaction
	GetQuestion(ctx context.Context, sessionID string, index int) (*QuestionView, error)
	Select(ctx context.Context, sessionID string, index, option int) (*ActionResult, error)
	Toggle(ctx context.Context, sessionID string, index, option int) (*ActionResult, error)
	AnswerRow(ctx context.Context, sessionID string, index, row int, value bool) (*ActionResult, error)
	Move(ctx context.Context, sessionID string, index int, item string, from, to interaction.Container) (*ActionResult, error)
	Pair(ctx context.Context, sessionID string, index, left int, right string) (*ActionResult, error)
	Unpair(ctx context.Context, sessionID string, index, left int) (*ActionResult, error)
	Submit(ctx context.Context, sessionID string, index int) (*ActionResult, error)
	Reset(ctx context.Context, sessionID string, index int) (*ActionResult, error)

	// Stateless grading
	Evaluate(ctx context.Context, req *EvaluateRequest) (*evaluator.Verdict, error)
}

// EvaluateRequest grades a complete answer without a session. Either
// Question or TopicKey with QuestionIndex identifies the question.
type EvaluateRequest struct {
	TopicKey      string           `json:"topic_key"`
	QuestionIndex int              `json:"question_index"`
	Question      *models.Question `json:"question"`
	Answer        evaluator.Answer `json:"answer"`
}

type sessionEntry struct {
	session    *session.Session
	lastActive time.Time
}

type quizService struct {
	content   ContentService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *ServiceLogger

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

func NewQuizService(content ContentService, publisher events.EventPublisher, v *validator.Validator, logger *ServiceLogger) QuizService {
	return &quizService{
		content:   content,
		publisher: publisher,
		validator: v,
		logger:    logger,
		sessions:  make(map[string]*sessionEntry),
		now:       time.Now,
	}
}

// ===== SESSION LIFECYCLE =====

func (s *quizService) StartSession(ctx context.Context, topicKey string) (view *session.View, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "start_session", topicKey, "topic", time.Since(start), err)
	}()

	topic, err := s.content.GetTopic(ctx, topicKey)
	if err != nil {
		return nil, err
	}

	sess, err := session.Start(topic)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &sessionEntry{session: sess, lastActive: s.now()}
	s.mu.Unlock()

	var v session.View
	sess.Do(func(sess *session.Session) error {
		v = sess.View()
		return nil
	})

	s.publish(ctx, events.NewSessionStartedEvent(sess.ID, topic, sess.StartedAt))
	return &v, nil
}

func (s *quizService) GetSession(ctx context.Context, sessionID string) (*session.View, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	var v session.View
	sess.Do(func(sess *session.Session) error {
		v = sess.View()
		return nil
	})
	return &v, nil
}

// EndSession destroys the session's question instances and removes it from
// the registry. The returned view carries the final score.
func (s *quizService) EndSession(ctx context.Context, sessionID string) (view *session.View, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "end_session", sessionID, "session", time.Since(start), err)
	}()

	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	v := s.end(entry.session)
	s.publish(ctx, events.NewSessionEndedEvent(v.ID, v.TopicKey, v.Score, v.Total))
	return &v, nil
}

// ExpireIdle ends every session without activity for maxIdle and returns how
// many were ended.
func (s *quizService) ExpireIdle(ctx context.Context, maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var expired []*session.Session
	for id, entry := range s.sessions {
		if entry.lastActive.Before(cutoff) {
			expired = append(expired, entry.session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		v := s.end(sess)
		s.publish(ctx, events.NewSessionEndedEvent(v.ID, v.TopicKey, v.Score, v.Total))
	}
	return len(expired)
}

func (s *quizService) end(sess *session.Session) session.View {
	var v session.View
	sess.Do(func(sess *session.Session) error {
		sess.End()
		v = sess.View()
		return nil
	})
	return v
}

func (s *quizService) lookup(sessionID string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	entry.lastActive = s.now()
	return entry.session, nil
}

// ===== QUESTION INTERACTION =====

// outcome is what a question operation reports back to withQuestion.
type outcome struct {
	changed   bool
	submitted *bool
}

func submitted(correct bool) outcome {
	return outcome{changed: true, submitted: &correct}
}

// withQuestion runs op on question index under the session lock and
// publishes the resulting events after releasing it.
func (s *quizService) withQuestion(ctx context.Context, operation, sessionID string, index int, op func(inst interaction.Instance) (outcome, error)) (result *ActionResult, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, operation, sessionID, "session", time.Since(start), err)
	}()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	var (
		res         ActionResult
		out         outcome
		topicKey    string
		qType       models.QuestionType
		scoreBefore int
	)
	err = sess.Do(func(sess *session.Session) error {
		if sess.Status() != session.StatusActive {
			return ErrSessionEnded
		}
		inst, ok := sess.Instance(index)
		if !ok {
			return fmt.Errorf("%w: %d", ErrQuestionNotFound, index)
		}

		scoreBefore = sess.Score()
		o, err := op(inst)
		if err != nil {
			return err
		}

		out = o
		topicKey = sess.Topic.Key
		qType = inst.Question().Type
		res = ActionResult{
			Changed:  o.changed,
			Score:    sess.Score(),
			Question: newQuestionView(index, len(sess.Topic.Questions), inst),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.submitted != nil {
		s.publish(ctx, events.NewQuestionSubmittedEvent(sessionID, topicKey, index, qType, *out.submitted))
	}
	if res.Score > scoreBefore {
		s.publish(ctx, events.NewQuestionAnsweredCorrectlyEvent(sessionID, topicKey, index, qType, res.Score))
	}
	return &res, nil
}

func (s *quizService) GetQuestion(ctx context.Context, sessionID string, index int) (*QuestionView, error) {
	res, err := s.withQuestion(ctx, "get_question", sessionID, index, func(inst interaction.Instance) (outcome, error) {
		return outcome{}, nil
	})
	if err != nil {
		return nil, err
	}
	return &res.Question, nil
}

func (s *quizService) Select(ctx context.Context, sessionID string, index, option int) (*ActionResult, error) {
	return s.withQuestion(ctx, "select_option", sessionID, index, func(inst interaction.Instance) (outcome, error) {
		q, ok := inst.(*interaction.SingleChoice)
		if !ok {
			return outcome{}, unsupported("select", inst)
		}
		correct, err := q.Select(option)
		if err != nil {
			return outcome{}, err
		}
		return submitted(correct), nil
	})
}

func (s *quizService) Toggle(ctx context.Context, sessionID string, index, option int) (*ActionResult, error) {
	return s.withQuestion(ctx, "toggle_option", sessionID, index, func(inst interaction.Instance) (outcome, error) {
		q, ok := inst.(*interaction.MultiChoice)
		if !ok {
			return outcome{}, unsupported("toggle", inst)
		}
		if err := q.Toggle(option); err != nil {
			return outcome{}, err
		}
		return outcome{changed: true}, nil
	})
}

func (s *quizService) AnswerRow(ctx context.Context, sessionID string, index, row int, value bool) (*ActionResult, error) {
	return s.withQuestion(ctx, "answer_row", sessionID, index, func(inst interaction.Instance) (outcome, error) {
		q, ok := inst.(*interaction.TrueFalse)
		if !ok {
			return outcome{}, unsupported("answer", inst)
		}
		if err := q.Answer(row, value); err != nil {
			return outcome{}, err
		}
		return outcome{changed: true}, nil
	})
}

func (s *quizService) Move(ctx context.Context, sessionID string, index int, item string, from, to interaction.Container) (*ActionResult, error) {
	return s.withQuestion(ctx, "move_item", sessionID, index, func(inst interaction.Instance) (outcome, error) {
		q, ok := inst.(*interaction.DragDrop)
		if !ok {
			return outcome{}, unsupported("move", inst)
		}
		return outcome{changed: q.Move(item, from, to)}, nil
	})
}

func (s *quizService) Pair(ctx context.Context, sessionID string, index, left int, right string) (*ActionResult, error) {
	return s.withQuestion(ctx, "pair_item", sessionID, index, func(inst interaction.Instance) (outcome, error) {
		q, ok := inst.(*interaction.Match)
		if !ok {
			return outcome{}, unsupported("pair", inst)
		}
		return outcome{changed: q.Pair(left, right)}, nil
	})
}

func (s *quizService) Unpair(ctx context.Context, sessionID string, index, left int) (*ActionResult, error) {
	return s.withQuestion(ctx, "unpair_item", sessionID, index, func(inst interaction.Instance) (outcome, error) {
		q, ok := inst.(*interaction.Match)
		if !ok {
			return outcome{}, unsupported("unpair", inst)
		}
		return outcome{changed: q.Unpair(left)}, nil
	})
}

func (s *quizService) Submit(ctx context.Context, sessionID string, index int) (*ActionResult, error) {
	return s.withQuestion(ctx, "submit_question", sessionID, index, func(inst interaction.Instance) (outcome, error) {
		switch q := inst.(type) {
		case *interaction.MultiChoice:
			correct, err := q.Submit()
			if err != nil {
				return outcome{}, err
			}
			return submitted(correct), nil
		case *interaction.TrueFalse:
			verdict, err := q.Submit()
			if err != nil {
				return outcome{}, err
			}
			return submitted(verdict.Correct), nil
		case *interaction.DragDrop:
			verdict, err := q.Submit()
			if err != nil {
				return outcome{}, err
			}
			return submitted(verdict.Correct), nil
		case *interaction.Match:
			verdict, err := q.Submit()
			if err != nil {
				return outcome{}, err
			}
			return submitted(verdict.Correct), nil
		default:
			return outcome{}, unsupported("submit", inst)
		}
	})
}

func (s *quizService) Reset(ctx context.Context, sessionID string, index int) (*ActionResult, error) {
	return s.withQuestion(ctx, "reset_question", sessionID, index, func(inst interaction.Instance) (outcome, error) {
		switch q := inst.(type) {
		case *interaction.DragDrop:
			q.Reset()
		case *interaction.Match:
			q.Reset()
		default:
			return outcome{}, unsupported("reset", inst)
		}
		return outcome{changed: true}, nil
	})
}

func unsupported(action string, inst interaction.Instance) error {
	return fmt.Errorf("%w: %s on %s question", ErrUnsupportedOperation, action, inst.Question().Type)
}

// ===== STATELESS GRADING =====

func (s *quizService) Evaluate(ctx context.Context, req *EvaluateRequest) (verdict *evaluator.Verdict, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "evaluate", req.TopicKey, "question", time.Since(start), err)
	}()

	q := req.Question
	if q == nil {
		topic, err := s.content.GetTopic(ctx, req.TopicKey)
		if err != nil {
			return nil, err
		}
		if req.QuestionIndex < 0 || req.QuestionIndex >= len(topic.Questions) {
			return nil, fmt.Errorf("%w: %d", ErrQuestionNotFound, req.QuestionIndex)
		}
		q = &topic.Questions[req.QuestionIndex]
	} else if errs := s.validator.Question().ValidateQuestion(q); len(errs) > 0 {
		return nil, errs.Prefix("question")
	}

	v, err := evaluator.Evaluate(q, req.Answer)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ===== EVENTS =====

// publish logs and drops publishing failures; play never blocks on events.
func (s *quizService) publish(ctx context.Context, event *events.QuizEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Logger().WarnContext(ctx, "Failed to publish quiz event",
			"event_type", event.Type,
			"error", err)
	}
}
