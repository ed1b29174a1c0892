package events

import (
	"time"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/google/uuid"
)

// EventType represents different types of quiz events
type EventType string

const (
	// Session events
	EventSessionStarted EventType = "session.started"
	EventSessionEnded   EventType = "session.ended"

	// Question events
	EventQuestionSubmitted         EventType = "question.submitted"
	EventQuestionAnsweredCorrectly EventType = "question.answered_correctly"
)

const (
	eventSource  = "philosophy-quiz"
	eventVersion = "1.0"
)

// QuizEvent is the envelope for all quiz events
type QuizEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Session event payloads

type SessionStartedEvent struct {
	SessionID     string    `json:"session_id"`
	TopicKey      string    `json:"topic_key"`
	TopicName     string    `json:"topic_name"`
	QuestionCount int       `json:"question_count"`
	StartedAt     time.Time `json:"started_at"`
}

type SessionEndedEvent struct {
	SessionID     string    `json:"session_id"`
	TopicKey      string    `json:"topic_key"`
	Score         int       `json:"score"`
	QuestionCount int       `json:"question_count"`
	EndedAt       time.Time `json:"ended_at"`
}

// Question event payloads

type QuestionSubmittedEvent struct {
	SessionID     string              `json:"session_id"`
	TopicKey      string              `json:"topic_key"`
	QuestionIndex int                 `json:"question_index"`
	QuestionType  models.QuestionType `json:"question_type"`
	Correct       bool                `json:"correct"`
}

type QuestionAnsweredCorrectlyEvent struct {
	SessionID     string              `json:"session_id"`
	TopicKey      string              `json:"topic_key"`
	QuestionIndex int                 `json:"question_index"`
	QuestionType  models.QuestionType `json:"question_type"`
	Score         int                 `json:"score"`
}

// Event factory functions

func NewSessionStartedEvent(sessionID string, topic *models.Topic, startedAt time.Time) *QuizEvent {
	return newEvent(EventSessionStarted, SessionStartedEvent{
		SessionID:     sessionID,
		TopicKey:      topic.Key,
		TopicName:     topic.Name,
		QuestionCount: len(topic.Questions),
		StartedAt:     startedAt,
	})
}

func NewSessionEndedEvent(sessionID, topicKey string, score, questionCount int) *QuizEvent {
	return newEvent(EventSessionEnded, SessionEndedEvent{
		SessionID:     sessionID,
		TopicKey:      topicKey,
		Score:         score,
		QuestionCount: questionCount,
		EndedAt:       time.Now(),
	})
}

func NewQuestionSubmittedEvent(sessionID, topicKey string, index int, questionType models.QuestionType, correct bool) *QuizEvent {
	return newEvent(EventQuestionSubmitted, QuestionSubmittedEvent{
		SessionID:     sessionID,
		TopicKey:      topicKey,
		QuestionIndex: index,
		QuestionType:  questionType,
		Correct:       correct,
	})
}

func NewQuestionAnsweredCorrectlyEvent(sessionID, topicKey string, index int, questionType models.QuestionType, score int) *QuizEvent {
	return newEvent(EventQuestionAnsweredCorrectly, QuestionAnsweredCorrectlyEvent{
		SessionID:     sessionID,
		TopicKey:      topicKey,
		QuestionIndex: index,
		QuestionType:  questionType,
		Score:         score,
	})
}

func newEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a random event ID
func GenerateEventID() string {
	return uuid.NewString()
}
