// Package session groups the question instances of one topic together with
// the running score.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/SAP-F-2025/philosophy-quiz/internal/interaction"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/google/uuid"
)

type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Session is a single play-through of a topic. All access goes through the
// session's lock so each action completes before the next one starts.
type Session struct {
	mu sync.Mutex

	ID        string
	Topic     *models.Topic
	StartedAt time.Time

	status    Status
	tracker   *ScoreTracker
	instances []interaction.Instance
}

// Start begins a new session on topic with a zeroed score.
func Start(topic *models.Topic) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		Topic:     topic,
		StartedAt: time.Now(),
		status:    StatusActive,
		tracker:   NewScoreTracker(),
	}

	s.tracker.Reset()
	s.instances = make([]interaction.Instance, len(topic.Questions))
	for i := range topic.Questions {
		inst, err := interaction.New(&topic.Questions[i], s.tracker)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		s.instances[i] = inst
	}
	return s, nil
}

// Do runs fn with exclusive access to the session.
func (s *Session) Do(fn func(s *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Instance returns the state machine for question index. Callers must hold
// the session through Do.
func (s *Session) Instance(index int) (interaction.Instance, bool) {
	if s.status != StatusActive || index < 0 || index >= len(s.instances) {
		return nil, false
	}
	return s.instances[index], true
}

func (s *Session) Score() int {
	return s.tracker.Score()
}

func (s *Session) Status() Status {
	return s.status
}

// End destroys the question instances. The score is kept for the final view.
func (s *Session) End() {
	s.status = StatusEnded
	s.instances = nil
}

// View is a read-only copy of the session for rendering.
type View struct {
	ID        string                 `json:"id"`
	TopicKey  string                 `json:"topic_key"`
	TopicName string                 `json:"topic_name"`
	Status    Status                 `json:"status"`
	Score     int                    `json:"score"`
	Total     int                    `json:"total"`
	StartedAt time.Time              `json:"started_at"`
	Questions []interaction.Snapshot `json:"questions,omitempty"`
}

// View snapshots the session. Callers must hold the session through Do.
func (s *Session) View() View {
	v := View{
		ID:        s.ID,
		TopicKey:  s.Topic.Key,
		TopicName: s.Topic.Name,
		Status:    s.status,
		Score:     s.tracker.Score(),
		Total:     len(s.Topic.Questions),
		StartedAt: s.StartedAt,
	}
	for _, inst := range s.instances {
		v.Questions = append(v.Questions, inst.Snapshot())
	}
	return v
}
