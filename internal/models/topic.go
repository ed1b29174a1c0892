package models

import (
	"time"

	"gorm.io/datatypes"
)

// Topic is an ordered group of questions played as one session.
type Topic struct {
	Key       string     `json:"key" yaml:"key" validate:"required,max=100"`
	Name      string     `json:"name" yaml:"name" validate:"required,max=200"`
	Questions []Question `json:"questions" yaml:"questions" validate:"required,min=1,dive"`
}

// TopicSummary is the topic list entry shown before a session starts.
type TopicSummary struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

func (t *Topic) Summary() TopicSummary {
	return TopicSummary{
		Key:           t.Key,
		Name:          t.Name,
		QuestionCount: len(t.Questions),
	}
}

// TopicRecord is the persisted form of a Topic. Questions are stored as a
// JSON array of Question values.
type TopicRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Key       string         `json:"key" gorm:"not null;size:100;uniqueIndex"`
	Name      string         `json:"name" gorm:"not null;size:200"`
	Position  int            `json:"position" gorm:"not null;default:0;index"`
	Questions datatypes.JSON `json:"questions" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TopicRecord) TableName() string {
	return "topics"
}
