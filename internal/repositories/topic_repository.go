package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"gorm.io/gorm"
)

var ErrTopicNotFound = errors.New("topic not found")

// TopicRepository is the content source. List returns topics in their
// authored order.
type TopicRepository interface {
	List(ctx context.Context) ([]*models.Topic, error)
	GetByKey(ctx context.Context, key string) (*models.Topic, error)
	Save(ctx context.Context, topics []*models.Topic) error
}

// IsNotFoundError reports whether err means the requested record is absent.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTopicNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
