package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/philosophy-quiz/internal/cache"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	topicListCacheKey = "topics:list"
	topicCachePrefix  = "topic:"
	topicCacheTTL     = 10 * time.Minute
)

type TopicPostgreSQL struct {
	db     *gorm.DB
	cache  cache.CacheService
	logger *slog.Logger
}

// NewTopicPostgreSQL returns a topic repository backed by the topics table.
// cache may be nil.
func NewTopicPostgreSQL(db *gorm.DB, cacheService cache.CacheService, logger *slog.Logger) repositories.TopicRepository {
	return &TopicPostgreSQL{
		db:     db,
		cache:  cacheService,
		logger: logger,
	}
}

// AutoMigrate creates or updates the topics table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.TopicRecord{})
}

func (t *TopicPostgreSQL) List(ctx context.Context) ([]*models.Topic, error) {
	var topics []*models.Topic
	if t.fromCache(ctx, topicListCacheKey, &topics) {
		return topics, nil
	}

	var records []models.TopicRecord
	if err := t.db.WithContext(ctx).Order("position ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	topics = make([]*models.Topic, 0, len(records))
	for i := range records {
		topic, err := toTopic(&records[i])
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}

	t.toCache(ctx, topicListCacheKey, topics)
	return topics, nil
}

func (t *TopicPostgreSQL) GetByKey(ctx context.Context, key string) (*models.Topic, error) {
	var topic models.Topic
	if t.fromCache(ctx, topicCachePrefix+key, &topic) {
		return &topic, nil
	}

	var record models.TopicRecord
	err := t.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", repositories.ErrTopicNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get topic %s: %w", key, err)
	}

	result, err := toTopic(&record)
	if err != nil {
		return nil, err
	}
	t.toCache(ctx, topicCachePrefix+key, result)
	return result, nil
}

// Save upserts topics by key in one transaction. New topics are positioned
// after the existing ones in the order given.
func (t *TopicPostgreSQL) Save(ctx context.Context, topics []*models.Topic) error {
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition int
		if err := tx.Model(&models.TopicRecord{}).Select("COALESCE(MAX(position), -1)").Scan(&maxPosition).Error; err != nil {
			return fmt.Errorf("failed to read topic positions: %w", err)
		}

		for i, topic := range topics {
			questions, err := json.Marshal(topic.Questions)
			if err != nil {
				return fmt.Errorf("failed to encode questions of %s: %w", topic.Key, err)
			}

			record := models.TopicRecord{
				Key:       topic.Key,
				Name:      topic.Name,
				Position:  maxPosition + 1 + i,
				Questions: datatypes.JSON(questions),
			}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "questions", "updated_at"}),
			}).Create(&record).Error
			if err != nil {
				return fmt.Errorf("failed to save topic %s: %w", topic.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	t.invalidate(ctx)
	return nil
}

func (t *TopicPostgreSQL) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if t.cache == nil {
		return false
	}
	if err := t.cache.Get(ctx, key, dest); err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			t.logger.Warn("Topic cache read failed", "key", key, "error", err)
		}
		return false
	}
	return true
}

func (t *TopicPostgreSQL) toCache(ctx context.Context, key string, value interface{}) {
	if t.cache == nil {
		return
	}
	if err := t.cache.Set(ctx, key, value, topicCacheTTL); err != nil {
		t.logger.Warn("Topic cache write failed", "key", key, "error", err)
	}
}

func (t *TopicPostgreSQL) invalidate(ctx context.Context) {
	if t.cache == nil {
		return
	}
	if err := t.cache.Delete(ctx, topicListCacheKey); err != nil {
		t.logger.Warn("Topic cache invalidation failed", "key", topicListCacheKey, "error", err)
	}
	if err := t.cache.DeletePattern(ctx, topicCachePrefix+"*"); err != nil {
		t.logger.Warn("Topic cache invalidation failed", "pattern", topicCachePrefix+"*", "error", err)
	}
}

func toTopic(record *models.TopicRecord) (*models.Topic, error) {
	topic := &models.Topic{Key: record.Key, Name: record.Name}
	if len(record.Questions) > 0 {
		if err := json.Unmarshal(record.Questions, &topic.Questions); err != nil {
			return nil, fmt.Errorf("failed to decode questions of %s: %w", record.Key, err)
		}
	}
	return topic, nil
}
