package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/repositories"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
)

// ContentService serves the validated topics of the content source. Topics
// that fail validation are rejected as a whole at load time and never reach
// a session.
type ContentService interface {
	Load(ctx context.Context) (*LoadReport, error)
	ListTopics(ctx context.Context) ([]models.TopicSummary, error)
	GetTopic(ctx context.Context, key string) (*models.Topic, error)
	Validate(topics []*models.Topic) []TopicRejection
}

// TopicRejection explains why a topic was not loaded.
type TopicRejection struct {
	Key    string           `json:"key"`
	Name   string           `json:"name"`
	Errors ValidationErrors `json:"errors"`
}

type LoadReport struct {
	Loaded   []models.TopicSummary `json:"loaded"`
	Rejected []TopicRejection      `json:"rejected"`
}

type contentService struct {
	repo      repositories.TopicRepository
	validator *validator.Validator
	logger    *ServiceLogger

	mu     sync.RWMutex
	topics []*models.Topic
	byKey  map[string]*models.Topic
}

func NewContentService(repo repositories.TopicRepository, v *validator.Validator, logger *ServiceLogger) ContentService {
	return &contentService{
		repo:      repo,
		validator: v,
		logger:    logger,
		byKey:     make(map[string]*models.Topic),
	}
}

// Load reads every topic from the repository and replaces the served set
// with the ones that pass validation.
func (s *contentService) Load(ctx context.Context) (report *LoadReport, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "load_content", "", "topic", time.Since(start), err)
	}()

	topics, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	rejected, rejectedIdx := s.validate(topics)
	report = &LoadReport{Rejected: rejected}

	for _, r := range rejected {
		s.logger.LogValidationError(ctx, "load_content", r.Key, r.Errors)
	}

	valid := make([]*models.Topic, 0, len(topics))
	byKey := make(map[string]*models.Topic, len(topics))
	for i, topic := range topics {
		if rejectedIdx[i] {
			continue
		}
		valid = append(valid, topic)
		byKey[topic.Key] = topic
		report.Loaded = append(report.Loaded, topic.Summary())
	}

	s.mu.Lock()
	s.topics = valid
	s.byKey = byKey
	s.mu.Unlock()

	return report, nil
}

// Validate checks topics in order. A topic whose key was already seen is
// rejected as a duplicate.
func (s *contentService) Validate(topics []*models.Topic) []TopicRejection {
	rejected, _ := s.validate(topics)
	return rejected
}

func (s *contentService) validate(topics []*models.Topic) ([]TopicRejection, map[int]bool) {
	var rejected []TopicRejection
	rejectedIdx := make(map[int]bool)
	seen := make(map[string]bool, len(topics))

	for i, topic := range topics {
		var errs ValidationErrors
		if err := s.validator.ValidateTopic(topic); err != nil {
			var ve ValidationErrors
			if !errors.As(err, &ve) {
				ve = ValidationErrors{{Field: "topic", Message: err.Error()}}
			}
			errs = append(errs, ve...)
		}
		if topic.Key != "" && seen[topic.Key] {
			errs.Add("key", "duplicate topic key", topic.Key)
		}
		seen[topic.Key] = true

		if len(errs) > 0 {
			rejected = append(rejected, TopicRejection{Key: topic.Key, Name: topic.Name, Errors: errs})
			rejectedIdx[i] = true
		}
	}
	return rejected, rejectedIdx
}

func (s *contentService) ListTopics(ctx context.Context) ([]models.TopicSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]models.TopicSummary, 0, len(s.topics))
	for _, t := range s.topics {
		summaries = append(summaries, t.Summary())
	}
	return summaries, nil
}

func (s *contentService) GetTopic(ctx context.Context, key string) (*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topic, ok := s.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, key)
	}
	return topic, nil
}
