// Package file stores topics in a single YAML or JSON document.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/repositories"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk layout of a content file.
type Document struct {
	Topics []*models.Topic `json:"topics" yaml:"topics"`
}

type TopicFile struct {
	path string
	mu   sync.RWMutex
}

func NewTopicFile(path string) repositories.TopicRepository {
	return &TopicFile{path: path}
}

// Decode parses a content document. JSON is chosen for .json files and YAML
// for everything else.
func Decode(path string, data []byte) (*Document, error) {
	var doc Document
	if isJSON(path) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return &doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

// Encode renders a content document in the format chosen by path.
func Encode(path string, doc *Document) ([]byte, error) {
	if isJSON(path) {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

func (f *TopicFile) List(ctx context.Context) ([]*models.Topic, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return doc.Topics, nil
}

func (f *TopicFile) GetByKey(ctx context.Context, key string) (*models.Topic, error) {
	topics, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range topics {
		if t.Key == key {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", repositories.ErrTopicNotFound, key)
}

// Save upserts topics by key, keeping the position of existing topics and
// appending new ones. The file is replaced atomically.
func (f *TopicFile) Save(ctx context.Context, topics []*models.Topic) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if os.IsNotExist(err) {
		doc, err = &Document{}, nil
	}
	if err != nil {
		return err
	}

	index := make(map[string]int, len(doc.Topics))
	for i, t := range doc.Topics {
		index[t.Key] = i
	}
	for _, t := range topics {
		if i, ok := index[t.Key]; ok {
			doc.Topics[i] = t
			continue
		}
		index[t.Key] = len(doc.Topics)
		doc.Topics = append(doc.Topics, t)
	}

	data, err := Encode(f.path, doc)
	if err != nil {
		return fmt.Errorf("failed to encode topics: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".topics-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write topics: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write topics: %w", err)
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *TopicFile) read() (*Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	return Decode(f.path, data)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
