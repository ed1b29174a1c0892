package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGoChannelEventPublisher_RoundTrip(t *testing.T) {
	publisher := NewGoChannelEventPublisher(PublisherConfig{TopicName: "quiz-events", Logger: testLogger()})
	defer publisher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := publisher.Subscribe(ctx)
	require.NoError(t, err)

	topic := &models.Topic{Key: "ethics", Name: "Ethics", Questions: make([]models.Question, 3)}
	event := NewSessionStartedEvent("session-1", topic, time.Now())
	require.NoError(t, publisher.PublishEvent(ctx, event))

	select {
	case msg := <-messages:
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventSessionStarted), msg.Metadata.Get("event_type"))

		var decoded struct {
			Type EventType           `json:"type"`
			Data SessionStartedEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, EventSessionStarted, decoded.Type)
		assert.Equal(t, "ethics", decoded.Data.TopicKey)
		assert.Equal(t, 3, decoded.Data.QuestionCount)
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(testLogger())
	ctx := context.Background()

	require.NoError(t, publisher.PublishEvent(ctx, NewQuestionSubmittedEvent("s", "ethics", 0, models.SingleChoice, true)))
	require.NoError(t, publisher.PublishEvent(ctx, NewQuestionAnsweredCorrectlyEvent("s", "ethics", 0, models.SingleChoice, 1)))

	assert.Len(t, publisher.GetPublishedEvents(), 2)
	require.Len(t, publisher.EventsOfType(EventQuestionAnsweredCorrectly), 1)
	assert.Equal(t, 1, publisher.EventsOfType(EventQuestionAnsweredCorrectly)[0].Data.(QuestionAnsweredCorrectlyEvent).Score)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
}

func TestGenerateEventIDIsUnique(t *testing.T) {
	assert.NotEqual(t, GenerateEventID(), GenerateEventID())
}
