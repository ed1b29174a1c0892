package events

import (
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// LogEvents drains messages and writes one structured log line per quiz
// event. It returns when the channel closes.
func LogEvents(messages <-chan *message.Message, logger *slog.Logger) {
	for msg := range messages {
		var event QuizEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			logger.Warn("Dropping undecodable quiz event", "message_id", msg.UUID, "error", err)
			msg.Ack()
			continue
		}

		logger.Info("Quiz event",
			"event_id", event.ID,
			"event_type", event.Type,
			"data", event.Data)
		msg.Ack()
	}
}
