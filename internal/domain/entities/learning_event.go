package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// LearningEventType represents the type of learning-state event
type LearningEventType string

const (
	// LearningEventTypeWeightsUpdated signals that the shared weight tables
	// were rewritten and in-memory copies on other instances are stale.
	LearningEventTypeWeightsUpdated LearningEventType = "weights_updated"
)

// LearningEvent is a real-time notification that the shared learning state
// changed. Payload is intentionally small; consumers reload from durable
// storage rather than trusting event contents.
type LearningEvent struct {
	ID            string            `json:"id"`
	EventType     LearningEventType `json:"event_type"`
	Timestamp     time.Time         `json:"timestamp"`
	StateVersion  int64             `json:"state_version"`
	FeedbackCount int               `json:"feedback_count"`
}

// NewLearningEvent creates a new learning event
func NewLearningEvent(eventType LearningEventType, stateVersion int64, feedbackCount int) *LearningEvent {
	return &LearningEvent{
		ID:            generateEventID(),
		EventType:     eventType,
		Timestamp:     time.Now(),
		StateVersion:  stateVersion,
		FeedbackCount: feedbackCount,
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
