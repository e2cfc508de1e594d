package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InboundEvent is one user message delivered by the messaging gateway.
type InboundEvent struct {
	EventID   string    `json:"event_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Outbound message kinds.
const (
	KindText  = "text"
	KindImage = "image"
)

// OutboundMessage is a reply published for the messaging gateway to
// deliver. Text messages may carry quick-reply suggestions; image messages
// carry raw bytes (base64 on the wire via encoding/json).
type OutboundMessage struct {
	EventID     string    `json:"event_id"`
	UserID      int64     `json:"user_id"`
	Kind        string    `json:"kind"`
	Text        string    `json:"text,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	ImageName   string    `json:"image_name,omitempty"`
	Image       []byte    `json:"image,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewTextMessage builds an outbound text reply.
func NewTextMessage(userID int64, text string, suggestions []string) *OutboundMessage {
	return &OutboundMessage{
		EventID:     uuid.NewString(),
		UserID:      userID,
		Kind:        KindText,
		Text:        text,
		Suggestions: suggestions,
		Timestamp:   time.Now(),
	}
}

// NewImageMessage builds an outbound image reply.
func NewImageMessage(userID int64, name string, image []byte) *OutboundMessage {
	return &OutboundMessage{
		EventID:   uuid.NewString(),
		UserID:    userID,
		Kind:      KindImage,
		ImageName: name,
		Image:     image,
		Timestamp: time.Now(),
	}
}

func (m *OutboundMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func InboundEventFromJSON(data []byte) (*InboundEvent, error) {
	var ev InboundEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
