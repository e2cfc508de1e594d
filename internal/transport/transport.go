// Package transport defines the ports between the conversation core and
// the external messaging platform.
package transport

import "context"

// Event is one inbound user message, stripped of any platform detail.
type Event struct {
	UserID int64
	Text   string
}

// Sender delivers responses back to the user. Suggestions are short labels
// the platform may render as quick-reply buttons; it is free to ignore
// them.
type Sender interface {
	SendText(ctx context.Context, userID int64, text string, suggestions []string) error
	SendImage(ctx context.Context, userID int64, name string, image []byte) error
}
