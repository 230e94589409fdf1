// Package spectate serves a read-only websocket feed of a running session
// and provides the matching client. Viewers receive every frame; nothing
// they send reaches the game.
package spectate

import (
	"encoding/json"
	"time"

	"github.com/lox/termpong/internal/pong"
)

// MessageType identifies the payload of a Message.
type MessageType string

const (
	// MessageTypeHello is the first message on every connection.
	MessageTypeHello MessageType = "hello"
	// MessageTypeFrame carries one simulated frame.
	MessageTypeFrame MessageType = "frame"
)

// Message is the envelope for everything on the feed.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage encodes data into an envelope stamped with now.
func NewMessage(t MessageType, data any, now time.Time) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Type: t, Data: raw, Timestamp: now}, nil
}

// HelloData describes the session a viewer has joined.
type HelloData struct {
	SessionID string      `json:"session_id"`
	Params    pong.Params `json:"params"`
}

// FrameData is the state after one step.
type FrameData struct {
	Seq      uint64          `json:"seq"`
	Result   pong.StepResult `json:"result"`
	Snapshot pong.Snapshot   `json:"snapshot"`
}
