// Package protocol defines the text frames exchanged with list clients.
// Every frame is a JSON object with a lower-case "type" discriminator.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sharelist/backend/internal/list"
)

const (
	// Client to server.
	TypeToggle = "toggle"
	TypePing   = "ping"

	// Server to client.
	TypeInit   = "init"
	TypeUpdate = "update"
	TypePong   = "pong"
)

// ErrBadMessage is wrapped by every inbound frame that fails validation.
var ErrBadMessage = errors.New("bad client message")

// ClientMessage is a decoded inbound frame.
type ClientMessage struct {
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

// ParseClient decodes and validates one inbound text frame.
func ParseClient(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	switch msg.Type {
	case TypePing:
		return msg, nil
	case TypeToggle:
		if msg.Label == "" {
			return ClientMessage{}, fmt.Errorf("%w: toggle without a label", ErrBadMessage)
		}
		return msg, nil
	default:
		return ClientMessage{}, fmt.Errorf("%w: unknown type %q", ErrBadMessage, msg.Type)
	}
}

// ServerMessage is an outbound frame. Data is present on init and update
// (always the full list, no deltas) and absent on pong.
type ServerMessage struct {
	Type string      `json:"type"`
	Data []list.Item `json:"data"`
}

func Init(items []list.Item) ServerMessage {
	return ServerMessage{Type: TypeInit, Data: ensure(items)}
}

func Update(items []list.Item) ServerMessage {
	return ServerMessage{Type: TypeUpdate, Data: ensure(items)}
}

func Pong() ServerMessage {
	return ServerMessage{Type: TypePong}
}

// Encode serializes an outbound frame. Pong omits the data field entirely.
func Encode(m ServerMessage) ([]byte, error) {
	if m.Data == nil {
		return json.Marshal(struct {
			Type string `json:"type"`
		}{m.Type})
	}
	return json.Marshal(m)
}

// ensure keeps an empty list encoding as [] rather than null.
func ensure(items []list.Item) []list.Item {
	if items == nil {
		return []list.Item{}
	}
	return items
}
