package whatsapp

import (
	"encoding/json"
	"fmt"
)

// WebhookEvent is the envelope Meta posts to the webhook endpoint.
type WebhookEvent struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

type ChangeValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []InboundMessage `json:"messages"`
}

// InboundMessage is a single incoming user message. Only text and
// button-reply messages are handled; other types are skipped.
type InboundMessage struct {
	From   string         `json:"from"`
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Text   *InboundText   `json:"text,omitempty"`
	Button *InboundButton `json:"button,omitempty"`
}

type InboundText struct {
	Body string `json:"body"`
}

type InboundButton struct {
	Payload string `json:"payload"`
	Text    string `json:"text"`
}

// Body returns the routable message text: the text body for text messages,
// the button payload for button replies. ok is false for unsupported types.
func (m *InboundMessage) Body() (string, bool) {
	switch {
	case m.Text != nil:
		return m.Text.Body, true
	case m.Button != nil:
		return m.Button.Payload, true
	default:
		return "", false
	}
}

// ParseWebhookEvent decodes a webhook POST body and extracts the first
// inbound message, mirroring the upstream delivery shape (one message per
// event in practice). A payload without the expected structure is a
// malformed-event error for the HTTP layer to surface as a client error.
func ParseWebhookEvent(data []byte) (*InboundMessage, error) {
	var evt WebhookEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	if len(evt.Entry) == 0 || len(evt.Entry[0].Changes) == 0 {
		return nil, fmt.Errorf("webhook event missing entry/changes")
	}
	value := evt.Entry[0].Changes[0].Value
	if len(value.Messages) == 0 {
		// Status updates and other non-message changes arrive on the same
		// endpoint; they are not errors, there is just nothing to route.
		return nil, nil
	}
	return &value.Messages[0], nil
}
