package dto

import "time"

// EventEnvelope is the wire format for document lifecycle events on the
// in-process pub/sub channel.
type EventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
