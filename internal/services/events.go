package services

import (
	"encoding/json"
	"log/slog"
)

// Routing keys of the events the shop publishes.
const (
	EventOTPRequested = "otp.requested"
	EventOrderPlaced  = "order.placed"
)

// EventPublisher delivers shop events to an external broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishEvent is best-effort: a missing publisher or a broker failure is
// logged and never fails the calling workflow.
func publishEvent(p EventPublisher, routingKey string, payload map[string]interface{}) {
	if p == nil {
		slog.Debug("event publisher not configured, skipping event", "routing_key", routingKey)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("failed to marshal event", "routing_key", routingKey, "error", err)
		return
	}
	if err := p.Publish(routingKey, body); err != nil {
		slog.Warn("failed to publish event", "routing_key", routingKey, "error", err)
	}
}
