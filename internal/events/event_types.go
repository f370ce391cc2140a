package events

import (
	"time"

	"github.com/spec-kit/tenant-passport/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketsReset        EventType = "tickets_reset"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	PropertyKey string      `json:"property_key"`
	TicketID    string      `json:"ticket_id,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Name     string                `json:"name"`
	Unit     string                `json:"unit"`
	Category domain.TicketCategory `json:"category"`
	Urgency  domain.TicketUrgency  `json:"urgency"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketsResetPayload payload.
type TicketsResetPayload struct {
	SeedCount int `json:"seed_count"`
}
