package dto

import (
	"time"

	"github.com/spec-kit/tenant-passport/internal/domain"
)

// CreateTicketRequest is the submit form payload.
type CreateTicketRequest struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	City        string `json:"city"`
	State       string `json:"state"`
	Category    string `json:"category"`
	Urgency     string `json:"urgency"`
	Description string `json:"description"`
}

// UpdateTicketStatusRequest changes a ticket's status.
type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// TicketResponse is the wire shape of a ticket.
type TicketResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Unit        string                `json:"unit"`
	City        string                `json:"city,omitempty"`
	State       string                `json:"state,omitempty"`
	Category    domain.TicketCategory `json:"category"`
	Urgency     domain.TicketUrgency  `json:"urgency"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
}

// NewTicketResponse maps a domain ticket to its wire shape.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Name:        t.Name,
		Unit:        t.Unit,
		City:        t.City,
		State:       t.State,
		Category:    t.Category,
		Urgency:     t.Urgency,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
	}
}

// NewTicketResponses maps a ticket slice, preserving order.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i]))
	}
	return items
}
