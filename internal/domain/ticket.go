package domain

import "time"

// TicketStatus enumerates lifecycle states for maintenance tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "New"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// TicketCategory enumerates the intake categories offered on the submit form.
type TicketCategory string

const (
	CategoryPlumbing       TicketCategory = "Plumbing"
	CategoryElectrical     TicketCategory = "Electrical"
	CategoryHeatingCooling TicketCategory = "Heating/Cooling"
	CategoryAppliances     TicketCategory = "Appliances"
	CategoryOther          TicketCategory = "Other"
)

// Categories lists intake categories in form display order.
func Categories() []TicketCategory {
	return []TicketCategory{
		CategoryPlumbing,
		CategoryElectrical,
		CategoryHeatingCooling,
		CategoryAppliances,
		CategoryOther,
	}
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c TicketCategory) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// TicketUrgency enumerates urgency levels.
type TicketUrgency string

const (
	UrgencyLow    TicketUrgency = "Low"
	UrgencyMedium TicketUrgency = "Medium"
	UrgencyHigh   TicketUrgency = "High"
)

// Urgencies lists urgency levels in form display order.
func Urgencies() []TicketUrgency {
	return []TicketUrgency{UrgencyLow, UrgencyMedium, UrgencyHigh}
}

// ValidUrgency reports whether u is a known urgency.
func ValidUrgency(u TicketUrgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Ticket is the aggregate for maintenance requests. All tickets belong to a
// single property scope; only Status changes after creation. Seq is the
// insertion sequence assigned by the database and breaks created_at ties.
type Ticket struct {
	ID          string
	PropertyKey string
	Seq         int64
	Name        string
	Unit        string
	City        string
	State       string
	Category    TicketCategory
	Urgency     TicketUrgency
	Description string
	Status      TicketStatus
	CreatedAt   time.Time
}
