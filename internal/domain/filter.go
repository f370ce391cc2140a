package domain

// StatusFilter is the dashboard's display filter. It is a pure projection
// over an already-fetched ticket list and never reaches the store.
type StatusFilter string

const FilterAll StatusFilter = "All"

// StatusFilters lists filter options in display order.
func StatusFilters() []StatusFilter {
	return []StatusFilter{
		FilterAll,
		StatusFilter(TicketStatusNew),
		StatusFilter(TicketStatusInProgress),
		StatusFilter(TicketStatusResolved),
	}
}

// ValidStatusFilter reports whether f is a known filter option.
func ValidStatusFilter(f StatusFilter) bool {
	return f == FilterAll || ValidStatus(TicketStatus(f))
}

// FilterByStatus returns the tickets matching the filter, order preserved.
// FilterAll returns the input unchanged.
func FilterByStatus(tickets []Ticket, filter StatusFilter) []Ticket {
	if filter == FilterAll {
		return tickets
	}
	filtered := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == TicketStatus(filter) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
