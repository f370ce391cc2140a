package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tenant-passport/internal/domain"
	"github.com/spec-kit/tenant-passport/internal/events"
	"github.com/spec-kit/tenant-passport/internal/repository"
	apperrors "github.com/spec-kit/tenant-passport/pkg/util"
)

// TicketService owns the ticket collection for one property scope and keeps
// a scope-wide view that mirrors the store: successful writes apply the
// server-confirmed row to the view instead of re-querying, and any failed
// call leaves the view at its previous state. The view is not re-validated
// against concurrent writers; the next successful List resynchronizes it.
type TicketService struct {
	repo        repository.TicketRepository
	dispatcher  events.Dispatcher
	propertyKey string

	mu   sync.RWMutex
	view []domain.Ticket
}

// TicketCreateInput carries the submitter's fields. Validation of required
// fields happens in the handler before the service is invoked; the service
// takes the fields verbatim.
type TicketCreateInput struct {
	Name        string
	Unit        string
	City        string
	State       string
	Category    domain.TicketCategory
	Urgency     domain.TicketUrgency
	Description string
}

// NewTicketService constructs the service for a fixed property scope.
func NewTicketService(repo repository.TicketRepository, dispatcher events.Dispatcher, propertyKey string) *TicketService {
	return &TicketService{
		repo:        repo,
		dispatcher:  dispatcher,
		propertyKey: propertyKey,
	}
}

// PropertyKey returns the fixed scope all tickets belong to.
func (s *TicketService) PropertyKey() string {
	return s.propertyKey
}

// List fetches the scope's tickets newest-first and replaces the view. On
// error the previous view is kept (stale-but-consistent) and the error is
// surfaced.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.repo.ListByScope(ctx, s.propertyKey)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	s.mu.Lock()
	s.view = tickets
	s.mu.Unlock()
	return s.snapshot(), nil
}

// View returns the most recent successfully-held ticket sequence without
// touching the store.
func (s *TicketService) View() []domain.Ticket {
	return s.snapshot()
}

// Create inserts a ticket with default status New; the store assigns id and
// created_at. The confirmed row is prepended to the view.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		PropertyKey: s.propertyKey,
		Name:        input.Name,
		Unit:        input.Unit,
		City:        input.City,
		State:       input.State,
		Category:    input.Category,
		Urgency:     input.Urgency,
		Description: input.Description,
		Status:      domain.TicketStatusNew,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewStoreError(err)
	}

	s.mu.Lock()
	s.view = append([]domain.Ticket{*ticket}, s.view...)
	s.mu.Unlock()

	s.publish(ctx, events.Event{
		Type:        events.EventTicketCreated,
		PropertyKey: s.propertyKey,
		TicketID:    ticket.ID,
		Payload: events.TicketCreatedPayload{
			Name:     ticket.Name,
			Unit:     ticket.Unit,
			Category: ticket.Category,
			Urgency:  ticket.Urgency,
		},
	})
	return ticket, nil
}

// UpdateStatus sets the status of an existing ticket. The confirmed row
// replaces the matching view entry in place; other entries and their order
// are untouched.
func (s *TicketService) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreError(err)
	}

	var oldStatus domain.TicketStatus
	s.mu.Lock()
	for i := range s.view {
		if s.view[i].ID == updated.ID {
			oldStatus = s.view[i].Status
			s.view[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	s.publish(ctx, events.Event{
		Type:        events.EventTicketStatusChanged,
		PropertyKey: s.propertyKey,
		TicketID:    updated.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// Reset deletes every ticket in the scope and reinserts the seed set. The
// view is swapped only after both steps succeed; a delete that succeeds
// followed by a failed insert leaves the backing store empty while the view
// keeps its pre-reset state and the error is surfaced. That gap is accepted;
// there is no rollback.
func (s *TicketService) Reset(ctx context.Context) ([]domain.Ticket, error) {
	if err := s.repo.DeleteByScope(ctx, s.propertyKey); err != nil {
		return nil, apperrors.NewStoreError(err)
	}

	inserted, err := s.repo.CreateMany(ctx, SeedTickets(s.propertyKey))
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}

	// Seeds come back oldest-first from insertion; the view is newest-first.
	view := make([]domain.Ticket, 0, len(inserted))
	for i := len(inserted) - 1; i >= 0; i-- {
		view = append(view, inserted[i])
	}

	s.mu.Lock()
	s.view = view
	s.mu.Unlock()

	s.publish(ctx, events.Event{
		Type:        events.EventTicketsReset,
		PropertyKey: s.propertyKey,
		Payload:     events.TicketsResetPayload{SeedCount: len(inserted)},
	})
	return s.snapshot(), nil
}

// SeedTickets returns the canonical demo rows reinserted by Reset, in
// insertion order.
func SeedTickets(propertyKey string) []domain.Ticket {
	return []domain.Ticket{
		{
			PropertyKey: propertyKey,
			Name:        "Jordan",
			Unit:        "302",
			City:        "San Francisco",
			State:       "CA",
			Category:    domain.CategoryPlumbing,
			Urgency:     domain.UrgencyMedium,
			Description: "Leaky faucet under the sink.",
			Status:      domain.TicketStatusNew,
		},
		{
			PropertyKey: propertyKey,
			Name:        "Amina",
			Unit:        "115",
			City:        "San Francisco",
			State:       "CA",
			Category:    domain.CategoryHeatingCooling,
			Urgency:     domain.UrgencyHigh,
			Description: "Heater not turning on.",
			Status:      domain.TicketStatusInProgress,
		},
	}
}

func (s *TicketService) snapshot() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, len(s.view))
	copy(out, s.view)
	return out
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
