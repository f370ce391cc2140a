package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tenant-passport/internal/domain"
)

// TicketRepository encapsulates ticket persistence for a property scope.
type TicketRepository interface {
	// ListByScope returns tickets newest-first; created_at ties keep
	// insertion order via the seq column.
	ListByScope(ctx context.Context, propertyKey string) ([]domain.Ticket, error)
	// Create inserts a ticket; the database assigns id, seq and created_at.
	Create(ctx context.Context, ticket *domain.Ticket) error
	// CreateMany inserts tickets in order and returns the stored rows.
	CreateMany(ctx context.Context, tickets []domain.Ticket) ([]domain.Ticket, error)
	// UpdateStatus sets the status of an existing ticket and returns the
	// updated row. Returns pgx.ErrNoRows when the id does not exist.
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error)
	// DeleteByScope removes every ticket in the scope.
	DeleteByScope(ctx context.Context, propertyKey string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, property_key, seq, name, unit, city, state, category, urgency, description, status, created_at`

func (r *ticketRepository) ListByScope(ctx context.Context, propertyKey string) ([]domain.Ticket, error) {
	query := `
        SELECT ` + ticketColumns + `
        FROM tickets WHERE property_key=$1
        ORDER BY created_at DESC, seq ASC`

	rows, err := r.pool.Query(ctx, query, propertyKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (property_key, name, unit, city, state, category, urgency, description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, seq, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.PropertyKey,
		ticket.Name,
		ticket.Unit,
		ticket.City,
		ticket.State,
		ticket.Category,
		ticket.Urgency,
		ticket.Description,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.Seq, &ticket.CreatedAt)
}

func (r *ticketRepository) CreateMany(ctx context.Context, tickets []domain.Ticket) ([]domain.Ticket, error) {
	inserted := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if err := r.Create(ctx, &ticket); err != nil {
			return nil, err
		}
		inserted = append(inserted, ticket)
	}
	return inserted, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	query := `
        UPDATE tickets SET status=$1
        WHERE id=$2
        RETURNING ` + ticketColumns

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&ticket.ID,
		&ticket.PropertyKey,
		&ticket.Seq,
		&ticket.Name,
		&ticket.Unit,
		&ticket.City,
		&ticket.State,
		&ticket.Category,
		&ticket.Urgency,
		&ticket.Description,
		&ticket.Status,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) DeleteByScope(ctx context.Context, propertyKey string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE property_key=$1`, propertyKey)
	return err
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.PropertyKey,
			&ticket.Seq,
			&ticket.Name,
			&ticket.Unit,
			&ticket.City,
			&ticket.State,
			&ticket.Category,
			&ticket.Urgency,
			&ticket.Description,
			&ticket.Status,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
