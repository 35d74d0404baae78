package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/conference-hotel-booking/internal/model"
)

// TicketRepo provides read access to tickets and their types.
// Tickets are sold and paid for by a separate flow; the booking
// engine only inspects their status and type flags.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// GetByEnrollmentID returns the ticket belonging to the given
// enrollment with its ticket type joined in, so callers can evaluate
// eligibility in one lookup.  When the enrollment has no ticket,
// sql.ErrNoRows is returned.
func (r *TicketRepo) GetByEnrollmentID(ctx context.Context, enrollmentID uint64) (*model.Ticket, error) {
	const q = `SELECT t.id, t.enrollment_id, t.ticket_type_id, t.status, t.created_at, t.updated_at,
	                  tt.id, tt.name, tt.price_cents, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at
	           FROM tickets t
	           JOIN ticket_types tt ON tt.id = t.ticket_type_id
	           WHERE t.enrollment_id = ?
	           LIMIT 1`
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, q, enrollmentID).Scan(
		&t.ID, &t.EnrollmentID, &t.TicketTypeID, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&t.Type.ID, &t.Type.Name, &t.Type.PriceCents, &t.Type.IsRemote, &t.Type.IncludesHotel,
		&t.Type.CreatedAt, &t.Type.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
