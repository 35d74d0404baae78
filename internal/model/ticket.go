package model

import "time"

// Ticket status values as stored in the tickets.status enum column.
// A ticket starts out RESERVED when the attendee picks a type and
// becomes PAID once payment is confirmed.  Only PAID tickets grant
// access to hotel booking.
const (
	TicketStatusReserved = "RESERVED"
	TicketStatusPaid     = "PAID"
)

// TicketType categorizes tickets as stored in the `ticket_types`
// table.  The two boolean flags drive the booking eligibility rules:
// remote attendance excludes a hotel stay, and only types sold with
// accommodation include one.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name of the type.
//  PriceCents    – ticket price in cents.
//  IsRemote      – true when the ticket is for remote attendance.
//  IncludesHotel – true when the ticket includes hotel accommodation.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type TicketType struct {
	ID            uint64    // ticket_types.id
	Name          string    // ticket_types.name
	PriceCents    uint32    // ticket_types.price_cents
	IsRemote      bool      // ticket_types.is_remote
	IncludesHotel bool      // ticket_types.includes_hotel
	CreatedAt     time.Time // ticket_types.created_at
	UpdatedAt     time.Time // ticket_types.updated_at
}

// Ticket is a purchased admission record tied to an enrollment, as
// stored in the `tickets` table.  The Type field is populated by
// repository lookups that join ticket_types so callers can evaluate
// eligibility without a second query.
//
// Fields:
//  ID           – primary key identifier.
//  EnrollmentID – enrollment the ticket belongs to.
//  TicketTypeID – foreign key into ticket_types.
//  Status       – RESERVED or PAID.
//  Type         – joined ticket type record.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Ticket struct {
	ID           uint64     // tickets.id
	EnrollmentID uint64     // tickets.enrollment_id
	TicketTypeID uint64     // tickets.ticket_type_id
	Status       string     // tickets.status
	Type         TicketType // joined from ticket_types
	CreatedAt    time.Time  // tickets.created_at
	UpdatedAt    time.Time  // tickets.updated_at
}
